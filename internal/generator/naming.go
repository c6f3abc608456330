package generator

import (
	"github.com/toyz/overwrites/internal/models"
)

// InterfaceSuffix is appended to the target type name when no explicit
// interface name is configured.
const InterfaceSuffix = "Overwrites"

// PassthroughSuffix is appended to the target type name to form the
// forwarding implementation's type name.
const PassthroughSuffix = "Passthrough"

// DeriveInterfaceName derives the default interface name from a target type
// name. Pure function so the convention is independently testable.
func DeriveInterfaceName(targetType string) string {
	return targetType + InterfaceSuffix
}

// ResolveInterfaceName resolves the interface name for a block: an explicit
// name option wins, otherwise the name is derived from the target type.
func ResolveInterfaceName(block *models.ImplBlock) (string, error) {
	if block.Options.InterfaceName != "" {
		return block.Options.InterfaceName, nil
	}
	if block.TargetType == "" {
		return "", &models.GeneratorError{
			Type:    models.ErrorTypeUnresolvableTarget,
			File:    block.FileName,
			Line:    block.Location.Line,
			Message: "cannot derive an interface name: target is not a simple named type and no name argument was given",
		}
	}
	return DeriveInterfaceName(block.TargetType), nil
}
