// Package classifier decides which methods of an annotated type are promoted
// into the generated interface. Marker lookup lives here and nowhere else.
package classifier

import (
	"github.com/toyz/overwrites/internal/models"
)

// Qualify returns the ordered sub-sequence of methods that qualify for the
// generated interface. The rule is evaluated independently per method:
//
//	exported AND ((PolicyInclude AND no skip marker)
//	           OR (PolicyExclude AND overwrite marker))
//
// Under PolicyInclude an overwrite marker is inert metadata; under
// PolicyExclude a skip marker is likewise inert. Unexported methods never
// qualify regardless of markers. Input order is preserved.
func Qualify(options models.GenerateOptions, methods []models.MethodDecl) []models.MethodDecl {
	var qualifying []models.MethodDecl
	for _, method := range methods {
		if Qualifies(options, method) {
			qualifying = append(qualifying, method)
		}
	}
	return qualifying
}

// Qualifies applies the inclusion rule to a single method
func Qualifies(options models.GenerateOptions, method models.MethodDecl) bool {
	if !method.Exported {
		return false
	}
	switch options.DefaultPolicy {
	case models.PolicyExclude:
		return method.Markers.Has(models.MarkerOverwrite)
	default:
		return !method.Markers.Has(models.MarkerSkip)
	}
}
