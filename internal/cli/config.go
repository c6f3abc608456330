package cli

// Config holds the configuration for the generation process
type Config struct {
	Directories []string // directory arguments, may contain "./..." patterns
	ModuleName  string   // custom module name, empty means read go.mod
	Verbose     bool     // enable detailed output
}
