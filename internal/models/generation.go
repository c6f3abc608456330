package models

// GeneratedFile represents one generated autogen_overwrites.go file
type GeneratedFile struct {
	PackageName string   // name of the package the file belongs to
	FilePath    string   // path where the file should be written
	Content     string   // formatted Go source
	Interfaces  []string // names of the interfaces declared in the file
}
