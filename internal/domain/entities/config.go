package entities

// Config represents the settings read from the headless config file.
// Pointer fields distinguish "unset" from zero values.
type Config struct {
	Analyzer           string
	Folder             string
	Project            string
	Scripts            []string
	Dependencies       *bool
	Resolver           string
	LogDir             string
	Keyring            string
	MinAnalyzerVersion string
}
