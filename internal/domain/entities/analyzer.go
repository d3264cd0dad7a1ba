package entities

// AnalyzerInfo describes the Ghidra installation an analyzeHeadless script belongs to
type AnalyzerInfo struct {
	Path        string // analyzeHeadless script
	InstallDir  string // Ghidra installation root
	Name        string // application.name
	Version     string // application.version, empty when unknown
	ReleaseName string // application.release.name (PUBLIC, DEV, ...)
}

// KnownVersion reports whether the installation version could be determined
func (a *AnalyzerInfo) KnownVersion() bool {
	return a != nil && a.Version != ""
}
