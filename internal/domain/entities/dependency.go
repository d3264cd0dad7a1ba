package entities

// Dependency represents a shared library referenced by the target
type Dependency struct {
	Soname  string // Name as recorded in the binary (DT_NEEDED) or printed by ldd
	Path    string // Resolved filesystem path, empty when unresolved
	Address string // Load address reported by ldd, if any
}

// Resolved reports whether the dependency has a filesystem path
func (d Dependency) Resolved() bool {
	return d.Path != ""
}

// ResolvedPaths returns the paths of resolved dependencies in discovery order
func ResolvedPaths(deps []Dependency) []string {
	paths := make([]string, 0, len(deps))
	for _, d := range deps {
		if d.Resolved() {
			paths = append(paths, d.Path)
		}
	}
	return paths
}
