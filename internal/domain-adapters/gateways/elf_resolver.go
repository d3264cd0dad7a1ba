package gateways

import (
	"bytes"
	"context"
	"debug/elf"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"

	"github.com/ochairo/headless/internal/domain/entities"
)

// ELFResolver resolves dependencies by reading the ELF dynamic section
// directly, following the dynamic loader's search order. No external tools
// are required.
type ELFResolver struct {
	log logr.Logger
	// libraryPath is the colon separated LD_LIBRARY_PATH value
	libraryPath string
	// accept reports whether a candidate file can satisfy a dependency of f
	accept func(candidate string, f *elf.File) bool
}

// NewELFResolver creates a resolver honoring the current LD_LIBRARY_PATH
func NewELFResolver(log logr.Logger) *ELFResolver {
	return &ELFResolver{
		log:         log,
		libraryPath: os.Getenv("LD_LIBRARY_PATH"),
		accept:      compatibleELF,
	}
}

// ResolveDependencies lists the transitive DT_NEEDED entries of binaryPath
// in breadth-first order, followed by the program interpreter
func (r *ELFResolver) ResolveDependencies(_ context.Context, binaryPath string) ([]entities.Dependency, error) {
	f, err := elf.Open(binaryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open ELF file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	interp := interpreter(f)
	if interp == "" && f.SectionByType(elf.SHT_DYNAMIC) == nil {
		r.log.V(1).Info("target is not dynamically linked", "target", binaryPath)
		return nil, nil
	}

	var deps []entities.Dependency
	seen := map[string]bool{}

	type pending struct {
		soname string
		parent string
		dirs   []string
	}

	needed, err := f.ImportedLibraries()
	if err != nil {
		return nil, fmt.Errorf("failed to read DT_NEEDED entries: %w", err)
	}
	queue := make([]pending, 0, len(needed))
	dirs := r.searchDirs(f, binaryPath)
	for _, soname := range needed {
		queue = append(queue, pending{soname: soname, parent: binaryPath, dirs: dirs})
	}

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if seen[next.soname] {
			continue
		}
		seen[next.soname] = true

		path := r.locate(next.soname, next.dirs, f)
		deps = append(deps, entities.Dependency{Soname: next.soname, Path: path})
		if path == "" {
			r.log.V(1).Info("dependency not found", "soname", next.soname, "neededBy", next.parent)
			continue
		}

		children, childDirs, err := r.readNeeded(path)
		if err != nil {
			r.log.V(1).Info("skipping dependencies of unreadable library", "path", path, "error", err.Error())
			continue
		}
		for _, child := range children {
			queue = append(queue, pending{soname: child, parent: path, dirs: childDirs})
		}
	}

	if interp != "" && !seen[filepath.Base(interp)] {
		path := ""
		if r.accept(interp, f) {
			path = interp
		}
		deps = append(deps, entities.Dependency{Soname: interp, Path: path})
	}

	return deps, nil
}

func (r *ELFResolver) readNeeded(path string) ([]string, []string, error) {
	lib, err := elf.Open(path)
	if err != nil {
		return nil, nil, err
	}
	//nolint:errcheck // Defer close on read-only file
	defer lib.Close()

	needed, err := lib.ImportedLibraries()
	if err != nil {
		return nil, nil, err
	}
	return needed, r.searchDirs(lib, path), nil
}

// locate finds soname in dirs. Names containing a slash are used as paths.
func (r *ELFResolver) locate(soname string, dirs []string, f *elf.File) string {
	if strings.Contains(soname, "/") {
		if r.accept(soname, f) {
			return soname
		}
		return ""
	}
	for _, dir := range dirs {
		candidate := filepath.Join(dir, soname)
		if r.accept(candidate, f) {
			return candidate
		}
	}
	return ""
}

// searchDirs returns the loader search order for dependencies of f:
// DT_RPATH (only without DT_RUNPATH), LD_LIBRARY_PATH, DT_RUNPATH, system dirs
func (r *ELFResolver) searchDirs(f *elf.File, path string) []string {
	origin := filepath.Dir(path)
	var dirs []string

	runpath := dynPaths(f, elf.DT_RUNPATH, origin)
	if len(runpath) == 0 {
		dirs = append(dirs, dynPaths(f, elf.DT_RPATH, origin)...)
	}
	dirs = append(dirs, splitPathList(r.libraryPath, origin)...)
	dirs = append(dirs, runpath...)
	dirs = append(dirs, defaultLibraryDirs(f)...)
	return dirs
}

func dynPaths(f *elf.File, tag elf.DynTag, origin string) []string {
	values, err := f.DynString(tag)
	if err != nil {
		return nil
	}
	var dirs []string
	for _, v := range values {
		dirs = append(dirs, splitPathList(v, origin)...)
	}
	return dirs
}

func splitPathList(list, origin string) []string {
	var dirs []string
	for _, dir := range strings.Split(list, ":") {
		if dir == "" {
			continue
		}
		dir = strings.ReplaceAll(dir, "${ORIGIN}", origin)
		dir = strings.ReplaceAll(dir, "$ORIGIN", origin)
		dirs = append(dirs, dir)
	}
	return dirs
}

var multiarchTriples = map[elf.Machine]string{
	elf.EM_X86_64:  "x86_64-linux-gnu",
	elf.EM_386:     "i386-linux-gnu",
	elf.EM_AARCH64: "aarch64-linux-gnu",
	elf.EM_ARM:     "arm-linux-gnueabihf",
	elf.EM_RISCV:   "riscv64-linux-gnu",
	elf.EM_PPC64:   "powerpc64le-linux-gnu",
	elf.EM_S390:    "s390x-linux-gnu",
}

func defaultLibraryDirs(f *elf.File) []string {
	var dirs []string
	if triple, ok := multiarchTriples[f.Machine]; ok {
		dirs = append(dirs, "/lib/"+triple, "/usr/lib/"+triple)
	}
	if f.Class == elf.ELFCLASS64 {
		dirs = append(dirs, "/lib64", "/usr/lib64")
	} else {
		dirs = append(dirs, "/lib32", "/usr/lib32")
	}
	return append(dirs, "/lib", "/usr/lib", "/usr/local/lib")
}

// interpreter returns the PT_INTERP path of f, if any
func interpreter(f *elf.File) string {
	for _, prog := range f.Progs {
		if prog.Type != elf.PT_INTERP {
			continue
		}
		data := make([]byte, prog.Filesz)
		if _, err := prog.ReadAt(data, 0); err != nil {
			return ""
		}
		return string(bytes.TrimRight(data, "\x00"))
	}
	return ""
}

// compatibleELF reports whether candidate is an ELF object of f's class and machine
func compatibleELF(candidate string, f *elf.File) bool {
	info, err := os.Stat(candidate)
	if err != nil || info.IsDir() {
		return false
	}
	lib, err := elf.Open(candidate)
	if err != nil {
		return false
	}
	//nolint:errcheck // Defer close on read-only file
	defer lib.Close()
	return lib.Class == f.Class && lib.Machine == f.Machine
}
