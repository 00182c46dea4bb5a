package complete

import (
	"os"
	"path/filepath"
	"strings"
)

// Dir identifies a resolved directory by its physical path, with symlinks
// evaluated. Two roots are the same root exactly when their Path fields are
// equal, which is what the aggregator's dedup compares.
type Dir struct {
	Path string
}

// Entry is one immediate child of a resolved directory.
type Entry struct {
	Name        string
	DisplayName string
	Extension   string // lowercase, without the dot; empty for directories
	IsDir       bool
}

// FilesystemProbe is the read-only filesystem capability the engine runs
// against. Implementations never write.
type FilesystemProbe interface {
	// FindDirectory resolves an absolute path to its physical directory
	// identity. Returns false if the path does not exist or is not a
	// directory.
	FindDirectory(absPath string) (Dir, bool)

	// ListChildren enumerates the immediate children of a directory. No
	// recursion into subdirectories.
	ListChildren(dir Dir) ([]Entry, error)
}

// OSProbe is the FilesystemProbe backed by the local filesystem.
type OSProbe struct{}

func (OSProbe) FindDirectory(absPath string) (Dir, bool) {
	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return Dir{}, false
	}
	info, err := os.Stat(resolved)
	if err != nil || !info.IsDir() {
		return Dir{}, false
	}
	return Dir{Path: resolved}, true
}

func (OSProbe) ListChildren(dir Dir) ([]Entry, error) {
	children, err := os.ReadDir(dir.Path)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(children))
	for _, child := range children {
		name := child.Name()
		entry := Entry{
			Name:        name,
			DisplayName: name,
			IsDir:       child.IsDir(),
		}
		if !entry.IsDir {
			entry.Extension = strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// listSplit partitions a directory's children into files and directories.
// A "none" directory (empty path) yields two empty sequences. A listing
// failure is a root-scoped failure: the caller treats it like an
// unresolvable root rather than aborting the aggregation.
func listSplit(probe FilesystemProbe, dir Dir) (files, directories []Entry, err error) {
	if dir.Path == "" {
		return nil, nil, nil
	}
	children, err := probe.ListChildren(dir)
	if err != nil {
		return nil, nil, err
	}
	for _, child := range children {
		if child.IsDir {
			directories = append(directories, child)
		} else {
			files = append(files, child)
		}
	}
	return files, directories, nil
}
