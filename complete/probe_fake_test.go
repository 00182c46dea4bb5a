package complete

import (
	"path/filepath"

	"github.com/texquill/texquill/errors"
)

// fakeProbe is an in-memory FilesystemProbe for deterministic tests.
// Directories are registered by physical path; aliases model symlinks or
// alternative spellings that resolve to the same physical directory.
type fakeProbe struct {
	children map[string][]Entry
	alias    map[string]string
	failing  map[string]bool
}

func newFakeProbe() *fakeProbe {
	return &fakeProbe{
		children: make(map[string][]Entry),
		alias:    make(map[string]string),
		failing:  make(map[string]bool),
	}
}

func (p *fakeProbe) addDir(path string, entries ...Entry) {
	p.children[filepath.Clean(path)] = entries
}

func (p *fakeProbe) addAlias(alias, target string) {
	p.alias[filepath.Clean(alias)] = filepath.Clean(target)
}

func (p *fakeProbe) failListing(path string) {
	p.failing[filepath.Clean(path)] = true
}

func (p *fakeProbe) FindDirectory(absPath string) (Dir, bool) {
	clean := filepath.Clean(absPath)
	if target, ok := p.alias[clean]; ok {
		clean = target
	}
	if _, ok := p.children[clean]; ok {
		return Dir{Path: clean}, true
	}
	return Dir{}, false
}

func (p *fakeProbe) ListChildren(dir Dir) ([]Entry, error) {
	if p.failing[dir.Path] {
		return nil, errors.New("input/output error")
	}
	return p.children[dir.Path], nil
}

func fakeFile(name string) Entry {
	ext := filepath.Ext(name)
	if ext != "" {
		ext = ext[1:]
	}
	return Entry{Name: name, DisplayName: name, Extension: ext}
}

func fakeDir(name string) Entry {
	return Entry{Name: name, DisplayName: name, IsDir: true}
}
