package complete

import (
	"path/filepath"
	"strings"
)

// Resolve combines a search root with a partial path and determines which
// directory to list for candidates.
//
// Direct resolution is attempted first: if root/partial already names a
// directory the user has typed a complete directory path, that directory is
// listed and the match prefix is empty (the anchor has absorbed the whole
// partial). Otherwise the partial is trimmed back to its last complete
// directory segment and resolution is retried; the trimmed prefix becomes
// the match prefix the candidate builder keeps in front of entry names.
//
// A root that resolves to nothing contributes no candidates, as does a root
// whose trimmed partial is non-empty without a trailing separator (the user
// is mid-filename in some other root).
func Resolve(probe FilesystemProbe, rootPath, partial string) (dir Dir, matchPrefix string, ok bool) {
	// filepath.Join collapses any ../ and ./ segments, so traversal in the
	// partial is absorbed by the lookup itself.
	if d, found := probe.FindDirectory(filepath.Join(rootPath, partial)); found {
		return d, "", true
	}

	trimmed := trimToLastSegment(partial)
	if trimmed != "" && !strings.HasSuffix(trimmed, "/") {
		return Dir{}, "", false
	}

	d, found := probe.FindDirectory(filepath.Join(rootPath, trimmed))
	if !found {
		return Dir{}, "", false
	}
	return d, trimmed, true
}

// trimToLastSegment drops the trailing non-separator fragment, keeping
// everything up to and including the final "/". A partial with no separator
// trims to empty, meaning: search directly in the root.
func trimToLastSegment(partial string) string {
	i := strings.LastIndex(partial, "/")
	if i < 0 {
		return ""
	}
	return partial[:i+1]
}
