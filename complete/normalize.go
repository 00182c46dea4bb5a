// Package complete implements path autocompletion for LaTeX file-reference
// arguments (\input{...}, \includegraphics{...}, \bibliography{...}).
//
// Given the raw text around the caret it determines the partial path being
// typed, probes a set of search roots (base document directory, project
// source roots, declared graphics paths), and streams insertable candidates
// back to the caller. The filesystem is injected as a FilesystemProbe so the
// whole pipeline runs against an in-memory fake in tests.
package complete

import "strings"

// CursorPlaceholder is the sentinel the editor layer inserts at the caret
// before handing the argument text to Normalize. It marks where the user is
// typing and is stripped before any path analysis.
const CursorPlaceholder = "⌖"

// Normalize reduces raw caret-adjacent text to the canonical partial path.
//
// The result never starts with "./" or "/", never contains the caret
// sentinel, and if non-empty and not ending in "/" denotes a filename
// fragment under the directory ending at the last "/". Every input has a
// defined output; there are no error cases.
func Normalize(raw string) string {
	// The editor closes an unterminated parameter brace for us.
	if strings.HasSuffix(raw, "}") {
		raw = raw[:len(raw)-1]
	}

	raw = strings.ReplaceAll(raw, CursorPlaceholder, "")

	// Commands like \bibliography take comma-separated multi-file parameters.
	// Only the fragment currently being typed matters.
	if i := strings.LastIndex(raw, ","); i >= 0 {
		raw = raw[i+1:]
	}

	// A lone trailing dot is shorthand for descending into the directory.
	if strings.HasSuffix(raw, ".") {
		raw = raw[:len(raw)-1] + "/"
	}

	raw = strings.TrimPrefix(raw, "./")

	// Paths are always root-relative for search purposes, never absolute.
	raw = strings.TrimPrefix(raw, "/")

	return raw
}
