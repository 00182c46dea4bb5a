package document

import (
	"path/filepath"
	"strings"
)

// magicRootLines is how many leading lines are scanned for the root magic
// comment. Editors conventionally place it at the very top.
const magicRootLines = 10

// BaseDirectory returns the base document directory for a file: the
// directory of the root document named by a "% !TeX root = ..." magic
// comment when present, otherwise the file's own directory.
func BaseDirectory(docPath, content string) string {
	docDir := filepath.Dir(docPath)

	lines := strings.SplitN(content, "\n", magicRootLines+1)
	if len(lines) > magicRootLines {
		lines = lines[:magicRootLines]
	}
	for _, line := range lines {
		root, ok := parseMagicRoot(line)
		if !ok {
			continue
		}
		if !filepath.IsAbs(root) {
			root = filepath.Join(docDir, root)
		}
		return filepath.Dir(root)
	}
	return docDir
}

// parseMagicRoot recognizes "% !TeX root = path" in its common spellings.
func parseMagicRoot(line string) (string, bool) {
	s := strings.TrimSpace(line)
	if !strings.HasPrefix(s, "%") {
		return "", false
	}
	s = strings.TrimSpace(strings.TrimPrefix(s, "%"))
	s = strings.TrimSpace(strings.TrimPrefix(s, "!"))
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "tex") {
		return "", false
	}
	s = strings.TrimSpace(s[len("tex"):])
	lower = strings.ToLower(s)
	if !strings.HasPrefix(lower, "root") {
		return "", false
	}
	s = strings.TrimSpace(s[len("root"):])
	s = strings.TrimSpace(strings.TrimPrefix(s, "="))
	if s == "" {
		return "", false
	}
	return s, true
}

// GraphicsPaths extracts the search paths declared by the document's last
// \graphicspath command, in declaration order. The returned strings are
// exactly as declared; resolving them against the base directory is the
// completion engine's job.
func GraphicsPaths(content string) []string {
	const marker = "\\graphicspath"

	at := strings.LastIndex(content, marker)
	if at < 0 {
		return nil
	}

	rest := content[at+len(marker):]
	open := strings.IndexByte(rest, '{')
	if open < 0 {
		return nil
	}

	var paths []string
	depth := 0
	segment := strings.Builder{}
	for _, r := range rest[open:] {
		switch r {
		case '{':
			depth++
			if depth == 2 {
				segment.Reset()
			}
		case '}':
			if depth == 2 && segment.Len() > 0 {
				paths = append(paths, segment.String())
			}
			depth--
			if depth <= 0 {
				return paths
			}
		default:
			if depth == 2 {
				segment.WriteRune(r)
			}
		}
	}
	return paths
}

// ArgumentAt locates the file-reference argument under the caret on one
// line. It returns the owning command plus the argument text split at the
// caret; the after part runs to the closing brace when one exists so the
// caller can hand the whole fragment to normalization. For comma-separated
// commands the after part stops at the next comma instead, so a caret in
// the middle of a file list completes its own segment rather than the last
// one.
func ArgumentAt(line string, col int) (cmd Command, before, after string, ok bool) {
	if col > len(line) {
		col = len(line)
	}
	if col < 0 {
		col = 0
	}

	open := strings.LastIndexByte(line[:col], '{')
	if open < 0 {
		return Command{}, "", "", false
	}
	// Caret already past the closing brace: not inside an argument.
	if strings.ContainsRune(line[open+1:col], '}') {
		return Command{}, "", "", false
	}

	cmd, found := commandBefore(line, open)
	if !found {
		return Command{}, "", "", false
	}

	before = line[open+1 : col]
	after = line[col:]
	if end := strings.IndexByte(after, '}'); end >= 0 {
		after = after[:end+1]
	}
	if cmd.CommaSeparated {
		if comma := strings.IndexByte(after, ','); comma >= 0 {
			after = after[:comma]
		}
	}
	return cmd, before, after, true
}

// commandBefore resolves the command owning a brace at position open,
// skipping over an optional [...] group between name and brace.
func commandBefore(line string, open int) (Command, bool) {
	i := open
	if i > 0 && line[i-1] == ']' {
		j := strings.LastIndexByte(line[:i], '[')
		if j < 0 {
			return Command{}, false
		}
		i = j
	}

	end := i
	start := end
	for start > 0 && isLetter(line[start-1]) {
		start--
	}
	if start == end || start == 0 || line[start-1] != '\\' {
		return Command{}, false
	}
	return FileCommand(line[start:end])
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
