package lsp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/texquill/texquill/complete"
)

// setupProject lays out a small LaTeX project on disk:
//
//	base/
//	  main.tex
//	  refs.bib
//	  chapters/
//	  img/photos/
func setupProject(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "chapters"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(base, "img", "photos"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "main.tex"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(base, "refs.bib"), []byte("x"), 0o644))
	return base
}

func newTestService(roots ...string) *Service {
	return NewService(complete.NewEngine(complete.OSProbe{}, nil), roots, nil)
}

func inserts(res *Result) []string {
	out := make([]string, 0, len(res.Candidates))
	for _, c := range res.Candidates {
		out = append(out, c.InsertText)
	}
	return out
}

func TestComplete_InputArgument(t *testing.T) {
	base := setupProject(t)
	svc := newTestService()

	content := "\\input{chap}\n"
	res, err := svc.Complete(context.Background(), filepath.Join(base, "main.tex"), content, 0, len("\\input{chap"))
	require.NoError(t, err)

	got := inserts(res)
	assert.Contains(t, got, "chapters/")
	assert.Contains(t, got, "..")
	assert.Contains(t, got, "refs.bib")
	assert.NotEmpty(t, res.Advisory)
}

func TestComplete_GraphicsPathDeclaration(t *testing.T) {
	base := setupProject(t)
	svc := newTestService()

	content := "\\graphicspath{{img/}}\n\\includegraphics{photo}\n"
	res, err := svc.Complete(context.Background(), filepath.Join(base, "main.tex"), content, 1, len("\\includegraphics{photo"))
	require.NoError(t, err)

	assert.Contains(t, inserts(res), "photos/",
		"the declared graphics path contributes candidates with no base prefix")
}

func TestComplete_GraphicsPathsIgnoredForInput(t *testing.T) {
	base := setupProject(t)
	svc := newTestService()

	content := "\\graphicspath{{img/}}\n\\input{photo}\n"
	res, err := svc.Complete(context.Background(), filepath.Join(base, "main.tex"), content, 1, len("\\input{photo"))
	require.NoError(t, err)

	assert.NotContains(t, inserts(res), "photos/")
}

func TestComplete_RootMagicComment(t *testing.T) {
	base := setupProject(t)
	svc := newTestService()

	// A chapter file that names the project root: completion resolves from
	// the root document's directory, not the chapter's.
	docPath := filepath.Join(base, "chapters", "intro.tex")
	content := "% !TeX root = ../main.tex\n\\input{}\n"
	res, err := svc.Complete(context.Background(), docPath, content, 1, len("\\input{"))
	require.NoError(t, err)

	assert.Contains(t, inserts(res), "chapters/")
	assert.Contains(t, inserts(res), "refs.bib")
}

func TestComplete_ProjectRoots(t *testing.T) {
	base := setupProject(t)
	shared := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(shared, "common.tex"), []byte("x"), 0o644))
	svc := newTestService(shared)

	content := "\\input{}\n"
	res, err := svc.Complete(context.Background(), filepath.Join(base, "main.tex"), content, 0, len("\\input{"))
	require.NoError(t, err)

	assert.Contains(t, inserts(res), "common.tex")
}

func TestComplete_ReferenceTagFollowsCommand(t *testing.T) {
	base := setupProject(t)
	svc := newTestService()

	fileActions := func(content string, col int) [][]complete.AcceptAction {
		t.Helper()
		res, err := svc.Complete(context.Background(), filepath.Join(base, "main.tex"), content, 0, col)
		require.NoError(t, err)
		var actions [][]complete.AcceptAction
		for _, c := range res.Candidates {
			if !c.IsDirectory {
				actions = append(actions, c.OnAccept)
			}
		}
		return actions
	}

	// \input registers its target as a cross-reference; \verbatiminput
	// pastes content verbatim and must not.
	for _, a := range fileActions("\\input{}\n", len("\\input{")) {
		assert.Contains(t, a, complete.ActionRegisterReference)
	}
	for _, a := range fileActions("\\verbatiminput{}\n", len("\\verbatiminput{")) {
		assert.NotContains(t, a, complete.ActionRegisterReference)
		assert.Contains(t, a, complete.ActionCloseBrace)
	}
}

func TestComplete_CommaSegmentUnderCaret(t *testing.T) {
	base := setupProject(t)
	svc := newTestService()

	// Caret sits after "chap" in the middle of the file list; the segment
	// being typed completes, not the trailing one pointing elsewhere.
	content := "\\bibliography{chap,img/photos/x}\n"
	res, err := svc.Complete(context.Background(), filepath.Join(base, "main.tex"), content, 0, len("\\bibliography{chap"))
	require.NoError(t, err)

	assert.Contains(t, inserts(res), "chapters/")
}

func TestComplete_NonASCIIColumn(t *testing.T) {
	base := setupProject(t)
	svc := newTestService()

	// Four two-byte runes precede the command, so the UTF-16 column is
	// eight short of the byte offset of the caret.
	content := "éééé\\input{}\n"
	col := 4 + len("\\input{")
	res, err := svc.Complete(context.Background(), filepath.Join(base, "main.tex"), content, 0, col)
	require.NoError(t, err)

	assert.Contains(t, inserts(res), "chapters/")
}

func TestUTF16Column(t *testing.T) {
	tests := []struct {
		name string
		line string
		col  int
		want int
	}{
		{"ascii", "\\input{a}", 7, 7},
		{"two-byte runes", "éé\\input{", 9, 11},
		{"surrogate pair", "𝛼x", 2, 4},
		{"past end clamps", "ab", 10, 2},
		{"zero", "éé", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utf16Column(tt.line, tt.col))
		})
	}
}

func TestComplete_OutsideArgument(t *testing.T) {
	base := setupProject(t)
	svc := newTestService()

	tests := []struct {
		name    string
		content string
		line    int
		col     int
	}{
		{"plain prose", "just some text\n", 0, 5},
		{"non-file command", "\\textbf{bold}\n", 0, 10},
		{"line out of range", "\\input{x}\n", 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Complete(context.Background(), filepath.Join(base, "main.tex"), tt.content, tt.line, tt.col)
			require.NoError(t, err)
			assert.Empty(t, res.Candidates)
		})
	}
}

func TestLineAt(t *testing.T) {
	content := "first\nsecond\r\nthird"

	line, ok := lineAt(content, 0)
	require.True(t, ok)
	assert.Equal(t, "first", line)

	line, ok = lineAt(content, 1)
	require.True(t, ok)
	assert.Equal(t, "second", line)

	line, ok = lineAt(content, 2)
	require.True(t, ok)
	assert.Equal(t, "third", line)

	_, ok = lineAt(content, 3)
	assert.False(t, ok)
}
