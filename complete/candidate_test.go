package complete

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, matchPrefix string, files, directories []Entry) []Candidate {
	t.Helper()
	var got []Candidate
	done := buildCandidates(context.Background(), matchPrefix, true, files, directories, func(c Candidate) bool {
		got = append(got, c)
		return true
	})
	require.True(t, done)
	return got
}

func TestBuildCandidates_Order(t *testing.T) {
	got := collect(t, "",
		[]Entry{fakeFile("main.tex"), fakeFile("refs.bib")},
		[]Entry{fakeDir("chapters"), fakeDir("figures")},
	)

	require.Len(t, got, 5)
	assert.Equal(t, "chapters/", got[0].InsertText)
	assert.Equal(t, "figures/", got[1].InsertText)
	assert.Equal(t, "..", got[2].InsertText)
	assert.Equal(t, "main.tex", got[3].InsertText)
	assert.Equal(t, "refs.bib", got[4].InsertText)
}

func TestBuildCandidates_AnchorStripsTraversal(t *testing.T) {
	got := collect(t, "../figures/", []Entry{fakeFile("plot.png")}, []Entry{fakeDir("tikz")})

	for _, c := range got {
		assert.NotContains(t, c.InsertText, "../", "traversal is absorbed by resolution, insert=%q", c.InsertText)
	}
	assert.Equal(t, "figures/tikz/", got[0].InsertText)
	assert.Equal(t, "figures/plot.png", got[2].InsertText)
}

func TestBuildCandidates_SingleParentEntry(t *testing.T) {
	got := collect(t, "img/", []Entry{fakeFile("a.png")}, []Entry{fakeDir("raw")})

	parents := 0
	for _, c := range got {
		if c.InsertText == ".." {
			parents++
			assert.True(t, c.IsDirectory)
			assert.Equal(t, IconFolder, c.Icon)
		}
	}
	assert.Equal(t, 1, parents)
}

func TestBuildCandidates_FileActions(t *testing.T) {
	tests := []struct {
		name     string
		register bool
		want     []AcceptAction
	}{
		{"referencing command", true, []AcceptAction{ActionCloseBrace, ActionRegisterReference}},
		{"non-referencing command", false, []AcceptAction{ActionCloseBrace}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []Candidate
			done := buildCandidates(context.Background(), "", tt.register,
				[]Entry{fakeFile("refs.bib")}, []Entry{fakeDir("chapters")},
				func(c Candidate) bool {
					got = append(got, c)
					return true
				})
			require.True(t, done)

			for _, c := range got {
				if c.IsDirectory {
					assert.Empty(t, c.OnAccept, "directories never carry on-accept actions")
					continue
				}
				assert.Equal(t, tt.want, c.OnAccept)
			}
		})
	}
}

func TestBuildCandidates_Cancellation(t *testing.T) {
	var got []Candidate
	done := buildCandidates(context.Background(), "", true,
		[]Entry{fakeFile("a.tex")},
		[]Entry{fakeDir("one"), fakeDir("two")},
		func(c Candidate) bool {
			got = append(got, c)
			return len(got) < 1 // stop after the first push
		})

	assert.False(t, done)
	assert.Len(t, got, 1)
}

func TestIconForExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want IconHint
	}{
		{"tex", IconTex},
		{"bib", IconBib},
		{"png", IconImage},
		{"eps", IconImage},
		{"pdf", IconPdf},
		{"sty", IconStyle},
		{"cls", IconStyle},
		{"csv", IconListing},
		{"xyz", IconFile},
		{"", IconFile},
	}
	for _, tt := range tests {
		t.Run("ext "+tt.ext, func(t *testing.T) {
			assert.Equal(t, tt.want, iconForExtension(tt.ext))
		})
	}
}

func TestBuildCandidates_DisplayNames(t *testing.T) {
	got := collect(t, "deep/", nil, []Entry{fakeDir("nested")})

	require.NotEmpty(t, got)
	assert.Equal(t, "nested", got[0].Label, "display text carries no prefix")
	assert.True(t, strings.HasPrefix(got[0].InsertText, "deep/"))
}
