package complete

import (
	"context"
	"strings"
)

// IconHint tags a candidate with the kind of icon the host should render.
// Resolving the tag to an actual resource is the host's concern.
type IconHint string

const (
	IconFolder   IconHint = "folder"
	IconFile     IconHint = "file"
	IconTex      IconHint = "tex"
	IconBib      IconHint = "bib"
	IconImage    IconHint = "image"
	IconPdf      IconHint = "pdf"
	IconStyle    IconHint = "style"
	IconListing  IconHint = "listing"
)

// AcceptAction tags a post-acceptance side effect the host runs after the
// user picks a candidate. The engine only tags which actions apply.
type AcceptAction string

const (
	// ActionCloseBrace appends the closing delimiter if the accepted text
	// does not already end with one.
	ActionCloseBrace AcceptAction = "close-brace"

	// ActionRegisterReference records the accepted file as a cross-reference
	// target for the including document.
	ActionRegisterReference AcceptAction = "register-reference"
)

// Candidate is one offered completion item.
type Candidate struct {
	// InsertText replaces the user's typed fragment. It never contains a
	// "../" segment: traversal was already absorbed by directory resolution
	// and must not reappear at the caret.
	InsertText  string
	Label       string // what the picker shows
	IsDirectory bool
	Icon        IconHint
	OnAccept    []AcceptAction // file candidates only
}

// EmitFunc receives candidates as they are produced. Returning false cancels
// the remaining work.
type EmitFunc func(Candidate) bool

// iconForExtension maps a lowercase file extension to an icon tag.
func iconForExtension(ext string) IconHint {
	switch ext {
	case "tex", "ltx", "dtx":
		return IconTex
	case "bib":
		return IconBib
	case "png", "jpg", "jpeg", "gif", "svg", "eps", "tikz":
		return IconImage
	case "pdf":
		return IconPdf
	case "sty", "cls":
		return IconStyle
	case "txt", "csv", "dat", "lst":
		return IconListing
	default:
		return IconFile
	}
}

// buildCandidates turns one resolved directory's children into candidates
// and pushes them to emit: directories first, then the synthetic parent
// entry, then files. No alphabetical re-sort is imposed; entries keep the
// lister's natural order. register controls whether file candidates carry
// the register-reference on-accept tag.
func buildCandidates(ctx context.Context, matchPrefix string, register bool, files, directories []Entry, emit EmitFunc) bool {
	// Traversal segments were resolved away by the directory lookup, so the
	// textual anchor in front of each entry name must not carry them.
	anchor := strings.ReplaceAll(matchPrefix, "../", "")

	for _, dir := range directories {
		if ctx.Err() != nil {
			return false
		}
		ok := emit(Candidate{
			InsertText:  anchor + dir.Name + "/",
			Label:       dir.DisplayName,
			IsDirectory: true,
			Icon:        IconFolder,
		})
		if !ok {
			return false
		}
	}

	// One parent-navigation entry per invocation, whatever was typed.
	if ctx.Err() != nil || !emit(Candidate{
		InsertText:  "..",
		Label:       "..",
		IsDirectory: true,
		Icon:        IconFolder,
	}) {
		return false
	}

	actions := []AcceptAction{ActionCloseBrace}
	if register {
		actions = append(actions, ActionRegisterReference)
	}

	for _, file := range files {
		if ctx.Err() != nil {
			return false
		}
		ok := emit(Candidate{
			InsertText: anchor + file.Name,
			Label:      file.DisplayName,
			Icon:       iconForExtension(file.Extension),
			OnAccept:   actions,
		})
		if !ok {
			return false
		}
	}

	return true
}
