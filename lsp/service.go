// Package lsp provides the language service behind TexQuill's completion
// endpoint: it turns an (open document, caret position) pair into a
// completion request for the path engine and streams the results back in a
// form the protocol handler can ship to the client.
package lsp

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/texquill/texquill/complete"
	"github.com/texquill/texquill/document"
)

// Service provides path intelligence for LaTeX documents.
type Service struct {
	engine        *complete.Engine
	projectRoots  []string
	logger        *zap.SugaredLogger
	advisoriesOff bool
}

// NewService creates a language service over the given engine. projectRoots
// are absolute source roots searched after each document's base directory.
func NewService(engine *complete.Engine, projectRoots []string, logger *zap.SugaredLogger) *Service {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Service{
		engine:       engine,
		projectRoots: projectRoots,
		logger:       logger,
	}
}

// DisableAdvisories drops the rotating usage hint from all results.
func (s *Service) DisableAdvisories() {
	s.advisoriesOff = true
}

// Result is one completion invocation's output.
type Result struct {
	Candidates []complete.Candidate
	Advisory   string
}

// Complete computes path candidates for a caret position inside an open
// document. col counts UTF-16 code units, the way the protocol delivers
// positions. A caret outside a file-reference argument yields an empty
// result, not an error.
func (s *Service) Complete(ctx context.Context, docPath, content string, line, col int) (*Result, error) {
	text, ok := lineAt(content, line)
	if !ok {
		return &Result{}, nil
	}

	cmd, before, after, ok := document.ArgumentAt(text, utf16Column(text, col))
	if !ok {
		return &Result{}, nil
	}

	// Mark the caret the way the editor would, so normalization strips it.
	raw := before + complete.CursorPlaceholder + after

	req := complete.Request{
		RawText:           raw,
		BaseDir:           document.BaseDirectory(docPath, content),
		ProjectRoots:      s.projectRoots,
		RegisterReference: cmd.RegisterReference,
	}
	if cmd.SearchGraphicsPaths {
		req.GraphicsPaths = document.GraphicsPaths(content)
	}

	res := &Result{}
	advisory, err := s.engine.Complete(ctx, req, func(c complete.Candidate) bool {
		res.Candidates = append(res.Candidates, c)
		return true
	})
	if err != nil {
		return nil, err
	}
	if !s.advisoriesOff {
		res.Advisory = advisory
	}

	s.logger.Debugw("completion computed",
		"command", cmd.Name,
		"partial", complete.Normalize(raw),
		"candidates", len(res.Candidates),
	)
	return res, nil
}

// utf16Column converts a UTF-16 code-unit offset into a byte offset within
// line. Offsets past the end of the line clamp to its length; an offset
// landing inside a surrogate pair rounds up to the next rune boundary.
func utf16Column(line string, col int) int {
	units := 0
	for i, r := range line {
		if units >= col {
			return i
		}
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
	}
	return len(line)
}

// lineAt returns the zero-based line of a document, without its newline.
func lineAt(content string, line int) (string, bool) {
	if line < 0 {
		return "", false
	}
	rest := content
	for i := 0; i < line; i++ {
		nl := strings.IndexByte(rest, '\n')
		if nl < 0 {
			return "", false
		}
		rest = rest[nl+1:]
	}
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	return strings.TrimSuffix(rest, "\r"), true
}
