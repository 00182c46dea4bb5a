package complete

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"
)

// Request is one completion invocation. It is immutable after construction
// and discarded once results have been emitted; nothing is cached across
// requests.
type Request struct {
	// RawText is the caret-adjacent argument text, sentinel included.
	RawText string

	// BaseDir is the absolute directory of the root document.
	BaseDir string

	// ProjectRoots are absolute source roots searched after the base
	// directory.
	ProjectRoots []string

	// GraphicsPaths are the auxiliary search paths declared in the document
	// (\graphicspath), in declaration order. Relative entries resolve
	// against BaseDir.
	GraphicsPaths []string

	// RegisterReference marks requests whose accepted files become
	// cross-reference targets for the including document (\input does,
	// \verbatiminput does not). File candidates carry the matching
	// on-accept tag.
	RegisterReference bool
}

// Engine fans one completion request out over its search roots and streams
// candidates to the caller. An Engine is stateless between requests and safe
// for concurrent use.
type Engine struct {
	probe  FilesystemProbe
	logger *zap.SugaredLogger
}

// NewEngine creates an engine over the given filesystem capability.
func NewEngine(probe FilesystemProbe, logger *zap.SugaredLogger) *Engine {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Engine{probe: probe, logger: logger}
}

// Complete resolves and emits candidates for one request: the base document
// directory first, then project roots, then graphics-path roots. Each
// physical root is searched at most once, however many times it is listed.
// Candidates are pushed to emit as they are produced; cancellation is polled
// between roots and between individual entries. The returned string is the
// advisory footer for the result list; it is empty when the consumer
// cancelled mid-stream.
func (e *Engine) Complete(ctx context.Context, req Request, emit EmitFunc) (string, error) {
	partial := Normalize(req.RawText)
	e.logger.Debugw("completion request", "partial", partial, "base", req.BaseDir)

	seen := make(map[string]bool)

	if base, ok := e.probe.FindDirectory(req.BaseDir); ok {
		seen[base.Path] = true
		if !e.completeRoot(ctx, req.BaseDir, partial, req.RegisterReference, emit) {
			return "", ctx.Err()
		}
	} else {
		e.logger.Debugw("base directory unresolvable", "base", req.BaseDir)
	}

	for _, root := range req.ProjectRoots {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if !e.visitRoot(ctx, root, partial, req.RegisterReference, seen, emit) {
			return "", ctx.Err()
		}
	}

	for _, declared := range req.GraphicsPaths {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		root := declared
		if !filepath.IsAbs(root) {
			root = filepath.Join(req.BaseDir, root)
		}
		if !e.visitRoot(ctx, root, partial, req.RegisterReference, seen, emit) {
			return "", ctx.Err()
		}
	}

	return nextAdvisory(), nil
}

// visitRoot dedups a root by physical identity and runs the per-root
// pipeline if it has not been searched yet. Returns false when the consumer
// cancelled.
func (e *Engine) visitRoot(ctx context.Context, rootPath, partial string, register bool, seen map[string]bool, emit EmitFunc) bool {
	physical, ok := e.probe.FindDirectory(rootPath)
	if !ok {
		e.logger.Debugw("search root unresolvable", "root", rootPath)
		return true
	}
	if seen[physical.Path] {
		return true
	}
	seen[physical.Path] = true
	return e.completeRoot(ctx, rootPath, partial, register, emit)
}

// completeRoot runs resolve → list → build for a single root. Resolution
// and listing failures are root-scoped: the root contributes nothing and the
// aggregation continues.
func (e *Engine) completeRoot(ctx context.Context, rootPath, partial string, register bool, emit EmitFunc) bool {
	dir, matchPrefix, ok := Resolve(e.probe, rootPath, partial)
	if !ok {
		return true
	}

	files, directories, err := listSplit(e.probe, dir)
	if err != nil {
		e.logger.Debugw("listing failed", "dir", dir.Path, "error", err)
		return true
	}

	return buildCandidates(ctx, matchPrefix, register, files, directories, emit)
}
