package lsp

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"go.uber.org/zap"

	"github.com/texquill/texquill/errors"
	"github.com/texquill/texquill/internal/util"
)

const (
	// maxDocumentsPerClient limits document cache size to prevent memory
	// exhaustion. A buggy client could open unlimited documents; this caps
	// the risk.
	maxDocumentsPerClient = 100
)

// GLSPHandler implements the LSP protocol handlers for TexQuill.
// It wraps the language Service with standard LSP document sync and
// completion requests.
type GLSPHandler struct {
	service   *Service
	logger    *zap.SugaredLogger
	documents map[string]string // URI → document content cache
	mu        sync.RWMutex
}

// NewGLSPHandler creates a new GLSP handler wrapping the language service
func NewGLSPHandler(service *Service, logger *zap.SugaredLogger) *GLSPHandler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &GLSPHandler{
		service:   service,
		logger:    logger,
		documents: make(map[string]string),
	}
}

// Initialize handles the LSP initialize request
func (h *GLSPHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	h.logger.Infow("LSP client initializing",
		"client", params.ClientInfo,
		"capabilities", "completion",
	)

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities := protocol.ServerCapabilities{
		CompletionProvider: &protocol.CompletionOptions{
			TriggerCharacters: []string{"{", "/", ","},
		},
		TextDocumentSync: &protocol.TextDocumentSyncOptions{
			OpenClose: util.Ptr(true),
			Change:    &syncKind,
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    "TexQuill Language Server",
			Version: util.Ptr("0.1.0"),
		},
	}, nil
}

// Initialized is called after the client receives InitializeResult
func (h *GLSPHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	h.logger.Infow("LSP client initialized successfully")
	return nil
}

// Shutdown handles the LSP shutdown request
func (h *GLSPHandler) Shutdown(ctx *glsp.Context) error {
	h.logger.Infow("LSP client shutting down")
	return nil
}

// TextDocumentDidOpen handles document open notifications
func (h *GLSPHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	uri := string(params.TextDocument.URI)

	// Enforce document cache bounds, except when re-opening.
	if _, exists := h.documents[uri]; !exists {
		if len(h.documents) >= maxDocumentsPerClient {
			h.logger.Warnw("document cache limit reached, rejecting new document",
				"uri", uri,
				"current_count", len(h.documents),
				"max_allowed", maxDocumentsPerClient,
			)
			return errors.Newf("document cache limit reached (%d documents open)", maxDocumentsPerClient)
		}
	}

	h.documents[uri] = params.TextDocument.Text

	h.logger.Debugw("document opened",
		"uri", uri,
		"length", len(params.TextDocument.Text),
	)
	return nil
}

// TextDocumentDidChange handles document change notifications
func (h *GLSPHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	uri := string(params.TextDocument.URI)

	// Full document sync: replace content wholesale
	for _, change := range params.ContentChanges {
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			h.documents[uri] = textChange.Text
		}
	}

	h.logger.Debugw("document changed", "uri", uri, "changes", len(params.ContentChanges))
	return nil
}

// TextDocumentDidClose handles document close notifications
func (h *GLSPHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	uri := string(params.TextDocument.URI)
	delete(h.documents, uri)

	h.logger.Debugw("document closed", "uri", uri)
	return nil
}

// TextDocumentCompletion provides path candidates inside file-reference
// arguments.
func (h *GLSPHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (result any, err error) {
	// Panic recovery: a completion failure must never take the server down.
	defer func() {
		if r := recover(); r != nil {
			h.logger.Errorw("panic in completion handler",
				"panic", r,
				"uri", params.TextDocument.URI,
			)
			result = []protocol.CompletionItem{}
			err = nil
		}
	}()

	h.mu.RLock()
	uri := string(params.TextDocument.URI)
	content, open := h.documents[uri]
	h.mu.RUnlock()

	if !open {
		return []protocol.CompletionItem{}, nil
	}

	res, err := h.service.Complete(
		context.Background(),
		uriToPath(uri),
		content,
		int(params.Position.Line),
		int(params.Position.Character),
	)
	if err != nil {
		h.logger.Errorw("completion error", "error", err, "uri", uri)
		return nil, err
	}

	items := make([]protocol.CompletionItem, len(res.Candidates))
	for i, c := range res.Candidates {
		kind := protocol.CompletionItemKindFile
		if c.IsDirectory {
			kind = protocol.CompletionItemKindFolder
		}
		item := protocol.CompletionItem{
			Label:      c.Label,
			Kind:       &kind,
			Detail:     util.Ptr(string(c.Icon)),
			InsertText: util.Ptr(c.InsertText),
			// Preserve emission order in clients that re-sort.
			SortText: util.Ptr(fmt.Sprintf("%04d", i)),
		}
		if len(c.OnAccept) > 0 {
			actions := make([]string, len(c.OnAccept))
			for j, a := range c.OnAccept {
				actions[j] = string(a)
			}
			item.Data = actions
		}
		items[i] = item
	}

	h.logger.Infow("LSP completion result", "candidates", len(items))
	if res.Advisory != "" {
		h.logger.Debugw("advisory footer", "message", res.Advisory)
	}

	return items, nil
}

// uriToPath converts a file:// URI to a filesystem path, decoding any
// percent-encoded characters. Other schemes pass through untouched; the
// probe will simply fail to resolve them.
func uriToPath(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return uri
	}
	return u.Path
}
