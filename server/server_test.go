package server

import (
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/texquill/texquill/complete"
	"github.com/texquill/texquill/config"
	"github.com/texquill/texquill/lsp"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	engine := complete.NewEngine(complete.OSProbe{}, nil)
	service := lsp.NewService(engine, nil, nil)
	return NewServer(service, &config.Config{})
}

// setupProject creates a small LaTeX project on disk for completion tests
func setupProject(t *testing.T) string {
	t.Helper()
	base := t.TempDir()

	if err := os.MkdirAll(filepath.Join(base, "chapters"), 0755); err != nil {
		t.Fatalf("failed to create chapters dir: %v", err)
	}
	for _, name := range []string{"main.tex", "refs.bib"} {
		if err := os.WriteFile(filepath.Join(base, name), []byte("x"), 0644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
	return base
}

// readResponse reads frames until it sees the response for the given request id,
// skipping server-initiated notifications
func readResponse(t *testing.T, conn *websocket.Conn, id float64) map[string]interface{} {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	for {
		var msg map[string]interface{}
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("failed to read response: %v", err)
		}
		if got, ok := msg["id"].(float64); ok && got == id {
			return msg
		}
	}
}

// TestLSPLifecycle tests the complete LSP lifecycle: Initialize → Initialized → Shutdown
func TestLSPLifecycle(t *testing.T) {
	srv := newTestServer(t)

	testServer := httptest.NewServer(http.HandlerFunc(srv.HandleLSPWebSocket))
	defer testServer.Close()

	wsURL := "ws" + strings.TrimPrefix(testServer.URL, "http")

	dialer := websocket.Dialer{}
	conn, _, err := dialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect WebSocket: %v", err)
	}
	defer conn.Close()

	initRequest := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "initialize",
		"params": map[string]interface{}{
			"processId": nil,
			"clientInfo": map[string]interface{}{
				"name":    "TestClient",
				"version": "1.0",
			},
			"capabilities": map[string]interface{}{},
		},
	}

	if err := conn.WriteJSON(initRequest); err != nil {
		t.Fatalf("Failed to send initialize request: %v", err)
	}

	initResponse := readResponse(t, conn, 1)
	if initResponse["jsonrpc"] != "2.0" {
		t.Errorf("Expected jsonrpc 2.0, got %v", initResponse["jsonrpc"])
	}

	result := initResponse["result"].(map[string]interface{})
	capabilities := result["capabilities"].(map[string]interface{})

	completionProvider, ok := capabilities["completionProvider"].(map[string]interface{})
	if !ok {
		t.Fatal("Expected completionProvider capability")
	}

	triggers, ok := completionProvider["triggerCharacters"].([]interface{})
	if !ok || len(triggers) == 0 {
		t.Error("Expected completion trigger characters")
	}

	initializedNotif := map[string]interface{}{
		"jsonrpc": "2.0",
		"method":  "initialized",
		"params":  map[string]interface{}{},
	}
	if err := conn.WriteJSON(initializedNotif); err != nil {
		t.Fatalf("Failed to send initialized notification: %v", err)
	}

	shutdownRequest := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      2,
		"method":  "shutdown",
		"params":  nil,
	}
	if err := conn.WriteJSON(shutdownRequest); err != nil {
		t.Fatalf("Failed to send shutdown request: %v", err)
	}

	shutdownResponse := readResponse(t, conn, 2)
	if _, hasError := shutdownResponse["error"]; hasError {
		t.Errorf("Shutdown returned error: %v", shutdownResponse["error"])
	}
}

// TestCompletionOverWebSocket exercises the full path: didOpen → completion
func TestCompletionOverWebSocket(t *testing.T) {
	base := setupProject(t)
	docPath := filepath.Join(base, "main.tex")
	docURI := "file://" + docPath

	srv := newTestServer(t)

	testServer := httptest.NewServer(http.HandlerFunc(srv.HandleLSPWebSocket))
	defer testServer.Close()

	wsURL := "ws" + strings.TrimPrefix(testServer.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect WebSocket: %v", err)
	}
	defer conn.Close()

	initRequest := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "initialize",
		"params": map[string]interface{}{
			"processId":    nil,
			"capabilities": map[string]interface{}{},
		},
	}
	if err := conn.WriteJSON(initRequest); err != nil {
		t.Fatalf("Failed to send initialize request: %v", err)
	}
	readResponse(t, conn, 1)

	didOpen := map[string]interface{}{
		"jsonrpc": "2.0",
		"method":  "textDocument/didOpen",
		"params": map[string]interface{}{
			"textDocument": map[string]interface{}{
				"uri":        docURI,
				"languageId": "latex",
				"version":    1,
				"text":       `\input{chap}`,
			},
		},
	}
	if err := conn.WriteJSON(didOpen); err != nil {
		t.Fatalf("Failed to send didOpen: %v", err)
	}

	completionRequest := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      2,
		"method":  "textDocument/completion",
		"params": map[string]interface{}{
			"textDocument": map[string]interface{}{"uri": docURI},
			"position":     map[string]interface{}{"line": 0, "character": 11},
		},
	}
	if err := conn.WriteJSON(completionRequest); err != nil {
		t.Fatalf("Failed to send completion request: %v", err)
	}

	completionResponse := readResponse(t, conn, 2)
	items, ok := completionResponse["result"].([]interface{})
	if !ok {
		t.Fatalf("Expected completion item array, got %T", completionResponse["result"])
	}

	labels := make(map[string]bool)
	for _, raw := range items {
		item := raw.(map[string]interface{})
		labels[item["label"].(string)] = true
	}

	for _, want := range []string{"chapters", "..", "refs.bib"} {
		if !labels[want] {
			t.Errorf("Expected completion label %q, got %v", want, labels)
		}
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	srv.HandleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("Expected ok status in body, got %s", rec.Body.String())
	}
}

func TestOriginAllowed(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		origin string
		want   bool
	}{
		{"http://localhost:3000", true},
		{"https://localhost", true},
		{"http://127.0.0.1:8080", true},
		{"http://evil.example.com", false},
	}

	for _, tt := range tests {
		if got := srv.originAllowed(tt.origin); got != tt.want {
			t.Errorf("originAllowed(%q) = %v, want %v", tt.origin, got, tt.want)
		}
	}
}

func TestFindAvailablePort(t *testing.T) {
	// Grab a free port, release it, and expect to get it back
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("failed to grab port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	got, err := findAvailablePort(port)
	if err != nil {
		t.Fatalf("findAvailablePort() failed: %v", err)
	}
	if got != port {
		t.Errorf("expected port %d, got %d", port, got)
	}
}

func TestIsPortAvailable_Busy(t *testing.T) {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("failed to grab port: %v", err)
	}
	defer listener.Close()

	port := listener.Addr().(*net.TCPAddr).Port
	if isPortAvailable(port) {
		t.Errorf("expected port %d to be busy", port)
	}
}
