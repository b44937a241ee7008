package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

func toolRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func TestActivateToolInvalidatesCache(t *testing.T) {
	conn, client := newCacheTestClient()
	s := &mcpServer{conn: conn, client: client, cache: newWindowListCache(time.Minute)}

	if _, err := s.cache.list(client, false); err != nil {
		t.Fatalf("list: %v", err)
	}
	calls := conn.getCalls

	res, err := s.handleActivateWindow(context.Background(), toolRequest(map[string]any{
		"id":     "11",
		"source": "user",
	}))
	if err != nil {
		t.Fatalf("handleActivateWindow: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool reported error: %+v", res)
	}

	if _, err := s.cache.list(client, false); err != nil {
		t.Fatalf("list: %v", err)
	}
	if conn.getCalls == calls {
		t.Error("listing after activation served the stale cache")
	}
}

func TestCloseToolInvalidatesCache(t *testing.T) {
	conn, client := newCacheTestClient()
	s := &mcpServer{conn: conn, client: client, cache: newWindowListCache(time.Minute)}

	if _, err := s.cache.list(client, false); err != nil {
		t.Fatalf("list: %v", err)
	}
	calls := conn.getCalls

	res, err := s.handleCloseWindow(context.Background(), toolRequest(map[string]any{
		"id":     "22",
		"source": "user",
	}))
	if err != nil {
		t.Fatalf("handleCloseWindow: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool reported error: %+v", res)
	}

	if _, err := s.cache.list(client, false); err != nil {
		t.Fatalf("list: %v", err)
	}
	if conn.getCalls == calls {
		t.Error("listing after close served the stale cache")
	}
}
