package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/wmhints/wmctl/internal/hints"
	"github.com/wmhints/wmctl/internal/version"
	"github.com/wmhints/wmctl/internal/x11"
)

// mcpServer wraps the MCP server with the X connection and window cache.
// The connection's atom cache is not safe for concurrent use, so connMu
// serializes every tool call that touches it.
type mcpServer struct {
	conn   x11.Conn
	client *hints.Client
	cache  *windowListCache
	connMu sync.Mutex
	mcp    *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
}

// newMCPServer connects to the X display and configures an MCP server with
// all wmctl tools.
func newMCPServer(cfg MCPConfig) (*mcpServer, error) {
	conn, err := x11.Connect(displayOverride)
	if err != nil {
		return nil, err
	}

	s := &mcpServer{
		conn:   conn,
		client: hints.NewClient(conn),
		cache:  newWindowListCache(cfg.CacheTTL),
	}

	s.mcp = mcpserver.NewMCPServer(
		"wmctl",
		version.Version,
	)

	s.registerTools()
	return s, nil
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *mcpServer) close() {
	s.conn.Close()
}

func (s *mcpServer) registerTools() {
	// list_windows
	s.mcp.AddTool(
		mcp.NewTool("list_windows",
			mcp.WithDescription("List windows managed by the window manager with id, title, desktop, and PID"),
			mcp.WithBoolean("stacking", mcp.Description("List in bottom-to-top stacking order")),
			mcp.WithNumber("desktop", mcp.Description("Only windows on this desktop index")),
		),
		s.handleListWindows,
	)

	// desktops
	s.mcp.AddTool(
		mcp.NewTool("desktops",
			mcp.WithDescription("Show virtual desktop state: count, current index, names, and work areas"),
		),
		s.handleDesktops,
	)

	// activate_window
	s.mcp.AddTool(
		mcp.NewTool("activate_window",
			mcp.WithDescription("Ask the window manager to activate (focus, raise) a window"),
			mcp.WithString("id", mcp.Description("Window id (decimal or 0x hex)")),
			mcp.WithString("title", mcp.Description("Window title substring")),
			mcp.WithString("source", mcp.Description("Source indication: user, app (default: app)")),
		),
		s.handleActivateWindow,
	)

	// close_window
	s.mcp.AddTool(
		mcp.NewTool("close_window",
			mcp.WithDescription("Ask the window manager to close a window"),
			mcp.WithString("id", mcp.Description("Window id (decimal or 0x hex)")),
			mcp.WithString("title", mcp.Description("Window title substring")),
			mcp.WithString("source", mcp.Description("Source indication: user, app (default: app)")),
		),
		s.handleCloseWindow,
	)

	// get_property
	s.mcp.AddTool(
		mcp.NewTool("get_property",
			mcp.WithDescription("Read any supported window manager hint by its protocol name, e.g. _NET_WM_STATE. Root window hints need no target window."),
			mcp.WithString("name", mcp.Description("Hint name, e.g. _NET_CURRENT_DESKTOP"), mcp.Required()),
			mcp.WithString("id", mcp.Description("Target window id (decimal or 0x hex)")),
			mcp.WithString("title", mcp.Description("Target window title substring")),
		),
		s.handleGetProperty,
	)
}

func (s *mcpServer) handleListWindows(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stacking := req.GetBool("stacking", false)
	desktop := req.GetInt("desktop", -1)

	s.connMu.Lock()
	entries, err := s.cache.list(s.client, stacking)
	s.connMu.Unlock()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if desktop >= 0 {
		filtered := entries[:0:0]
		for _, e := range entries {
			if e.Desktop == int64(desktop) {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}
	return jsonResult(entries)
}

func (s *mcpServer) handleDesktops(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	var summary desktopSummary
	var err error
	if summary.Count, err = s.client.NumberOfDesktops(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if summary.Current, err = s.client.CurrentDesktop(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	summary.Names, _ = s.client.DesktopNames()
	summary.WorkAreas, _ = s.client.WorkAreas()
	if on, err := s.client.ShowingDesktop(); err == nil {
		summary.ShowingDesktop = on
	}
	return jsonResult(summary)
}

func (s *mcpServer) handleActivateWindow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	win, source, errResult := s.resolveTarget(req)
	if errResult != nil {
		return errResult, nil
	}

	s.connMu.Lock()
	err := s.client.Activate(win, source)
	s.connMu.Unlock()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	// A cached listing would keep reporting the old active window.
	s.cache.invalidate()
	return mcp.NewToolResultText(fmt.Sprintf("requested activation of window %s", windowIDString(win))), nil
}

func (s *mcpServer) handleCloseWindow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	win, source, errResult := s.resolveTarget(req)
	if errResult != nil {
		return errResult, nil
	}

	s.connMu.Lock()
	err := s.client.CloseWindow(win, source)
	s.connMu.Unlock()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.cache.invalidate()
	return mcp.NewToolResultText(fmt.Sprintf("requested close of window %s", windowIDString(win))), nil
}

func (s *mcpServer) handleGetProperty(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, err := hints.Lookup(name); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	id := req.GetString("id", "")
	title := req.GetString("title", "")

	s.connMu.Lock()
	defer s.connMu.Unlock()

	win := s.client.Root()
	if id != "" || title != "" {
		if win, err = resolveWindow(s.client, id, title); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	v, err := s.client.Accessor().Read(win, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"name": name, "window": windowIDString(win), "value": renderValue(v)})
}

// resolveTarget resolves the id/title/source arguments common to the
// window-acting tools. Tool calls default to the application source: an
// agent driving the desktop is automation, not direct user input.
func (s *mcpServer) resolveTarget(req mcp.CallToolRequest) (win xproto.Window, source hints.Source, errResult *mcp.CallToolResult) {
	id := req.GetString("id", "")
	title := req.GetString("title", "")

	source, err := hints.ParseSource(req.GetString("source", "app"))
	if err != nil {
		return 0, 0, mcp.NewToolResultError(err.Error())
	}

	s.connMu.Lock()
	win, err = resolveWindow(s.client, id, title)
	s.connMu.Unlock()
	if err != nil {
		return 0, 0, mcp.NewToolResultError(err.Error())
	}
	return win, source, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
