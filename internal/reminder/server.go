package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "reminder"
	serverVersion = "1.0.0"
)

// Server is the MCP server for reminder management.
type Server struct {
	mcpServer *server.MCPServer
	store     *Store
	// mu keeps tool calls on the store strictly sequential.
	mu sync.Mutex
}

// NewServer creates a new Reminder MCP server backed by the given store.
func NewServer(store *Store) *Server {
	s := &Server{
		store: store,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("add_reminder",
			mcp.WithDescription("Add or replace the reminder for a date. An existing reminder on the same date is overwritten."),
			mcp.WithString("date", mcp.Required(), mcp.Description("Date in DD/MM/YYYY format")),
			mcp.WithString("time", mcp.Required(), mcp.Description("Time in 24-hour HH:MM format (24:00 allowed)")),
			mcp.WithString("message", mcp.Required(), mcp.Description("Reminder text")),
		),
		s.handleAddReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list_reminders",
			mcp.WithDescription("List all reminders sorted by their DD/MM/YYYY key"),
		),
		s.handleListReminders,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_reminder",
			mcp.WithDescription("Get the reminder stored for a date"),
			mcp.WithString("date", mcp.Required(), mcp.Description("Date in DD/MM/YYYY format")),
		),
		s.handleGetReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("delete_reminder",
			mcp.WithDescription("Delete the reminder stored for a date"),
			mcp.WithString("date", mcp.Required(), mcp.Description("Date in DD/MM/YYYY format")),
		),
		s.handleDeleteReminder,
	)
}

// refresh picks up writes made to the file by other processes, such as the
// notifier prompt, so that a save here never drops them. Callers hold s.mu.
func (s *Server) refresh() *mcp.CallToolResult {
	if _, err := s.store.ReloadIfChanged(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to reload reminders: %v", err))
	}
	return nil
}

func (s *Server) handleAddReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date := strings.TrimSpace(req.GetString("date", ""))
	tm := req.GetString("time", "")
	message := req.GetString("message", "")

	s.mu.Lock()
	defer s.mu.Unlock()

	if res := s.refresh(); res != nil {
		return res, nil
	}

	if err := s.store.Upsert(date, tm, message); err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			return mcp.NewToolResultError(vErr.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to save reminder: %v", err)), nil
	}

	r, _ := s.store.Get(date)
	output, _ := json.MarshalIndent(r, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleListReminders(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if res := s.refresh(); res != nil {
		return res, nil
	}

	keys := s.store.ListKeys()
	if len(keys) == 0 {
		return mcp.NewToolResultText("No reminders found."), nil
	}

	reminders := make([]Reminder, 0, len(keys))
	for _, k := range keys {
		r, _ := s.store.Get(k)
		reminders = append(reminders, r)
	}

	output, _ := json.MarshalIndent(reminders, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleGetReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date := strings.TrimSpace(req.GetString("date", ""))
	if date == "" {
		return mcp.NewToolResultError("date is required"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if res := s.refresh(); res != nil {
		return res, nil
	}

	r, ok := s.store.Get(date)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no reminder for %s", date)), nil
	}

	output, _ := json.MarshalIndent(r, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleDeleteReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date := strings.TrimSpace(req.GetString("date", ""))
	if date == "" {
		return mcp.NewToolResultError("date is required"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if res := s.refresh(); res != nil {
		return res, nil
	}

	if err := s.store.Delete(date); err != nil {
		if errors.Is(err, ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("no reminder for %s", date)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete reminder: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Reminder for %s deleted.", date)), nil
}
