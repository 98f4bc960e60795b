// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the Modulear data store as tools for LLM integration
// via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"modulear/internal/backup"
	"modulear/internal/models"
	"modulear/internal/store"
)

// Server wraps the MCP server with Modulear tools.
type Server struct {
	mcp    *server.MCPServer
	stores *store.Aggregate
	backup *backup.Service
}

// New creates a new MCP server with all Modulear tools registered.
func New(stores *store.Aggregate, backupSvc *backup.Service) *Server {
	s := &Server{stores: stores, backup: backupSvc}

	s.mcp = server.NewMCPServer(
		"Modulear",
		backup.Version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("add_todo",
		mcp.WithDescription("Add a new todo item."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Todo text")),
	), s.addTodo)

	s.mcp.AddTool(mcp.NewTool("list_todos",
		mcp.WithDescription("List all todo items, newest first, as JSON."),
	), s.listTodos)

	s.mcp.AddTool(mcp.NewTool("complete_todo",
		mcp.WithDescription("Toggle the completion state of a todo item."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Todo id")),
	), s.completeTodo)

	s.mcp.AddTool(mcp.NewTool("add_vocabulary",
		mcp.WithDescription("Add a word to the vocabulary trainer."),
		mcp.WithString("word", mcp.Required(), mcp.Description("The word itself")),
		mcp.WithString("definition", mcp.Required(), mcp.Description("Definition of the word")),
		mcp.WithString("example", mcp.Description("Optional example sentence")),
		mcp.WithString("notes", mcp.Description("Optional free-form notes")),
	), s.addVocabulary)

	s.mcp.AddTool(mcp.NewTool("list_vocabulary",
		mcp.WithDescription("List all vocabulary items, newest first, as JSON."),
	), s.listVocabulary)

	s.mcp.AddTool(mcp.NewTool("vocabulary_stats",
		mcp.WithDescription("Summary of the vocabulary collection: total word count and a mastery-level histogram."),
	), s.vocabularyStats)

	s.mcp.AddTool(mcp.NewTool("export_backup",
		mcp.WithDescription("Export a full backup document of every collection as JSON."),
	), s.exportBackup)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) addTodo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	todo, err := s.stores.Todos.Create(text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created todo %s", todo.ID)), nil
}

func (s *Server) listTodos(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.stores.Todos.List(), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) completeTodo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.stores.Todos.Toggle(id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	todo, _ := s.stores.Todos.Get(id)
	return mcp.NewToolResultText(fmt.Sprintf("todo %s completed=%t", id, todo.Completed)), nil
}

func (s *Server) addVocabulary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	word, err := req.RequireString("word")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	definition, err := req.RequireString("definition")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	example := req.GetString("example", "")
	notes := req.GetString("notes", "")

	item, err := s.stores.Vocabulary.Create(word, definition, example, notes)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created vocabulary item %s", item.ID)), nil
}

func (s *Server) listVocabulary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.stores.Vocabulary.List(), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) vocabularyStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items := s.stores.Vocabulary.List()
	histogram := make(map[int]int, models.MaxMastery+1)
	for lvl := models.MinMastery; lvl <= models.MaxMastery; lvl++ {
		histogram[lvl] = 0
	}
	for _, it := range items {
		histogram[it.MasteryLevel]++
	}
	stats := struct {
		Total     int         `json:"total"`
		ByMastery map[int]int `json:"byMastery"`
	}{Total: len(items), ByMastery: histogram}
	out, _ := json.MarshalIndent(stats, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) exportBackup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, _, err := s.backup.ExportJSON()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
