package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/alfred-gitignore/internal/catalog"
	"github.com/hpungsan/alfred-gitignore/internal/config"
	"github.com/hpungsan/alfred-gitignore/internal/errors"
	"github.com/hpungsan/alfred-gitignore/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db   *sql.DB
	cfg  *config.Config
	repo *catalog.Repository
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config, repo *catalog.Repository) *Handlers {
	return &Handlers{db: db, cfg: cfg, repo: repo}
}

// Request types for each tool

// SuggestRequest represents the arguments for gitignore_suggest.
type SuggestRequest struct {
	Query string `json:"query,omitempty"`
}

// BuildRequest represents the arguments for gitignore_build.
type BuildRequest struct {
	Templates      []string `json:"templates"`
	IncludeContent bool     `json:"include_content,omitempty"`
}

// TemplatesRequest represents the arguments for gitignore_templates.
type TemplatesRequest struct {
	Prefix string `json:"prefix,omitempty"`
}

// HistoryRequest represents the arguments for gitignore_history.
type HistoryRequest struct {
	Limit int `json:"limit,omitempty"`
}

// Handler implementations

// HandleSuggest handles the gitignore_suggest tool call.
func (h *Handlers) HandleSuggest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SuggestRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Select(h.repo, ops.SelectInput{Tokens: ops.Tokenize(input.Query)})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleBuild handles the gitignore_build tool call.
func (h *Handlers) HandleBuild(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[BuildRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	// Each array element may itself hold several space-separated names
	var tokens []string
	for _, name := range input.Templates {
		tokens = append(tokens, ops.Tokenize(name)...)
	}

	result, err := ops.Build(h.db, h.cfg, h.repo, ops.BuildInput{
		Tokens:         tokens,
		IncludeContent: input.IncludeContent,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleUpdate handles the gitignore_update tool call.
func (h *Handlers) HandleUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Update(ctx, h.cfg, h.repo)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleTemplates handles the gitignore_templates tool call.
func (h *Handlers) HandleTemplates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TemplatesRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Templates(h.repo, ops.TemplatesInput{Prefix: input.Prefix})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleHistory handles the gitignore_history tool call.
func (h *Handlers) HandleHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[HistoryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.History(h.db, h.cfg, ops.HistoryInput{Limit: input.Limit})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are not exposed to prevent leaking file paths.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if appErr, ok := errors.As(err); ok {
		message := appErr.Message
		// Keep context added by wrappers around the coded error
		if prefix := strings.TrimSuffix(err.Error(), appErr.Error()); prefix != err.Error() {
			message = prefix + message
		}
		errorObj := map[string]any{
			"code":    appErr.Code,
			"message": message,
			"status":  appErr.Status,
		}
		if appErr.Code != errors.ErrInternal && appErr.Details != nil {
			errorObj["details"] = appErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
