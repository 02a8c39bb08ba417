package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"lintwell/src/config"
	"lintwell/src/logger"
	"lintwell/src/pipeline"
	"lintwell/src/runner"
)

// Server is the MCP server for lintwell.
type Server struct {
	mcpServer *server.MCPServer
	cfg       *config.Config
	store     FindingsStore
}

// NewServer creates a new MCP server.
func NewServer(cfg *config.Config) *Server {
	s := server.NewMCPServer(
		"lintwell",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	srv := &Server{
		mcpServer: s,
		cfg:       cfg,
		store:     NewInMemoryStore(),
	}
	srv.registerTools()

	return srv
}

// registerTools registers all available tools.
func (s *Server) registerTools() {
	lintTool := mcp.NewTool("lint_path",
		mcp.WithDescription("Lint all Python files under a directory and return tiered findings. Blocking findings (fatal/error class) are fully expanded - these need fixing first. Style findings are summarized; use get_finding_details to drill into them if needed."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Directory to lint (absolute or relative to the server's working directory)"),
		),
		mcp.WithString("args",
			mcp.Description("Extra arguments forwarded to the linter verbatim, space-separated (e.g. \"--disable=C0114\")"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max blocking findings in the response (default: 25)"),
		),
		mcp.WithBoolean("use_cache",
			mcp.Description("Reuse cached results for unchanged files (default: true)"),
		),
	)

	detailsTool := mcp.NewTool("get_finding_details",
		mcp.WithDescription("Get full details for a specific finding. Use after lint_path to drill into summarized findings."),
		mcp.WithString("request_id",
			mcp.Required(),
			mcp.Description("Request ID from lint_path response"),
		),
		mcp.WithString("finding_id",
			mcp.Required(),
			mcp.Description("Finding ID (message hash) from the manifest"),
		),
	)

	s.mcpServer.AddTool(lintTool, s.handleLintPath)
	s.mcpServer.AddTool(detailsTool, s.handleGetFindingDetails)
}

// Run starts the MCP server on stdio.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

// handleLintPath handles the lint_path tool call.
// Returns a lightweight manifest; use get_finding_details for full detail.
func (s *Server) handleLintPath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("path parameter is required"), nil
	}
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		return mcp.NewToolResultError(fmt.Sprintf("path is not a directory: %s", path)), nil
	}

	limit := request.GetInt("limit", DefaultBlockingLimit)
	useCache := request.GetBool("use_cache", true)
	passthrough := strings.Fields(request.GetString("args", ""))

	local := pipeline.NewLocal(&pipeline.Config{
		PylintBin: s.cfg.PylintBin,
		CacheDir:  s.cfg.CacheDir,
	}, logger.NewSilentLogger())
	local.UseCache = useCache

	result, err := local.Run(ctx, path, passthrough)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("lint failed: %v", err)), nil
	}

	tiered := TierFindings(result.Cards)
	s.store.Store(result.RequestID, tiered)

	run := RunInfo{
		Root:        path,
		ExitCode:    result.ExitCode,
		Status:      runner.DecodeStatus(result.ExitCode).String(),
		FilesTotal:  result.FilesTotal,
		FilesCached: result.FilesCached,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}

	manifest := ToManifest(result.RequestID, run, tiered, limit)
	jsonBytes, err := json.Marshal(manifest)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// handleGetFindingDetails handles the get_finding_details tool call.
func (s *Server) handleGetFindingDetails(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	requestID := request.GetString("request_id", "")
	if requestID == "" {
		return mcp.NewToolResultError("request_id parameter is required"), nil
	}

	findingID := request.GetString("finding_id", "")
	if findingID == "" {
		return mcp.NewToolResultError("finding_id parameter is required"), nil
	}

	finding, found := s.store.Get(requestID, findingID)
	if !found {
		return mcp.NewToolResultError(fmt.Sprintf("finding not found: request_id=%s, finding_id=%s", requestID, findingID)), nil
	}

	jsonBytes, err := json.Marshal(finding)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal finding: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}
