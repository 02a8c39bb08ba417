// Package main provides the MCP server entry point for lintwell.
// The server implements the Model Context Protocol, exposing lint runs
// to LLM clients through the lint_path tool.
package main

import (
	"log"

	"lintwell/src/config"
	"lintwell/src/mcp"
)

func main() {
	server := mcp.NewServer(config.LoadFromEnv())

	// Serve over stdin/stdout (stdio transport)
	if err := server.Run(); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
