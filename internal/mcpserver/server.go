// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes the normalization pass as a single MCP tool over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/MiaInturi/bundler"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `bundler MCP server — normalizes already-bundled AsyncAPI documents.

Configuration: BUNDLER_MAX_INLINE_SIZE bounds the size (in bytes) of an
inline "content" document passed to the normalize tool (default 10MiB).`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "bundler", Version: bundler.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name: "normalize_asyncapi_document",
		Description: "Normalize an already-bundled AsyncAPI document: hoist every inlined " +
			"schema under components.schemas, deduplicate structurally equivalent schemas, " +
			"resolve discriminator mappings (loading referenced files on demand), rewrite " +
			"channel $ref values to local pointers, and strip x-origin bookkeeping. Provide " +
			"the document via file or content (exactly one).",
	}, handleNormalize)
}

// sanitizeError strips absolute filesystem paths from error messages to
// avoid leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
