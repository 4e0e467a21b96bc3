package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/MiaInturi/bundler/normalize"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.yaml.in/yaml/v4"
)

type normalizeInput struct {
	Document documentInput `json:"document"              jsonschema:"The AsyncAPI document to normalize"`
}

type normalizeOutput struct {
	Document string `json:"document"`
	Format   string `json:"format"`
}

func handleNormalize(_ context.Context, _ *mcp.CallToolRequest, input normalizeInput) (*mcp.CallToolResult, normalizeOutput, error) {
	doc, asJSON, dir, err := input.Document.resolve()
	if err != nil {
		return errResult(err), normalizeOutput{}, nil
	}

	var opts []normalize.Option
	if dir != "" {
		opts = append(opts, normalize.WithWorkingDir(dir))
	}

	if err := normalize.Normalize(doc, opts...); err != nil {
		return errResult(err), normalizeOutput{}, nil
	}

	data, err := marshalOutput(doc, asJSON)
	if err != nil {
		return errResult(err), normalizeOutput{}, nil
	}

	format := "yaml"
	if asJSON {
		format = "json"
	}
	return nil, normalizeOutput{Document: string(data), Format: format}, nil
}

func marshalOutput(doc any, asJSON bool) ([]byte, error) {
	if asJSON {
		return json.MarshalIndent(doc, "", "  ")
	}
	return yaml.Marshal(doc)
}
