package mcpadapter

import (
	"context"

	"github.com/gabrielchua/descriptive-theory/internal/models"
	"github.com/gabrielchua/descriptive-theory/internal/pipeline"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SimplifyInput is the MCP tool input schema (matches HTTP API field names).
type SimplifyInput struct {
	Text     string `json:"text" jsonschema:"medical report text to simplify"`
	Language string `json:"language,omitempty" jsonschema:"reply language: english (default) or chinese"`
}

// SimplifyOutput carries the same {code, message} outcome as the HTTP API.
type SimplifyOutput struct {
	Code           int    `json:"code" jsonschema:"200 success, 400 invalid input, 490 not medical, 500 unexpected, 503 upstream busy"`
	Message        string `json:"message" jsonschema:"status text"`
	SimplifiedText string `json:"simplified_text,omitempty" jsonschema:"plain-language rewrite, set when code is 200"`
}

type ClassifyInput struct {
	Text string `json:"text" jsonschema:"text to classify"`
}

type ClassifyOutput struct {
	Verdict   int  `json:"verdict" jsonschema:"1 if the text is a medical report, 0 otherwise"`
	IsMedical bool `json:"is_medical"`
}

// NewSimplifyHandler returns a tool handler that uses the given runner.
// Pass the returned function to mcp.AddTool.
func NewSimplifyHandler(runner pipeline.Runner) func(context.Context, *mcp.CallToolRequest, SimplifyInput) (*mcp.CallToolResult, SimplifyOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SimplifyInput) (*mcp.CallToolResult, SimplifyOutput, error) {
		result, err := runner.Run(ctx, models.SimplifyRequest{
			Text:     input.Text,
			Language: models.Language(input.Language),
			Channel:  models.ChannelMCP,
		})
		if err != nil {
			code, message := models.CodeFor(err)
			return nil, SimplifyOutput{Code: code, Message: message}, nil
		}

		return nil, SimplifyOutput{
			Code:           models.CodeOK,
			Message:        "OK",
			SimplifiedText: result.SimplifiedText,
		}, nil
	}
}

// NewClassifyHandler exposes the guardrail alone. Upstream failures are tool errors.
func NewClassifyHandler(guardrail pipeline.Guardrail) func(context.Context, *mcp.CallToolRequest, ClassifyInput) (*mcp.CallToolResult, ClassifyOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ClassifyInput) (*mcp.CallToolResult, ClassifyOutput, error) {
		check := models.SimplifyRequest{Text: input.Text}
		if err := check.Validate(0); err != nil {
			return nil, ClassifyOutput{}, err
		}

		result, err := guardrail.ValidateInput(ctx, input.Text)
		if err != nil {
			return nil, ClassifyOutput{}, err
		}
		return nil, ClassifyOutput{Verdict: int(result.Verdict), IsMedical: result.IsMedical}, nil
	}
}
