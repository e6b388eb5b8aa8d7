// Package bridge relays newline-delimited JSON-RPC tool calls from a stream
// to the HTTP envelope endpoint.
package bridge

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server identity reported by initialize.
const (
	ProtocolVersion = "2024-11-05"
	ServerName      = "timepro-mcp-server"
	ServerVersion   = "1.0.0"
)

// Caller forwards one dispatcher call and returns the text to embed in the
// tool result.
type Caller interface {
	Call(ctx context.Context, method string, params json.RawMessage) (string, error)
}

// Bridge processes one line at a time. A line is fully handled, outbound call
// included, and its response written before the next line is read.
type Bridge struct {
	in     *bufio.Reader
	out    io.Writer
	caller Caller
	logger *slog.Logger
	tools  []*sdkmcp.Tool
}

// New creates a bridge reading requests from in and writing responses to out.
func New(in io.Reader, out io.Writer, caller Caller, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Bridge{
		in:     bufio.NewReader(in),
		out:    out,
		caller: caller,
		logger: logger,
		tools:  Tools(),
	}
}

// Run serves until the input is exhausted or ctx is cancelled.
func (b *Bridge) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, readErr := b.in.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			if err := b.serveLine(ctx, line); err != nil {
				return err
			}
		}

		if errors.Is(readErr, io.EOF) {
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("read request: %w", readErr)
		}
	}
}

func (b *Bridge) serveLine(ctx context.Context, line []byte) error {
	req, err := ParseRequest(line)
	if err != nil {
		b.logger.Warn("skipping malformed request line", "error", err)
		return nil
	}

	resp := b.Handle(ctx, req)

	enc := json.NewEncoder(b.out)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(resp); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

// Handle produces the response for a single request.
func (b *Bridge) Handle(ctx context.Context, req Request) Response {
	b.logger.Debug("bridge request", "method", req.Method, "id", string(req.ID))

	switch req.Method {
	case "initialize":
		return resultResponse(req.ID, &sdkmcp.InitializeResult{
			ProtocolVersion: ProtocolVersion,
			Capabilities: &sdkmcp.ServerCapabilities{
				Tools: &sdkmcp.ToolCapabilities{},
			},
			ServerInfo: &sdkmcp.Implementation{
				Name:    ServerName,
				Version: ServerVersion,
			},
		})
	case "tools/list":
		return resultResponse(req.ID, &sdkmcp.ListToolsResult{Tools: b.tools})
	case "tools/call":
		return b.callTool(ctx, req)
	default:
		return errorResponse(req.ID, ErrMethodNotFound, "Method not found: "+req.Method, nil)
	}
}

type callToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

func (b *Bridge) callTool(ctx context.Context, req Request) Response {
	var params callToolParams
	if len(req.Params) == 0 || bytes.Equal(req.Params, []byte("null")) || json.Unmarshal(req.Params, &params) != nil {
		return errorResponse(req.ID, ErrInvalidParams, "Invalid params", nil)
	}

	text, err := b.caller.Call(ctx, params.Name, params.Arguments)
	if err != nil {
		b.logger.Error("tool call failed", "tool", params.Name, "error", err)
		return errorResponse(req.ID, ErrInternal, "Internal error", err.Error())
	}

	return resultResponse(req.ID, &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: text}},
	})
}
