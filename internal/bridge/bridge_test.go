package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type callerStub struct {
	calls []string
	args  []string
	fn    func(method string) (string, error)
}

func (c *callerStub) Call(_ context.Context, method string, params json.RawMessage) (string, error) {
	c.calls = append(c.calls, method)
	c.args = append(c.args, string(params))
	return c.fn(method)
}

func runBridge(t *testing.T, caller Caller, input string) []map[string]any {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, New(strings.NewReader(input), &out, caller, nil).Run(context.Background()))

	var responses []map[string]any
	for _, line := range strings.Split(strings.TrimRight(out.String(), "\n"), "\n") {
		if line == "" {
			continue
		}
		var resp map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &resp), line)
		responses = append(responses, resp)
	}
	return responses
}

func TestBridge_Initialize(t *testing.T) {
	responses := runBridge(t, &callerStub{}, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`+"\n")
	require.Len(t, responses, 1)

	resp := responses[0]
	require.Equal(t, "2.0", resp["jsonrpc"])
	require.Equal(t, float64(1), resp["id"])

	result := resp["result"].(map[string]any)
	require.Equal(t, "2024-11-05", result["protocolVersion"])
	require.Equal(t, map[string]any{}, result["capabilities"].(map[string]any)["tools"])
	require.Equal(t, "timepro-mcp-server", result["serverInfo"].(map[string]any)["name"])
	require.Equal(t, "1.0.0", result["serverInfo"].(map[string]any)["version"])
}

func TestBridge_ToolsList(t *testing.T) {
	responses := runBridge(t, &callerStub{}, `{"jsonrpc":"2.0","id":"a","method":"tools/list"}`+"\n")
	require.Len(t, responses, 1)
	require.Equal(t, "a", responses[0]["id"])

	tools := responses[0]["result"].(map[string]any)["tools"].([]any)
	require.Len(t, tools, 5)

	update := tools[3].(map[string]any)
	require.Equal(t, "timesheets/update", update["name"])
	require.Equal(t, "Update an existing timesheet", update["description"])

	schema := update["inputSchema"].(map[string]any)
	require.Equal(t, "object", schema["type"])
	props := schema["properties"].(map[string]any)
	require.Equal(t, "integer", props["id"].(map[string]any)["type"])
	require.Equal(t, "number", props["hours"].(map[string]any)["type"])
	require.Equal(t, "string", props["client"].(map[string]any)["type"])
	require.Len(t, schema["required"], 7)

	list := tools[0].(map[string]any)
	require.Equal(t, "timesheets/list", list["name"])
	require.Equal(t, map[string]any{
		"type":       "object",
		"properties": map[string]any{},
		"required":   []any{},
	}, list["inputSchema"])
}

func TestBridge_ToolsCall(t *testing.T) {
	caller := &callerStub{fn: func(string) (string, error) {
		return "{\n  \"success\": true\n}", nil
	}}
	input := `{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"timesheets/get","arguments":{"id":"3"}}}` + "\n"
	responses := runBridge(t, caller, input)
	require.Len(t, responses, 1)

	require.Equal(t, []string{"timesheets/get"}, caller.calls)
	require.JSONEq(t, `{"id":"3"}`, caller.args[0])

	result := responses[0]["result"].(map[string]any)
	content := result["content"].([]any)
	require.Len(t, content, 1)
	block := content[0].(map[string]any)
	require.Equal(t, "text", block["type"])
	require.Equal(t, "{\n  \"success\": true\n}", block["text"])
	require.NotContains(t, result, "isError")
}

func TestBridge_ToolsCallFailure(t *testing.T) {
	caller := &callerStub{fn: func(string) (string, error) {
		return "", errors.New("connection refused")
	}}
	input := `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"timesheets/list"}}` + "\n"
	responses := runBridge(t, caller, input)
	require.Len(t, responses, 1)

	require.Nil(t, responses[0]["result"])
	errObj := responses[0]["error"].(map[string]any)
	require.Equal(t, float64(-32603), errObj["code"])
	require.Equal(t, "Internal error", errObj["message"])
	require.Equal(t, "connection refused", errObj["data"])
	require.Equal(t, []string{""}, caller.args)
	require.Len(t, caller.calls, 1)
}

func TestBridge_ToolsCallInvalidParams(t *testing.T) {
	caller := &callerStub{}
	input := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"tools/call"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":null}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":[1,2]}`,
	}, "\n") + "\n"
	responses := runBridge(t, caller, input)
	require.Len(t, responses, 3)
	for _, resp := range responses {
		require.Equal(t, float64(-32602), resp["error"].(map[string]any)["code"])
	}
	require.Empty(t, caller.calls)
}

func TestBridge_UnknownMethod(t *testing.T) {
	responses := runBridge(t, &callerStub{}, `{"jsonrpc":"2.0","id":9,"method":"resources/list"}`+"\n")
	require.Len(t, responses, 1)

	errObj := responses[0]["error"].(map[string]any)
	require.Equal(t, float64(-32601), errObj["code"])
	require.Equal(t, "Method not found: resources/list", errObj["message"])
	require.Equal(t, float64(9), responses[0]["id"])
}

func TestBridge_SkipsBlankAndMalformedLines(t *testing.T) {
	input := "\n   \n{not json\nnull\n[1,2]\n\"text\"\n" + `{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n"
	responses := runBridge(t, &callerStub{}, input)
	require.Len(t, responses, 1)
	require.Equal(t, float64(1), responses[0]["id"])
}

func TestBridge_NonStringMethodIsUnknown(t *testing.T) {
	input := `{"id":1,"method":5}` + "\nnull\n" + `{"id":2,"method":"tools/list"}` + "\n"
	responses := runBridge(t, &callerStub{}, input)
	require.Len(t, responses, 2)

	require.Equal(t, float64(1), responses[0]["id"])
	errObj := responses[0]["error"].(map[string]any)
	require.Equal(t, float64(ErrMethodNotFound), errObj["code"])
	require.Equal(t, "Method not found: 5", errObj["message"])

	require.Equal(t, float64(2), responses[1]["id"])
	require.Contains(t, responses[1], "result")
}

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest([]byte(`{"jsonrpc":"2.0","id":"abc","method":"tools/call","params":{"name":"x"}}`))
	require.NoError(t, err)
	require.Equal(t, "2.0", req.JSONRPC)
	require.Equal(t, `"abc"`, string(req.ID))
	require.Equal(t, "tools/call", req.Method)
	require.JSONEq(t, `{"name":"x"}`, string(req.Params))

	req, err = ParseRequest([]byte(`{"id":3,"method":{"a":1}}`))
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, req.Method)

	for _, line := range []string{"null", "[]", "42", `"x"`, "{"} {
		_, err := ParseRequest([]byte(line))
		require.Error(t, err, line)
	}
}

func TestBridge_LastLineWithoutNewline(t *testing.T) {
	responses := runBridge(t, &callerStub{}, `{"jsonrpc":"2.0","id":4,"method":"initialize"}`)
	require.Len(t, responses, 1)
	require.Equal(t, float64(4), responses[0]["id"])
}

func TestBridge_PreservesOrder(t *testing.T) {
	caller := &callerStub{fn: func(method string) (string, error) {
		return `"` + method + `"`, nil
	}}
	var lines []string
	for _, name := range []string{"timesheets/list", "timesheets/get", "timesheets/delete"} {
		lines = append(lines, `{"jsonrpc":"2.0","id":"`+name+`","method":"tools/call","params":{"name":"`+name+`"}}`)
	}
	lines = append(lines, `{"jsonrpc":"2.0","id":"last","method":"initialize"}`)

	responses := runBridge(t, caller, strings.Join(lines, "\n")+"\n")
	require.Len(t, responses, 4)
	require.Equal(t, []string{"timesheets/list", "timesheets/get", "timesheets/delete"}, caller.calls)
	for i, want := range []string{"timesheets/list", "timesheets/get", "timesheets/delete", "last"} {
		require.Equal(t, want, responses[i]["id"])
	}
}

func TestBridge_EchoesIDVerbatim(t *testing.T) {
	var out bytes.Buffer
	input := `{"jsonrpc":"2.0","id":1.50,"method":"nope"}` + "\n" + `{"jsonrpc":"2.0","method":"nope"}` + "\n"
	require.NoError(t, New(strings.NewReader(input), &out, &callerStub{}, nil).Run(context.Background()))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], `"id":1.50`)
	require.NotContains(t, lines[1], `"id"`)
}

func TestBridge_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := New(strings.NewReader(`{"id":1,"method":"initialize"}`+"\n"), &out, &callerStub{}, nil).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, out.String())
}
