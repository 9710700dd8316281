package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTools struct {
	calls []string
}

func (s *stubTools) Tools() []Tool {
	return []Tool{
		{
			Name:        "get_evidence_summary_stats",
			Description: "Get summary statistics.",
			InputSchema: InputSchema{Type: "object", Properties: map[string]Property{}},
		},
	}
}

func (s *stubTools) Call(_ context.Context, name string, args map[string]any) (string, error) {
	s.calls = append(s.calls, name)
	switch name {
	case "get_evidence_summary_stats":
		return "## CIViC Database Summary Statistics\n\n**Evidence Items:** 12,345", nil
	case "get_disease_details":
		return fmt.Sprintf("No disease found with name: %v", args["disease_name"]), nil
	case "failing_tool":
		return "", fmt.Errorf("backend exploded")
	case "panicking_tool":
		panic("unexpected state")
	default:
		return "", &UnknownToolError{Name: name}
	}
}

type testResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *ResponseError  `json:"error"`
}

// runSession feeds input through a fresh server and returns the output
// lines.
func runSession(t *testing.T, input string) []string {
	t.Helper()
	srv := NewServer("civic-clinical-evidence-mcp", "1.0.0", &stubTools{})
	var out bytes.Buffer
	require.NoError(t, srv.Run(context.Background(), strings.NewReader(input), &out))
	raw := strings.TrimRight(out.String(), "\n")
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "\n")
}

func decodeResponse(t *testing.T, line string) testResponse {
	t.Helper()
	var resp testResponse
	require.NoError(t, json.Unmarshal([]byte(line), &resp))
	assert.Equal(t, "2.0", resp.JSONRPC)
	return resp
}

func TestInitialize(t *testing.T) {
	lines := runSession(t, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"0.1"}}}`+"\n")
	require.Len(t, lines, 1)

	resp := decodeResponse(t, lines[0])
	assert.Equal(t, "1", string(resp.ID))
	require.Nil(t, resp.Error)

	var result InitializeResult
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	assert.Equal(t, ProtocolVersion, result.ProtocolVersion)
	assert.Equal(t, "civic-clinical-evidence-mcp", result.ServerInfo.Name)
	assert.Equal(t, "1.0.0", result.ServerInfo.Version)
}

func TestInitialize_repeatedCallsAccepted(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":1,"method":"initialize"}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"initialize"}` + "\n"
	lines := runSession(t, input)
	require.Len(t, lines, 2)
	assert.Nil(t, decodeResponse(t, lines[0]).Error)
	assert.Nil(t, decodeResponse(t, lines[1]).Error)
}

func TestNotifications_neverAnswered(t *testing.T) {
	input := `{"jsonrpc":"2.0","method":"initialized"}` + "\n" +
		`{"jsonrpc":"2.0","method":"notifications/initialized"}` + "\n"
	lines := runSession(t, input)
	assert.Empty(t, lines)
}

func TestToolsList_stableAcrossCalls(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":1,"method":"tools/list"}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}` + "\n"
	lines := runSession(t, input)
	require.Len(t, lines, 2)

	first := decodeResponse(t, lines[0])
	second := decodeResponse(t, lines[1])
	assert.JSONEq(t, string(first.Result), string(second.Result))

	var result ToolsListResult
	require.NoError(t, json.Unmarshal(first.Result, &result))
	require.Len(t, result.Tools, 1)
	assert.Equal(t, "get_evidence_summary_stats", result.Tools[0].Name)
}

func TestUnknownMethod(t *testing.T) {
	lines := runSession(t, `{"jsonrpc":"2.0","id":4,"method":"resources/list"}`+"\n")
	require.Len(t, lines, 1)

	resp := decodeResponse(t, lines[0])
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeMethodNotFound, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "resources/list")
}

func TestUnknownTool(t *testing.T) {
	lines := runSession(t, `{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"no_such_tool","arguments":{}}}`+"\n")
	require.Len(t, lines, 1)

	resp := decodeResponse(t, lines[0])
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeInvalidParams, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "no_such_tool")
}

func TestHandlerErrorIsInternalError(t *testing.T) {
	lines := runSession(t, `{"jsonrpc":"2.0","id":6,"method":"tools/call","params":{"name":"failing_tool","arguments":{}}}`+"\n")
	require.Len(t, lines, 1)

	resp := decodeResponse(t, lines[0])
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeInternalError, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "backend exploded")
}

func TestHandlerPanicRecovered(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"panicking_tool","arguments":{}}}` + "\n" +
		`{"jsonrpc":"2.0","id":8,"method":"tools/list"}` + "\n"
	lines := runSession(t, input)
	require.Len(t, lines, 2, "the loop must survive a handler panic")

	resp := decodeResponse(t, lines[0])
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeInternalError, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "unexpected state")
	assert.Nil(t, decodeResponse(t, lines[1]).Error)
}

func TestInvalidJSONLineDropped(t *testing.T) {
	input := "this is not json\n" +
		`{"jsonrpc":"2.0","id":9,"method":"tools/list"}` + "\n"
	lines := runSession(t, input)
	require.Len(t, lines, 1, "only the valid request may be answered")
	assert.Equal(t, "9", string(decodeResponse(t, lines[0]).ID))
}

func TestBlankLinesIgnored(t *testing.T) {
	input := "\n\n  \n" + `{"jsonrpc":"2.0","id":10,"method":"tools/list"}` + "\n\n"
	lines := runSession(t, input)
	require.Len(t, lines, 1)
}

func TestIDEcho_stringID(t *testing.T) {
	lines := runSession(t, `{"jsonrpc":"2.0","id":"req-abc","method":"tools/list"}`+"\n")
	require.Len(t, lines, 1)
	assert.Equal(t, `"req-abc"`, string(decodeResponse(t, lines[0]).ID))
}

func TestRepliesInArrivalOrder(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":1,"method":"tools/list"}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"initialize"}` + "\n" +
		`{"jsonrpc":"2.0","id":3,"method":"tools/list"}` + "\n"
	lines := runSession(t, input)
	require.Len(t, lines, 3)
	for i, want := range []string{"1", "2", "3"} {
		assert.Equal(t, want, string(decodeResponse(t, lines[i]).ID))
	}
}

func TestScenario_statsFlow(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05"}}` + "\n" +
		`{"jsonrpc":"2.0","method":"initialized"}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"get_evidence_summary_stats","arguments":{}}}` + "\n"
	lines := runSession(t, input)
	require.Len(t, lines, 2, "the notification must not be answered")

	resp := decodeResponse(t, lines[1])
	assert.Equal(t, "2", string(resp.ID))
	require.Nil(t, resp.Error)

	var result CallToolResult
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	require.Len(t, result.Content, 1)
	assert.Equal(t, "text", result.Content[0].Type)
	assert.Contains(t, result.Content[0].Text, "**Evidence Items:** 12,345")
}

func TestScenario_diseaseNoMatch(t *testing.T) {
	lines := runSession(t, `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"get_disease_details","arguments":{"disease_name":"Nonexistent"}}}`+"\n")
	require.Len(t, lines, 1)

	resp := decodeResponse(t, lines[0])
	require.Nil(t, resp.Error)

	var result CallToolResult
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	require.Len(t, result.Content, 1)
	assert.Equal(t, "No disease found with name: Nonexistent", result.Content[0].Text)
}
