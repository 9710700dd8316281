// Package main runs a one-off MCP client: spawns the civic-mcp server,
// performs the initialize handshake, calls one tool with optional JSON
// arguments, and prints the text result. Run from repo root:
//
//	go run ./cmd/civicclient <tool_name>            # no args
//	go run ./cmd/civicclient <tool_name> '<json>'   # with arguments
//
// Examples:
//
//	go run ./cmd/civicclient get_evidence_summary_stats
//	go run ./cmd/civicclient get_gene_details '{"gene_name":"EGFR"}'
//	go run ./cmd/civicclient search_clinical_evidence '{"gene_name":"BRAF","evidence_level":"A"}'
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

type rpcResponse struct {
	ID     json.RawMessage `json:"id"`
	Result *struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"result"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <tool_name> [json_arguments]\n", os.Args[0])
		os.Exit(1)
	}
	toolName := os.Args[1]
	arguments := map[string]any{}
	if len(os.Args) >= 3 && os.Args[2] != "" {
		if err := json.Unmarshal([]byte(os.Args[2]), &arguments); err != nil {
			fmt.Fprintf(os.Stderr, "invalid json arguments: %v\n", err)
			os.Exit(1)
		}
	}

	repoRoot, err := findRepoRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "find repo root: %v\n", err)
		os.Exit(1)
	}

	cmd := exec.Command("go", "run", "./cmd/civic-mcp")
	cmd.Dir = repoRoot
	cmd.Env = os.Environ() // pass through so the server sees CIVIC_MCP_* overrides
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		fmt.Fprintf(os.Stderr, "stdin pipe: %v\n", err)
		os.Exit(1)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		fmt.Fprintf(os.Stderr, "stdout pipe: %v\n", err)
		os.Exit(1)
	}

	if err := cmd.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "start server: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		stdin.Close()
		_ = cmd.Wait()
	}()

	reader := bufio.NewReader(stdout)

	send(stdin, map[string]any{
		"jsonrpc": "2.0", "id": 1, "method": "initialize",
		"params": map[string]any{
			"protocolVersion": "2024-11-05",
			"capabilities":    map[string]any{},
			"clientInfo":      map[string]any{"name": "civicclient", "version": "0.1.0"},
		},
	})
	if resp := receive(reader); resp.Error != nil {
		fmt.Fprintf(os.Stderr, "initialize: %d %s\n", resp.Error.Code, resp.Error.Message)
		os.Exit(1)
	}

	send(stdin, map[string]any{"jsonrpc": "2.0", "method": "initialized"})

	send(stdin, map[string]any{
		"jsonrpc": "2.0", "id": 2, "method": "tools/call",
		"params": map[string]any{"name": toolName, "arguments": arguments},
	})
	resp := receive(reader)
	if resp.Error != nil {
		fmt.Fprintf(os.Stderr, "tool error: %d %s\n", resp.Error.Code, resp.Error.Message)
		os.Exit(1)
	}
	if resp.Result != nil && len(resp.Result.Content) > 0 {
		fmt.Println(resp.Result.Content[0].Text)
	}
}

func send(w io.Writer, msg map[string]any) {
	data, err := json.Marshal(msg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode message: %v\n", err)
		os.Exit(1)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "write message: %v\n", err)
		os.Exit(1)
	}
}

func receive(r *bufio.Reader) *rpcResponse {
	line, err := r.ReadBytes('\n')
	if err != nil {
		fmt.Fprintf(os.Stderr, "read response: %v\n", err)
		os.Exit(1)
	}
	var resp rpcResponse
	if err := json.Unmarshal(line, &resp); err != nil {
		fmt.Fprintf(os.Stderr, "decode response: %v\n", err)
		os.Exit(1)
	}
	return &resp
}

func findRepoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found")
		}
		dir = parent
	}
}
