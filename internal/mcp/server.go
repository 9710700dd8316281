package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
)

// ToolProvider supplies the static tool set and executes calls by name.
// Implementations return plain text; zero-result conditions are text,
// not errors.
type ToolProvider interface {
	Tools() []Tool
	Call(ctx context.Context, name string, args map[string]any) (string, error)
}

// UnknownToolError reports a tools/call naming a tool that is not
// registered. The protocol layer maps it to code -32602.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("Unknown tool: %s", e.Name)
}

// InvalidParamsError reports arguments that fail the declared input
// schema (a missing required field). Mapped to code -32602.
type InvalidParamsError struct {
	Tool    string
	Message string
}

func (e *InvalidParamsError) Error() string {
	return fmt.Sprintf("Invalid params for %s: %s", e.Tool, e.Message)
}

// Server dispatches line-delimited JSON-RPC messages to a ToolProvider.
// One Server handles one session; messages are processed strictly one
// at a time, in arrival order.
type Server struct {
	info  ServerInfo
	tools ToolProvider
}

// NewServer returns a server identifying itself with name and version.
func NewServer(name, version string, tools ToolProvider) *Server {
	return &Server{info: ServerInfo{Name: name, Version: version}, tools: tools}
}

// Run reads messages from r until EOF and writes one reply line per
// request to w, flushed immediately. Blank lines are skipped; lines
// that do not parse as JSON are logged and dropped without a reply
// (no id can be recovered safely). Notifications are never answered.
func (s *Server) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	out := bufio.NewWriter(w)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			log.WithError(err).Error("dropping unparseable input line")
			continue
		}

		if len(req.ID) == 0 {
			s.handleNotification(&req)
			continue
		}

		resp := s.dispatch(ctx, &req)
		data, err := json.Marshal(resp)
		if err != nil {
			// Result failed to serialize; the id is still known.
			data, _ = json.Marshal(NewErrorResponse(req.ID, CodeInternalError, "Internal error: "+err.Error()))
		}
		if _, err := out.Write(append(data, '\n')); err != nil {
			return err
		}
		if err := out.Flush(); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (s *Server) handleNotification(req *Request) {
	switch req.Method {
	case "initialized", "notifications/initialized":
		log.Info("client initialized")
	default:
		log.WithField("method", req.Method).Debug("ignoring notification")
	}
}

// dispatch routes one request by method. A panic in a handler is
// reported as an internal error rather than ending the session.
func (s *Server) dispatch(ctx context.Context, req *Request) (resp *Response) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("method", req.Method).Errorf("handler panic: %v", r)
			resp = NewErrorResponse(req.ID, CodeInternalError, fmt.Sprintf("Internal error: %v", r))
		}
	}()

	switch req.Method {
	case "initialize":
		// Accepted unconditionally, including repeated calls.
		return NewResponse(req.ID, &InitializeResult{
			ProtocolVersion: ProtocolVersion,
			Capabilities:    ServerCapabilities{Tools: ToolsCapability{}},
			ServerInfo:      s.info,
		})
	case "tools/list":
		return NewResponse(req.ID, &ToolsListResult{Tools: s.tools.Tools()})
	case "tools/call":
		return s.callTool(ctx, req)
	default:
		return NewErrorResponse(req.ID, CodeMethodNotFound, "Method not found: "+req.Method)
	}
}

func (s *Server) callTool(ctx context.Context, req *Request) *Response {
	var params CallToolParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return NewErrorResponse(req.ID, CodeInvalidParams, "invalid tools/call params: "+err.Error())
		}
	}

	text, err := s.tools.Call(ctx, params.Name, params.Arguments)
	if err != nil {
		var unknownTool *UnknownToolError
		var invalidParams *InvalidParamsError
		switch {
		case errors.As(err, &unknownTool), errors.As(err, &invalidParams):
			return NewErrorResponse(req.ID, CodeInvalidParams, err.Error())
		default:
			return NewErrorResponse(req.ID, CodeInternalError, "Internal error: "+err.Error())
		}
	}
	return NewResponse(req.ID, TextResult(text))
}
