package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/filtrip/internal/session"
	"github.com/honeycarbs/filtrip/pkg/logging"
)

// SessionStore resolves the component state of the calling session
type SessionStore interface {
	Get(ctx context.Context, id string) (*session.State, error)
}

// Option configures which tools are registered
type Option func(*registry)

type registry struct {
	server *sdkmcp.Server
	names  []string
}

func (r *registry) add(name string) {
	r.names = append(r.names, name)
}

// Register applies the provided tool options and returns the registered tool
// names in order.
func Register(server *sdkmcp.Server, opts ...Option) []string {
	reg := &registry{server: server}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(reg)
	}
	return reg.names
}

// sessionID keys per-session state; in-memory and stdio transports carry no
// id and share the local state.
func sessionID(req *sdkmcp.CallToolRequest) string {
	if req == nil || req.Session == nil {
		return session.LocalID
	}
	if id := req.Session.ID(); id != "" {
		return id
	}
	return session.LocalID
}

// textResult returns a text-only ToolResult
func textResult(msg string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: msg},
		},
	}
}

func orNop(l *logging.Logger) *logging.Logger {
	if l == nil {
		return logging.NewNop()
	}
	return l
}
