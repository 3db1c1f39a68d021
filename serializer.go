package mcpserializer

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mdamire/mcp-serializer/internal/jsonrpc"
	"github.com/mdamire/mcp-serializer/internal/logctx"
	"github.com/mdamire/mcp-serializer/internal/pagination"
	"github.com/mdamire/mcp-serializer/registry"
)

const defaultPageSize = 10

// Serializer is the entry point of the package. It owns a request manager
// bound to an initializer and a registry, and converts raw JSON-RPC payload
// bytes into response bytes.
//
// ProcessRequest is safe for concurrent use once registration is finished.
type Serializer struct {
	pageSize   int
	logHandler slog.Handler

	manager *requestManager
}

// New constructs a Serializer around the given initializer and registry.
func New(init *Initializer, reg *registry.Registry, opts ...Option) (*Serializer, error) {
	s := &Serializer{pageSize: defaultPageSize}
	for _, opt := range opts {
		opt(s)
	}

	paginator, err := pagination.New(s.pageSize)
	if err != nil {
		return nil, err
	}

	handler := s.logHandler
	if handler == nil {
		handler = discardHandler{}
	}
	log := slog.New(logctx.Handler{Handler: handler})

	s.manager = &requestManager{
		init:      init,
		reg:       reg,
		paginator: paginator,
		log:       log,
	}
	return s, nil
}

// ProcessRequest handles one raw JSON-RPC payload, single or batch, and
// returns the marshaled response. It returns nil for notifications and for
// batches consisting only of notifications. It never returns an error: all
// failures are reported inside a JSON-RPC error envelope.
func (s *Serializer) ProcessRequest(ctx context.Context, raw []byte) []byte {
	trimmed := bytes.TrimSpace(raw)
	if !json.Valid(trimmed) {
		return s.marshal(jsonrpc.NewErrorResponse(nil, jsonrpc.ErrorCodeParseError,
			"Parse error", map[string]any{"error": "request is not valid JSON"}))
	}

	if len(trimmed) > 0 && trimmed[0] == '[' {
		return s.processBatch(ctx, trimmed)
	}
	return s.processSingle(ctx, trimmed)
}

func (s *Serializer) processSingle(ctx context.Context, raw []byte) []byte {
	var req jsonrpc.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return s.marshal(jsonrpc.NewErrorResponse(nil, jsonrpc.ErrorCodeInvalidRequest,
			"Invalid Request", map[string]any{"error": err.Error()}))
	}

	resp := s.manager.processSingle(ctx, &req)
	if resp == nil {
		return nil
	}
	return s.marshal(resp)
}

func (s *Serializer) processBatch(ctx context.Context, raw []byte) []byte {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return s.marshal(jsonrpc.NewErrorResponse(nil, jsonrpc.ErrorCodeInvalidRequest,
			"Invalid Request", map[string]any{"error": err.Error()}))
	}

	reqs := make([]*jsonrpc.Request, 0, len(items))
	for _, item := range items {
		var req jsonrpc.Request
		if err := json.Unmarshal(item, &req); err != nil {
			return s.marshal(jsonrpc.NewErrorResponse(nil, jsonrpc.ErrorCodeInvalidRequest,
				"Invalid Request", map[string]any{"error": err.Error()}))
		}
		reqs = append(reqs, &req)
	}

	responses := s.manager.processBatch(ctx, reqs)
	if len(responses) == 0 {
		return nil
	}
	return s.marshal(responses)
}

// marshal renders a response value. Marshaling the envelope types cannot
// fail for the shapes this package produces, but a failure still yields a
// valid internal-error envelope rather than nothing.
func (s *Serializer) marshal(v any) []byte {
	out, err := json.Marshal(v)
	if err != nil {
		s.manager.log.Error("failed to marshal response", slog.String("error", err.Error()))
		out, _ = json.Marshal(jsonrpc.NewErrorResponse(nil, jsonrpc.ErrorCodeInternalError,
			"Internal error", map[string]any{"error": err.Error()}))
	}
	return out
}

// discardHandler mirrors slog.DiscardHandler, which is unavailable before
// Go 1.24: it discards all log output.
type discardHandler struct{}

func (dh discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (dh discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (dh discardHandler) WithAttrs(attrs []slog.Attr) slog.Handler  { return dh }
func (dh discardHandler) WithGroup(name string) slog.Handler        { return dh }
