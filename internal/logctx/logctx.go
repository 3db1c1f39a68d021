// Package logctx decorates slog records with request-scoped attributes
// carried on the context.
package logctx

import (
	"context"
	"log/slog"
)

// Handler wraps a slog.Handler and appends rpc/call groups from the context.
type Handler struct {
	slog.Handler
}

func (h Handler) Handle(ctx context.Context, r slog.Record) error {
	if msg, ok := ctx.Value(rpcMsgKey{}).(*RPCMessage); ok {
		r.AddAttrs(slog.Group("rpc",
			slog.String("method", msg.Method),
			slog.String("id", msg.ID),
			slog.String("type", msg.Type),
		))
	}

	if cd, ok := ctx.Value(callDataKey{}).(*CallData); ok {
		r.AddAttrs(slog.Group("call",
			slog.String("feature", cd.Feature),
			slog.String("key", cd.Key),
		))
	}

	return h.Handler.Handle(ctx, r)
}

type rpcMsgKey struct{}

// RPCMessage identifies the JSON-RPC message being processed.
type RPCMessage struct {
	Method string
	ID     string
	Type   string
}

func WithRPCMessage(ctx context.Context, msg *RPCMessage) context.Context {
	return context.WithValue(ctx, rpcMsgKey{}, msg)
}

type callDataKey struct{}

// CallData identifies the feature entry being invoked.
type CallData struct {
	Feature string
	Key     string
}

func WithCallData(ctx context.Context, data *CallData) context.Context {
	return context.WithValue(ctx, callDataKey{}, data)
}
