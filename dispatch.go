package mcpserializer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cast"

	"github.com/mdamire/mcp-serializer/internal/jsonrpc"
	"github.com/mdamire/mcp-serializer/internal/logctx"
	"github.com/mdamire/mcp-serializer/internal/pagination"
	"github.com/mdamire/mcp-serializer/mcp"
	"github.com/mdamire/mcp-serializer/registry"
)

// requestManager routes a parsed JSON-RPC request to the right registry
// operation and maps every failure into an error envelope. It never lets an
// error escape: the caller always gets a valid response or nil for
// notifications.
type requestManager struct {
	init      *Initializer
	reg       *registry.Registry
	paginator *pagination.Paginator
	log       *slog.Logger
}

// rpcError carries a fully-mapped protocol error out of a feature handler.
type rpcError struct {
	code    jsonrpc.ErrorCode
	message string
	data    any
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.code, e.message)
}

// processBatch handles the requests strictly in input order. Notification
// slots produce nothing; a batch of only notifications yields nil, not an
// empty slice.
func (m *requestManager) processBatch(ctx context.Context, reqs []*jsonrpc.Request) []*jsonrpc.Response {
	var out []*jsonrpc.Response
	for _, req := range reqs {
		if resp := m.processSingle(ctx, req); resp != nil {
			out = append(out, resp)
		}
	}
	return out
}

// processSingle handles one request end to end. Failures after this point
// always surface as error envelopes carrying the request's id.
func (m *requestManager) processSingle(ctx context.Context, req *jsonrpc.Request) (resp *jsonrpc.Response) {
	msgType := "request"
	if req.IsNotification() {
		msgType = "notification"
	}
	ctx = logctx.WithRPCMessage(ctx, &logctx.RPCMessage{
		Method: req.Method,
		ID:     req.ID.String(),
		Type:   msgType,
	})

	if req.IsNotification() {
		m.log.InfoContext(ctx, "notification acknowledged")
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			m.log.ErrorContext(ctx, "panic during dispatch", slog.Any("panic", r))
			resp = jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInternalError,
				"Internal error", map[string]any{"error": fmt.Sprint(r)})
		}
	}()

	result, err := m.route(ctx, req)
	if err != nil {
		m.log.ErrorContext(ctx, "request failed", slog.String("error", err.Error()))
		var rpcErr *rpcError
		if errors.As(err, &rpcErr) {
			return jsonrpc.NewErrorResponse(req.ID, rpcErr.code, rpcErr.message, rpcErr.data)
		}
		return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInternalError,
			"Internal error", map[string]any{"error": err.Error()})
	}
	return jsonrpc.NewResultResponse(req.ID, result)
}

// route inspects the method's feature segment and forwards to the feature
// handler. A feature with no registered entries is reported as
// method-not-found, indistinguishable from an unknown method.
func (m *requestManager) route(ctx context.Context, req *jsonrpc.Request) (any, error) {
	feature, _, _ := strings.Cut(req.Method, "/")

	params := req.Params
	if params == nil {
		params = map[string]any{}
	}
	cursor, err := popCursor(params)
	if err != nil {
		return nil, err
	}

	switch feature {
	case mcp.FeatureInitialize:
		if mcp.Method(req.Method) != mcp.InitializeMethod {
			return nil, methodNotFound(req.Method)
		}
		return m.handleInitialize(), nil
	case mcp.FeatureTools:
		if !m.reg.HasTools() {
			return nil, methodNotFound(req.Method)
		}
		return m.handleTools(ctx, req.Method, params, cursor)
	case mcp.FeatureResources:
		if !m.reg.HasResources() {
			return nil, methodNotFound(req.Method)
		}
		return m.handleResources(ctx, req.Method, params, cursor)
	case mcp.FeaturePrompts:
		if !m.reg.HasPrompts() {
			return nil, methodNotFound(req.Method)
		}
		return m.handlePrompts(ctx, req.Method, params, cursor)
	default:
		return nil, methodNotFound(req.Method)
	}
}

// handleInitialize renders the configured initialize result, trimming
// advertised capabilities for features with no registered entries.
func (m *requestManager) handleInitialize() *mcp.InitializeResult {
	result := m.init.BuildResult()
	if !m.reg.HasTools() {
		result.Capabilities.Tools = nil
	}
	if !m.reg.HasResources() {
		result.Capabilities.Resources = nil
	}
	if !m.reg.HasPrompts() {
		result.Capabilities.Prompts = nil
	}
	return result
}

func (m *requestManager) handleTools(ctx context.Context, method string, params map[string]any, cursor string) (any, error) {
	switch mcp.Method(method) {
	case mcp.ToolsListMethod:
		result, err := m.reg.Tools().List(m.paginator, cursor)
		if err != nil {
			return nil, mapCursorError(err, cursor)
		}
		return result, nil
	case mcp.ToolsCallMethod:
		name, err := requiredString(params, "name")
		if err != nil {
			return nil, err
		}
		args, err := argumentsParam(params)
		if err != nil {
			return nil, err
		}

		ctx = logctx.WithCallData(ctx, &logctx.CallData{Feature: mcp.FeatureTools, Key: name})
		result, err := m.reg.Tools().Call(ctx, name, args)
		if err != nil {
			return nil, mapToolsError(err, name, args)
		}
		return result, nil
	default:
		return nil, methodNotFound(method)
	}
}

func (m *requestManager) handleResources(ctx context.Context, method string, params map[string]any, cursor string) (any, error) {
	switch mcp.Method(method) {
	case mcp.ResourcesListMethod:
		result, err := m.reg.Resources().List(m.paginator, cursor)
		if err != nil {
			return nil, mapCursorError(err, cursor)
		}
		return result, nil
	case mcp.ResourcesTemplatesListMethod:
		result, err := m.reg.Resources().ListTemplates(m.paginator, cursor)
		if err != nil {
			return nil, mapCursorError(err, cursor)
		}
		return result, nil
	case mcp.ResourcesReadMethod:
		uri, err := requiredString(params, "uri")
		if err != nil {
			return nil, err
		}

		ctx = logctx.WithCallData(ctx, &logctx.CallData{Feature: mcp.FeatureResources, Key: uri})
		result, err := m.reg.Resources().Read(ctx, uri)
		if err != nil {
			return nil, mapResourcesError(err, uri)
		}
		return result, nil
	default:
		return nil, methodNotFound(method)
	}
}

func (m *requestManager) handlePrompts(ctx context.Context, method string, params map[string]any, cursor string) (any, error) {
	switch mcp.Method(method) {
	case mcp.PromptsListMethod:
		result, err := m.reg.Prompts().List(m.paginator, cursor)
		if err != nil {
			return nil, mapCursorError(err, cursor)
		}
		return result, nil
	case mcp.PromptsGetMethod:
		name, err := requiredString(params, "name")
		if err != nil {
			return nil, err
		}
		args, err := argumentsParam(params)
		if err != nil {
			return nil, err
		}

		ctx = logctx.WithCallData(ctx, &logctx.CallData{Feature: mcp.FeaturePrompts, Key: name})
		result, err := m.reg.Prompts().Get(ctx, name, args)
		if err != nil {
			return nil, mapPromptsError(err, name, args)
		}
		return result, nil
	default:
		return nil, methodNotFound(method)
	}
}

// mapToolsError translates registry failures from a tool call into the
// feature-specific error codes.
func mapToolsError(err error, name string, args map[string]any) error {
	data := map[string]any{"tool_name": name, "arguments": args, "error": err.Error()}

	var callErr *registry.FunctionCallError
	var notFound *registry.NotFoundError
	var castErr *registry.ParameterCastError
	var missing *registry.RequiredParameterNotFoundError
	var unsupported *registry.UnsupportedResultTypeError
	switch {
	case errors.As(err, &callErr):
		return &rpcError{jsonrpc.ErrorCodeToolCallError, "Tools call error", data}
	case errors.As(err, &notFound):
		return &rpcError{jsonrpc.ErrorCodeToolNotFound, "Could not find tool", data}
	case errors.As(err, &castErr):
		data["invalid_parameter_name"] = castErr.Param
		data["invalid_parameter_value"] = castErr.Value
		data["expected_parameter_type"] = castErr.TypeName
		return &rpcError{jsonrpc.ErrorCodeInvalidParams, "Invalid parameters for tools", data}
	case errors.As(err, &missing):
		data["missing_parameter"] = missing.Param
		return &rpcError{jsonrpc.ErrorCodeInvalidParams, "Required parameter not found for tools", data}
	case errors.As(err, &unsupported):
		return &rpcError{jsonrpc.ErrorCodeUnsupportedResultType, "Tools returned unsupported result type", data}
	}
	return err
}

// mapResourcesError translates registry failures from a resource read.
// Parameter cast failures are not part of the resource error surface; they
// fall through as internal errors.
func mapResourcesError(err error, uri string) error {
	data := map[string]any{"uri": uri, "error": err.Error()}

	var callErr *registry.FunctionCallError
	var notFound *registry.NotFoundError
	var missing *registry.RequiredParameterNotFoundError
	var unsupported *registry.UnsupportedResultTypeError
	switch {
	case errors.As(err, &callErr):
		return &rpcError{jsonrpc.ErrorCodeResourceFetchError, "Resources fetch error", data}
	case errors.As(err, &notFound):
		return &rpcError{jsonrpc.ErrorCodeResourceNotFound, "Could not find resource", data}
	case errors.As(err, &missing):
		data["missing_parameter"] = missing.Param
		return &rpcError{jsonrpc.ErrorCodeResourceTemplateParam, "Parameter is required in resource template", data}
	case errors.As(err, &unsupported):
		return &rpcError{jsonrpc.ErrorCodeUnsupportedResultType, "Resources returned unsupported result type", data}
	}
	return err
}

// mapPromptsError translates registry failures from a prompt get.
func mapPromptsError(err error, name string, args map[string]any) error {
	data := map[string]any{"prompt_name": name, "arguments": args, "error": err.Error()}

	var callErr *registry.FunctionCallError
	var notFound *registry.NotFoundError
	var castErr *registry.ParameterCastError
	var missing *registry.RequiredParameterNotFoundError
	var unsupported *registry.UnsupportedResultTypeError
	switch {
	case errors.As(err, &callErr):
		return &rpcError{jsonrpc.ErrorCodePromptCallError, "Prompts call error", data}
	case errors.As(err, &notFound):
		return &rpcError{jsonrpc.ErrorCodePromptNotFound, "Could not find prompt", data}
	case errors.As(err, &castErr):
		data["invalid_parameter_name"] = castErr.Param
		data["invalid_parameter_value"] = castErr.Value
		data["expected_parameter_type"] = castErr.TypeName
		return &rpcError{jsonrpc.ErrorCodeInvalidParams, "Invalid parameters for prompts", data}
	case errors.As(err, &missing):
		data["missing_parameter"] = missing.Param
		return &rpcError{jsonrpc.ErrorCodeInvalidParams, "Required parameter not found for prompts", data}
	case errors.As(err, &unsupported):
		return &rpcError{jsonrpc.ErrorCodeUnsupportedResultType, "Prompts returned unsupported result type", data}
	}
	return err
}

// mapCursorError converts a malformed cursor into an invalid-params error.
func mapCursorError(err error, cursor string) error {
	if errors.Is(err, pagination.ErrInvalidCursor) {
		return &rpcError{
			code:    jsonrpc.ErrorCodeInvalidParams,
			message: "Invalid pagination cursor",
			data:    map[string]any{"cursor": cursor, "error": err.Error()},
		}
	}
	return err
}

func methodNotFound(method string) error {
	return &rpcError{
		code:    jsonrpc.ErrorCodeMethodNotFound,
		message: "Method not found",
		data:    map[string]any{"method": method},
	}
}

// popCursor extracts and removes the pagination cursor before the params are
// forwarded to a feature handler.
func popCursor(params map[string]any) (string, error) {
	raw, ok := params["cursor"]
	if !ok {
		return "", nil
	}
	delete(params, "cursor")
	cursor, err := cast.ToStringE(raw)
	if err != nil {
		return "", &rpcError{
			code:    jsonrpc.ErrorCodeInvalidParams,
			message: "Invalid pagination cursor",
			data:    map[string]any{"cursor": raw, "error": err.Error()},
		}
	}
	return cursor, nil
}

// requiredString reads a mandatory string parameter such as a tool name or
// resource URI.
func requiredString(params map[string]any, key string) (string, error) {
	raw, ok := params[key]
	if !ok {
		return "", &rpcError{
			code:    jsonrpc.ErrorCodeInvalidParams,
			message: fmt.Sprintf("Missing required parameter %q", key),
			data:    map[string]any{"missing_parameter": key},
		}
	}
	value, err := cast.ToStringE(raw)
	if err != nil || value == "" {
		return "", &rpcError{
			code:    jsonrpc.ErrorCodeInvalidParams,
			message: fmt.Sprintf("Parameter %q must be a non-empty string", key),
			data:    map[string]any{"invalid_parameter_name": key, "invalid_parameter_value": raw},
		}
	}
	return value, nil
}

// argumentsParam reads the optional arguments object for tools/call and
// prompts/get.
func argumentsParam(params map[string]any) (map[string]any, error) {
	raw, ok := params["arguments"]
	if !ok || raw == nil {
		return map[string]any{}, nil
	}
	args, ok := raw.(map[string]any)
	if !ok {
		return nil, &rpcError{
			code:    jsonrpc.ErrorCodeInvalidParams,
			message: "Parameter \"arguments\" must be an object",
			data:    map[string]any{"invalid_parameter_name": "arguments", "invalid_parameter_value": raw},
		}
	}
	return args, nil
}
