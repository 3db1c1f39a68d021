package mcpserializer

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/mdamire/mcp-serializer/mcp"
	"github.com/mdamire/mcp-serializer/registry"
	"github.com/mdamire/mcp-serializer/typespec"
)

func newTestSerializer(t *testing.T, reg *registry.Registry, opts ...Option) *Serializer {
	t.Helper()
	init := NewInitializer(
		WithServerInfo("test-server", "1.0.0"),
		WithToolsCapability(true),
		WithResourcesCapability(false, true),
		WithPromptsCapability(false),
	)
	s, err := New(init, reg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func registryWithAddTool(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	reg.Tools().Register(func(ctx context.Context, args map[string]any) (registry.ToolOutcome, error) {
		result := registry.NewToolResult()
		if err := result.AddText(fmt.Sprintf("%d", args["a"].(int64)+args["b"].(int64))); err != nil {
			return nil, err
		}
		return result, nil
	}, registry.FunctionMeta{
		Name: "add",
		Args: []registry.ArgMeta{
			{Name: "a", Type: typespec.Integer, Required: true},
			{Name: "b", Type: typespec.Integer, Required: true},
		},
	}, registry.Extra{})
	return reg
}

func decodeResponse(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	if raw == nil {
		t.Fatalf("expected a response, got nil")
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode response: %v\n%s", err, raw)
	}
	return out
}

func errorCode(t *testing.T, resp map[string]any) float64 {
	t.Helper()
	errObj, ok := resp["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error envelope, got %v", resp)
	}
	return errObj["code"].(float64)
}

func TestProcessRequest_ToolCallRoundTrip(t *testing.T) {
	s := newTestSerializer(t, registryWithAddTool(t))

	raw := []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"add","arguments":{"a":"2","b":"3"}}}`)
	resp := decodeResponse(t, s.ProcessRequest(context.Background(), raw))

	if resp["jsonrpc"] != "2.0" || resp["id"] != float64(1) {
		t.Fatalf("unexpected envelope: %v", resp)
	}
	result := resp["result"].(map[string]any)
	content := result["content"].([]any)
	first := content[0].(map[string]any)
	if first["type"] != "text" || first["text"] != "5" {
		t.Fatalf("expected coerced sum text 5, got %v", first)
	}
}

func TestProcessRequest_ParseError(t *testing.T) {
	s := newTestSerializer(t, registry.New())

	resp := decodeResponse(t, s.ProcessRequest(context.Background(), []byte(`{not json`)))
	if errorCode(t, resp) != -32700 {
		t.Fatalf("expected parse error, got %v", resp)
	}
	if resp["id"] != nil {
		t.Fatalf("parse error id must be null, got %v", resp["id"])
	}
}

func TestProcessRequest_InvalidRequestShapes(t *testing.T) {
	s := newTestSerializer(t, registry.New())

	cases := []string{
		`"just a string"`,
		`42`,
		`{"jsonrpc":"1.0","method":"tools/list","id":1}`,
		`{"jsonrpc":"2.0","id":1}`,
		`{"jsonrpc":"2.0","method":"tools/list","id":{"bad":true}}`,
		`[{"jsonrpc":"2.0","method":"tools/list","id":1}, 7]`,
	}
	for _, raw := range cases {
		resp := decodeResponse(t, s.ProcessRequest(context.Background(), []byte(raw)))
		if errorCode(t, resp) != -32600 {
			t.Fatalf("%s: expected invalid request, got %v", raw, resp)
		}
		if resp["id"] != nil {
			t.Fatalf("%s: invalid request id must be null, got %v", raw, resp["id"])
		}
	}
}

func TestProcessRequest_MethodNotFound(t *testing.T) {
	s := newTestSerializer(t, registryWithAddTool(t))

	for _, method := range []string{"unknown/list", "tools", "tools/unknown", "initialize/extra"} {
		raw := fmt.Sprintf(`{"jsonrpc":"2.0","id":1,"method":%q}`, method)
		resp := decodeResponse(t, s.ProcessRequest(context.Background(), []byte(raw)))
		if errorCode(t, resp) != -32601 {
			t.Fatalf("%s: expected method not found, got %v", method, resp)
		}
		data := resp["error"].(map[string]any)["data"].(map[string]any)
		if data["method"] != method {
			t.Fatalf("%s: error data reported method %v", method, data["method"])
		}
	}
}

func TestProcessRequest_UnconfiguredFeatureLooksUnknown(t *testing.T) {
	// No prompts registered: prompts/list must be indistinguishable from an
	// unknown method.
	s := newTestSerializer(t, registryWithAddTool(t))

	raw := []byte(`{"jsonrpc":"2.0","id":1,"method":"prompts/list"}`)
	resp := decodeResponse(t, s.ProcessRequest(context.Background(), raw))
	if errorCode(t, resp) != -32601 {
		t.Fatalf("expected method not found, got %v", resp)
	}
}

func TestProcessRequest_NotificationSilence(t *testing.T) {
	s := newTestSerializer(t, registryWithAddTool(t))

	if out := s.ProcessRequest(context.Background(), []byte(`{"jsonrpc":"2.0","method":"tools/list"}`)); out != nil {
		t.Fatalf("notification must produce no output, got %s", out)
	}
	// Even a notification that would fail stays silent.
	if out := s.ProcessRequest(context.Background(), []byte(`{"jsonrpc":"2.0","method":"unknown/thing"}`)); out != nil {
		t.Fatalf("failing notification must stay silent, got %s", out)
	}
}

func TestProcessRequest_BatchMixedAndAllNotifications(t *testing.T) {
	s := newTestSerializer(t, registryWithAddTool(t))

	mixed := []byte(`[
		{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"add","arguments":{"a":1,"b":1}}},
		{"jsonrpc":"2.0","method":"tools/list"},
		{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"nope"}}
	]`)
	out := s.ProcessRequest(context.Background(), mixed)
	var responses []map[string]any
	if err := json.Unmarshal(out, &responses); err != nil {
		t.Fatalf("decode batch: %v\n%s", err, out)
	}
	if len(responses) != 2 {
		t.Fatalf("expected 2 responses (notification filtered), got %d", len(responses))
	}
	if responses[0]["id"] != float64(1) || responses[1]["id"] != float64(2) {
		t.Fatalf("batch order must be preserved: %v", responses)
	}
	if _, hasResult := responses[0]["result"]; !hasResult {
		t.Fatalf("first slot must succeed: %v", responses[0])
	}
	if errorCode(t, responses[1]) != -32002 {
		t.Fatalf("second slot must be tool-not-found: %v", responses[1])
	}

	allNotes := []byte(`[
		{"jsonrpc":"2.0","method":"tools/list"},
		{"jsonrpc":"2.0","method":"prompts/list"}
	]`)
	if out := s.ProcessRequest(context.Background(), allNotes); out != nil {
		t.Fatalf("all-notification batch must yield no output, got %s", out)
	}
}

func TestProcessRequest_ToolErrorData(t *testing.T) {
	s := newTestSerializer(t, registryWithAddTool(t))

	// Missing required parameter.
	raw := []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"add","arguments":{"a":1}}}`)
	resp := decodeResponse(t, s.ProcessRequest(context.Background(), raw))
	if errorCode(t, resp) != -32602 {
		t.Fatalf("expected invalid params, got %v", resp)
	}
	data := resp["error"].(map[string]any)["data"].(map[string]any)
	if data["missing_parameter"] != "b" || data["tool_name"] != "add" {
		t.Fatalf("unexpected error data: %v", data)
	}

	// Cast failure.
	raw = []byte(`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"add","arguments":{"a":"x","b":1}}}`)
	resp = decodeResponse(t, s.ProcessRequest(context.Background(), raw))
	if errorCode(t, resp) != -32602 {
		t.Fatalf("expected invalid params, got %v", resp)
	}
	data = resp["error"].(map[string]any)["data"].(map[string]any)
	if data["invalid_parameter_name"] != "a" || data["invalid_parameter_value"] != "x" || data["expected_parameter_type"] != "integer" {
		t.Fatalf("unexpected error data: %v", data)
	}

	// Handler failure.
	reg := registry.New()
	reg.Tools().Register(func(ctx context.Context, args map[string]any) (registry.ToolOutcome, error) {
		return nil, fmt.Errorf("backend exploded")
	}, registry.FunctionMeta{Name: "boom"}, registry.Extra{})
	s = newTestSerializer(t, reg)

	raw = []byte(`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"boom"}}`)
	resp = decodeResponse(t, s.ProcessRequest(context.Background(), raw))
	if errorCode(t, resp) != -32001 {
		t.Fatalf("expected tool call error, got %v", resp)
	}
}

func TestProcessRequest_ResourceFlow(t *testing.T) {
	reg := registry.New()
	reg.Resources().Register("items/", func(ctx context.Context, args map[string]any) (*registry.ResourceResult, error) {
		result := registry.NewResourceResult()
		if err := result.AddText("item "+args["id"].(string), registry.WithMimeType("text/plain")); err != nil {
			return nil, err
		}
		return result, nil
	}, registry.FunctionMeta{
		Name: "get_item",
		Args: []registry.ArgMeta{{Name: "id", Type: typespec.String, Required: true}},
	}, registry.Extra{})
	s := newTestSerializer(t, reg)

	// Template listing carries the synthesized URI.
	resp := decodeResponse(t, s.ProcessRequest(context.Background(),
		[]byte(`{"jsonrpc":"2.0","id":1,"method":"resources/templates/list"}`)))
	result := resp["result"].(map[string]any)
	templates := result["resourceTemplates"].([]any)
	if len(templates) != 1 || templates[0].(map[string]any)["uri"] != "items/{id}" {
		t.Fatalf("unexpected templates: %v", templates)
	}

	// Reading binds the path segment.
	resp = decodeResponse(t, s.ProcessRequest(context.Background(),
		[]byte(`{"jsonrpc":"2.0","id":2,"method":"resources/read","params":{"uri":"items/42"}}`)))
	contents := resp["result"].(map[string]any)["contents"].([]any)
	if contents[0].(map[string]any)["text"] != "item 42" {
		t.Fatalf("unexpected contents: %v", contents)
	}

	// Unknown URI yields the resource not-found code with the uri in data.
	resp = decodeResponse(t, s.ProcessRequest(context.Background(),
		[]byte(`{"jsonrpc":"2.0","id":3,"method":"resources/read","params":{"uri":"ghost://nope"}}`)))
	if errorCode(t, resp) != -32004 {
		t.Fatalf("expected resource not found, got %v", resp)
	}
	data := resp["error"].(map[string]any)["data"].(map[string]any)
	if data["uri"] != "ghost://nope" {
		t.Fatalf("unexpected error data: %v", data)
	}

	// A template read with no bindable segment reports the missing parameter.
	resp = decodeResponse(t, s.ProcessRequest(context.Background(),
		[]byte(`{"jsonrpc":"2.0","id":4,"method":"resources/read","params":{"uri":"items/"}}`)))
	if errorCode(t, resp) != -32005 {
		t.Fatalf("expected missing template param, got %v", resp)
	}
	data = resp["error"].(map[string]any)["data"].(map[string]any)
	if data["missing_parameter"] != "id" {
		t.Fatalf("unexpected error data: %v", data)
	}
}

func TestProcessRequest_PromptFlow(t *testing.T) {
	reg := registry.New()
	reg.Prompts().Register(func(ctx context.Context, args map[string]any) (*registry.PromptResult, error) {
		result := registry.NewPromptResult()
		if err := result.AddText("Hello, "+args["who"].(string), registry.AsRole(mcp.RoleUser)); err != nil {
			return nil, err
		}
		return result, nil
	}, registry.FunctionMeta{
		Name:        "greet",
		Description: "greets a person",
		Args:        []registry.ArgMeta{{Name: "who", Type: typespec.String, Required: true}},
	}, registry.Extra{})
	s := newTestSerializer(t, reg)

	resp := decodeResponse(t, s.ProcessRequest(context.Background(),
		[]byte(`{"jsonrpc":"2.0","id":1,"method":"prompts/get","params":{"name":"greet","arguments":{"who":"Ada"}}}`)))
	result := resp["result"].(map[string]any)
	if result["description"] != "greets a person" {
		t.Fatalf("unexpected description: %v", result)
	}
	messages := result["messages"].([]any)
	first := messages[0].(map[string]any)
	if first["role"] != "user" || first["content"].(map[string]any)["text"] != "Hello, Ada" {
		t.Fatalf("unexpected message: %v", first)
	}

	resp = decodeResponse(t, s.ProcessRequest(context.Background(),
		[]byte(`{"jsonrpc":"2.0","id":2,"method":"prompts/get","params":{"name":"missing"}}`)))
	if errorCode(t, resp) != -32007 {
		t.Fatalf("expected prompt not found, got %v", resp)
	}
}

func TestProcessRequest_InitializeTrimsCapabilities(t *testing.T) {
	// Only tools registered; resources and prompts capabilities must be
	// trimmed from the advertised set.
	s := newTestSerializer(t, registryWithAddTool(t))

	resp := decodeResponse(t, s.ProcessRequest(context.Background(),
		[]byte(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05"}}`)))
	result := resp["result"].(map[string]any)
	if result["protocolVersion"] != mcp.DefaultProtocolVersion {
		t.Fatalf("unexpected protocol version: %v", result)
	}
	info := result["serverInfo"].(map[string]any)
	if info["name"] != "test-server" || info["version"] != "1.0.0" {
		t.Fatalf("unexpected server info: %v", info)
	}
	caps := result["capabilities"].(map[string]any)
	if _, ok := caps["tools"]; !ok {
		t.Fatalf("tools capability must be advertised: %v", caps)
	}
	if _, ok := caps["resources"]; ok {
		t.Fatalf("resources capability must be trimmed: %v", caps)
	}
	if _, ok := caps["prompts"]; ok {
		t.Fatalf("prompts capability must be trimmed: %v", caps)
	}
}

func TestProcessRequest_ListPagination(t *testing.T) {
	reg := registry.New()
	for i := 0; i < 7; i++ {
		name := fmt.Sprintf("tool-%d", i)
		reg.Tools().Register(func(ctx context.Context, args map[string]any) (registry.ToolOutcome, error) {
			return registry.Structured(map[string]any{"ok": true}), nil
		}, registry.FunctionMeta{Name: name}, registry.Extra{})
	}
	s := newTestSerializer(t, reg, WithPageSize(3))

	var names []string
	cursor := ""
	pages := 0
	for {
		params := "{}"
		if cursor != "" {
			params = fmt.Sprintf(`{"cursor":%q}`, cursor)
		}
		raw := fmt.Sprintf(`{"jsonrpc":"2.0","id":1,"method":"tools/list","params":%s}`, params)
		resp := decodeResponse(t, s.ProcessRequest(context.Background(), []byte(raw)))
		result := resp["result"].(map[string]any)
		for _, item := range result["tools"].([]any) {
			names = append(names, item.(map[string]any)["name"].(string))
		}
		pages++
		next, _ := result["nextCursor"].(string)
		if next == "" {
			break
		}
		cursor = next
	}
	if pages != 3 || len(names) != 7 {
		t.Fatalf("expected 3 pages and 7 tools, got %d pages %d tools", pages, len(names))
	}

	// Malformed cursor surfaces as invalid params.
	resp := decodeResponse(t, s.ProcessRequest(context.Background(),
		[]byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list","params":{"cursor":"???"}}`)))
	if errorCode(t, resp) != -32602 {
		t.Fatalf("expected invalid params for malformed cursor, got %v", resp)
	}
}

func TestProcessRequest_StringIDEcho(t *testing.T) {
	s := newTestSerializer(t, registryWithAddTool(t))

	raw := []byte(`{"jsonrpc":"2.0","id":"req-9","method":"tools/list"}`)
	resp := decodeResponse(t, s.ProcessRequest(context.Background(), raw))
	if resp["id"] != "req-9" {
		t.Fatalf("expected echoed string id, got %v", resp["id"])
	}
}
