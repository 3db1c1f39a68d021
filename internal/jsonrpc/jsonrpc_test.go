package jsonrpc

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRequestID_UnmarshalNumber(t *testing.T) {
	var id RequestID
	if err := json.Unmarshal([]byte(`42`), &id); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := id.Value(); got != int64(42) {
		t.Fatalf("expected int64(42), got %T(%v)", got, got)
	}
	if id.String() != "42" {
		t.Fatalf("expected %q, got %q", "42", id.String())
	}
}

func TestRequestID_UnmarshalString(t *testing.T) {
	var id RequestID
	if err := json.Unmarshal([]byte(`"abc-1"`), &id); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := id.Value(); got != "abc-1" {
		t.Fatalf("expected %q, got %v", "abc-1", got)
	}
}

func TestRequestID_RejectsOtherTypes(t *testing.T) {
	for _, raw := range []string{`{}`, `[1]`, `true`} {
		var id RequestID
		if err := json.Unmarshal([]byte(raw), &id); err == nil {
			t.Fatalf("expected error for %s", raw)
		}
	}
}

func TestRequestID_NilMarshalsAsNull(t *testing.T) {
	var id *RequestID
	out, err := json.Marshal(id)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != "null" {
		t.Fatalf("expected null, got %s", out)
	}
}

func TestRequest_UnmarshalValidatesVersionAndMethod(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"wrong version", `{"jsonrpc":"1.0","method":"tools/list","id":1}`},
		{"missing version", `{"method":"tools/list","id":1}`},
		{"missing method", `{"jsonrpc":"2.0","id":1}`},
		{"non-string method", `{"jsonrpc":"2.0","method":5,"id":1}`},
	}
	for _, tc := range cases {
		var req Request
		if err := json.Unmarshal([]byte(tc.raw), &req); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestRequest_Notification(t *testing.T) {
	var req Request
	if err := json.Unmarshal([]byte(`{"jsonrpc":"2.0","method":"tools/list"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !req.IsNotification() {
		t.Fatalf("expected notification for absent id")
	}

	if err := json.Unmarshal([]byte(`{"jsonrpc":"2.0","method":"tools/list","id":null}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !req.IsNotification() {
		t.Fatalf("expected notification for null id")
	}
}

func TestResponse_ErrorEnvelopeCarriesNullID(t *testing.T) {
	resp := NewErrorResponse(nil, ErrorCodeParseError, "Parse error", nil)
	out, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"id":null`) {
		t.Fatalf("expected explicit null id, got %s", out)
	}
	if !strings.Contains(string(out), `"code":-32700`) {
		t.Fatalf("expected parse error code, got %s", out)
	}
}

func TestResponse_ResultEnvelope(t *testing.T) {
	resp := NewResultResponse(NewRequestID("r1"), map[string]any{"ok": true})
	out, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if decoded["jsonrpc"] != "2.0" || decoded["id"] != "r1" {
		t.Fatalf("unexpected envelope: %s", out)
	}
	if _, hasErr := decoded["error"]; hasErr {
		t.Fatalf("result envelope must not carry error: %s", out)
	}
}
