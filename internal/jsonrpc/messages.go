package jsonrpc

import (
	"encoding/json"
	"fmt"
)

// ProtocolVersion is the supported JSON-RPC protocol version.
const ProtocolVersion = "2.0"

// Request represents a JSON-RPC request (with an ID) or notification (without ID).
type Request struct {
	JSONRPCVersion string         `json:"jsonrpc"`
	Method         string         `json:"method"`
	Params         map[string]any `json:"params,omitempty"`
	ID             *RequestID     `json:"id,omitempty"`
}

// IsNotification reports whether the request carries no ID and therefore must
// not produce a response.
func (r *Request) IsNotification() bool {
	return r.ID.IsNil()
}

// UnmarshalJSON implements custom JSON unmarshaling for Request.
// It enforces JSON-RPC 2.0 semantics and validates message structure.
func (r *Request) UnmarshalJSON(data []byte) error {
	type rawRequest struct {
		JSONRPCVersion string         `json:"jsonrpc"`
		Method         string         `json:"method"`
		Params         map[string]any `json:"params"`
		ID             *RequestID     `json:"id"`
	}

	var raw rawRequest
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid JSON-RPC request: %w", err)
	}

	if raw.JSONRPCVersion != ProtocolVersion {
		return fmt.Errorf("invalid JSON-RPC version: expected %q, got %q", ProtocolVersion, raw.JSONRPCVersion)
	}
	if raw.Method == "" {
		return fmt.Errorf("request message must have a method")
	}

	r.JSONRPCVersion = raw.JSONRPCVersion
	r.Method = raw.Method
	r.Params = raw.Params
	r.ID = raw.ID

	return nil
}

// Response represents a JSON-RPC response. The ID field is always emitted;
// a nil RequestID marshals as JSON null, which is the required shape for
// errors raised before an ID could be recovered.
type Response struct {
	JSONRPCVersion string     `json:"jsonrpc"`
	Result         any        `json:"result,omitempty"`
	Error          *Error     `json:"error,omitempty"`
	ID             *RequestID `json:"id"`
}

// NewResultResponse builds a successful JSON-RPC response object.
func NewResultResponse(id *RequestID, result any) *Response {
	return &Response{
		JSONRPCVersion: ProtocolVersion,
		Result:         result,
		ID:             id,
	}
}

// NewErrorResponse builds an error JSON-RPC response with the given code.
func NewErrorResponse(id *RequestID, code ErrorCode, message string, data any) *Response {
	return &Response{
		JSONRPCVersion: ProtocolVersion,
		Error: &Error{
			Code:    code,
			Message: message,
			Data:    data,
		},
		ID: id,
	}
}

// Error is a JSON-RPC error object.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Data    any       `json:"data,omitempty"`
}
