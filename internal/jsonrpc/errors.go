package jsonrpc

// ErrorCode is a JSON-RPC 2.0 error code.
type ErrorCode int

const (
	// ErrorCodeParseError indicates invalid JSON was received by the server.
	ErrorCodeParseError ErrorCode = -32700
	// ErrorCodeInvalidRequest indicates the JSON sent is not a valid Request object.
	ErrorCodeInvalidRequest ErrorCode = -32600
	// ErrorCodeMethodNotFound indicates the method does not exist / is not available.
	ErrorCodeMethodNotFound ErrorCode = -32601
	// ErrorCodeInvalidParams indicates invalid method parameters.
	ErrorCodeInvalidParams ErrorCode = -32602
	// ErrorCodeInternalError indicates an internal JSON-RPC error.
	ErrorCodeInternalError ErrorCode = -32603
)

// Feature-specific server error codes. These sit in the implementation-defined
// -3200x range and must remain stable for client compatibility.
const (
	// ErrorCodeToolCallError indicates the registered tool function failed.
	ErrorCodeToolCallError ErrorCode = -32001
	// ErrorCodeToolNotFound indicates no tool is registered under the requested name.
	ErrorCodeToolNotFound ErrorCode = -32002
	// ErrorCodeResourceFetchError indicates the registered resource function failed.
	ErrorCodeResourceFetchError ErrorCode = -32003
	// ErrorCodeResourceNotFound indicates no resource matched the requested URI.
	ErrorCodeResourceNotFound ErrorCode = -32004
	// ErrorCodeResourceTemplateParam indicates a required template parameter was not bound.
	ErrorCodeResourceTemplateParam ErrorCode = -32005
	// ErrorCodePromptCallError indicates the registered prompt function failed.
	ErrorCodePromptCallError ErrorCode = -32006
	// ErrorCodePromptNotFound indicates no prompt is registered under the requested name.
	ErrorCodePromptNotFound ErrorCode = -32007
	// ErrorCodeUnsupportedResultType indicates a registered function returned a
	// value the result assembler cannot serialize.
	ErrorCodeUnsupportedResultType ErrorCode = -32008
)
