package registry

import "fmt"

// NotFoundError indicates that no entry is registered under the requested key.
type NotFoundError struct {
	Feature string
	Key     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s entry %q not found", e.Feature, e.Key)
}

// FunctionCallError wraps a failure raised by the registered function itself.
// Only the message of the underlying error is surfaced to clients.
type FunctionCallError struct {
	Func string
	Err  error
}

func (e *FunctionCallError) Error() string {
	return fmt.Sprintf("failed to call function %s: %v", e.Func, e.Err)
}

func (e *FunctionCallError) Unwrap() error { return e.Err }

// ParameterCastError indicates a supplied parameter value could not be
// coerced to its declared type.
type ParameterCastError struct {
	Func     string
	Param    string
	Value    any
	TypeName string
	Err      error
}

func (e *ParameterCastError) Error() string {
	return fmt.Sprintf("failed to cast parameter %s to %s for function %s: %v", e.Param, e.TypeName, e.Func, e.Err)
}

func (e *ParameterCastError) Unwrap() error { return e.Err }

// RequiredParameterNotFoundError indicates a required parameter was absent
// from the request (or, for templates, unbound by the URI path).
type RequiredParameterNotFoundError struct {
	Func  string
	Param string
}

func (e *RequiredParameterNotFoundError) Error() string {
	return fmt.Sprintf("required parameter %s not found for function %s", e.Param, e.Func)
}

// UnsupportedResultTypeError indicates a registered function produced a value
// the result assembler cannot serialize.
type UnsupportedResultTypeError struct {
	Feature string
	Result  any
}

func (e *UnsupportedResultTypeError) Error() string {
	return fmt.Sprintf("%s function returned unsupported result type %T", e.Feature, e.Result)
}
