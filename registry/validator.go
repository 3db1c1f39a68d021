package registry

import (
	"errors"

	"github.com/mdamire/mcp-serializer/typespec"
)

// validateParameters binds raw request parameters against the declared
// argument metadata: required check, type coercion, default application.
//
// The result contains only arguments that were supplied or defaulted. Unset
// optionals without a declared default are omitted entirely so the callee
// never sees keys its signature does not expect set.
func validateParameters(meta FunctionMeta, raw map[string]any) (map[string]any, error) {
	bound := make(map[string]any, len(meta.Args))
	for _, arg := range meta.Args {
		value, ok := raw[arg.Name]
		if !ok {
			if arg.Required {
				return nil, &RequiredParameterNotFoundError{Func: meta.Name, Param: arg.Name}
			}
			if arg.HasDefault {
				bound[arg.Name] = arg.Default
			}
			continue
		}

		cast, err := typespec.Cast(value, arg.Type)
		if err != nil {
			var ce *typespec.CastError
			typeName := arg.Type.Name()
			if errors.As(err, &ce) {
				typeName = ce.TypeName
			}
			return nil, &ParameterCastError{
				Func:     meta.Name,
				Param:    arg.Name,
				Value:    value,
				TypeName: typeName,
				Err:      err,
			}
		}
		bound[arg.Name] = cast
	}
	return bound, nil
}
