package typespec

import (
	"encoding/json"
	"reflect"

	"github.com/invopop/jsonschema"
)

// Schema produces the JSON-Schema fragment for a type descriptor. The mapping
// is one-directional: fragments describe declared shapes for listings and are
// never used to validate inbound values.
func Schema(t *Type) map[string]any {
	if t == nil {
		return map[string]any{}
	}
	switch t.kind {
	case KindAny:
		// Accept-anything schema.
		return map[string]any{}
	case KindString, KindPath:
		return map[string]any{"type": "string"}
	case KindInteger:
		return map[string]any{"type": "integer"}
	case KindFloat:
		return map[string]any{"type": "number"}
	case KindBoolean:
		return map[string]any{"type": "boolean"}
	case KindBytes:
		return map[string]any{"type": "string", "contentEncoding": "base64"}
	case KindTime:
		return map[string]any{"type": "string", "format": "date-time"}
	case KindUUID:
		return map[string]any{"type": "string", "format": "uuid"}
	case KindList:
		return map[string]any{"type": "array", "items": Schema(t.elem)}
	case KindSet:
		return map[string]any{"type": "array", "items": Schema(t.elem), "uniqueItems": true}
	case KindTuple:
		if t.elem != nil {
			return map[string]any{"type": "array", "items": Schema(t.elem)}
		}
		prefix := make([]any, len(t.members))
		for i, m := range t.members {
			prefix[i] = Schema(m)
		}
		return map[string]any{
			"type":        "array",
			"prefixItems": prefix,
			"minItems":    len(t.members),
			"maxItems":    len(t.members),
		}
	case KindMap:
		return map[string]any{"type": "object", "additionalProperties": Schema(t.elem)}
	case KindEnum:
		return map[string]any{
			"type": jsonTypeOfValue(firstOf(t.enumValues)),
			"enum": t.enumValues,
		}
	case KindStruct:
		return structSchema(t.goType)
	case KindUnion:
		alts := make([]any, len(t.members))
		for i, m := range t.members {
			alts[i] = Schema(m)
		}
		return map[string]any{"anyOf": alts}
	default:
		return map[string]any{"type": "object"}
	}
}

// structSchema reflects a JSON Schema for a Go struct type and flattens it to
// a plain fragment. Non-struct or unreflectable types degrade to a bare
// object schema.
func structSchema(rt reflect.Type) map[string]any {
	if rt == nil {
		return map[string]any{"type": "object"}
	}
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return map[string]any{"type": "object"}
	}

	r := &jsonschema.Reflector{
		DoNotReference: true, // inline defs
		ExpandedStruct: true, // put struct at root
	}
	s := r.ReflectFromType(rt)
	if s == nil {
		return map[string]any{"type": "object"}
	}

	raw, err := json.Marshal(s)
	if err != nil {
		return map[string]any{"type": "object"}
	}
	var frag map[string]any
	if err := json.Unmarshal(raw, &frag); err != nil {
		return map[string]any{"type": "object"}
	}
	// The reflector emits a $schema marker that has no place in an inline
	// fragment.
	delete(frag, "$schema")
	delete(frag, "$id")
	if _, ok := frag["type"]; !ok {
		frag["type"] = "object"
	}
	return frag
}

// JSONTypeName returns the JSON-Schema type name a descriptor maps to, used
// where listings carry a bare type string instead of a full fragment.
func JSONTypeName(t *Type) string {
	if name, ok := Schema(t)["type"].(string); ok {
		return name
	}
	// Unions and accept-anything schemas have no single type name.
	return "string"
}

func firstOf(values []any) any {
	if len(values) == 0 {
		return nil
	}
	return values[0]
}

func jsonTypeOfValue(v any) string {
	switch v.(type) {
	case nil:
		return "string"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case float32, float64:
		return "number"
	default:
		return "string"
	}
}
