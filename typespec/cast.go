package typespec

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

// CastError reports a value that could not be coerced to its declared type.
type CastError struct {
	Value    any
	TypeName string
	Err      error
}

func (e *CastError) Error() string {
	return fmt.Sprintf("cannot cast %v to %s: %v", e.Value, e.TypeName, e.Err)
}

func (e *CastError) Unwrap() error { return e.Err }

func castError(value any, t *Type, err error) error {
	return &CastError{Value: value, TypeName: t.Name(), Err: err}
}

// Cast coerces a raw request value to the declared type. A string "null"
// (case-insensitive) coerces to nil for any target. Values already of the
// target shape pass through unchanged.
func Cast(value any, t *Type) (any, error) {
	if t == nil || t.kind == KindAny {
		return value, nil
	}
	if value == nil {
		return nil, nil
	}
	if s, ok := value.(string); ok && strings.EqualFold(s, "null") {
		return nil, nil
	}

	switch t.kind {
	case KindString, KindPath:
		out, err := cast.ToStringE(value)
		if err != nil {
			return nil, castError(value, t, err)
		}
		return out, nil

	case KindInteger:
		out, err := cast.ToInt64E(value)
		if err != nil {
			return nil, castError(value, t, err)
		}
		return out, nil

	case KindFloat:
		out, err := cast.ToFloat64E(value)
		if err != nil {
			return nil, castError(value, t, err)
		}
		return out, nil

	case KindBoolean:
		return castBool(value), nil

	case KindBytes:
		return castBytes(value, t)

	case KindTime:
		if ts, ok := value.(time.Time); ok {
			return ts, nil
		}
		out, err := cast.ToTimeE(value)
		if err != nil {
			return nil, castError(value, t, err)
		}
		return out, nil

	case KindUUID:
		return castUUID(value, t)

	case KindList, KindSet:
		return castList(value, t, t.elem)

	case KindTuple:
		return castTuple(value, t)

	case KindMap:
		return castMap(value, t)

	case KindEnum:
		return castEnum(value, t)

	case KindStruct:
		return castStruct(value, t)

	case KindUnion:
		var lastErr error
		for _, m := range t.members {
			out, err := Cast(value, m)
			if err == nil {
				return out, nil
			}
			lastErr = err
		}
		return nil, castError(value, t, lastErr)

	default:
		return value, nil
	}
}

// castBool recognizes the conventional truthy/falsy token sets and falls back
// to a lenient truthiness conversion, mirroring how listing hosts pass
// string-typed flags.
func castBool(value any) bool {
	if b, ok := value.(bool); ok {
		return b
	}
	if s, ok := value.(string); ok {
		switch strings.ToLower(s) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
		return len(s) > 0
	}
	if b, err := cast.ToBoolE(value); err == nil {
		return b
	}
	return !reflect.ValueOf(value).IsZero()
}

func castBytes(value any, t *Type) (any, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		raw, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, castError(value, t, err)
		}
		return raw, nil
	default:
		return nil, castError(value, t, fmt.Errorf("expected base64 string or bytes, got %T", value))
	}
}

func castUUID(value any, t *Type) (any, error) {
	switch v := value.(type) {
	case uuid.UUID:
		return v, nil
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, castError(value, t, err)
		}
		return id, nil
	default:
		return nil, castError(value, t, fmt.Errorf("expected UUID string, got %T", value))
	}
}

func castList(value any, t, elem *Type) (any, error) {
	items, err := asSlice(value)
	if err != nil {
		return nil, castError(value, t, err)
	}
	out := make([]any, len(items))
	for i, item := range items {
		cv, err := Cast(item, elem)
		if err != nil {
			return nil, castError(value, t, err)
		}
		out[i] = cv
	}
	return out, nil
}

func castTuple(value any, t *Type) (any, error) {
	if t.elem != nil {
		return castList(value, t, t.elem)
	}
	items, err := asSlice(value)
	if err != nil {
		return nil, castError(value, t, err)
	}
	if len(items) != len(t.members) {
		return nil, castError(value, t, fmt.Errorf("expected %d items, got %d", len(t.members), len(items)))
	}
	out := make([]any, len(items))
	for i, item := range items {
		cv, err := Cast(item, t.members[i])
		if err != nil {
			return nil, castError(value, t, err)
		}
		out[i] = cv
	}
	return out, nil
}

func castMap(value any, t *Type) (any, error) {
	var m map[string]any
	switch v := value.(type) {
	case map[string]any:
		m = v
	case string:
		if err := json.Unmarshal([]byte(v), &m); err != nil {
			return nil, castError(value, t, err)
		}
	default:
		return nil, castError(value, t, fmt.Errorf("expected object or JSON string, got %T", value))
	}
	out := make(map[string]any, len(m))
	for k, item := range m {
		cv, err := Cast(item, t.elem)
		if err != nil {
			return nil, castError(value, t, err)
		}
		out[k] = cv
	}
	return out, nil
}

func castEnum(value any, t *Type) (any, error) {
	memberType := enumMemberType(firstOf(t.enumValues))
	cv, err := Cast(value, memberType)
	if err != nil {
		return nil, castError(value, t, err)
	}
	for _, allowed := range t.enumValues {
		av, aerr := Cast(allowed, memberType)
		if aerr == nil && reflect.DeepEqual(av, cv) {
			return cv, nil
		}
	}
	return nil, castError(value, t, fmt.Errorf("value is not a member of the enum"))
}

func castStruct(value any, t *Type) (any, error) {
	if t.goType != nil && reflect.TypeOf(value) == t.goType {
		return value, nil
	}
	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, castError(value, t, err)
		}
		raw = b
	}
	if t.goType == nil {
		var out map[string]any
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, castError(value, t, err)
		}
		return out, nil
	}
	rt := t.goType
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	target := reflect.New(rt)
	if err := json.Unmarshal(raw, target.Interface()); err != nil {
		return nil, castError(value, t, err)
	}
	return target.Elem().Interface(), nil
}

func enumMemberType(v any) *Type {
	switch v.(type) {
	case bool:
		return Boolean
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Integer
	case float32, float64:
		return Float
	default:
		return String
	}
}

// asSlice accepts a native slice or a JSON-encoded array string.
func asSlice(value any) ([]any, error) {
	switch v := value.(type) {
	case []any:
		return v, nil
	case string:
		var out []any
		if err := json.Unmarshal([]byte(v), &out); err != nil {
			return nil, err
		}
		return out, nil
	default:
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			out := make([]any, rv.Len())
			for i := range out {
				out[i] = rv.Index(i).Interface()
			}
			return out, nil
		}
		return nil, fmt.Errorf("expected array or JSON string, got %T", value)
	}
}
