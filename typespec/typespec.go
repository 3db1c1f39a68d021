// Package typespec models the semantic argument and return types declared in
// function metadata. A Type descriptor maps one-directionally to a JSON-Schema
// fragment and drives coercion of raw request values into the declared shape.
package typespec

import (
	"fmt"
	"reflect"
	"strings"
)

// Kind enumerates the semantic type kinds understood by the mapper.
type Kind int

const (
	KindAny Kind = iota
	KindString
	KindInteger
	KindFloat
	KindBoolean
	KindBytes
	KindTime
	KindUUID
	KindPath
	KindList
	KindSet
	KindTuple
	KindMap
	KindEnum
	KindStruct
	KindUnion
)

// Type is an immutable semantic type descriptor. Construct values with the
// package-level constructors; the zero value behaves like Any.
type Type struct {
	kind     Kind
	optional bool

	elem       *Type   // List, Set, variadic Tuple and Map element type
	key        *Type   // Map key type
	members    []*Type // fixed Tuple members, Union alternatives
	enumValues []any
	goType     reflect.Type // Struct target
}

// Primitive descriptors.
var (
	Any     = &Type{kind: KindAny}
	String  = &Type{kind: KindString}
	Integer = &Type{kind: KindInteger}
	Float   = &Type{kind: KindFloat}
	Boolean = &Type{kind: KindBoolean}
	Bytes   = &Type{kind: KindBytes}
	Time    = &Type{kind: KindTime}
	UUID    = &Type{kind: KindUUID}
	Path    = &Type{kind: KindPath}
)

// ListOf describes an ordered list with elements of t.
func ListOf(t *Type) *Type {
	return &Type{kind: KindList, elem: t}
}

// SetOf describes an unordered collection with unique elements of t.
func SetOf(t *Type) *Type {
	return &Type{kind: KindSet, elem: t}
}

// TupleOf describes a fixed-length tuple with the given member types.
func TupleOf(members ...*Type) *Type {
	return &Type{kind: KindTuple, members: members}
}

// VariadicTupleOf describes a variable-length tuple with elements of t.
func VariadicTupleOf(t *Type) *Type {
	return &Type{kind: KindTuple, elem: t}
}

// MapOf describes a mapping from key to value types.
func MapOf(key, value *Type) *Type {
	return &Type{kind: KindMap, key: key, elem: value}
}

// EnumOf describes a closed set of permitted values. The JSON type is
// inferred from the first member.
func EnumOf(values ...any) *Type {
	return &Type{kind: KindEnum, enumValues: values}
}

// UnionOf describes a value that may take any of the given types.
func UnionOf(members ...*Type) *Type {
	if len(members) == 1 {
		return members[0]
	}
	return &Type{kind: KindUnion, members: members}
}

// StructOf describes a structured record reflected from the Go type T.
func StructOf[T any]() *Type {
	return StructFor(reflect.TypeOf((*T)(nil)).Elem())
}

// StructFor describes a structured record reflected from rt.
func StructFor(rt reflect.Type) *Type {
	return &Type{kind: KindStruct, goType: rt}
}

// Optional returns a copy of t marked optional. Optional types keep the
// schema of the underlying type and are never marked required.
func Optional(t *Type) *Type {
	if t == nil {
		t = Any
	}
	cp := *t
	cp.optional = true
	return &cp
}

// Kind returns the semantic kind of the type.
func (t *Type) Kind() Kind {
	if t == nil {
		return KindAny
	}
	return t.kind
}

// IsOptional reports whether the type was wrapped with Optional.
func (t *Type) IsOptional() bool {
	return t != nil && t.optional
}

// Elem returns the element type for list/set/map/variadic-tuple descriptors.
func (t *Type) Elem() *Type {
	if t == nil {
		return nil
	}
	return t.elem
}

// Members returns the fixed tuple members or union alternatives.
func (t *Type) Members() []*Type {
	if t == nil {
		return nil
	}
	return t.members
}

// EnumValues returns the permitted enum values.
func (t *Type) EnumValues() []any {
	if t == nil {
		return nil
	}
	return t.enumValues
}

// GoType returns the reflected Go type of a Struct descriptor.
func (t *Type) GoType() reflect.Type {
	if t == nil {
		return nil
	}
	return t.goType
}

// Name returns a short human-readable name used in error messages.
func (t *Type) Name() string {
	if t == nil {
		return "any"
	}
	switch t.kind {
	case KindAny:
		return "any"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindBytes:
		return "bytes"
	case KindTime:
		return "date-time"
	case KindUUID:
		return "uuid"
	case KindPath:
		return "path"
	case KindList:
		return fmt.Sprintf("list(%s)", t.elem.Name())
	case KindSet:
		return fmt.Sprintf("set(%s)", t.elem.Name())
	case KindTuple:
		if t.elem != nil {
			return fmt.Sprintf("tuple(%s...)", t.elem.Name())
		}
		names := make([]string, len(t.members))
		for i, m := range t.members {
			names[i] = m.Name()
		}
		return fmt.Sprintf("tuple(%s)", strings.Join(names, ", "))
	case KindMap:
		return fmt.Sprintf("map(%s, %s)", t.key.Name(), t.elem.Name())
	case KindEnum:
		return "enum"
	case KindStruct:
		if t.goType != nil {
			return t.goType.String()
		}
		return "struct"
	case KindUnion:
		names := make([]string, len(t.members))
		for i, m := range t.members {
			names[i] = m.Name()
		}
		return fmt.Sprintf("anyOf(%s)", strings.Join(names, ", "))
	default:
		return "unknown"
	}
}
