package registry

import (
	"github.com/mdamire/mcp-serializer/mcp"
	"github.com/mdamire/mcp-serializer/typespec"
)

// ArgMeta describes a single declared argument of a registered function.
type ArgMeta struct {
	Name        string
	Type        *typespec.Type
	Description string
	Required    bool
	// Default is applied when the argument is absent from the request.
	// HasDefault distinguishes a declared nil default from no default at all.
	Default    any
	HasDefault bool
}

// FunctionMeta is the caller-constructed description of a registered
// function: its identity, ordered arguments and return type. The registries
// consume it as-is and never introspect function values.
type FunctionMeta struct {
	Name        string
	Title       string
	Description string
	Args        []ArgMeta
	ReturnType  *typespec.Type
}

// HasRequiredArgs reports whether at least one argument is required. Resource
// entries with required arguments are classified as templates.
func (m FunctionMeta) HasRequiredArgs() bool {
	for _, arg := range m.Args {
		if arg.Required {
			return true
		}
	}
	return false
}

// RequiredArgNames returns the names of required arguments in declaration
// order. These are the positional binding targets for template URIs.
func (m FunctionMeta) RequiredArgNames() []string {
	var names []string
	for _, arg := range m.Args {
		if arg.Required {
			names = append(names, arg.Name)
		}
	}
	return names
}

// Extra carries registration-time overrides used as fallback when produced
// content omits the corresponding field.
type Extra struct {
	Name        string
	Title       string
	Description string
	MimeType    string
	Size        int64
	Annotations *mcp.Annotations
}
