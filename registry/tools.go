package registry

import (
	"context"
	"sort"
	"sync"

	"github.com/mdamire/mcp-serializer/internal/pagination"
	"github.com/mdamire/mcp-serializer/mcp"
	"github.com/mdamire/mcp-serializer/typespec"
)

// ToolHandler is the function signature invoked for a tool call. Arguments
// arrive already validated and coerced against the declared metadata.
type ToolHandler func(ctx context.Context, args map[string]any) (ToolOutcome, error)

type toolEntry struct {
	meta    FunctionMeta
	extra   Extra
	handler ToolHandler
}

// Tools is the registry of callable tools. Listings are kept sorted by tool
// name on every registration.
type Tools struct {
	mu      sync.RWMutex
	entries map[string]*toolEntry
	listing []mcp.Tool
}

// NewTools constructs an empty tool registry.
func NewTools() *Tools {
	return &Tools{entries: make(map[string]*toolEntry)}
}

// Register adds a callable tool. The listing key is extra.Name when set,
// otherwise the metadata name; registering the same key again overwrites the
// previous entry. Returns the rendered definition.
func (t *Tools) Register(handler ToolHandler, meta FunctionMeta, extra Extra) mcp.Tool {
	name := firstNonEmpty(extra.Name, meta.Name)
	def := mcp.Tool{
		Name:         name,
		Title:        firstNonEmpty(extra.Title, meta.Title),
		Description:  firstNonEmpty(extra.Description, meta.Description),
		InputSchema:  buildInputSchema(meta),
		OutputSchema: buildOutputSchema(meta),
		Annotations:  extra.Annotations,
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[name] = &toolEntry{meta: meta, extra: extra, handler: handler}
	t.listing = upsertSorted(t.listing, def, func(existing mcp.Tool) bool {
		return existing.Name == name
	}, func(a, b mcp.Tool) bool {
		return a.Name < b.Name
	})
	return def
}

// Len reports the number of registered tools.
func (t *Tools) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// List returns one page of tool definitions.
func (t *Tools) List(p *pagination.Paginator, cursor string) (*mcp.ListToolsResult, error) {
	t.mu.RLock()
	listing := make([]mcp.Tool, len(t.listing))
	copy(listing, t.listing)
	t.mu.RUnlock()

	page, next, err := pagination.Paginate(p, listing, cursor)
	if err != nil {
		return nil, err
	}
	return &mcp.ListToolsResult{Tools: page, NextCursor: next}, nil
}

// Call resolves a tool by name, validates the supplied arguments, invokes the
// handler and assembles the wire result.
func (t *Tools) Call(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	t.mu.RLock()
	entry, ok := t.entries[name]
	t.mu.RUnlock()
	if !ok {
		return nil, &NotFoundError{Feature: "tools", Key: name}
	}

	bound, err := validateParameters(entry.meta, args)
	if err != nil {
		return nil, err
	}

	outcome, err := entry.handler(ctx, bound)
	if err != nil {
		return nil, &FunctionCallError{Func: entry.meta.Name, Err: err}
	}
	return assembleToolOutcome(outcome)
}

// buildInputSchema renders the object schema of a function's arguments, or
// nil when it declares none.
func buildInputSchema(meta FunctionMeta) map[string]any {
	if len(meta.Args) == 0 {
		return nil
	}
	properties := make(map[string]any, len(meta.Args))
	var required []string
	for _, arg := range meta.Args {
		frag := typespec.Schema(arg.Type)
		if arg.Description != "" {
			frag["description"] = arg.Description
		}
		properties[arg.Name] = frag
		if arg.Required && !arg.Type.IsOptional() {
			required = append(required, arg.Name)
		}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// buildOutputSchema renders the declared return type when it is a structured
// record; scalar and absent return types produce no output schema.
func buildOutputSchema(meta FunctionMeta) map[string]any {
	if meta.ReturnType == nil || meta.ReturnType.Kind() != typespec.KindStruct {
		return nil
	}
	return typespec.Schema(meta.ReturnType)
}

// upsertSorted replaces a matching element (or appends) and re-sorts. The
// listing buffers are small and registration happens once at startup, so a
// sort per insert is acceptable.
func upsertSorted[T any](list []T, item T, match func(T) bool, less func(T, T) bool) []T {
	replaced := false
	for i := range list {
		if match(list[i]) {
			list[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		list = append(list, item)
	}
	sort.SliceStable(list, func(i, j int) bool { return less(list[i], list[j]) })
	return list
}
