package registry

import (
	"context"
	"sync"

	"github.com/mdamire/mcp-serializer/internal/pagination"
	"github.com/mdamire/mcp-serializer/mcp"
	"github.com/mdamire/mcp-serializer/typespec"
)

// PromptHandler is the function signature invoked for prompts/get. Arguments
// arrive validated and coerced against the declared metadata.
type PromptHandler func(ctx context.Context, args map[string]any) (*PromptResult, error)

type promptEntry struct {
	meta    FunctionMeta
	extra   Extra
	handler PromptHandler
}

// Prompts is the registry of prompt templates. Listing is kept sorted by
// name on every registration.
type Prompts struct {
	mu      sync.RWMutex
	entries map[string]*promptEntry
	listing []mcp.Prompt
}

// NewPrompts constructs an empty prompt registry.
func NewPrompts() *Prompts {
	return &Prompts{entries: make(map[string]*promptEntry)}
}

// Register adds a prompt under extra.Name, falling back to the function
// name. Re-registering a name replaces the previous entry.
func (p *Prompts) Register(handler PromptHandler, meta FunctionMeta, extra Extra) mcp.Prompt {
	key := firstNonEmpty(extra.Name, meta.Name)

	def := mcp.Prompt{
		Name:        key,
		Title:       firstNonEmpty(extra.Title, meta.Title),
		Description: firstNonEmpty(extra.Description, meta.Description),
		Arguments:   promptArguments(meta),
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries[key] = &promptEntry{meta: meta, extra: extra, handler: handler}
	p.listing = upsertSorted(p.listing, def, func(existing mcp.Prompt) bool {
		return existing.Name == key
	}, func(a, b mcp.Prompt) bool {
		return a.Name < b.Name
	})
	return def
}

// Len reports the number of registered prompts.
func (p *Prompts) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}

// List returns one page of prompt definitions.
func (p *Prompts) List(pg *pagination.Paginator, cursor string) (*mcp.ListPromptsResult, error) {
	p.mu.RLock()
	listing := make([]mcp.Prompt, len(p.listing))
	copy(listing, p.listing)
	p.mu.RUnlock()

	page, next, err := pagination.Paginate(pg, listing, cursor)
	if err != nil {
		return nil, err
	}
	return &mcp.ListPromptsResult{Prompts: page, NextCursor: next}, nil
}

// Get validates the arguments for a named prompt, invokes its handler, and
// assembles the wire result.
func (p *Prompts) Get(ctx context.Context, name string, args map[string]any) (*mcp.GetPromptResult, error) {
	p.mu.RLock()
	entry, ok := p.entries[name]
	p.mu.RUnlock()
	if !ok {
		return nil, &NotFoundError{Feature: "prompts", Key: name}
	}

	bound, err := validateParameters(entry.meta, args)
	if err != nil {
		return nil, err
	}

	result, err := entry.handler(ctx, bound)
	if err != nil {
		return nil, &FunctionCallError{Func: entry.meta.Name, Err: err}
	}
	if result == nil {
		return nil, &UnsupportedResultTypeError{Feature: "prompts", Result: result}
	}

	return &mcp.GetPromptResult{
		Description: firstNonEmpty(entry.extra.Description, entry.meta.Description),
		Messages:    result.Messages(),
	}, nil
}

func promptArguments(meta FunctionMeta) []mcp.PromptArgument {
	if len(meta.Args) == 0 {
		return nil
	}
	out := make([]mcp.PromptArgument, 0, len(meta.Args))
	for _, arg := range meta.Args {
		out = append(out, mcp.PromptArgument{
			Name:        arg.Name,
			Type:        typespec.JSONTypeName(arg.Type),
			Description: arg.Description,
			Required:    arg.Required,
		})
	}
	return out
}
