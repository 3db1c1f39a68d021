package registry

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/mdamire/mcp-serializer/internal/pagination"
	"github.com/mdamire/mcp-serializer/mcp"
)

// ResourceHandler is the function signature invoked for a templated resource
// read. Arguments arrive bound from the URI path and coerced against the
// declared metadata.
type ResourceHandler func(ctx context.Context, args map[string]any) (*ResourceResult, error)

type resourceEntry struct {
	uri   string
	extra Extra

	// Exactly one of handler or static is set.
	meta    FunctionMeta
	handler ResourceHandler
	static  *ResourceResult
}

func (e *resourceEntry) isCallable() bool { return e.handler != nil }

// Resources is the registry of readable resources. Plain resources and
// templates are listed separately; both listings are kept sorted by URI on
// every registration.
type Resources struct {
	mu        sync.RWMutex
	entries   map[string]*resourceEntry
	plain     []mcp.Resource
	templates []mcp.Resource
}

// NewResources constructs an empty resource registry.
func NewResources() *Resources {
	return &Resources{entries: make(map[string]*resourceEntry)}
}

// Register adds a callable resource under the given URI. Entries whose
// metadata declares at least one required argument are classified as
// templates and listed with a synthesized templated URI.
func (r *Resources) Register(uri string, handler ResourceHandler, meta FunctionMeta, extra Extra) mcp.Resource {
	entry := &resourceEntry{uri: uri, extra: extra, meta: meta, handler: handler}

	def := mcp.Resource{
		URI:         uri,
		Name:        firstNonEmpty(extra.Name, meta.Name),
		Title:       firstNonEmpty(extra.Title, meta.Title),
		Description: firstNonEmpty(extra.Description, meta.Description),
		MimeType:    extra.MimeType,
		Size:        extra.Size,
		Annotations: extra.Annotations,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.dropStaleListing(uri)
	r.entries[uri] = entry
	if meta.HasRequiredArgs() {
		def.URI = templatedURI(uri, meta)
		r.templates = upsertResource(r.templates, def)
	} else {
		r.plain = upsertResource(r.plain, def)
	}
	return def
}

// AddStatic adds a static-content resource under the given URI. HTTP(S) URIs
// may be registered with nil content: they appear in listings but reading
// them fails with not-found. Any other URI requires content.
func (r *Resources) AddStatic(uri string, content *ResourceResult, extra Extra) (mcp.Resource, error) {
	isHTTP := strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://")
	if content == nil && !isHTTP {
		return mcp.Resource{}, errors.New("content is required for non-HTTP resources")
	}

	if extra.MimeType == "" && content != nil {
		extra.MimeType = content.firstMimeType()
	}

	def := mcp.Resource{
		URI:         uri,
		Name:        extra.Name,
		Title:       extra.Title,
		Description: extra.Description,
		MimeType:    extra.MimeType,
		Size:        extra.Size,
		Annotations: extra.Annotations,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.dropStaleListing(uri)
	if content != nil {
		r.entries[uri] = &resourceEntry{uri: uri, extra: extra, static: content}
	} else {
		delete(r.entries, uri)
	}
	r.plain = upsertResource(r.plain, def)
	return def, nil
}

// dropStaleListing removes the listing row of an existing entry under the
// same URI, so a re-registration that changes classification does not leave
// a phantom row behind. Callers must hold the write lock.
func (r *Resources) dropStaleListing(uri string) {
	old, ok := r.entries[uri]
	if !ok {
		return
	}
	if old.isCallable() && old.meta.HasRequiredArgs() {
		r.templates = removeResource(r.templates, templatedURI(uri, old.meta))
	} else {
		r.plain = removeResource(r.plain, uri)
	}
}

// Len reports the number of resolvable entries (listed-only HTTP resources
// excluded).
func (r *Resources) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// ListedLen reports the number of listed resources and templates.
func (r *Resources) ListedLen() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plain) + len(r.templates)
}

// List returns one page of plain resource definitions.
func (r *Resources) List(p *pagination.Paginator, cursor string) (*mcp.ListResourcesResult, error) {
	r.mu.RLock()
	listing := make([]mcp.Resource, len(r.plain))
	copy(listing, r.plain)
	r.mu.RUnlock()

	page, next, err := pagination.Paginate(p, listing, cursor)
	if err != nil {
		return nil, err
	}
	return &mcp.ListResourcesResult{Resources: page, NextCursor: next}, nil
}

// ListTemplates returns one page of resource template definitions.
func (r *Resources) ListTemplates(p *pagination.Paginator, cursor string) (*mcp.ListResourceTemplatesResult, error) {
	r.mu.RLock()
	listing := make([]mcp.Resource, len(r.templates))
	copy(listing, r.templates)
	r.mu.RUnlock()

	page, next, err := pagination.Paginate(p, listing, cursor)
	if err != nil {
		return nil, err
	}
	return &mcp.ListResourceTemplatesResult{ResourceTemplates: page, NextCursor: next}, nil
}

// Read resolves a URI to a registered entry, binds and validates any path
// parameters, invokes the handler or returns the static content, and
// assembles the wire result with per-item field inheritance.
func (r *Resources) Read(ctx context.Context, uri string) (*mcp.ReadResourceResult, error) {
	entry, pathParams, err := r.resolve(uri)
	if err != nil {
		return nil, err
	}

	var result *ResourceResult
	if entry.isCallable() {
		bound, err := validateParameters(entry.meta, pathParams)
		if err != nil {
			return nil, err
		}
		result, err = entry.handler(ctx, bound)
		if err != nil {
			return nil, &FunctionCallError{Func: entry.meta.Name, Err: err}
		}
	} else {
		result = entry.static
	}

	if result == nil {
		return nil, &UnsupportedResultTypeError{Feature: "resources", Result: result}
	}

	contents := make([]mcp.ResourceContents, 0, len(result.contents))
	for _, item := range result.contents {
		contents = append(contents, inheritContentFields(item, entry))
	}
	return &mcp.ReadResourceResult{Contents: contents}, nil
}

// resolve finds the entry for a URI: exact match first (trailing-slash
// normalized), then the longest registered prefix. Remaining path segments
// bind positionally to the entry's required argument names in declaration
// order; extra segments are ignored and missing ones are left unbound for
// the validator to report.
func (r *Resources) resolve(uri string) (*resourceEntry, map[string]any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	normalized := strings.TrimRight(uri, "/")
	for saved, entry := range r.entries {
		if normalized == strings.TrimRight(saved, "/") {
			return entry, map[string]any{}, nil
		}
	}

	var best *resourceEntry
	for saved, entry := range r.entries {
		if strings.HasPrefix(uri, saved) {
			if best == nil || len(saved) > len(best.uri) {
				best = entry
			}
		}
	}
	if best == nil {
		return nil, nil, &NotFoundError{Feature: "resources", Key: uri}
	}

	params := map[string]any{}
	if best.isCallable() {
		remainder := strings.Trim(uri[len(best.uri):], "/")
		if remainder != "" {
			segments := strings.Split(remainder, "/")
			names := best.meta.RequiredArgNames()
			for i, segment := range segments {
				if i >= len(names) {
					break
				}
				params[names[i]] = segment
			}
		}
	}
	return best, params, nil
}

// lookupExtra finds the registration extras for a URI, used for
// resource-link field inheritance. Listed-only HTTP resources are matched
// through the listing buffer.
func (r *Resources) lookupExtra(uri string) (Extra, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry, ok := r.entries[uri]; ok {
		return entry.extra, true
	}
	var best *resourceEntry
	for _, entry := range r.entries {
		if strings.HasPrefix(uri, entry.uri) {
			if best == nil || len(entry.uri) > len(best.uri) {
				best = entry
			}
		}
	}
	if best != nil {
		return best.extra, true
	}
	for _, def := range r.plain {
		if def.URI == uri {
			return Extra{
				Name:        def.Name,
				Title:       def.Title,
				Description: def.Description,
				MimeType:    def.MimeType,
				Size:        def.Size,
				Annotations: def.Annotations,
			}, true
		}
	}
	return Extra{}, false
}

// inheritContentFields applies the documented per-item fallback order:
// item field, then registration extra, then function metadata.
func inheritContentFields(item mcp.ResourceContents, entry *resourceEntry) mcp.ResourceContents {
	if item.URI == "" {
		item.URI = entry.uri
	}
	if item.Name == "" {
		item.Name = firstNonEmpty(entry.extra.Name, entry.meta.Name)
	}
	if item.Title == "" {
		item.Title = firstNonEmpty(entry.extra.Title, entry.meta.Title)
	}
	if item.MimeType == "" {
		item.MimeType = entry.extra.MimeType
	}
	if item.Annotations == nil {
		item.Annotations = entry.extra.Annotations
	}
	return item
}

// templatedURI renders the registered URI with /{argName} suffixes for each
// required argument in declaration order.
func templatedURI(uri string, meta FunctionMeta) string {
	out := uri
	for _, name := range meta.RequiredArgNames() {
		out = strings.TrimRight(out, "/") + "/{" + name + "}"
	}
	return out
}

func upsertResource(list []mcp.Resource, def mcp.Resource) []mcp.Resource {
	return upsertSorted(list, def, func(existing mcp.Resource) bool {
		return existing.URI == def.URI
	}, func(a, b mcp.Resource) bool {
		return a.URI < b.URI
	})
}

func removeResource(list []mcp.Resource, uris ...string) []mcp.Resource {
	n := 0
	for _, def := range list {
		drop := false
		for _, uri := range uris {
			if def.URI == uri {
				drop = true
				break
			}
		}
		if !drop {
			list[n] = def
			n++
		}
	}
	return list[:n]
}
