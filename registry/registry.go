package registry

import "sync"

// Registry aggregates the three feature registries. Feature containers are
// created lazily so capability advertisement can reflect which features were
// actually populated.
type Registry struct {
	mu        sync.Mutex
	tools     *Tools
	resources *Resources
	prompts   *Prompts
}

// New constructs an empty registry.
func New() *Registry {
	return &Registry{}
}

// Tools returns the tool registry, creating it on first use.
func (r *Registry) Tools() *Tools {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tools == nil {
		r.tools = NewTools()
	}
	return r.tools
}

// Resources returns the resource registry, creating it on first use.
func (r *Registry) Resources() *Resources {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.resources == nil {
		r.resources = NewResources()
	}
	return r.resources
}

// Prompts returns the prompt registry, creating it on first use.
func (r *Registry) Prompts() *Prompts {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.prompts == nil {
		r.prompts = NewPrompts()
	}
	return r.prompts
}

// HasTools reports whether any tools were registered.
func (r *Registry) HasTools() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tools != nil && r.tools.Len() > 0
}

// HasResources reports whether any resources were registered or listed.
func (r *Registry) HasResources() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resources != nil && r.resources.ListedLen() > 0
}

// HasPrompts reports whether any prompts were registered.
func (r *Registry) HasPrompts() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.prompts != nil && r.prompts.Len() > 0
}
