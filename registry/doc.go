// Package registry holds the per-feature registries of callable and static
// entries that the dispatch layer routes requests to.
//
// A Registry aggregates three feature containers (tools, resources, prompts).
// Each container keeps a key→entry map and a listing buffer sorted by the
// feature's natural key, builds paginated listing results, resolves an
// incoming key or URI to a registered entry, validates and coerces the
// supplied parameters against the entry's declared metadata, invokes the
// underlying function and folds its result accumulator into the wire shape.
//
// Registration is expected to happen once at startup before serving begins.
// Containers guard their state with an RWMutex so a fully-registered
// Registry is safe for concurrent dispatch.
package registry
