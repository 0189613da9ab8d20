package ir

import "sort"

// Registry maps qualified operation names to their definitions.
//
// A registry is populated once at startup and read-only afterwards. The
// text parser and the builder resolve operation names through it.
type Registry struct {
	defs map[string]*OpDef
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*OpDef)}
}

// Register adds an operation definition. A definition registered under a
// name that already exists replaces the previous one.
func (r *Registry) Register(def *OpDef) {
	r.defs[def.QualifiedName()] = def
}

// Get returns the definition for a qualified name, or nil if unregistered.
func (r *Registry) Get(qualified string) *OpDef {
	return r.defs[qualified]
}

// Has reports whether a definition is registered for the qualified name.
func (r *Registry) Has(qualified string) bool {
	return r.defs[qualified] != nil
}

// Names returns all registered qualified names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
