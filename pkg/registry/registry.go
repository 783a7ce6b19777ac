// Package registry holds the set of message descriptors this module
// knows how to decode into, keyed by full protobuf name -- a narrower,
// purpose-built analog of protoregistry.Files/protoregistry.Types,
// scoped to exactly what the HTTP and CLI surfaces need: lookup by full
// name, and iteration for the docs endpoint's index.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/deepankarm/pbjson/pkg/pbjson"
	"github.com/deepankarm/pbjson/pkg/protoadapter"
)

// Registry is safe for concurrent use: Register is expected to run once
// at startup, but Lookup/Names/NewMessage/Descriptor may be called from
// concurrent request-handling goroutines.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]protoreflect.MessageDescriptor
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{entries: make(map[string]protoreflect.MessageDescriptor)}
}

// Register adds md under its own full name, overwriting any previous
// entry with the same name.
func (r *Registry) Register(md protoreflect.MessageDescriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[string(md.FullName())] = md
}

// Lookup resolves fullName to its descriptor.
func (r *Registry) Lookup(fullName string) (protoreflect.MessageDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	md, ok := r.entries[fullName]
	return md, ok
}

// Names lists every registered full name, sorted, for the docs
// endpoint's index.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for n := range r.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NewMessage builds a fresh, empty mutable message for fullName via
// dynamicpb, the factory half of the registry's job.
func (r *Registry) NewMessage(fullName string) (protoreflect.Message, error) {
	md, ok := r.Lookup(fullName)
	if !ok {
		return nil, fmt.Errorf("registry: %q is not registered", fullName)
	}
	return dynamicpb.NewMessage(md), nil
}

// Descriptor resolves fullName to the core engine's read-only descriptor
// collaborator.
func (r *Registry) Descriptor(fullName string) (pbjson.Message, error) {
	md, ok := r.Lookup(fullName)
	if !ok {
		return nil, fmt.Errorf("registry: %q is not registered", fullName)
	}
	return protoadapter.NewDescriptor(md), nil
}
