// Package registry holds the accessor name ledger shared by every derivation
// of a generation session.
//
// An accessor type name is defined at most once per session. The first
// derivation that needs a name reserves it and emits the definition; later
// derivations find it reserved and only emit implementations against it.
package registry

import (
	"sort"
	"sync"
)

// DefaultPrefix is prepended to member names to form accessor names.
const DefaultPrefix = "_"

// Conventional variant names whose accessors live in the runtime package.
var builtinVariants = []string{"Ok", "Err", "Some", "None"}

// Registry is a write-once-per-name set of accessor type names.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	names    map[string]struct{}
	builtins map[string]string // accessor name -> runtime type name
}

// New creates a registry pre-seeded with the conventional accessor names
// for the given prefix.
func New(prefix string) *Registry {
	r := &Registry{
		names:    make(map[string]struct{}),
		builtins: make(map[string]string),
	}

	for _, v := range builtinVariants {
		r.names[prefix+v] = struct{}{}
		r.builtins[prefix+v] = v
	}

	return r
}

// Contains reports whether name has been reserved.
func (r *Registry) Contains(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.names[name]

	return ok
}

// Reserve records name. Reserving a name twice is a no-op.
func (r *Registry) Reserve(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.names[name] = struct{}{}
}

// TryReserve records name if it is absent and reports whether this call
// reserved it. Check and insert happen under one lock.
func (r *Registry) TryReserve(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.names[name]; ok {
		return false
	}

	r.names[name] = struct{}{}

	return true
}

// Builtin returns the runtime type name that backs a reserved conventional
// accessor name.
func (r *Registry) Builtin(name string) (string, bool) {
	t, ok := r.builtins[name]
	return t, ok
}

// Names returns the reserved names in sorted order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.names))
	for n := range r.names {
		out = append(out, n)
	}

	sort.Strings(out)

	return out
}
