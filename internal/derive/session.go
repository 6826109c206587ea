package derive

import (
	"optic-generator/internal/registry"
)

// DefaultRuntimeAlias is the package name generated code uses to refer to the
// optics runtime.
const DefaultRuntimeAlias = "optics"

// Options configures how accessors are named and referenced.
type Options struct {
	// Prefix is prepended to member names to form accessor names.
	Prefix string
	// RuntimeAlias is the identifier the generated file imports the optics
	// runtime as.
	RuntimeAlias string
}

// DefaultOptions returns the default derivation options.
func DefaultOptions() Options {
	return Options{
		Prefix:       registry.DefaultPrefix,
		RuntimeAlias: DefaultRuntimeAlias,
	}
}

// Session is the state shared by all derivations of one generation run.
// The registry is the only state that outlives a single derivation call.
type Session struct {
	opts     Options
	registry *registry.Registry
}

// NewSession creates a session with a fresh registry.
func NewSession(opts Options) *Session {
	if opts.Prefix == "" {
		opts.Prefix = registry.DefaultPrefix
	}

	if opts.RuntimeAlias == "" {
		opts.RuntimeAlias = DefaultRuntimeAlias
	}

	return &Session{opts: opts, registry: registry.New(opts.Prefix)}
}

// NewSessionWithRegistry creates a session over an existing registry, so
// several sessions can share one ledger.
func NewSessionWithRegistry(opts Options, reg *registry.Registry) *Session {
	s := NewSession(opts)
	s.registry = reg

	return s
}

// Registry returns the session's name registry.
func (s *Session) Registry() *registry.Registry {
	return s.registry
}

// Options returns the session options.
func (s *Session) Options() Options {
	return s.opts
}
