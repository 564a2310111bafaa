package modreg

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

type TimingMode int

const (
	// TimingDisable turns off constructor timing.
	TimingDisable TimingMode = iota

	// TimingConstructors starts a go-timing span, named after the component, around
	// every constructor call. Spans nest under any timing root found on the context
	// passed to RequireContext or Preload, so the result shows the exact order in
	// which the dependency graph was built and where the time went.
	TimingConstructors
)

// Structured log field names.
const (
	fieldComponent    = "component"
	fieldDependencies = "dependencies"
	fieldConstructor  = "constructor"
	fieldDuration     = "duration_ms"
)

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for definition and construction events. The
// default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithTiming sets the constructor timing mode.
func WithTiming(mode TimingMode) Option {
	return func(r *Registry) {
		r.timing = mode
	}
}

// Registry holds named component definitions and the instances built from them.
//
// Components are registered with Define or DefineSimple and built lazily by
// Require. Requiring a component first builds every dependency it declares,
// depth-first and in declaration order, and then calls its constructor with those
// instances as positional arguments. Every instance is memoized for the life of the
// registry, so a constructor runs at most once no matter how many components
// depend on it or how often it is required.
//
// Dependency cycles, including a component depending on itself, are rejected with
// a CIRCULAR_DEPENDENCY error before any unbounded recursion can happen. Names that
// are referenced but never defined fail with UNDEFINED_DEPENDENCY. Definitions can
// never be replaced or removed.
//
// A Registry is safe for concurrent use. Every call holds the registry lock for its
// whole duration, constructors included, which means a constructor must not call
// back into the registry that is building it. Constructors get what they need as
// arguments instead.
type Registry struct {
	lock        sync.Mutex
	definitions map[string]*definition
	order       []string
	instances   map[string]any
	logger      zerolog.Logger
	timing      TimingMode
}

// NewRegistry returns an empty registry configured by opts.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		definitions: map[string]*definition{},
		instances:   map[string]any{},
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Define registers a component named name whose constructor receives the
// instances of deps, in order.
//
// ctor is either a function or a constant. A function may take a context.Context
// as its first parameter, followed by exactly one parameter per dependency (a
// final variadic parameter may absorb the rest), and must return T or (T, error).
// Any other non-nil value is a constant: requiring the component returns that
// value unchanged.
//
// Nothing is constructed here. Define fails with DUPLICATE_DEFINITION if name is
// already registered, leaving the first definition in place, and with
// INVALID_ARGUMENT if name or a dependency id is empty, ctor is nil, or the
// function signature does not fit deps.
func (r *Registry) Define(name string, deps []string, ctor any) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if name == "" {
		return invalidArgument(name, "id must be a non-empty string")
	}
	if _, found := r.definitions[name]; found {
		return duplicateDefinition(name)
	}

	def, err := newDefinition(name, deps, ctor)
	if err != nil {
		return err
	}

	r.definitions[name] = def
	r.order = append(r.order, name)

	r.logger.Debug().
		Str(fieldComponent, name).
		Strs(fieldDependencies, def.deps).
		Str(fieldConstructor, def.ctor.signature()).
		Msg("component defined")
	return nil
}

// DefineSimple registers a component with no dependencies. It is Define with an
// empty dependency list.
func (r *Registry) DefineSimple(name string, ctor any) error {
	return r.Define(name, nil, ctor)
}

// Has reports whether name is defined.
func (r *Registry) Has(name string) bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	_, found := r.definitions[name]
	return found
}

// Definition returns a copy of the definition registered under name.
func (r *Registry) Definition(name string) (Definition, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	def, found := r.definitions[name]
	if !found {
		return Definition{}, false
	}
	return def.view(), true
}

// Names returns every defined name in registration order.
func (r *Registry) Names() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]string{}, r.order...)
}

// Initialized reports whether an instance for name has been constructed. It never
// triggers construction.
func (r *Registry) Initialized(name string) bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	_, found := r.instances[name]
	return found
}

// Require returns the instance for name, constructing it and any dependencies that
// have not been constructed yet. Constructors that accept a context receive
// context.Background().
func (r *Registry) Require(name string) (any, error) {
	return r.RequireContext(context.Background(), name)
}

// RequireContext is Require with a context that is handed to constructors that
// accept one and that carries the timing root when WithTiming is enabled.
func (r *Registry) RequireContext(ctx context.Context, name string) (any, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.resolveInstance(ctx, name, nil)
}

// DependencyIDs returns the transitive dependencies of name, deduplicated, with
// each dependency listed after its own dependencies. name itself is not included.
// Nothing is constructed.
func (r *Registry) DependencyIDs(name string) ([]string, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	return newIDResolver(r).resolve(name, nil)
}
