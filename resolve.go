package modreg

import (
	"context"
	"time"

	"github.com/gburgyan/go-timing"
)

// resolveInstance returns the memoized instance for id, building it and every
// dependency that has not been built yet. The caller holds the registry lock.
func (r *Registry) resolveInstance(ctx context.Context, id string, path resolutionPath) (any, error) {
	if instance, found := r.instances[id]; found {
		return instance, nil
	}

	def, found := r.definitions[id]
	if !found {
		return nil, undefinedDependency(id)
	}

	path = path.push(id)

	args := make([]any, 0, len(def.deps))
	for _, depID := range def.deps {
		if path.contains(depID) {
			return nil, circularDependency(path, depID)
		}
		dep, err := r.resolveInstance(ctx, depID, path)
		if err != nil {
			return nil, err
		}
		args = append(args, dep)
	}

	instance, err := r.construct(ctx, def, args)
	if err != nil {
		return nil, err
	}
	r.instances[id] = instance
	return instance, nil
}

func (r *Registry) construct(ctx context.Context, def *definition, args []any) (any, error) {
	if def.ctor.kind == constructorConstant {
		return def.ctor.value, nil
	}

	if r.timing == TimingConstructors {
		timingCtx, complete := timing.Start(ctx, def.name)
		defer complete()
		ctx = timingCtx
	}

	start := time.Now()
	instance, err := def.ctor.invoke(ctx, def.name, args)
	if err != nil {
		r.logger.Warn().
			Err(err).
			Str(fieldComponent, def.name).
			Msg("component construction failed")
		return nil, err
	}

	r.logger.Debug().
		Str(fieldComponent, def.name).
		Int64(fieldDuration, time.Since(start).Milliseconds()).
		Msg("component constructed")
	return instance, nil
}

// idResolver walks the definition graph without touching the instance memo.
//
// Closures that resolved successfully are cached for the lifetime of the resolver.
// A successful closure proves its subgraph is defined and acyclic, and a node on
// any later path that the subgraph could reach would have formed a cycle inside
// it, so reusing the closure yields the same result and the same errors as
// walking it again.
type idResolver struct {
	r        *Registry
	closures map[string][]string
}

func newIDResolver(r *Registry) *idResolver {
	return &idResolver{
		r:        r,
		closures: map[string][]string{},
	}
}

// resolve returns the dependency ids of id: for each dependency in declaration
// order, its own closure followed by the dependency itself, deduplicated keeping
// the first occurrence.
func (ir *idResolver) resolve(id string, path resolutionPath) ([]string, error) {
	if ids, found := ir.closures[id]; found {
		return append([]string{}, ids...), nil
	}

	def, found := ir.r.definitions[id]
	if !found {
		return nil, undefinedDependency(id)
	}

	path = path.push(id)

	var ids []string
	for _, depID := range def.deps {
		if path.contains(depID) {
			return nil, circularDependency(path, depID)
		}
		sub, err := ir.resolve(depID, path)
		if err != nil {
			return nil, err
		}
		ids = append(ids, sub...)
		ids = append(ids, depID)
	}

	ids = uniq(ids)
	ir.closures[id] = ids
	return append([]string{}, ids...), nil
}
