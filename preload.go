package modreg

import (
	"context"
)

// Preload requires each of names in order and stops at the first error. With no
// names it requires every definition in registration order. This is the usual way
// for an application to build its whole component graph during startup instead of
// on first use.
func (r *Registry) Preload(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		names = r.Names()
	}
	for _, name := range names {
		if _, err := r.RequireContext(ctx, name); err != nil {
			return err
		}
	}
	return nil
}
