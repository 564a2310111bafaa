package modreg

// Validate walks the dependency graph of every definition and returns the first
// CIRCULAR_DEPENDENCY or UNDEFINED_DEPENDENCY error it finds. It is meant to be
// called once all definitions are in place, before anything is required, so that
// wiring mistakes surface at startup rather than on the first request that
// happens to reach them. Nothing is constructed.
func (r *Registry) Validate() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	ids := newIDResolver(r)
	for _, name := range r.order {
		if _, err := ids.resolve(name, nil); err != nil {
			return err
		}
	}
	return nil
}
