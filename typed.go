package modreg

// Get returns the instance for name as a T. It otherwise behaves exactly like
// Registry.Require. If the instance is not a T an INVALID_ARGUMENT error naming
// both types is returned.
func Get[T any](r *Registry, name string) (T, error) {
	var zero T
	instance, err := r.Require(name)
	if err != nil {
		return zero, err
	}
	if instance == nil {
		return zero, nil
	}
	result, ok := instance.(T)
	if !ok {
		return zero, invalidArgument(name, "component %q is %T, expected %T", name, instance, zero)
	}
	return result, nil
}

// MustGet behaves like Get except it panics on error. Wiring errors are usually
// programming errors, so this keeps composition roots concise.
func MustGet[T any](r *Registry, name string) T {
	result, err := Get[T](r, name)
	if err != nil {
		panic(err)
	}
	return result
}

// TryGet returns the instance for name as a T along with a boolean indicating
// whether it could be obtained. It never panics.
func TryGet[T any](r *Registry, name string) (T, bool) {
	result, err := Get[T](r, name)
	if err != nil {
		return result, false
	}
	return result, true
}
