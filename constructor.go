package modreg

import (
	"context"
	"fmt"
	"reflect"
	"strings"
)

var (
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
)

type constructorKind int

const (
	constructorCallable constructorKind = iota
	constructorConstant
)

// constructor is the decided form of the ctor argument to Define. A func becomes
// a callable whose signature has been checked against the dependency count, and
// anything else becomes a constant that is returned verbatim.
type constructor struct {
	kind  constructorKind
	value any

	fn       reflect.Value
	fnType   reflect.Type
	hasCtx   bool
	hasError bool
}

// newConstructor classifies ctor once so resolution never has to inspect it again.
func newConstructor(id string, ctor any, depCount int) (*constructor, error) {
	if ctor == nil {
		return nil, invalidArgument(id, "arg for %q must be a value or a function", id)
	}

	fnType := reflect.TypeOf(ctor)
	if fnType.Kind() != reflect.Func {
		return &constructor{kind: constructorConstant, value: ctor}, nil
	}

	fn := reflect.ValueOf(ctor)
	if fn.IsNil() {
		return nil, invalidArgument(id, "constructor for %q is a nil function", id)
	}

	c := &constructor{
		kind:   constructorCallable,
		fn:     fn,
		fnType: fnType,
	}

	switch fnType.NumOut() {
	case 1:
		if fnType.Out(0) == errorType {
			return nil, invalidArgument(id, "constructor for %q must return a value, not only an error", id)
		}
	case 2:
		if fnType.Out(0) == errorType || fnType.Out(1) != errorType {
			return nil, invalidArgument(id, "constructor for %q must return (T) or (T, error), got %s", id, formatSignature(fnType))
		}
		c.hasError = true
	default:
		return nil, invalidArgument(id, "constructor for %q must return (T) or (T, error), got %s", id, formatSignature(fnType))
	}

	if fnType.NumIn() > 0 && fnType.In(0) == contextType {
		c.hasCtx = true
	}

	params := c.paramCount()
	if fnType.IsVariadic() {
		if depCount < params-1 {
			return nil, invalidArgument(id, "constructor for %q needs at least %d dependencies, %d declared", id, params-1, depCount)
		}
	} else if params != depCount {
		return nil, invalidArgument(id, "constructor for %q takes %d dependencies, %d declared", id, params, depCount)
	}

	return c, nil
}

// paramCount is the number of parameters that receive dependency instances.
func (c *constructor) paramCount() int {
	if c.hasCtx {
		return c.fnType.NumIn() - 1
	}
	return c.fnType.NumIn()
}

// paramType returns the type of the parameter that receives dependency i.
func (c *constructor) paramType(i int) reflect.Type {
	index := i
	if c.hasCtx {
		index++
	}
	last := c.fnType.NumIn() - 1
	if c.fnType.IsVariadic() && index >= last {
		return c.fnType.In(last).Elem()
	}
	return c.fnType.In(index)
}

// invoke runs the constructor with the dependency instances in declaration order.
// Panics and returned errors both come back as CONSTRUCTOR_FAILED.
func (c *constructor) invoke(ctx context.Context, id string, deps []any) (result any, err error) {
	if c.kind == constructorConstant {
		return c.value, nil
	}

	params := make([]reflect.Value, 0, len(deps)+1)
	if c.hasCtx {
		params = append(params, reflect.ValueOf(&ctx).Elem())
	}
	for i, dep := range deps {
		v, argErr := argumentValue(dep, c.paramType(i))
		if argErr != nil {
			return nil, constructorFailed(id, fmt.Errorf("dependency %d: %w", i, argErr))
		}
		params = append(params, v)
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = constructorFailed(id, fmt.Errorf("panic: %v", r))
		}
	}()

	results := c.fn.Call(params)
	if c.hasError && !results[1].IsNil() {
		return nil, constructorFailed(id, results[1].Interface().(error))
	}
	return results[0].Interface(), nil
}

// argumentValue converts a memoized instance to a call argument of type t. A nil
// instance becomes the zero value of t when t can hold nil.
func argumentValue(dep any, t reflect.Type) (reflect.Value, error) {
	if dep == nil {
		switch t.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice, reflect.UnsafePointer:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("nil cannot be passed as %v", t)
	}
	v := reflect.ValueOf(dep)
	if !v.Type().AssignableTo(t) {
		return reflect.Value{}, fmt.Errorf("%v is not assignable to %v", v.Type(), t)
	}
	return v, nil
}

// signature returns a printable form of the constructor that leaves out addresses,
// which keeps it stable for logs and tests.
func (c *constructor) signature() string {
	if c.kind == constructorConstant {
		return fmt.Sprintf("constant %T", c.value)
	}
	return formatSignature(c.fnType)
}

func formatSignature(fnType reflect.Type) string {
	builder := strings.Builder{}
	builder.WriteString("(")
	for i := 0; i < fnType.NumIn(); i++ {
		if i > 0 {
			builder.WriteString(", ")
		}
		if fnType.IsVariadic() && i == fnType.NumIn()-1 {
			builder.WriteString("...")
			builder.WriteString(fnType.In(i).Elem().String())
		} else {
			builder.WriteString(fnType.In(i).String())
		}
	}
	builder.WriteString(") ")
	for i := 0; i < fnType.NumOut(); i++ {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(fnType.Out(i).String())
	}
	return builder.String()
}
