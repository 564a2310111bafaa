package modreg

// Definition is a read-only view of a registered component.
type Definition struct {
	// Name is the unique id the component was registered under.
	Name string
	// Deps lists the direct dependencies in the order their instances are passed
	// to the constructor.
	Deps []string
	// Constructor is a printable form of the constructor, e.g. "(*sql.DB) *Repo"
	// or "constant map[string]int".
	Constructor string
}

type definition struct {
	name string
	deps []string
	ctor *constructor
}

func newDefinition(name string, deps []string, ctor any) (*definition, error) {
	for i, dep := range deps {
		if dep == "" {
			return nil, invalidArgument(name, "dependencies for %q must be non-empty ids, entry %d is empty", name, i)
		}
	}

	c, err := newConstructor(name, ctor, len(deps))
	if err != nil {
		return nil, err
	}

	return &definition{
		name: name,
		deps: append([]string{}, deps...),
		ctor: c,
	}, nil
}

func (d *definition) view() Definition {
	return Definition{
		Name:        d.name,
		Deps:        append([]string{}, d.deps...),
		Constructor: d.ctor.signature(),
	}
}
