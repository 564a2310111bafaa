package modreg

import (
	"gopkg.in/yaml.v3"
)

// Entry describes one component in a State.
type Entry struct {
	Name string `yaml:"name"`
	// Deps is a copy of the component's direct dependency list.
	Deps []string `yaml:"deps"`
	// Reqs is the transitive dependency closure, as returned by DependencyIDs.
	Reqs []string `yaml:"reqs"`
	// Init reports whether the component has been constructed.
	Init bool `yaml:"init"`
	// Reqd lists, in registration order, every component whose Reqs contains this
	// one, that is everything that transitively depends on it.
	Reqd []string `yaml:"reqd"`
}

// State is a snapshot of a registry's dependency graph.
type State struct {
	// Entries holds one entry per component in registration order.
	Entries []Entry `yaml:"components"`

	index map[string]int
}

// Lookup returns the entry for name.
func (s *State) Lookup(name string) (Entry, bool) {
	i, found := s.index[name]
	if !found {
		return Entry{}, false
	}
	return s.Entries[i], true
}

// YAML renders the snapshot as a YAML document with a top level "components" list.
func (s *State) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}

// State returns a snapshot of every definition: its direct and transitive
// dependencies, its transitive dependents and whether it has been constructed.
//
// Computing the transitive dependencies walks the whole graph, so State fails with
// the first CIRCULAR_DEPENDENCY or UNDEFINED_DEPENDENCY error found in any
// definition, not only in the ones that have been required. Nothing is
// constructed.
func (r *Registry) State() (*State, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.state()
}

func (r *Registry) state() (*State, error) {
	ids := newIDResolver(r)
	s := &State{
		Entries: make([]Entry, 0, len(r.order)),
		index:   make(map[string]int, len(r.order)),
	}

	for _, name := range r.order {
		reqs, err := ids.resolve(name, nil)
		if err != nil {
			return nil, err
		}
		_, initialized := r.instances[name]
		s.index[name] = len(s.Entries)
		s.Entries = append(s.Entries, Entry{
			Name: name,
			Deps: append([]string{}, r.definitions[name].deps...),
			Reqs: reqs,
			Init: initialized,
		})
	}

	dependents := make(map[string][]string, len(r.order))
	for _, entry := range s.Entries {
		for _, req := range entry.Reqs {
			dependents[req] = append(dependents[req], entry.Name)
		}
	}
	for i := range s.Entries {
		reqd := dependents[s.Entries[i].Name]
		if reqd == nil {
			reqd = []string{}
		}
		s.Entries[i].Reqd = reqd
	}

	return s, nil
}
