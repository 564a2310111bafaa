package modreg

import (
	"strings"
)

// Log returns a human-readable listing of the registry, one line per component
// in registration order:
//
//	* repo -> [ db ]
//	  cache -> [  ]
//
// Constructed components are marked with "* ". With inverse set each line lists
// the component's transitive dependents instead of its transitive dependencies.
// Log fails under the same conditions as State.
func (r *Registry) Log(inverse bool) (string, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	s, err := r.state()
	if err != nil {
		return "", err
	}

	result := strings.Builder{}
	result.WriteString("\n")
	for _, entry := range s.Entries {
		list := entry.Reqs
		if inverse {
			list = entry.Reqd
		}
		if entry.Init {
			result.WriteString("* ")
		} else {
			result.WriteString("  ")
		}
		result.WriteString(entry.Name)
		result.WriteString(" -> [ ")
		result.WriteString(strings.Join(list, ", "))
		result.WriteString(" ]\n")
	}
	return result.String(), nil
}
