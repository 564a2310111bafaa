package modreg

// resolutionPath is the chain of names from the requested component down to the
// one being resolved. Each frame pushes onto its own copy so sibling branches never
// observe each other's partial paths.
type resolutionPath []string

func (p resolutionPath) push(id string) resolutionPath {
	next := make(resolutionPath, len(p), len(p)+1)
	copy(next, p)
	return append(next, id)
}

func (p resolutionPath) contains(id string) bool {
	for _, entry := range p {
		if entry == id {
			return true
		}
	}
	return false
}

// uniq returns ids without duplicates, keeping the first occurrence of each.
func uniq(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
