// Package modreg provides a small registry for wiring an application out of named
// components. Each component is defined once with the names of the components it
// depends on and a constructor, and is built on demand, after its dependencies,
// exactly once.
//
// The Registry object has comprehensive documentation about how resolution works.
//
// There are also typed helpers, Get, MustGet and TryGet, that make fetching
// components more concise.
package modreg
