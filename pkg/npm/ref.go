// Package npm provides the npm registry lookups behind buntab's dynamic
// suggestion sources: package metadata (dist-tags and published versions)
// and free-text package search.
package npm

import "strings"

// Ref is a parsed package reference token of the form
// ["@" scope "/"] term ["@" version].
//
// The token is usually incomplete because the user is mid-typing, so every
// field may be empty. HasVersion distinguishes a trailing bare "@" (the user
// is entering version mode) from a token without any version marker.
type Ref struct {
	Scope      string // scope without the "@" and "/" markers
	Term       string // bare name or search term
	Version    string // version or tag fragment after the final "@"
	HasVersion bool   // true when a version marker is present, even if empty
}

// ParseRef parses a package reference token. It reports ok=false only for
// the empty string; partial tokens parse successfully so that suggestions
// keep flowing while the user types.
//
// Tokens with "@" in positions outside the grammar (e.g. "a@b@c") are
// undefined input: the first "@" after the name starts the version marker
// and the rest is passed through verbatim.
func ParseRef(s string) (Ref, bool) {
	if s == "" {
		return Ref{}, false
	}

	var ref Ref
	name := s

	if strings.HasPrefix(name, "@") {
		if i := strings.Index(name, "/"); i >= 0 {
			ref.Scope = name[1:i]
			name = name[i+1:]
		} else {
			// Scope still being typed ("@types"): parse it as a scope with
			// an empty term so scope-qualified search can already run.
			ref.Scope = name[1:]
			name = ""
		}
	}

	if i := strings.Index(name, "@"); i >= 0 {
		ref.Term = name[:i]
		ref.Version = name[i+1:]
		ref.HasVersion = true
	} else {
		ref.Term = name
	}

	return ref, true
}

// FullName returns the fully-qualified package name with the version marker
// stripped, e.g. "@types/node" or "react".
func (r Ref) FullName() string {
	if r.Scope != "" {
		return "@" + r.Scope + "/" + r.Term
	}
	return r.Term
}
