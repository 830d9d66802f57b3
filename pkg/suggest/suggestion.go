// Package suggest turns a partially-typed bun command line into a list of
// completion suggestions. A declarative Spec describes the command surface;
// the Engine resolves the typed tokens against it and runs the matching
// suggestion source (registry search, version lookup, installed
// dependencies, global links, run scripts).
package suggest

// Suggestion is one completion candidate. Label is the text inserted into
// the command line; Description is shown alongside it in completion menus.
type Suggestion struct {
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}
