package suggest

import "strings"

// Generator names a dynamic suggestion source bound to a positional
// argument. Static choices go in Arg.Suggestions instead.
type Generator string

const (
	// GeneratorPackages queries the npm registry: search mode for a bare
	// term, version mode once the token carries an "@" marker.
	GeneratorPackages Generator = "packages"

	// GeneratorDependencies lists installed dependencies from the nearest
	// package.json, excluding packages already present on the line.
	GeneratorDependencies Generator = "dependencies"

	// GeneratorLinks lists globally linked packages.
	GeneratorLinks Generator = "links"

	// GeneratorScripts lists run scripts from the nearest package.json.
	GeneratorScripts Generator = "scripts"
)

// Spec is the declarative description of a CLI's completion surface.
type Spec struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Options     []Option  `json:"options,omitempty"`
	Commands    []Command `json:"commands,omitempty"`
}

// Command describes one subcommand: its flags, positional arguments, and
// nested subcommands.
type Command struct {
	Name        string    `json:"name"`
	Aliases     []string  `json:"aliases,omitempty"`
	Description string    `json:"description,omitempty"`
	Options     []Option  `json:"options,omitempty"`
	Args        []Arg     `json:"args,omitempty"`
	Subcommands []Command `json:"subcommands,omitempty"`
}

// Option describes a flag. Names holds every spelling ("-d", "--dev");
// Arg is non-nil when the flag consumes a value token.
type Option struct {
	Names       []string `json:"names"`
	Description string   `json:"description,omitempty"`
	Arg         *Arg     `json:"arg,omitempty"`
}

// Arg describes a positional argument or flag value.
type Arg struct {
	Name        string    `json:"name"`
	Suggestions []string  `json:"suggestions,omitempty"`
	Generator   Generator `json:"generator,omitempty"`
	Optional    bool      `json:"optional,omitempty"`
	Variadic    bool      `json:"variadic,omitempty"`

	// Debounce marks arguments whose generator hits the network, so
	// interactive clients can rate-limit per-keystroke lookups.
	Debounce bool `json:"debounce,omitempty"`
}

// Lookup resolves a top-level command by name or alias.
func (s *Spec) Lookup(name string) (*Command, bool) {
	return lookup(s.Commands, name)
}

// Lookup resolves a direct subcommand by name or alias.
func (c *Command) Lookup(name string) (*Command, bool) {
	return lookup(c.Subcommands, name)
}

func lookup(cmds []Command, name string) (*Command, bool) {
	for i := range cmds {
		if cmds[i].Name == name {
			return &cmds[i], true
		}
		for _, alias := range cmds[i].Aliases {
			if alias == name {
				return &cmds[i], true
			}
		}
	}
	return nil, false
}

// Resolve walks the completed tokens of a line, descending through
// subcommands, and returns the deepest matched command plus the positional
// tokens that did not match a subcommand. A nil command means the line is
// still at the root level. Flags are skipped; a flag that takes a value
// also consumes the following token.
func (s *Spec) Resolve(tokens []string) (*Command, []string) {
	var cmd *Command
	var positionals []string

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if strings.HasPrefix(tok, "-") {
			if opt := s.findOption(cmd, tok); opt != nil && opt.Arg != nil && !strings.Contains(tok, "=") {
				i++
			}
			continue
		}

		if cmd == nil {
			if c, ok := s.Lookup(tok); ok {
				cmd = c
				continue
			}
		} else if sub, ok := cmd.Lookup(tok); ok {
			cmd = sub
			continue
		}
		positionals = append(positionals, tok)
	}
	return cmd, positionals
}

// findOption matches a flag token against the current command's options and
// the global options.
func (s *Spec) findOption(cmd *Command, tok string) *Option {
	if i := strings.Index(tok, "="); i >= 0 {
		tok = tok[:i]
	}
	if cmd != nil {
		if opt := findOption(cmd.Options, tok); opt != nil {
			return opt
		}
	}
	return findOption(s.Options, tok)
}

func findOption(opts []Option, tok string) *Option {
	for i := range opts {
		for _, name := range opts[i].Names {
			if name == tok {
				return &opts[i]
			}
		}
	}
	return nil
}

// ActiveArg returns the positional argument that the next token would fill,
// given how many positionals are already present. A variadic argument
// absorbs every later position.
func (c *Command) ActiveArg(consumed int) *Arg {
	n := consumed
	for i := range c.Args {
		a := &c.Args[i]
		if a.Variadic || n == 0 {
			return a
		}
		n--
	}
	return nil
}
