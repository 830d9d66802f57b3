package suggest

import (
	"context"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"

	"buntab/pkg/cache"
	"buntab/pkg/config"
	"buntab/pkg/manifest"
	"buntab/pkg/npm"
)

// Engine resolves a typed line against a Spec and runs suggestion sources.
//
// The individual source methods return errors so commands can report them;
// Suggest is the completion boundary and never fails: any source error is
// logged at debug level and degrades to an empty list, so a broken network
// or a missing manifest can never break the input line.
type Engine struct {
	spec    *Spec
	client  *npm.Client
	cfg     config.Config
	workDir string
	logger  *log.Logger
}

// New creates an Engine for the bun command surface. Registry responses go
// through c; pass cache.NewNullCache() to disable caching.
func New(cfg config.Config, c cache.Cache, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		spec:    Bun(),
		client:  npm.NewClient(cfg, c),
		cfg:     cfg,
		workDir: ".",
		logger:  logger,
	}
}

// Spec returns the command surface the engine resolves against.
func (e *Engine) Spec() *Spec {
	return e.spec
}

// SetWorkDir overrides the directory used to locate the project manifest.
func (e *Engine) SetWorkDir(dir string) {
	e.workDir = dir
}

// Suggest completes a partial command line. The line is everything typed so
// far, including the program name; a trailing space means the user is
// starting a fresh token.
func (e *Engine) Suggest(ctx context.Context, line string) []Suggestion {
	tokens, current := splitLine(line)
	if len(tokens) > 0 && tokens[0] == e.spec.Name {
		tokens = tokens[1:]
	}
	cmd, positionals := e.spec.Resolve(tokens)
	global := hasGlobalFlag(tokens)

	if strings.HasPrefix(current, "-") {
		return e.optionSuggestions(cmd, current)
	}

	// A value-taking flag as the last completed token means the current
	// token is its value.
	if len(tokens) > 0 && strings.HasPrefix(tokens[len(tokens)-1], "-") && !strings.Contains(tokens[len(tokens)-1], "=") {
		if opt := e.spec.findOption(cmd, tokens[len(tokens)-1]); opt != nil && opt.Arg != nil {
			return e.argSuggestions(ctx, opt.Arg, current, nil, global)
		}
	}

	if cmd == nil {
		return filterPrefix(commandSuggestions(e.spec.Commands), current)
	}

	var out []Suggestion
	if len(positionals) == 0 {
		out = append(out, filterPrefix(commandSuggestions(cmd.Subcommands), current)...)
	}
	if arg := cmd.ActiveArg(len(positionals)); arg != nil {
		out = append(out, e.argSuggestions(ctx, arg, current, positionals, global)...)
	}
	return out
}

// hasGlobalFlag reports whether the completed tokens select the global
// install tree, so dependency suggestions come from the right manifest.
func hasGlobalFlag(tokens []string) bool {
	for _, tok := range tokens {
		if tok == "-g" || tok == "--global" {
			return true
		}
	}
	return false
}

// argSuggestions runs the argument's static suggestions and generator.
func (e *Engine) argSuggestions(ctx context.Context, arg *Arg, current string, positionals []string, global bool) []Suggestion {
	var out []Suggestion
	for _, s := range arg.Suggestions {
		if strings.HasPrefix(s, current) {
			out = append(out, Suggestion{Label: s})
		}
	}

	var (
		generated []Suggestion
		err       error
	)
	switch arg.Generator {
	case GeneratorPackages:
		generated = e.packages(ctx, current)
	case GeneratorDependencies:
		if global {
			generated, err = e.GlobalDependencies(ctx, positionals)
		} else {
			generated, err = e.Dependencies(ctx, positionals)
		}
		generated = filterPrefix(generated, current)
	case GeneratorLinks:
		generated, err = e.Links(ctx)
		generated = filterPrefix(generated, current)
	case GeneratorScripts:
		generated, err = e.Scripts(ctx)
		generated = filterPrefix(generated, current)
	}
	if err != nil {
		e.logger.Debug("suggestion source failed", "generator", arg.Generator, "error", err)
		return out
	}
	return append(out, generated...)
}

// packages completes a package reference token: version mode when the token
// carries an "@" marker, search mode otherwise. Failures degrade to nil.
func (e *Engine) packages(ctx context.Context, token string) []Suggestion {
	ref, ok := npm.ParseRef(token)
	if !ok {
		return nil
	}

	if ref.HasVersion {
		out, err := e.Versions(ctx, ref.FullName())
		if err != nil {
			e.logger.Debug("version lookup failed", "package", ref.FullName(), "error", err)
			return nil
		}
		return filterPrefix(out, ref.Version)
	}

	out, err := e.Search(ctx, ref.Term, ref.Scope, nil)
	if err != nil {
		e.logger.Debug("package search failed", "term", token, "error", err)
		return nil
	}
	return out
}

// Search finds packages by free-text term. A scope or keywords switch to
// the qualified search endpoint; otherwise the faster suggestions endpoint
// is used.
func (e *Engine) Search(ctx context.Context, term, scope string, keywords []string) ([]Suggestion, error) {
	var (
		results []npm.SearchResult
		err     error
	)
	if scope != "" || len(keywords) > 0 {
		results, err = e.client.Search(ctx, term, scope, keywords)
	} else {
		results, err = e.client.Suggestions(ctx, term)
	}
	if err != nil {
		return nil, err
	}

	out := make([]Suggestion, 0, len(results))
	for _, r := range results {
		out = append(out, Suggestion{Label: r.Name, Description: r.Description})
	}
	return out, nil
}

// Versions lists the published versions of a package: dist-tags first in
// response order, each described by the version it points at, then plain
// versions newest-first.
func (e *Engine) Versions(ctx context.Context, name string) ([]Suggestion, error) {
	meta, err := e.client.Metadata(ctx, name)
	if err != nil {
		return nil, err
	}

	out := make([]Suggestion, 0, len(meta.DistTags)+len(meta.Versions))
	for _, t := range meta.DistTags {
		out = append(out, Suggestion{Label: t.Name, Description: t.Version})
	}
	for i := len(meta.Versions) - 1; i >= 0; i-- {
		out = append(out, Suggestion{Label: meta.Versions[i]})
	}
	return out, nil
}

// Dependencies lists installed dependencies of the nearest project,
// excluding names already present on the line.
func (e *Engine) Dependencies(ctx context.Context, exclude []string) ([]Suggestion, error) {
	m, err := manifest.LoadProject(e.workDir)
	if err != nil {
		return nil, err
	}
	return dependencySuggestions(m, exclude), nil
}

// GlobalDependencies lists dependencies of the global install manifest.
func (e *Engine) GlobalDependencies(ctx context.Context, exclude []string) ([]Suggestion, error) {
	m, err := manifest.Load(filepath.Join(e.cfg.GlobalDir(), manifest.FileName))
	if err != nil {
		return nil, err
	}
	return dependencySuggestions(m, exclude), nil
}

// Links lists globally linked packages.
func (e *Engine) Links(ctx context.Context) ([]Suggestion, error) {
	names, err := manifest.GlobalLinks(e.cfg.GlobalModulesDir())
	if err != nil {
		return nil, err
	}
	out := make([]Suggestion, 0, len(names))
	for _, name := range names {
		out = append(out, Suggestion{Label: name})
	}
	return out, nil
}

// Scripts lists run scripts of the nearest project, described by their
// commands.
func (e *Engine) Scripts(ctx context.Context) ([]Suggestion, error) {
	m, err := manifest.LoadProject(e.workDir)
	if err != nil {
		return nil, err
	}

	scripts := m.ScriptList()
	out := make([]Suggestion, 0, len(scripts))
	for _, s := range scripts {
		out = append(out, Suggestion{Label: s.Name, Description: s.Command})
	}
	return out, nil
}

func dependencySuggestions(m *manifest.Manifest, exclude []string) []Suggestion {
	deps := m.DependencyList(exclude)
	out := make([]Suggestion, 0, len(deps))
	for _, d := range deps {
		out = append(out, Suggestion{Label: d.Name, Description: string(d.Category)})
	}
	return out
}

// optionSuggestions completes a flag token from the command's options plus
// the global options.
func (e *Engine) optionSuggestions(cmd *Command, current string) []Suggestion {
	var out []Suggestion
	add := func(opts []Option) {
		for _, opt := range opts {
			for _, name := range opt.Names {
				if strings.HasPrefix(name, current) {
					out = append(out, Suggestion{Label: name, Description: opt.Description})
				}
			}
		}
	}
	if cmd != nil {
		add(cmd.Options)
	}
	add(e.spec.Options)
	return out
}

func commandSuggestions(cmds []Command) []Suggestion {
	out := make([]Suggestion, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, Suggestion{Label: c.Name, Description: c.Description})
	}
	return out
}

func filterPrefix(in []Suggestion, prefix string) []Suggestion {
	if prefix == "" {
		return in
	}
	out := make([]Suggestion, 0, len(in))
	for _, s := range in {
		if strings.HasPrefix(s.Label, prefix) {
			out = append(out, s)
		}
	}
	return out
}

// splitLine separates the completed tokens from the token being typed. A
// line ending in whitespace has an empty current token.
func splitLine(line string) ([]string, string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, ""
	}
	if r := rune(line[len(line)-1]); unicode.IsSpace(r) {
		return fields, ""
	}
	return fields[:len(fields)-1], fields[len(fields)-1]
}
