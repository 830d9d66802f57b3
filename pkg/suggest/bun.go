package suggest

// Bun returns the completion surface of the bun CLI: every subcommand with
// its flags, positional arguments, and the suggestion source bound to each
// argument.
func Bun() *Spec {
	packageArg := Arg{
		Name:      "package",
		Generator: GeneratorPackages,
		Variadic:  true,
		Debounce:  true,
	}
	dependencyArg := Arg{
		Name:      "package",
		Generator: GeneratorDependencies,
		Variadic:  true,
	}

	return &Spec{
		Name:        "bun",
		Description: "Incredibly fast JavaScript runtime, bundler, test runner, and package manager",
		Options: []Option{
			{Names: []string{"-h", "--help"}, Description: "Display help"},
			{Names: []string{"-v", "--version"}, Description: "Print version and exit"},
			{Names: []string{"--cwd"}, Description: "Set the working directory", Arg: &Arg{Name: "dir"}},
			{Names: []string{"-c", "--config"}, Description: "Load a config file", Arg: &Arg{Name: "path"}},
		},
		Commands: []Command{
			{
				Name:        "run",
				Description: "Execute a package.json script or a source file",
				Options: []Option{
					{Names: []string{"--watch"}, Description: "Restart on file change"},
					{Names: []string{"--hot"}, Description: "Hot-reload modules on change"},
				},
				Args: []Arg{{Name: "script", Generator: GeneratorScripts}},
			},
			{
				Name:        "test",
				Description: "Run tests with the built-in test runner",
				Options: []Option{
					{Names: []string{"--watch"}, Description: "Re-run tests on file change"},
					{Names: []string{"-t", "--test-name-pattern"}, Description: "Only run tests matching a pattern", Arg: &Arg{Name: "pattern"}},
				},
				Args: []Arg{{Name: "filter", Optional: true, Variadic: true}},
			},
			{
				Name:        "x",
				Description: "Execute a package binary, installing if needed",
				Args:        []Arg{packageArg},
			},
			{
				Name:        "repl",
				Description: "Start a REPL session",
			},
			{
				Name:        "init",
				Description: "Start an empty project from a blank template",
				Options: []Option{
					{Names: []string{"-y", "--yes"}, Description: "Accept all defaults"},
				},
			},
			{
				Name:        "create",
				Description: "Create a new project from a template",
				Aliases:     []string{"c"},
				Args: []Arg{{
					Name:      "template",
					Generator: GeneratorPackages,
					Debounce:  true,
				}},
			},
			{
				Name:        "install",
				Aliases:     []string{"i"},
				Description: "Install dependencies from package.json",
				Options: []Option{
					{Names: []string{"-p", "--production"}, Description: "Skip devDependencies"},
					{Names: []string{"--frozen-lockfile"}, Description: "Disallow lockfile changes"},
					{Names: []string{"--dry-run"}, Description: "Resolve without installing"},
					{Names: []string{"-f", "--force"}, Description: "Reinstall all dependencies"},
					{Names: []string{"-g", "--global"}, Description: "Install globally"},
				},
			},
			{
				Name:        "add",
				Aliases:     []string{"a"},
				Description: "Add a dependency to package.json",
				Options: []Option{
					{Names: []string{"-d", "--dev"}, Description: "Add to devDependencies"},
					{Names: []string{"--optional"}, Description: "Add to optionalDependencies"},
					{Names: []string{"-E", "--exact"}, Description: "Pin the exact version"},
					{Names: []string{"-g", "--global"}, Description: "Install globally"},
				},
				Args: []Arg{packageArg},
			},
			{
				Name:        "remove",
				Aliases:     []string{"rm"},
				Description: "Remove a dependency from package.json",
				Options: []Option{
					{Names: []string{"-g", "--global"}, Description: "Remove a global install"},
				},
				Args: []Arg{dependencyArg},
			},
			{
				Name:        "update",
				Description: "Update dependencies to their latest allowed versions",
				Options: []Option{
					{Names: []string{"--latest"}, Description: "Ignore version ranges"},
				},
				Args: []Arg{{
					Name:      "package",
					Generator: GeneratorDependencies,
					Optional:  true,
					Variadic:  true,
				}},
			},
			{
				Name:        "outdated",
				Description: "Show dependencies with newer versions available",
			},
			{
				Name:        "link",
				Description: "Register or install a local package link",
				Args: []Arg{{
					Name:      "package",
					Generator: GeneratorLinks,
					Optional:  true,
				}},
			},
			{
				Name:        "unlink",
				Description: "Unregister a local package link",
			},
			{
				Name:        "pm",
				Description: "Package management utilities",
				Subcommands: []Command{
					{Name: "bin", Description: "Print the bin directory"},
					{Name: "ls", Description: "List installed dependencies"},
					{Name: "cache", Description: "Print the cache directory"},
					{Name: "hash", Description: "Print the lockfile hash"},
				},
			},
			{
				Name:        "build",
				Description: "Bundle sources for the browser or Bun",
				Options: []Option{
					{Names: []string{"--outdir"}, Description: "Write bundles to a directory", Arg: &Arg{Name: "dir"}},
					{Names: []string{"--minify"}, Description: "Minify the output"},
					{Names: []string{"--target"}, Description: "Choose the output target", Arg: &Arg{
						Name:        "target",
						Suggestions: []string{"browser", "bun", "node"},
					}},
				},
				Args: []Arg{{Name: "entrypoint", Variadic: true}},
			},
			{
				Name:        "completions",
				Description: "Install shell completions",
			},
			{
				Name:        "upgrade",
				Description: "Upgrade bun itself",
				Options: []Option{
					{Names: []string{"--canary"}, Description: "Upgrade to the canary build"},
				},
			},
		},
	}
}
