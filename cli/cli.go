package cli

import (
	"context"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/scenic/cli/cmd"
	"github.com/ardnew/scenic/pkg"
)

// CLI is the top-level command-line interface for scenic.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Strict bool `help:"Refuse arguments whose shape does not match the parameter type." negatable:""`

	Run   cmd.Run   `cmd:"" default:"withargs" help:"Evaluate a scene document and print the resulting scene."`
	Fmt   cmd.Fmt   `cmd:""                    help:"Parse scene expressions and print their definitions."`
	Funcs cmd.Funcs `cmd:""                    help:"List entity functions and their signatures."`
	Repl  cmd.Repl  `cmd:""                    help:"Edit a scene document interactively."`
	Init  cmd.Init  `cmd:""                    help:"Write the configuration file from current flag values."`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`
}

// Run executes the scenic CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	configFile := configPath(baseConfig + ".yaml")

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFile,
		cmd.CacheIdentifier:  cacheDir(),
		"version":            pkg.Version(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.DefaultEnvars(strings.TrimSuffix(pkg.EnvPrefix(), "_")),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(resolve(ctx), configFile),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSearchPath(ctx, searchPath())
	ctx = cmd.WithStrictShapes(ctx, cli.Strict)

	defer cli.Log.start(ctx)()

	// no-op unless built with the pprof tag and a mode is set
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
