package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/dataindex/cli/cmd"
	"github.com/ardnew/dataindex/index"
	"github.com/ardnew/dataindex/log"
	"github.com/ardnew/dataindex/pkg"
)

// CLI is the top-level command-line interface for dataindex.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Source []string `                                      help:"Input markup file(s) or '-' for stdin" name:"source" short:"s" type:"existingfile"`
	Scope  string   `default:""                            help:"Scope used to resolve relative names"                short:"S"`
	Policy string   `default:"forbid" enum:"${policyEnum}" help:"Overwrite policy for duplicate names"                short:"P"`

	Get       cmd.Get       `cmd:"" help:"Print the value of an entry"`
	Resolve   cmd.Resolve   `cmd:"" help:"Print the fully qualified name of an entry"`
	Ls        cmd.Ls        `cmd:"" help:"List entry names"`
	Describe  cmd.Describe  `cmd:"" help:"Print the empty markup element of an entry"`
	Serialize cmd.Serialize `cmd:"" help:"Print the markup of an entry and its descendants"`
	Fmt       cmd.Fmt       `cmd:"" help:"Format the index"`
	Eval      cmd.Eval      `cmd:"" help:"Evaluate an expression over the index"`
	Repl      cmd.Repl      `cmd:"" default:"1" help:"Start an interactive session"`
	Init      cmd.Init      `cmd:"" help:"Initialize configuration file"`
}

func (*CLI) vars() kong.Vars {
	return kong.Vars{
		"policyEnum": strings.Join(index.Policies(), ","),
		"suggest":    strconv.Itoa(index.DefaultSuggestions),
	}
}

// Run executes the dataindex CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := pkg.MkdirAll()
	if err != nil {
		return err
	}

	configFilePath := pkg.ConfigPath(cmd.ConfigIdentifier)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  pkg.CacheDir(),
	}.
		CloneWith(cli.vars()).
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Boolean logger flags never pass through UnmarshalText, so they are
	// applied before parsing.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
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
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(ctx, cmd.ConfigIdentifier), configFilePath),
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
	ctx = cmd.WithScope(ctx, cli.Scope)

	// Finalize logger configuration with the flags that do not implement
	// encoding.TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	if len(cli.Source) > 0 && !strings.HasPrefix(ktx.Command(), "init") {
		policy, _ := index.ParsePolicy(cli.Policy)

		idx, err := cmd.Load(ctx, cli.Source,
			index.WithPolicy(policy),
			index.WithLogger(log.Default()),
		)
		if err != nil {
			return err
		}

		ctx = cmd.WithIndex(ctx, idx)
	}

	return ktx.Run(ctx, &cli)
}
