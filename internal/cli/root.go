// Package cli implements tourctl, the operator command line for the
// promotion calendar and the sales reports.
package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/vinodrajapaksha/ttms-api/infrastructure/integrator/backend"
	"github.com/vinodrajapaksha/ttms-api/internal/config"
)

// Options wires the CLI to its collaborators. Zero fields fall back to the
// real configuration, backend client and clock.
type Options struct {
	Output     io.Writer
	LoadConfig func() (*config.Config, error)
	NewClient  func(cfg *config.Config) backend.Client
	Now        func() time.Time
}

type CLI struct {
	opts    Options
	timeout time.Duration
	token   string
	rootCmd *cobra.Command
}

func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LoadConfig == nil {
		opts.LoadConfig = config.NewConfig
	}
	if opts.NewClient == nil {
		opts.NewClient = func(cfg *config.Config) backend.Client {
			return backend.NewClient(cfg)
		}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	cli := &CLI{opts: opts}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// Command exposes the root command, mainly for tests that set arguments.
func (cli *CLI) Command() *cobra.Command {
	return cli.rootCmd
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tourctl",
		Short:         "Tour promotion calendar and sales reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(cli.opts.Output)

	cmd.PersistentFlags().DurationVar(&cli.timeout, "timeout", 60*time.Second, "Deadline for the whole command")
	cmd.PersistentFlags().StringVar(&cli.token, "token", "", "Bearer token forwarded to the tour backend (defaults to BACKEND_TOKEN)")

	cmd.AddCommand(cli.newCalendarCmd())
	cmd.AddCommand(cli.newReportCmd())
	cmd.AddCommand(cli.newMigrateCmd())

	return cmd
}

// session loads the configuration and a context bounded by --timeout.
func (cli *CLI) session(parent context.Context) (*config.Config, context.Context, context.CancelFunc, error) {
	cfg, err := cli.opts.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, cli.timeout)
	if cli.token != "" {
		ctx = backend.WithToken(ctx, cli.token)
	}
	return cfg, ctx, cancel, nil
}
