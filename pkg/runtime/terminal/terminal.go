package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/open5nippet/Capstone-Project-1/pkg/runtime/terminal/commands"
)

// CLI represents the command-line interface
type CLI struct {
	reporter *Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	Errors io.Writer
	Args   []string
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Errors == nil {
		opts.Errors = os.Stderr
	}

	cli := &CLI{
		reporter: NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	cli.rootCmd.SetErr(opts.Errors)
	if opts.Args != nil {
		cli.rootCmd.SetArgs(opts.Args)
	}
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "campus-energy",
		Short:         "Campus energy-use dashboard",
		SilenceErrors: true,
	}

	cmd.AddCommand(commands.NewRunCmd(cli.reporter))
	cmd.AddCommand(commands.NewValidateCmd())
	cmd.AddCommand(commands.NewBuildingCmd(cli.reporter))
	cmd.AddCommand(commands.NewConfigCmd())

	return cmd
}
