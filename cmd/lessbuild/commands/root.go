// Package commands implements the CLI commands for lessbuild.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/lessbuild/internal/app"
	"go.trai.ch/lessbuild/internal/build"
	"go.trai.ch/lessbuild/internal/core/domain"
)

// CLI represents the command line interface for lessbuild.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Settings() domain.Settings
	Compile(ctx context.Context, inputs []string, opts app.CompileOptions) ([]domain.RenderFile, error)
	Serve(ctx context.Context, opts app.ServeOptions) error
	Flush(ctx context.Context) error
	Engines(ctx context.Context) []app.EngineStatus
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "lessbuild",
		Short:         "Compile, cache and serve LESS stylesheets",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newCompileCmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newFlushCmd())
	rootCmd.AddCommand(c.newEnginesCmd())
	rootCmd.AddCommand(c.newSettingsCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
