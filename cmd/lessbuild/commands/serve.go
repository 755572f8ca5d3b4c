package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/lessbuild/internal/app"
)

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve compiled stylesheets over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			listen, _ := cmd.Flags().GetString("addr")
			watch, _ := cmd.Flags().GetBool("watch")
			return c.app.Serve(cmd.Context(), app.ServeOptions{
				Addr:      listen,
				Watch:     watch,
				Overrides: settingsOverrides(cmd),
			})
		},
	}
	cmd.Flags().StringP("addr", "a", "", "Address to listen on")
	cmd.Flags().BoolP("watch", "w", false, "Watch sources and stream changes to /less/events")
	addSettingsFlags(cmd)
	return cmd
}
