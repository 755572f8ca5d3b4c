package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/lessbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings [key]",
		Short: "Print the effective settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := c.app.Settings()
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				for _, key := range domain.Keys() {
					if key == args[0] {
						_, _ = fmt.Fprintln(out, settings.Get(key))
						return nil
					}
				}
				return zerr.With(zerr.New("unknown settings key"), "key", args[0])
			}

			for _, key := range domain.Keys() {
				_, _ = fmt.Fprintf(out, "%s=%s\n", key, settings.Get(key))
			}
			_, _ = fmt.Fprintf(out, "root=%s\n", settings.Root)
			_, _ = fmt.Fprintf(out, "output_dir=%s\n", settings.OutputDir)
			_, _ = fmt.Fprintf(out, "cache_backend=%s\n", settings.CacheBackend)
			return nil
		},
	}
}
