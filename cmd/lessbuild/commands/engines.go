package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/lessbuild/internal/ui/output"
	"go.trai.ch/lessbuild/internal/ui/style"
)

func (c *CLI) newEnginesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "engines",
		Short: "List LESS engines and external tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			statuses := c.app.Engines(cmd.Context())

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(statuses)
			}

			w := output.New(cmd.OutOrStdout())
			for _, s := range statuses {
				icon := output.Paint(w, style.Cross, string(style.Red))
				version := "not installed"
				if s.Installed {
					icon = output.Paint(w, style.Check, string(style.Green))
					version = s.Version
				}
				marker := " "
				if s.Selected {
					marker = "*"
				}
				_, _ = fmt.Fprintf(w, "%s %s %-14s %s %s\n", icon, marker, s.ID, s.Name,
					output.Paint(w, "("+version+")", string(style.Slate)))
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print the engine list as JSON")
	return cmd
}
