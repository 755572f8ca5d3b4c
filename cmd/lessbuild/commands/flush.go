package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newFlushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flush",
		Short: "Drop cached artifacts and compiled stylesheets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Flush(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cache flushed")
			return nil
		},
	}
}
