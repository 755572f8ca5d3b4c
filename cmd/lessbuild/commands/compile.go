package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/lessbuild/internal/app"
	"go.trai.ch/lessbuild/internal/core/domain"
	"go.trai.ch/lessbuild/internal/ui/output"
	"go.trai.ch/lessbuild/internal/ui/style"
)

func (c *CLI) newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile [files...]",
		Short: "Compile LESS files to CSS",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return domain.ErrNoInputFiles
			}
			theme, _ := cmd.Flags().GetString("theme")
			out, _ := cmd.Flags().GetString("out")

			rendered, err := c.app.Compile(cmd.Context(), args, app.CompileOptions{
				Theme:     theme,
				Output:    out,
				Overrides: settingsOverrides(cmd),
			})
			if err != nil {
				return err
			}

			w := output.New(cmd.OutOrStdout())
			for _, r := range rendered {
				_, _ = fmt.Fprintf(w, "%s %s %s %s\n",
					output.Paint(w, style.Check, string(style.Green)),
					r.InputFile,
					output.Paint(w, style.Arrow, string(style.Slate)),
					r.OutputFile,
				)
			}
			return nil
		},
	}
	cmd.Flags().StringP("theme", "t", "", "Theme subdirectory of the output directory")
	cmd.Flags().StringP("out", "o", "", "Write the stylesheet to this file (single input only)")
	addSettingsFlags(cmd)
	return cmd
}
