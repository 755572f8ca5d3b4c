package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/lessbuild/internal/core/domain"
)

// addSettingsFlags registers the flags that override pipeline settings.
func addSettingsFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("engine", "e", "", "LESS engine to compile with")
	cmd.Flags().Bool("autoprefix", false, "Run compiled CSS through autoprefixer")
	cmd.Flags().Bool("dev", false, "Enable developer mode")
	cmd.Flags().Bool("source-maps", false, "Emit source maps (developer mode only)")
	cmd.Flags().StringArrayP("import-dir", "I", nil, "Directory searched for @import targets (repeatable)")
}

// settingsOverrides returns an override for every settings flag the user set.
func settingsOverrides(cmd *cobra.Command) []domain.SettingsOverride {
	var overrides []domain.SettingsOverride
	flags := cmd.Flags()

	if flags.Changed("engine") {
		engine, _ := flags.GetString("engine")
		overrides = append(overrides, func(s *domain.Settings) { s.Engine = engine })
	}
	if flags.Changed("autoprefix") {
		v, _ := flags.GetBool("autoprefix")
		overrides = append(overrides, func(s *domain.Settings) { s.Autoprefixer = v })
	}
	if flags.Changed("dev") {
		v, _ := flags.GetBool("dev")
		overrides = append(overrides, func(s *domain.Settings) { s.DeveloperMode = v })
	}
	if flags.Changed("source-maps") {
		v, _ := flags.GetBool("source-maps")
		overrides = append(overrides, func(s *domain.Settings) { s.SourceMaps = v })
	}
	if flags.Changed("import-dir") {
		dirs, _ := flags.GetStringArray("import-dir")
		overrides = append(overrides, func(s *domain.Settings) { *s = s.WithImportDirectories(dirs...) })
	}

	return overrides
}
