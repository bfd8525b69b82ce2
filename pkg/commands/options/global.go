// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/comicview/pkg/config"
)

// AddGlobalArgs registers the persistent flags and binds them to v so they
// override the config file and environment.
func AddGlobalArgs(cmd *cobra.Command, v *viper.Viper) {
	f := cmd.PersistentFlags()
	f.String("dataset", "", "Path to the comic dataset (.json, .yaml or .js).")
	f.String("name", "", "Session name, used to prefix stored keys.")
	f.String("loglevel", "", "Log level: debug, info, warn or error.")

	_ = v.BindPFlag(config.KeyDataset, f.Lookup("dataset"))
	_ = v.BindPFlag(config.KeyName, f.Lookup("name"))
	_ = v.BindPFlag(config.KeyLogLevel, f.Lookup("loglevel"))
}
