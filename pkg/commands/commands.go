package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/comicview/pkg/app"
	"tableflip.dev/comicview/pkg/commands/options"
	"tableflip.dev/comicview/pkg/config"
	"tableflip.dev/comicview/pkg/logging"
)

var (
	oo       = &options.OutputOptions{}
	settings *viper.Viper
	cfg      *config.Config
)

// New returns the root comicview command with every subcommand attached.
func New() *cobra.Command {
	settings = viper.New()
	oo.JSON = false

	cmd := &cobra.Command{
		Use:   "comicview",
		Short: base.Wrap80("Browse a web comic archive from the command line."),
		Long: base.Wrap80("Browse a web comic archive from the command line. " +
			"The last comic viewed and the storyline/extras filter are remembered " +
			"between runs."),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if cfg, err = config.Load(settings); err != nil {
				return err
			}
			return logging.SetLevel(cfg.LogLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddGlobalArgs(cmd, settings)
	options.AddOutputArg(cmd, oo)
	AddCommands(cmd)
	return cmd
}

// AddCommands registers the comicview subcommands on topLevel.
func AddCommands(topLevel *cobra.Command) {
	addView(topLevel)
	addNav(topLevel)
	addFilter(topLevel)
	addList(topLevel)
	addPick(topLevel)
	addKeys(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addUpgrade(topLevel)
}

// openService loads the dataset and storage for the resolved config.
func openService(ctx context.Context) (*app.Service, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return app.Open(ctx, cfg)
}
