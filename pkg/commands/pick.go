package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/comicview/pkg/commands/options"
	"tableflip.dev/comicview/pkg/runner/pick"
)

func addPick(topLevel *cobra.Command) {
	lo := &options.ListOptions{}

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Search for a comic and jump to it.",
		Example: `
comicview pick
comicview pick --allowed
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := openService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			p := pick.Pick{
				Service: svc,
				Allowed: lo.Allowed,
				In:      cmd.InOrStdin(),
				Out:     cmd.OutOrStdout(),
			}
			return p.Do(cmd.Context())
		},
	}
	options.AddListArgs(cmd, lo, false)

	topLevel.AddCommand(cmd)
}
