package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/comicview/pkg/commands/options"
	"tableflip.dev/comicview/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	lo := &options.ListOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the comics in the archive.",
		Example: `
comicview list
comicview list --allowed
comicview list --category extra --json
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cat, err := lo.ParsedCategory()
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := openService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			defer svc.Close()

			l := list.List{
				Service:  svc,
				Allowed:  lo.Allowed,
				Category: cat,
				JSON:     oo.JSON,
				Out:      cmd.OutOrStdout(),
			}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}
	options.AddListArgs(cmd, lo, true)

	topLevel.AddCommand(cmd)
}
