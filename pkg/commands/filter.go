package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/comicview/pkg/commands/options"
	"tableflip.dev/comicview/pkg/runner/filter"
)

func addFilter(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Show or change which categories of comics are shown.",
		Long: `Show or change which categories of comics are shown.

At least one category is always shown: turning one off while the other is
already off turns the other back on.`,
		Example: `
comicview filter
comicview filter --extras=false
comicview filter --storyline=true --extras=true
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			fo.Resolve(cmd)
			svc, err := openService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			defer svc.Close()

			f := filter.Filter{
				Service:   svc,
				Storyline: fo.Storyline,
				Extras:    fo.Extras,
				JSON:      oo.JSON,
				Out:       cmd.OutOrStdout(),
			}
			return oo.HandleError(f.Do(cmd.Context()))
		},
	}
	options.AddFilterArgs(cmd, fo)

	topLevel.AddCommand(cmd)
}
