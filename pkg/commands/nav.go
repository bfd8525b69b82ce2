package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/comicview/pkg/runner/nav"
	"tableflip.dev/comicview/pkg/viewer"
)

func addNav(topLevel *cobra.Command) {
	validArgs := make([]string, 0, len(viewer.Kinds()))
	for _, k := range viewer.Kinds() {
		validArgs = append(validArgs, k.String())
	}

	cmd := &cobra.Command{
		Use:   "nav first|prev|next|last|random|goto N",
		Short: "Move through the archive and print where you land.",
		Example: `
comicview nav next
comicview nav random --json
comicview nav goto 42
`,
		ValidArgs: validArgs,
		Args:      cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			act, err := nav.ParseAction(args)
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := openService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			defer svc.Close()

			n := nav.Nav{
				Service: svc,
				Action:  act,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(n.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
