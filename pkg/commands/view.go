package commands

import (
	"github.com/spf13/cobra"

	teaui "tableflip.dev/comicview/pkg/runner/tea"
)

func addView(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the terminal comic viewer.",
		Example: `
comicview view
comicview view --dataset ~/comics/db.json --name mycomic
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := openService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()
			return teaui.Run(cmd.Context(), svc)
		},
	}

	topLevel.AddCommand(cmd)
}
