package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/comicview/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the dataset and where the session is stored.",
		Example: `
comicview info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := openService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			defer svc.Close()

			s := info.Info{
				Service: svc,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			err = s.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
