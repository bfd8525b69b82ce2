package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/comicview/pkg/runner/key"
)

func addKeys(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "keys",
		Aliases: []string{"key"},
		Short:   "Print the viewer key bindings.",
		Example: `
comicview keys
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			k := key.Key{Out: cmd.OutOrStdout()}
			err := k.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
