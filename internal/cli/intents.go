package cli

import (
	"VoiceBot/pkg/nlp"
	"fmt"

	"github.com/spf13/cobra"
)

func newIntentsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "intents",
		Short: "List the intents the dialog engine recognizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, intent := range nlp.AllIntents() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), intent.String()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
