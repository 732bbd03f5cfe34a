package cli

import (
	"VoiceBot/internal/dialog"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

func newAskCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [text]",
		Short: "Get a single reply from the dialog engine",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			text := strings.Join(args, " ")

			engine, err := a.dialogEngine()
			if err != nil {
				return err
			}
			manager, err := engine.NewManager(a.logger, dialog.CacheConfig{})
			if err != nil {
				return err
			}
			reply := manager.Process(text, a.language(text))

			out := cmd.OutOrStdout()
			if !asJSON {
				_, err := fmt.Fprintln(out, reply.Response)
				return err
			}

			data, err := jsoniter.MarshalIndent(reply, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, string(data))
			return err
		},
	}

	cmd.Flags().Bool("json", false, "print intent, confidence and entities as JSON")
	return cmd
}
