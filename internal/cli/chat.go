package cli

import (
	"VoiceBot/pkg/log"
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

const helpText = `Commands:
  help              show this help
  history           show the conversation history
  clear             clear the conversation history
  stats             show processing and cache statistics
  status            show the session status
  quit, exit, q     leave the chat
Anything else is sent to the bot.`

// maxLineSize bounds a single REPL line.
const maxLineSize = 16 << 20

func newChatCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server, _ := cmd.Flags().GetString("server")

			var b backend
			var err error
			if server != "" {
				b, err = newRemoteBackend(cmd.Context(), a, server)
			} else {
				b, err = newLocalBackend(a)
			}
			if err != nil {
				return err
			}
			defer b.Close()

			return a.repl(cmd.InOrStdin(), cmd.OutOrStdout(), b)
		},
	}

	cmd.Flags().String("server", "", "chat over a running server's WebSocket (ws://host:port/api/v1/chat/ws)")
	return cmd
}

func (a *app) repl(in io.Reader, out io.Writer, b backend) error {
	fmt.Fprintln(out, "Voice bot ready. Speak English or Hindi; type 'help' for commands.")

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit", "q":
			fmt.Fprintln(out, "Goodbye!")
			return nil
		case "help":
			fmt.Fprintln(out, helpText)
		case "history":
			turns, err := b.History()
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			printHistory(out, turns)
		case "clear":
			if err := b.Clear(); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			fmt.Fprintln(out, "Conversation history cleared")
		case "stats", "status":
			for _, l := range b.Status() {
				fmt.Fprintln(out, "  "+l)
			}
		default:
			reply, err := b.Send(line, a.language(line))
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "Bot: %s\n", reply.Response)
			a.logger.WithFields(log.Fields{
				"intent":     reply.Intent,
				"confidence": reply.Confidence,
				"language":   reply.Language,
			}).Debug("turn")
		}
	}
}
