package cli

import (
	"VoiceBot/internal/entity"
	"fmt"
	"io"
)

func printHistory(out io.Writer, turns []entity.ConversationTurn) {
	if len(turns) == 0 {
		fmt.Fprintln(out, "No conversation history")
		return
	}

	fmt.Fprintln(out, "Conversation history:")
	for i, t := range turns {
		fmt.Fprintf(out, "%d. %s\n", i+1, t.Timestamp)
		fmt.Fprintf(out, "   You: %s\n", t.UserInput)
		fmt.Fprintf(out, "   Bot: %s\n", t.BotResponse)
		fmt.Fprintf(out, "   Intent: %s\n", t.Intent)
	}
}
