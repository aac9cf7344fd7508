package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/supreassistant/internal/server/models"
	"github.com/spf13/cobra"
)

func (a *App) newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with your companion",
		Long: `Start an interactive chat. Ask questions, or ask the companion to
schedule an event or write a note. Type "exit" or "quit" to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.ensureLoggedIn(ctx); err != nil {
				return err
			}

			fmt.Fprintln(a.out, "Chat started (type 'exit' to leave)")
			for {
				line, err := getSimpleText(a.reader, "you", a.out)
				if err != nil {
					if errors.Is(err, io.EOF) {
						return nil
					}
					return err
				}
				switch strings.ToLower(line) {
				case "":
					continue
				case "exit", "quit":
					fmt.Fprintln(a.out, "Bye!")
					return nil
				}

				reply, err := a.api.Chat(ctx, line)
				if err != nil {
					fmt.Fprintf(a.out, "error: %v\n", err)
					continue
				}
				fmt.Fprintf(a.out, "companion: %s\n", reply.Content)
			}
		},
	}
}

var historyLimit int

func (a *App) newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent chat messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.ensureLoggedIn(ctx); err != nil {
				return err
			}

			list, err := a.api.History(ctx, historyLimit)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(a.out, "No messages yet.")
				return nil
			}
			// newest first from the server; print oldest first
			for i := len(list) - 1; i >= 0; i-- {
				m := list[i]
				who := "you"
				if m.Role == models.RoleAssistant {
					who = "companion"
				}
				fmt.Fprintf(a.out, "[%s] %s: %s\n", m.CreatedAt.Local().Format(time.DateTime), who, m.Content)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&historyLimit, "limit", 20, "Number of messages to show")
	return cmd
}
