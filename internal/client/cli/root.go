package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. Persistent flags override the loaded
// configuration before any subcommand runs.
func (a *App) NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assistant",
		Short: "Terminal client for the personal assistant",
		Long: `Talk to your companion and browse your events and notes.

Examples:
  assistant register
  assistant login
  assistant chat
  assistant events list
  assistant notes attach <noteId> ./scan.pdf`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.connect()
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&a.config.ServerURL, "server", a.config.ServerURL, "Backend base URL")
	cmd.PersistentFlags().StringVar(&a.config.Token, "token", a.config.Token, "Access token")

	cmd.SetOut(a.out)
	cmd.SetErr(a.out)

	cmd.AddCommand(
		a.newRegisterCmd(),
		a.newLoginCmd(),
		a.newChatCmd(),
		a.newHistoryCmd(),
		a.newEventsCmd(),
		a.newNotesCmd(),
	)
	return cmd
}
