package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/supreassistant/internal/common"
	"github.com/spf13/cobra"
)

const notePreviewLen = 40

func (a *App) newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Work with calendar events",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List your events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.listEvents(cmd.Context())
		},
	})
	return cmd
}

func (a *App) newNotesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Work with notes",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List your notes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.listNotes(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "attach <noteId> <file>",
			Short: "Upload a file as a note attachment",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.attach(cmd.Context(), args[0], args[1])
			},
		},
	)
	return cmd
}

func (a *App) listEvents(ctx context.Context) error {
	if err := a.ensureLoggedIn(ctx); err != nil {
		return err
	}
	events, err := a.api.Events(ctx)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Fprintln(a.out, "No events.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTART\tEND\tTITLE\tLOCATION")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.StartTime.Local().Format(time.DateTime),
			e.EndTime.Local().Format(time.DateTime),
			e.Title,
			e.Location,
		)
	}
	return w.Flush()
}

func (a *App) listNotes(ctx context.Context) error {
	if err := a.ensureLoggedIn(ctx); err != nil {
		return err
	}
	notes, err := a.api.Notes(ctx)
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		fmt.Fprintln(a.out, "No notes.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUPDATED\tTITLE\tCONTENT")
	for _, n := range notes {
		content := strings.Join(strings.Fields(n.Content), " ")
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", n.ID, n.UpdatedAt.Local().Format(time.DateTime), n.Title, common.Truncate(content, notePreviewLen))
	}
	return w.Flush()
}

// attach registers the attachment, uploads the file to the presigned URL
// and marks the upload completed.
func (a *App) attach(ctx context.Context, noteID, path string) error {
	if err := a.ensureLoggedIn(ctx); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	att, uploadURL, err := a.api.CreateAttachment(ctx, noteID, filepath.Base(path))
	if err != nil {
		return err
	}
	if err := upload(ctx, uploadURL, data); err != nil {
		return fmt.Errorf("uploading %s: %w", att.FileName, err)
	}
	att, err = a.api.CompleteAttachment(ctx, noteID, att.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Attached %s (%s)\n", att.FileName, att.ID)
	return nil
}
