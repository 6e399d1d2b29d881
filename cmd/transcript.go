package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/voicehook/internal/transcript"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const (
	transcriptModeLast   = "last"
	transcriptModeRecent = "recent"
	transcriptModeAll    = "all"
)

type transcriptOptions struct {
	path      string
	mode      string
	session   string
	maxLength int
}

func newTranscriptCmd(app *app) *cobra.Command {
	var opts transcriptOptions

	cmd := &cobra.Command{
		Use:   "transcript",
		Short: "Print assistant messages mined from a transcript",
		Long:  "transcript prints assistant text from a JSONL transcript. The last and recent modes continue from the stored cursor and advance it; all reads the whole file and leaves the cursor alone.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTranscript(cmd, app, opts)
		},
	}

	cmd.Flags().StringVar(&opts.path, "path", "", "Transcript JSONL path")
	cmd.Flags().StringVar(&opts.mode, "mode", transcriptModeLast, "What to print: last, recent or all")
	cmd.Flags().StringVar(&opts.session, "session", "", "Session the cursor belongs to")
	cmd.Flags().IntVar(&opts.maxLength, "max-length", 0, "Reduce each message to a spoken summary of at most this many characters")
	_ = cmd.MarkFlagRequired("path")

	return cmd
}

func runTranscript(cmd *cobra.Command, app *app, opts transcriptOptions) error {
	switch opts.mode {
	case transcriptModeLast, transcriptModeRecent, transcriptModeAll:
	default:
		return fmt.Errorf("unknown mode %q (want %s, %s or %s)", opts.mode, transcriptModeLast, transcriptModeRecent, transcriptModeAll)
	}
	if opts.maxLength < 0 {
		return fmt.Errorf("max-length must not be negative, got %d", opts.maxLength)
	}

	if err := app.ready(); err != nil {
		return err
	}

	log := app.log.With("invocation_id", uuid.NewString(), "command", "transcript")
	svc := app.services(log, "")

	var result transcript.Result
	var err error
	if opts.mode == transcriptModeAll {
		result, err = transcript.ExtractNew(opts.path, 0)
	} else {
		st := svc.state.Load(cmd.Context())
		result, err = transcript.ExtractNew(opts.path, st.CursorFor(opts.path, opts.session))
		switch {
		case err != nil:
		case result.Restarted:
			svc.state.ResetCursor(cmd.Context(), st, opts.path, opts.session, result.Cursor)
		default:
			svc.state.AdvanceCursor(cmd.Context(), st, opts.path, opts.session, result.Cursor)
		}
	}
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	messages := result.Messages
	if opts.mode == transcriptModeLast && len(messages) > 1 {
		messages = messages[len(messages)-1:]
	}

	lines := make([]string, 0, len(messages))
	for _, message := range messages {
		text := transcript.Clean(message.Text)
		if opts.maxLength > 0 {
			text = transcript.Summarize(message.Text, opts.maxLength, min(app.settings.Summary.MinLength, opts.maxLength))
		}
		if text != "" {
			lines = append(lines, text)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n\n"))
	return err
}
