package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bnema/voicehook/internal/application"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newSayCmd(app *app) *cobra.Command {
	var voice string

	cmd := &cobra.Command{
		Use:   "say <text>",
		Short: "Announce text through the shared speech lock",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSay(cmd, app, strings.Join(args, " "), voice)
		},
	}

	cmd.Flags().StringVar(&voice, "voice", "", "Voice override for the system speech engine")

	return cmd
}

func runSay(cmd *cobra.Command, app *app, text string, voice string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("nothing to say")
	}

	if err := app.ready(); err != nil {
		return err
	}

	log := app.log.With("invocation_id", uuid.NewString(), "command", "say")
	svc := app.services(log, voice)

	var outcome application.Outcome
	announce := func(ctx context.Context) error {
		var err error
		outcome, err = svc.coord.Announce(ctx, text)
		return err
	}

	var err error
	if isTerminalWriter(cmd.ErrOrStderr()) {
		err = runSaySpinner(cmd.Context(), cmd.ErrOrStderr(), announce)
	} else {
		err = announce(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("say: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), describeOutcome(outcome))
	return err
}

func describeOutcome(outcome application.Outcome) string {
	if outcome.Spoken {
		return "spoken"
	}
	if outcome.Reason != "" {
		return "skipped: " + outcome.Reason
	}

	return outcome.State.String()
}

func isTerminalWriter(w any) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
