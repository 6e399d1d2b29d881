package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/bnema/voicehook/internal/adapters/hookinput"
	"github.com/bnema/voicehook/internal/domain"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

type hookOptions struct {
	hook    string
	tool    string
	file    string
	command string
	query   string
	message string
	voice   string
}

func newHookCmd(app *app) *cobra.Command {
	var opts hookOptions

	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Handle one Claude Code hook event read from stdin",
		Long:  "hook reads the hook JSON document from stdin, decides what to say and speaks it through the shared speech lock. Failures are logged and never fail the hook.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHook(cmd, app, opts)
		},
	}

	cmd.Flags().StringVar(&opts.hook, "hook", "", "Hook kind: UserPromptSubmit, PreToolUse, PostToolUse, Stop or Notification")
	cmd.Flags().StringVar(&opts.tool, "tool", "", "Tool name when stdin does not carry one")
	cmd.Flags().StringVar(&opts.file, "file", "", "File path the tool operates on")
	cmd.Flags().StringVar(&opts.command, "command", "", "Command the tool runs")
	cmd.Flags().StringVar(&opts.query, "query", "", "Search query or pattern")
	cmd.Flags().StringVar(&opts.message, "message", "", "Text to speak when the hook has nothing to say")
	cmd.Flags().StringVar(&opts.voice, "voice", "", "Voice override for the system speech engine")
	_ = cmd.MarkFlagRequired("hook")

	return cmd
}

func runHook(cmd *cobra.Command, app *app, opts hookOptions) error {
	kind, err := domain.ParseHookKind(opts.hook)
	if err != nil {
		return err
	}

	log := app.log.With("invocation_id", uuid.NewString(), "hook", string(kind))
	if err := app.ready(); err != nil {
		log.Warn("settings unavailable, using built-in defaults", "error", err)
		if app.stateRepo == nil {
			return nil
		}
	}
	payload := readHookPayload(cmd.InOrStdin(), log)

	event := domain.HookEvent{
		Kind:     kind,
		ToolName: opts.tool,
		FilePath: opts.file,
		Command:  opts.command,
		Query:    opts.query,
		Message:  opts.message,
		Payload:  payload,
	}
	log.Debug("hook received", "tool", event.Tool(), "session_id", event.SessionID())

	svc := app.services(log, opts.voice)
	report, err := svc.hooks.Handle(cmd.Context(), event)
	if err != nil {
		log.Error("announce hook event", "reason", report.Decision.Reason, "error", err)
		return nil
	}

	log.Debug("hook handled",
		"speak", report.Decision.Speak,
		"reason", report.Decision.Reason,
		"state", report.Outcome.State.String(),
	)
	return nil
}

// readHookPayload skips interactive terminals so running vh by hand never
// blocks waiting for input.
func readHookPayload(in io.Reader, log *slog.Logger) *domain.HookPayload {
	if file, ok := in.(*os.File); ok && (isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())) {
		return nil
	}

	payload, err := hookinput.Read(in)
	if err != nil {
		log.Warn("read hook input", "error", err)
		return nil
	}

	return payload
}
