package cmd

import (
	"encoding/json"
	"fmt"

	statusadapter "github.com/bnema/voicehook/internal/adapters/render/status"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newStateCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect or reset the shared hook state",
	}

	cmd.AddCommand(newStateShowCmd(app), newStateResetCmd(app))

	return cmd
}

func newStateShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the shared hook state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.ready(); err != nil {
				return err
			}

			log := app.log.With("invocation_id", uuid.NewString(), "command", "state show")
			st := app.services(log, "").state.Load(cmd.Context())

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(st)
			}

			rendered, err := app.statusRenderer(*st, statusadapter.RenderOptions{
				Now:        app.now(),
				MinSpacing: app.settings.Pacing.MinSpacing,
				StatePath:  app.stateRepo.Path(),
			})
			if err != nil {
				return fmt.Errorf("render state: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newStateResetCmd(app *app) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Start a fresh conversation in the shared state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.ready(); err != nil {
				return err
			}

			log := app.log.With("invocation_id", uuid.NewString(), "command", "state reset")
			svc := app.services(log, "")

			st := svc.state.Load(cmd.Context())
			svc.state.ResetSession(cmd.Context(), st, sessionID)

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "state reset")
			return err
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID to record as current")

	return cmd
}
