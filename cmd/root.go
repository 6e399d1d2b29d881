package cmd

import "github.com/spf13/cobra"

func Execute() error {
	rootCmd, cleanup := newRootCmd()
	defer cleanup()

	return rootCmd.Execute()
}

func newRootCmd() (*cobra.Command, func()) {
	rootCmd := &cobra.Command{
		Use:           "vh",
		Short:         "voicehook (vh): speak Claude Code hook events one at a time",
		Long:          "vh turns Claude Code hook events into short spoken announcements. Concurrent hook processes share one speech lock, one pacing record and one state file so announcements never overlap, repeat or flood.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		app = degradedApp(err)
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newHookCmd(app),
		newSayCmd(app),
		newTranscriptCmd(app),
		newStateCmd(app),
	)

	return rootCmd, app.close
}
