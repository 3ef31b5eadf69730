package root

import (
	"github.com/spf13/cobra"

	"mathquest/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the TUI dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd, false)
		},
	}

	return cmd
}

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Open the TUI on the Orb Catcher game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd, true)
		},
	}

	return cmd
}

func runBoard(cmd *cobra.Command, gameTab bool) error {
	s, err := openSession(cmd, true)
	if err != nil {
		return err
	}
	defer s.Close()

	return tui.Run(cmd.Context(), s.svc, s.tuiOptions(gameTab), cmd.OutOrStdout())
}
