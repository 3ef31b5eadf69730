package root

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"mathquest/internal/config"
	"mathquest/internal/ui"
)

const Version = "0.2.0"

var (
	configPath string
	verbose    bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mq",
		Short:         "Math Quest: gamified math practice in the terminal",
		Long:          "Math Quest tracks XP, levels, coins and streaks while you clear math quests, take the daily quiz and play Orb Catcher.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd, false)
		},
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to config file")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(
		newBoardCmd(),
		newPlayCmd(),
		newStatusCmd(),
		newQuestsCmd(),
		newQuestCmd(),
		newShopCmd(),
		newBuyCmd(),
		newQuizCmd(),
		newLeaderboardCmd(),
		newAchievementsCmd(),
		newSceneCmd(),
		newSlidesCmd(),
		newHistoryCmd(),
		newSettingsCmd(),
		newExportCmd(),
		newImportCmd(),
		newResetCmd(),
		newConfigCmd(),
	)
	return cmd
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
