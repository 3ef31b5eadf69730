package root

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mathquest/internal/engine"
	"mathquest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, XP, coins and streak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			r := s.svc.Record()
			out := cmd.OutOrStdout()
			within := engine.ProgressWithinLevel(r.XP)

			fmt.Fprintln(out, ui.Heading(ui.IconLevel, "Player Status"))
			fmt.Fprintln(out, ui.LabelValue("Level", r.Level))
			fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%d (%d/%d toward level %d)", r.XP, within, engine.XPPerLevel, r.Level+1)))
			fmt.Fprintln(out, "  "+ui.ProgressBar(within, engine.XPPerLevel, 30))
			fmt.Fprintln(out, ui.LabelValue("Coins", r.Coins))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%d day(s)", r.Streak)))
			fmt.Fprintln(out, ui.LabelValue("Quests completed", r.QuestsCompleted))
			fmt.Fprintln(out, ui.LabelValue("Best score", r.BestScore))
			fmt.Fprintln(out, ui.LabelValue("Rank", fmt.Sprintf("#%d", engine.Rank(r))))

			counts, err := s.svc.AwardCounts(cmd.Context(), time.Now().AddDate(0, 0, -7))
			if err != nil {
				return err
			}
			week := make([]string, 0, len(engine.AwardSources))
			for _, src := range engine.AwardSources {
				week = append(week, fmt.Sprintf("%s %d", src, counts[src]))
			}
			fmt.Fprintln(out, ui.LabelValue("Last 7 days", strings.Join(week, ", ")))
			fmt.Fprintln(out, "")

			achievements := engine.Achievements(r)
			fmt.Fprintln(out, ui.LabelValue("Achievements", fmt.Sprintf("%d/%d", engine.CountEarned(achievements), len(achievements))))
			fmt.Fprintln(out, ui.LabelValue("Inventory", inventoryLine(r)))
			quiz := ui.Good.Render("available")
			if !s.svc.QuizAvailable() {
				quiz = ui.Muted.Render("done for today")
			}
			fmt.Fprintln(out, ui.LabelValue("Daily quiz", quiz))
			fmt.Fprintln(out, ui.LabelValue("Sound", ui.SoundIcon(r.Sound)))
			fmt.Fprintln(out, ui.LabelValue("Theme", ui.ThemeIcon(string(s.svc.Theme()))+" "+string(s.svc.Theme())))
			return nil
		},
	}

	return cmd
}

func inventoryLine(r engine.Record) string {
	if len(r.Inventory) == 0 {
		return ui.Muted.Render("empty")
	}
	parts := make([]string, 0, len(r.Inventory))
	for _, id := range r.Inventory {
		if it, ok := engine.ItemByID(id); ok {
			parts = append(parts, it.Emoji+" "+it.Name)
		}
	}
	return strings.Join(parts, ", ")
}

func newLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "leaderboard",
		Aliases: []string{"ranks"},
		Short:   "Show the leaderboard",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconRank, "Leaderboard"))
			for i, p := range engine.Standings(s.svc.Record()) {
				line := fmt.Sprintf("%2d. %-8s L%-3d %5d XP", i+1, p.Name, p.Level, p.XP)
				if p.You {
					line = ui.Gold.Render(line)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	return cmd
}

func newAchievementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "List achievements and which are earned",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			list := engine.Achievements(s.svc.Record())
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconRank, fmt.Sprintf("Achievements (%d/%d)", engine.CountEarned(list), len(list))))
			for _, a := range list {
				if a.Earned {
					fmt.Fprintf(out, "%s %s %s\n", ui.IconDone, a.Icon, a.Name)
					continue
				}
				fmt.Fprintf(out, "%s %s\n", ui.IconLock, ui.Muted.Render(a.Icon+" "+a.Name))
			}
			return nil
		},
	}

	return cmd
}

func newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent XP and coin awards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			awards, err := s.svc.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconXP, "Recent awards"))
			if len(awards) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("Nothing yet. Go clear a quest!"))
				return nil
			}
			loc := s.cfg.Location()
			for _, a := range awards {
				fmt.Fprintf(out, "%s  %-6s %-24s %s %s\n",
					ui.Muted.Render(a.AwardedAt.In(loc).Format("2006-01-02 15:04")),
					a.Source,
					a.Ref,
					ui.Good.Render(fmt.Sprintf("+%d XP", a.XP)),
					ui.Gold.Render(fmt.Sprintf("+%d coins", a.Coins)),
				)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of awards to show")

	return cmd
}
