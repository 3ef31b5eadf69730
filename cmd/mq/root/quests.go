package root

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mathquest/internal/engine"
	"mathquest/internal/ui"
)

func newQuestsCmd() *cobra.Command {
	var (
		search string
		typ    string
		page   int
	)
	cmd := &cobra.Command{
		Use:   "quests",
		Short: "List quests with search, type filter and paging",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			qt, err := engine.ParseQuestType(typ)
			if err != nil {
				return err
			}
			s, err := openSession(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			board := engine.NewBoard(s.cfg.Quests.PageSize)
			board.SetSearch(search)
			board.SetType(qt)
			board.SetPage(page)
			p := board.Page()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconQuest, "Quest Board"))
			if p.Total == 0 {
				fmt.Fprintln(out, ui.Warn.Render("No quests match."))
				if sug := engine.Suggest(search); len(sug) > 0 {
					fmt.Fprintln(out, ui.Muted.Render("Did you mean: "+strings.Join(sug, ", ")+"?"))
				}
				return nil
			}
			for _, st := range s.svc.QuestStates(p.Quests) {
				fmt.Fprintln(out, questRow(st))
			}
			fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("Page %d/%d (%d quests)", p.Page, p.TotalPages, p.Total)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by title")
	cmd.Flags().StringVarP(&typ, "type", "t", "all", "quest type: all, easy, daily, skill, challenge, boss")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")

	return cmd
}

func questRow(st engine.QuestState) string {
	q := st.Quest
	line := fmt.Sprintf("#%-3d %-22s %-10s L%-3d +%d XP +%d coins", q.ID, q.Title, q.Type, q.MinLevel, q.XP, q.Coins)
	switch {
	case st.Completed:
		return ui.IconDone + " " + ui.Muted.Render(line)
	case !st.Unlocked:
		return ui.IconLock + " " + ui.Muted.Render(line)
	default:
		return "▶  " + line
	}
}

func newQuestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quest",
		Short: "Inspect or complete a quest",
	}
	cmd.AddCommand(newQuestInfoCmd(), newQuestDoCmd())

	return cmd
}

func newQuestInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <id>",
		Short: "Show quest details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("quest", args[0])
			if err != nil {
				return err
			}
			q, ok := engine.QuestByID(id)
			if !ok {
				return fmt.Errorf("%w: %d", engine.ErrUnknownQuest, id)
			}
			fmt.Fprintln(cmd.OutOrStdout(), q.Info())
			return nil
		},
	}

	return cmd
}

func newQuestDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Complete a quest and collect its reward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("quest", args[0])
			if err != nil {
				return err
			}
			s, err := openSession(cmd, true)
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.svc.CompleteQuest(cmd.Context(), id)
			if err != nil {
				return err
			}
			printOutcome(cmd, ui.IconDone, res)
			return nil
		},
	}

	return cmd
}

func printOutcome(cmd *cobra.Command, icon string, res engine.Outcome) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.Good.Render(icon+" "+res.Message))
	if res.LeveledUp {
		fmt.Fprintf(out, "%s %s\n", ui.BadgeLevelUp, ui.Gold.Render(fmt.Sprintf("You reached level %d!", res.Level)))
	}
}

func parseID(what, arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(arg), "#"))
	if err != nil {
		return 0, fmt.Errorf("invalid %s id %q", what, arg)
	}
	return id, nil
}
