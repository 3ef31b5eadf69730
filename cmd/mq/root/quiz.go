package root

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mathquest/internal/engine"
	"mathquest/internal/ui"
)

func newQuizCmd() *cobra.Command {
	var answer int
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Take the daily quiz",
		Long:  "Take the daily quiz. The answer is read from --answer, or from stdin when the flag is not set.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, true)
			if err != nil {
				return err
			}
			defer s.Close()

			q, err := s.svc.OpenQuiz()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconQuiz, "Daily Quiz"))
			fmt.Fprintln(out, q.Question)
			for i, opt := range q.Options {
				fmt.Fprintf(out, "  %s %s\n", ui.Key.Render(fmt.Sprintf("%d)", i+1)), opt)
			}

			if answer == 0 {
				fmt.Fprint(out, "Your answer: ")
				if answer, err = readAnswer(cmd); err != nil {
					return err
				}
			}

			res, err := s.svc.AnswerQuiz(cmd.Context(), q, answer-1)
			if err != nil {
				return err
			}
			if answer-1 == q.Answer {
				printOutcome(cmd, ui.IconQuiz, res)
				return nil
			}
			fmt.Fprintln(out, ui.Warn.Render(res.Message)+" "+ui.Muted.Render("Answer: "+q.Options[q.Answer]))
			if res.LeveledUp {
				fmt.Fprintf(out, "%s %s\n", ui.BadgeLevelUp, ui.Gold.Render(fmt.Sprintf("You reached level %d!", res.Level)))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&answer, "answer", "a", 0, "option number (1-based)")

	return cmd
}

func readAnswer(cmd *cobra.Command) (int, error) {
	sc := bufio.NewScanner(cmd.InOrStdin())
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return 0, fmt.Errorf("read answer: %w", err)
		}
		return 0, errors.New("no answer given")
	}
	n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", engine.ErrInvalidChoice, sc.Text())
	}
	return n, nil
}
