package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"mathquest/internal/scene"
	"mathquest/internal/ui"
)

func newSlidesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slides",
		Short: "List the city slideshow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconScene, "City Slides"))
			for i, sl := range scene.Slides() {
				fmt.Fprintf(out, "%2d. %s\n", i+1, sl.Caption())
			}
			return nil
		},
	}

	return cmd
}

func newSceneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scene",
		Short: "Scene builder",
	}
	cmd.AddCommand(newSceneSaveCmd())

	return cmd
}

func newSceneSaveCmd() *cobra.Command {
	var (
		slide  int
		random bool
	)
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a scene for XP and coins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			slides := scene.Slides()
			if !random && (slide < 1 || slide > len(slides)) {
				return fmt.Errorf("slide must be between 1 and %d", len(slides))
			}
			if random && cmd.Flags().Changed("slide") {
				return errors.New("--slide and --random are mutually exclusive")
			}

			s, err := openSession(cmd, true)
			if err != nil {
				return err
			}
			defer s.Close()

			b := scene.NewBuilder()
			if random {
				b.Randomize(newRand(s.cfg.Game.Seed))
			} else {
				p := scene.PresetFromSlide(slides[slide-1])
				b.Open(&p)
			}

			res, err := s.svc.SaveScene(cmd.Context(), b.Current().Alt)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Scene: "+b.Current().Alt))
			printOutcome(cmd, ui.IconScene, res)
			return nil
		},
	}
	cmd.Flags().IntVar(&slide, "slide", 1, "slide number to build from")
	cmd.Flags().BoolVar(&random, "random", false, "pick a random car")

	return cmd
}
