package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"mathquest/internal/engine"
	"mathquest/internal/ui"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change theme and sound",
	}
	cmd.AddCommand(newThemeCmd(), newSoundCmd())

	return cmd
}

func newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme [dark|light]",
		Short: "Show or set the theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			if len(args) == 1 {
				t, err := engine.ParseTheme(args[0])
				if err != nil {
					return err
				}
				if err := s.svc.SetTheme(cmd.Context(), t); err != nil {
					return err
				}
			}
			t := string(s.svc.Theme())
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Theme", ui.ThemeIcon(t)+" "+t))
			return nil
		},
	}

	return cmd
}

func newSoundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sound [on|off]",
		Short: "Show or set sound cues",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			if len(args) == 1 {
				on, err := engine.ParseOnOff(args[0])
				if err != nil {
					return err
				}
				if err := s.svc.SetSound(cmd.Context(), on); err != nil {
					return err
				}
			}
			on := s.svc.Sound()
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Sound", ui.SoundIcon(on)+" "+onOff(on)))
			return nil
		},
	}

	return cmd
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
