package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"mathquest/internal/ui"
)

func newShopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "List shop items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconShop, fmt.Sprintf("Shop (%d coins)", s.svc.Record().Coins)))
			for _, e := range s.svc.ShopEntries() {
				line := fmt.Sprintf("%d %s %-14s %-10s %4d coins", e.ID, e.Emoji, e.Name, ui.RarityText(e.Rarity), e.Cost)
				switch {
				case e.Owned:
					fmt.Fprintln(out, ui.Muted.Render(line)+" "+ui.Good.Render("owned"))
				case !e.Affordable:
					fmt.Fprintln(out, line+" "+ui.Muted.Render("(need more coins)"))
				default:
					fmt.Fprintln(out, line)
				}
			}
			return nil
		},
	}

	return cmd
}

func newBuyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy <item-id>",
		Short: "Buy a shop item with coins",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("item", args[0])
			if err != nil {
				return err
			}
			s, err := openSession(cmd, true)
			if err != nil {
				return err
			}
			defer s.Close()

			it, err := s.svc.Purchase(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("Purchased %s %s! %d coins left.", it.Emoji, it.Name, s.svc.Record().Coins)))
			return nil
		},
	}

	return cmd
}
