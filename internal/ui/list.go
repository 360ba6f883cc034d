package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/gigbook/internal/gig"
)

func (a *App) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List upcoming gigs",
		Long: `List upcoming gigs in date and time order, followed by your income.

Gigs whose date has passed are moved to the past list first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				gigs   []gig.Gig
				income gig.Income
			)
			err := a.withBook(cmd.Context(), func(b *gig.Book) error {
				gigs = b.ListUpcoming()
				income = b.IncomeSummary()
				return nil
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(gigs) == 0 {
				fmt.Fprintln(out, "No upcoming gigs.")
			} else {
				fmt.Fprintf(out, "=== %s ===\n", formatHeader("Upcoming gigs"))
				printGigTable(out, gigs, termWidth(), formatUpcoming)
			}
			fmt.Fprintln(out)
			printIncome(out, income)
			return nil
		},
	}
}

func (a *App) pastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "past",
		Short: "List past gigs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				gigs   []gig.Gig
				income gig.Income
			)
			err := a.withBook(cmd.Context(), func(b *gig.Book) error {
				gigs = b.ListPast()
				income = b.IncomeSummary()
				return nil
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(gigs) == 0 {
				fmt.Fprintln(out, "No past gigs.")
			} else {
				fmt.Fprintf(out, "=== %s ===\n", formatHeader("Past gigs"))
				printGigTable(out, gigs, termWidth(), formatPast)
			}
			fmt.Fprintln(out)
			printIncome(out, income)
			return nil
		},
	}
}

func (a *App) incomeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "income",
		Short: "Show past and upcoming income",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var income gig.Income
			err := a.withBook(cmd.Context(), func(b *gig.Book) error {
				income = b.IncomeSummary()
				return nil
			})
			if err != nil {
				return err
			}
			printIncome(cmd.OutOrStdout(), income)
			return nil
		},
	}
}
