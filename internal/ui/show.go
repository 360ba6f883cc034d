package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/gigbook/internal/gig"
	"github.com/javiermolinar/gigbook/internal/summary"
)

func (a *App) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [date&time | date time]",
		Short: "Show the gig booked at a date and time",
		Example: `  gigbook show 2024-05-01&20:00
  gigbook show 2024-05-01 20:00`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var date, clock string
			if len(args) == 2 {
				date, clock = args[0], args[1]
			} else {
				var ok bool
				date, clock, ok = gig.ParseSlot(args[0])
				if !ok {
					return fmt.Errorf("expected YYYY-MM-DD&HH:MM, got %q", args[0])
				}
			}

			var found gig.Gig
			err := a.withBook(cmd.Context(), func(b *gig.Book) error {
				g, ok := b.FindByDateTime(date, clock)
				if !ok {
					return gig.ErrGigNotFound
				}
				found = g
				return nil
			})
			if err != nil {
				return userError(err)
			}

			printGig(cmd.OutOrStdout(), found)
			return nil
		},
	}
}

func (a *App) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show gigs and income per month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var sum *summary.Summary
			err := a.withBook(cmd.Context(), func(b *gig.Book) error {
				sum = summary.ForBook(b)
				return nil
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(sum.Months) == 0 {
				fmt.Fprintln(out, "No gigs booked.")
				return nil
			}

			fmt.Fprintf(out, "=== %s ===\n", formatHeader("Gigs per month"))
			for _, m := range sum.Months {
				fmt.Fprintf(out, "  %s  %2d gig(s)  past %s  upcoming %s\n",
					m.Start.Format("Jan 2006"),
					m.Gigs,
					formatIncome(formatMoney(m.Past)),
					formatIncome(formatMoney(m.Future)),
				)
			}
			if busiest, ok := sum.Busiest(); ok {
				fmt.Fprintf(out, "\nBusiest month: %s\n", busiest.Start.Format("January 2006"))
			}
			printIncome(out, sum.Income)
			return nil
		},
	}
}
