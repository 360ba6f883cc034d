package ui

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/javiermolinar/gigbook/internal/gig"
)

// gigFlags are the form fields shared by add and edit.
type gigFlags struct {
	name     string
	year     string
	date     string
	clock    string
	meridiem string
	income   string
}

func (f *gigFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.year, "year", "", "Year (YYYY, default: this year)")
	fs.StringVar(&f.date, "date", "", "Date as M-D or MM-DD (default: today)")
	fs.StringVar(&f.clock, "time", "", "Time as H, H:MM or HH:MM")
	fs.StringVar(&f.meridiem, "meridiem", "", "am or pm")
	fs.StringVar(&f.income, "income", "", "What the gig pays, e.g. 250 or 80.50")
}

// apply overrides the fields of in whose flags were set.
func (f *gigFlags) apply(fs *pflag.FlagSet, in gig.Input) gig.Input {
	if fs.Changed("name") {
		in.Name = f.name
	}
	if fs.Changed("year") {
		in.Year = f.year
	}
	if fs.Changed("date") {
		in.Date = f.date
	}
	if fs.Changed("time") {
		in.Time = f.clock
	}
	if fs.Changed("meridiem") {
		in.Meridiem = f.meridiem
	}
	if fs.Changed("income") {
		in.Income = f.income
	}
	return in
}

func (a *App) addCmd() *cobra.Command {
	var flags gigFlags

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Book a new gig",
		Long: `Book a new gig. Year and date default to today.

Example:
  gigbook add "Jazz brunch" --date=5-12 --time=11:30 --meridiem=am --income=150`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var created gig.Gig
			err := a.withBook(cmd.Context(), func(b *gig.Book) error {
				in := b.NewGigForm()
				in.Time = ""
				in.Meridiem = ""
				in = flags.apply(cmd.Flags(), in)
				in.Name = args[0]

				var err error
				created, err = b.CreateGig(in)
				return err
			})
			if err != nil {
				return userError(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatSuccess(gig.MsgCreated))
			printGig(out, created)
			return nil
		},
	}

	flags.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("time")
	return cmd
}

func (a *App) editCmd() *cobra.Command {
	var flags gigFlags

	cmd := &cobra.Command{
		Use:   "edit [id | date&time]",
		Short: "Change a booked gig",
		Long: `Change a booked gig. Only the given flags are changed; the rest keep
their stored values. The gig can be named by its ID or by its slot.

Example:
  gigbook edit 2024-05-01&20:00 --time=9 --meridiem=pm`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var res gig.EditResult
			err := a.withBook(cmd.Context(), func(b *gig.Book) error {
				id := resolveGigID(b, args[0])
				in, err := b.FormFor(id)
				if err != nil {
					return err
				}
				res, err = b.EditGig(id, flags.apply(cmd.Flags(), in))
				return err
			})
			if err != nil {
				return userError(err)
			}

			out := cmd.OutOrStdout()
			if res.Status == gig.EditUnchanged {
				fmt.Fprintln(out, formatMuted(res.Message()))
			} else {
				fmt.Fprintln(out, formatSuccess(res.Message()))
			}
			printGig(out, res.Gig)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.name, "name", "", "Gig name")
	flags.register(cmd.Flags())
	return cmd
}

// resolveGigID accepts a gig ID or a "date&time" slot.
func resolveGigID(b *gig.Book, ref string) string {
	if date, clock, ok := gig.ParseSlot(ref); ok {
		if g, found := b.FindByDateTime(date, clock); found {
			return g.ID
		}
	}
	return ref
}
