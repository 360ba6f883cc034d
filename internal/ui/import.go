package ui

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/gigbook/internal/export"
	"github.com/javiermolinar/gigbook/internal/gig"
)

// importResult counts what happened to each gig of an imported document.
type importResult struct {
	imported int
	booked   []gig.Gig // slot already taken
	invalid  []gig.Gig // date or time rejected by the validator
}

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Import gigs from a YAML export",
		Long: `Book every gig of a file written by "gigbook export --format=yaml".

Gigs whose slot is already booked are skipped, as are gigs whose date or
time cannot be read. Use - to read from stdin.

Example:
  gigbook import backup.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					if errors.Is(err, os.ErrNotExist) {
						return fmt.Errorf("import file does not exist: %s", args[0])
					}
					return fmt.Errorf("opening %s: %w", args[0], err)
				}
				defer func() { _ = f.Close() }()
				r = f
			}

			doc, err := export.ReadYAML(r)
			if err != nil {
				return err
			}

			var res importResult
			err = a.withBook(cmd.Context(), func(b *gig.Book) error {
				var ierr error
				res, ierr = importGigs(b, append(doc.Past, doc.Upcoming...))
				return ierr
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			total := len(doc.Past) + len(doc.Upcoming)
			fmt.Fprintln(out, formatSuccess(fmt.Sprintf("Imported %d of %d gigs from %s", res.imported, total, args[0])))
			for _, g := range res.booked {
				fmt.Fprintf(out, "  skipped %q: %s\n", g.Name, gig.MsgDoubleBooked)
			}
			for _, g := range res.invalid {
				fmt.Fprintf(out, "  skipped %q: unreadable date or time\n", g.Name)
			}
			return nil
		},
	}

	return cmd
}

// importGigs books each gig as if it had been entered through the form, so
// it gets a fresh ID and the usual conflict check.
func importGigs(b *gig.Book, gigs []gig.Gig) (importResult, error) {
	var res importResult
	for _, g := range gigs {
		_, err := b.CreateGig(gig.InputFrom(g))
		var verr *gig.ValidationError
		switch {
		case err == nil:
			res.imported++
		case errors.Is(err, gig.ErrConflict):
			res.booked = append(res.booked, g)
		case errors.As(err, &verr):
			res.invalid = append(res.invalid, g)
		default:
			return res, fmt.Errorf("importing gig %q: %w", g.Name, err)
		}
	}
	return res, nil
}
