package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/gigbook/internal/export"
	"github.com/javiermolinar/gigbook/internal/gig"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export gigs as iCalendar or YAML",
		Example: `  gigbook export --format=ics -o gigs.ics
  gigbook export --format=yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "ics" && format != "yaml" {
				return fmt.Errorf("unknown format %q (want ics or yaml)", format)
			}

			var upcoming, past []gig.Gig
			err := a.withBook(cmd.Context(), func(b *gig.Book) error {
				upcoming = b.ListUpcoming()
				past = b.ListPast()
				return nil
			})
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			if format == "yaml" {
				return export.WriteYAML(w, upcoming, past)
			}

			skipped, err := export.WriteICS(w, append(past, upcoming...), export.ICSOptions{Stamp: a.clock.Now()})
			if err != nil {
				return err
			}
			for _, g := range skipped {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %q: unreadable date or time\n", g.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "ics", "Output format: ics or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}
