package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/gigbook/internal/config"
	"github.com/javiermolinar/gigbook/internal/dateutil"
	"github.com/javiermolinar/gigbook/internal/gig"
	"github.com/javiermolinar/gigbook/internal/session"
	"github.com/javiermolinar/gigbook/internal/storage"
	"github.com/javiermolinar/gigbook/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo    gig.Repository
	config  *config.Config
	log     *slog.Logger
	clock   dateutil.Clock
	root    *cobra.Command
	noColor bool
}

// NewApp creates a new CLI application. A nil repo is opened from cfg on
// first use.
func NewApp(repo gig.Repository, cfg *config.Config, log *slog.Logger) *App {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	a := &App{repo: repo, config: cfg, log: log, clock: dateutil.SystemClock{}}

	a.root = &cobra.Command{
		Use:   "gigbook",
		Short: "Book gigs and keep track of what they pay",
		Long: `Gigbook keeps a diary of your gigs.

It refuses double bookings, splits gigs into upcoming and past as time
goes by, and sums what you earned and what is still to come.

Run without a command to open the interactive browser.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor {
				DisableColor()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(cmd.Context()); err != nil {
				return err
			}
			return tui.Run(a.sessions(), a.config.Session.CLIID, a.config.UI.Theme)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.editCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.pastCmd())
	a.root.AddCommand(a.incomeCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.summaryCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.serveCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gigbook %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.ExecuteContext(context.Background())
}

// Close releases the repository, if one was opened.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

func (a *App) ensureRepo(ctx context.Context) error {
	if a.repo != nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	repo, err := storage.Open(ctx, a.config)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	a.repo = repo
	return nil
}

func (a *App) sessions() *session.Manager {
	m := session.NewManager(a.repo, a.clock, a.log)
	if ttl, err := a.config.SessionTTL(); err == nil {
		m.SetSessionTTL(ttl)
	}
	return m
}

// withBook runs fn against the CLI session's book and saves the result.
func (a *App) withBook(ctx context.Context, fn func(*gig.Book) error) error {
	if err := a.ensureRepo(ctx); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return a.sessions().Do(ctx, a.config.Session.CLIID, fn)
}

// userError replaces domain errors with the message shown to the user.
func userError(err error) error {
	var verr *gig.ValidationError
	if errors.As(err, &verr) || errors.Is(err, gig.ErrConflict) || errors.Is(err, gig.ErrGigNotFound) {
		return &messageError{msg: gig.Message(err), err: err}
	}
	return err
}

type messageError struct {
	msg string
	err error
}

func (e *messageError) Error() string { return e.msg }
func (e *messageError) Unwrap() error { return e.err }
