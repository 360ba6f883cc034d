package ui

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/gigbook/internal/web"
)

func (a *App) serveCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the gig book over HTTP",
		Long: `Start the HTTP server. Every browser session gets its own gig book.

Overdue gigs of all sessions are moved to past on the configured
sweep schedule.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := a.ensureRepo(ctx); err != nil {
				return err
			}
			if listen == "" {
				listen = a.config.Server.Listen
			}

			sessions := a.sessions()
			metrics := web.NewMetrics()
			srv := web.New(web.Options{
				Sessions:      sessions,
				Logger:        a.log,
				CookieName:    a.config.Server.CookieName,
				ExposeMetrics: a.config.Server.Metrics,
				Metrics:       metrics,
			})

			if spec := a.config.Server.SweepSchedule; spec != "" {
				sweeper, err := web.NewSweeper(spec, sessions, a.log, metrics)
				if err != nil {
					return err
				}
				sweeper.Run(ctx)
				sweeper.Start()
				defer func() {
					stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					sweeper.Stop(stopCtx)
				}()
			}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start(listen) }()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("serving: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			a.log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Address to listen on (default from config)")
	return cmd
}
