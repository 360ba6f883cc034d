// Package web serves a gig book over HTTP. Each browser gets its own book,
// identified by a session cookie.
package web

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/javiermolinar/gigbook/internal/session"
)

const sessionKey = "session_id"

// Options configures a Server.
type Options struct {
	Sessions      *session.Manager
	Logger        *slog.Logger
	CookieName    string
	ExposeMetrics bool
	Metrics       *Metrics // nil creates a fresh set
}

// Server is the gigbook HTTP server.
type Server struct {
	e        *echo.Echo
	sessions *session.Manager
	log      *slog.Logger
	metrics  *Metrics
	cookie   string
	flashes  *flashStore
}

// New builds a Server with all routes registered.
func New(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NewMetrics()
	}
	cookie := opts.CookieName
	if cookie == "" {
		cookie = "gigbook_session"
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		e:        e,
		sessions: opts.Sessions,
		log:      log,
		metrics:  metrics,
		cookie:   cookie,
		flashes:  newFlashStore(),
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.LogAttrs(c.Request().Context(), slog.LevelInfo, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	e.Use(metrics.middleware)

	s.registerRoutes(opts.ExposeMetrics)
	return s
}

func (s *Server) registerRoutes(exposeMetrics bool) {
	s.e.GET("/healthz", health)
	if exposeMetrics {
		s.e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))
	}

	g := s.e.Group("", s.withSession)
	g.GET("/", s.listUpcoming)
	g.GET("/past_gigs", s.listPast)
	g.GET("/new_gig", s.newGigForm)
	g.POST("/new_gig", s.createGig)
	g.GET("/gigs/at/:date_time", s.gigAt)
	g.GET("/gigs/:id", s.editGigForm)
	g.POST("/gigs/:id", s.editGig)
	g.GET("/summary", s.monthlySummary)
	g.GET("/export.ics", s.exportICS)
	g.GET("/export.yaml", s.exportYAML)
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.e
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.log.Info("listening", "addr", addr)
	if err := s.e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// withSession makes sure the request carries a session cookie, issuing a
// new session ID when it is missing or malformed.
func (s *Server) withSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := ""
		if ck, err := c.Cookie(s.cookie); err == nil {
			if _, err := uuid.Parse(ck.Value); err == nil {
				id = ck.Value
			}
		}
		if id == "" {
			id = session.NewID()
			c.SetCookie(&http.Cookie{
				Name:     s.cookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				Expires:  time.Now().AddDate(1, 0, 0),
			})
		}
		c.Set(sessionKey, id)
		return next(c)
	}
}

func sessionID(c echo.Context) string {
	id, _ := c.Get(sessionKey).(string)
	return id
}

// flashStore keeps one pending message per session, consumed on the next
// listing.
type flashStore struct {
	mu   sync.Mutex
	msgs map[string]string
}

func newFlashStore() *flashStore {
	return &flashStore{msgs: make(map[string]string)}
}

func (f *flashStore) set(sessionID, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs[sessionID] = msg
}

func (f *flashStore) take(sessionID string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg := f.msgs[sessionID]
	delete(f.msgs, sessionID)
	return msg
}
