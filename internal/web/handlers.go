package web

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/javiermolinar/gigbook/internal/export"
	"github.com/javiermolinar/gigbook/internal/gig"
	"github.com/javiermolinar/gigbook/internal/summary"
)

type incomeView struct {
	Past   decimal.Decimal `json:"past"`
	Future decimal.Decimal `json:"future"`
	Total  decimal.Decimal `json:"total"`
}

func newIncomeView(i gig.Income) incomeView {
	return incomeView{Past: i.Past, Future: i.Future, Total: i.Total()}
}

type listResponse struct {
	Gigs   []gig.Gig  `json:"gigs"`
	Income incomeView `json:"income"`
	Flash  string     `json:"flash,omitempty"`
}

type formResponse struct {
	ID    string    `json:"id,omitempty"`
	Form  gig.Input `json:"form"`
	Years []int     `json:"years"`
}

type gigResponse struct {
	Message string         `json:"message"`
	Status  gig.EditStatus `json:"status,omitempty"`
	Gig     gig.Gig        `json:"gig"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (s *Server) listUpcoming(c echo.Context) error {
	return s.list(c, (*gig.Book).ListUpcoming)
}

func (s *Server) listPast(c echo.Context) error {
	return s.list(c, (*gig.Book).ListPast)
}

func (s *Server) list(c echo.Context, gigs func(*gig.Book) []gig.Gig) error {
	id := sessionID(c)
	var resp listResponse
	err := s.sessions.Do(c.Request().Context(), id, func(b *gig.Book) error {
		resp.Gigs = nonNil(gigs(b))
		resp.Income = newIncomeView(b.IncomeSummary())
		return nil
	})
	if err != nil {
		return err
	}
	resp.Flash = s.flashes.take(id)
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) newGigForm(c echo.Context) error {
	var resp formResponse
	err := s.sessions.Do(c.Request().Context(), sessionID(c), func(b *gig.Book) error {
		resp.Form = b.NewGigForm()
		resp.Years = b.YearChoices()
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) createGig(c echo.Context) error {
	var in gig.Input
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request")
	}

	id := sessionID(c)
	var created gig.Gig
	err := s.sessions.Do(c.Request().Context(), id, func(b *gig.Book) error {
		var err error
		created, err = b.CreateGig(in)
		return err
	})
	if err != nil {
		return s.bookingError(c, err)
	}

	s.metrics.gigsCreated.Inc()
	s.flashes.set(id, gig.MsgCreated)
	s.log.Debug("gig created", "session", id, "gig", created.ID, "slot", created.Slot())
	return c.JSON(http.StatusCreated, gigResponse{Message: gig.MsgCreated, Gig: created})
}

func (s *Server) editGigForm(c echo.Context) error {
	gigID := c.Param("id")
	resp := formResponse{ID: gigID}
	err := s.sessions.Do(c.Request().Context(), sessionID(c), func(b *gig.Book) error {
		form, err := b.FormFor(gigID)
		if err != nil {
			return err
		}
		resp.Form = form
		resp.Years = b.YearChoices()
		return nil
	})
	if err != nil {
		return s.bookingError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) editGig(c echo.Context) error {
	var in gig.Input
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request")
	}

	id := sessionID(c)
	gigID := c.Param("id")
	var res gig.EditResult
	err := s.sessions.Do(c.Request().Context(), id, func(b *gig.Book) error {
		var err error
		res, err = b.EditGig(gigID, in)
		return err
	})
	if err != nil {
		return s.bookingError(c, err)
	}

	s.metrics.gigEdits.WithLabelValues(string(res.Status)).Inc()
	s.flashes.set(id, res.Message())
	return c.JSON(http.StatusOK, gigResponse{Message: res.Message(), Status: res.Status, Gig: res.Gig})
}

func (s *Server) gigAt(c echo.Context) error {
	date, clock, ok := gig.ParseSlot(c.Param("date_time"))
	if !ok {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "expected YYYY-MM-DD&HH:MM"})
	}

	var found gig.Gig
	err := s.sessions.Do(c.Request().Context(), sessionID(c), func(b *gig.Book) error {
		g, ok := b.FindByDateTime(date, clock)
		if !ok {
			return gig.ErrGigNotFound
		}
		found = g
		return nil
	})
	if err != nil {
		return s.bookingError(c, err)
	}
	return c.JSON(http.StatusOK, found)
}

func (s *Server) monthlySummary(c echo.Context) error {
	var sum *summary.Summary
	err := s.sessions.Do(c.Request().Context(), sessionID(c), func(b *gig.Book) error {
		sum = summary.ForBook(b)
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sum)
}

func (s *Server) exportICS(c echo.Context) error {
	var buf bytes.Buffer
	err := s.sessions.Do(c.Request().Context(), sessionID(c), func(b *gig.Book) error {
		gigs := append(b.ListPast(), b.ListUpcoming()...)
		skipped, err := export.WriteICS(&buf, gigs, export.ICSOptions{Stamp: b.Now()})
		if len(skipped) > 0 {
			s.log.Warn("gigs left out of calendar export", "count", len(skipped))
		}
		return err
	})
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="gigs.ics"`)
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

func (s *Server) exportYAML(c echo.Context) error {
	var buf bytes.Buffer
	err := s.sessions.Do(c.Request().Context(), sessionID(c), func(b *gig.Book) error {
		return export.WriteYAML(&buf, b.ListUpcoming(), b.ListPast())
	})
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/yaml", buf.Bytes())
}

// bookingError maps domain errors to status codes; anything else is left
// to echo's error handler.
func (s *Server) bookingError(c echo.Context, err error) error {
	var verr *gig.ValidationError
	switch {
	case errors.As(err, &verr):
		s.metrics.TrackRejection("validation")
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: gig.Message(err)})
	case errors.Is(err, gig.ErrConflict):
		s.metrics.TrackRejection("conflict")
		return c.JSON(http.StatusConflict, errorResponse{Error: gig.Message(err)})
	case errors.Is(err, gig.ErrGigNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: gig.Message(err)})
	}
	s.log.Error("request failed", "path", c.Path(), "error", err)
	return err
}

func nonNil(gigs []gig.Gig) []gig.Gig {
	if gigs == nil {
		return []gig.Gig{}
	}
	return gigs
}
