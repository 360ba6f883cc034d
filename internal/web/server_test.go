package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/gigbook/internal/dateutil"
	"github.com/javiermolinar/gigbook/internal/gig"
	"github.com/javiermolinar/gigbook/internal/session"
)

var testNow = time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*Server, *session.Manager) {
	t.Helper()
	mgr := session.NewManager(gig.NewMemoryRepository(), dateutil.FixedClock{T: testNow}, nil)
	return New(Options{Sessions: mgr, ExposeMetrics: true}), mgr
}

// browser replays the session cookie like a real client.
type browser struct {
	t      *testing.T
	h      http.Handler
	cookie *http.Cookie
}

func newBrowser(t *testing.T, s *Server) *browser {
	return &browser{t: t, h: s.Handler()}
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	rec := httptest.NewRecorder()
	b.h.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "gigbook_session" {
			b.cookie = ck
		}
	}
	return rec
}

func gigForm(name, year, date, clock, meridiem, income string) url.Values {
	return url.Values{
		"name":   {name},
		"year":   {year},
		"date":   {date},
		"time":   {clock},
		"pm":     {meridiem},
		"income": {income},
	}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decoding %q: %v", rec.Body.String(), err)
	}
	return v
}

type listBody struct {
	Gigs   []gig.Gig `json:"gigs"`
	Income struct {
		Past   string `json:"past"`
		Future string `json:"future"`
		Total  string `json:"total"`
	} `json:"income"`
	Flash string `json:"flash"`
}

type gigBody struct {
	Message string  `json:"message"`
	Status  string  `json:"status"`
	Gig     gig.Gig `json:"gig"`
}

type errorBody struct {
	Error string `json:"error"`
}

func TestCreateAndList(t *testing.T) {
	s, _ := newTestServer(t)
	b := newBrowser(t, s)

	rec := b.do(http.MethodPost, "/new_gig", gigForm("Gala", "2024", "5-1", "8", "pm", "300"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
	}
	if b.cookie == nil {
		t.Fatal("expected a session cookie")
	}
	created := decode[gigBody](t, rec)
	if created.Message != gig.MsgCreated {
		t.Errorf("message = %q", created.Message)
	}
	if created.Gig.Date != "2024-05-01" || created.Gig.Time != "20:00" {
		t.Errorf("stored %s %s, want 2024-05-01 20:00", created.Gig.Date, created.Gig.Time)
	}

	list := decode[listBody](t, b.do(http.MethodGet, "/", nil))
	if len(list.Gigs) != 1 || list.Gigs[0].Name != "Gala" {
		t.Fatalf("gigs = %+v", list.Gigs)
	}
	if list.Income.Future != "300" || list.Income.Past != "0" {
		t.Errorf("income = %+v", list.Income)
	}
	if list.Flash != gig.MsgCreated {
		t.Errorf("flash = %q, want %q", list.Flash, gig.MsgCreated)
	}

	again := decode[listBody](t, b.do(http.MethodGet, "/", nil))
	if again.Flash != "" {
		t.Errorf("flash shown twice: %q", again.Flash)
	}
}

func TestCreate_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		form   url.Values
		status int
		msg    string
	}{
		{"no meridiem", gigForm("A", "2024", "5-1", "8", "", ""), http.StatusUnprocessableEntity, gig.MsgSelectMeridiem},
		{"hour out of range", gigForm("A", "2024", "5-1", "13", "pm", ""), http.StatusUnprocessableEntity, gig.MsgInvalidTime},
		{"no year", gigForm("A", "", "5-1", "8", "pm", ""), http.StatusUnprocessableEntity, gig.MsgSelectYear},
		{"bad format", gigForm("A", "2024", "5/1", "8", "pm", ""), http.StatusUnprocessableEntity, gig.MsgDateFormat},
		{"impossible date", gigForm("A", "2024", "2-30", "8", "pm", ""), http.StatusUnprocessableEntity, gig.MsgInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t)
			rec := newBrowser(t, s).do(http.MethodPost, "/new_gig", tt.form)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if got := decode[errorBody](t, rec).Error; got != tt.msg {
				t.Errorf("error = %q, want %q", got, tt.msg)
			}
		})
	}
}

func TestCreate_UpperCaseMeridiem(t *testing.T) {
	s, _ := newTestServer(t)
	b := newBrowser(t, s)

	rec := b.do(http.MethodPost, "/new_gig", gigForm("Gala", "2024", "5-1", "8", "PM", ""))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
	}
	if got := decode[gigBody](t, rec).Gig.Time; got != "20:00" {
		t.Errorf("time = %q, want 20:00", got)
	}

	rec = b.do(http.MethodPost, "/new_gig", gigForm("Clash", "2024", "5-1", "8", "pm", ""))
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestCreate_DoubleBooked(t *testing.T) {
	s, _ := newTestServer(t)
	b := newBrowser(t, s)

	b.do(http.MethodPost, "/new_gig", gigForm("First", "2024", "5-1", "8", "pm", ""))
	rec := b.do(http.MethodPost, "/new_gig", gigForm("Second", "2024", "05-01", "8:00", "pm", ""))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if got := decode[errorBody](t, rec).Error; got != gig.MsgDoubleBooked {
		t.Errorf("error = %q", got)
	}

	list := decode[listBody](t, b.do(http.MethodGet, "/", nil))
	if len(list.Gigs) != 1 {
		t.Errorf("gigs = %d, want 1", len(list.Gigs))
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	s, _ := newTestServer(t)
	alice := newBrowser(t, s)
	bob := newBrowser(t, s)

	alice.do(http.MethodPost, "/new_gig", gigForm("Gala", "2024", "5-1", "8", "pm", ""))
	if rec := bob.do(http.MethodPost, "/new_gig", gigForm("Gala", "2024", "5-1", "8", "pm", "")); rec.Code != http.StatusCreated {
		t.Fatalf("same slot in another session: status %d", rec.Code)
	}
	if list := decode[listBody](t, bob.do(http.MethodGet, "/", nil)); len(list.Gigs) != 1 {
		t.Errorf("bob sees %d gigs, want 1", len(list.Gigs))
	}
}

func TestEditGig(t *testing.T) {
	s, _ := newTestServer(t)
	b := newBrowser(t, s)

	first := decode[gigBody](t, b.do(http.MethodPost, "/new_gig", gigForm("Gala", "2024", "5-1", "8", "pm", "300")))
	b.do(http.MethodPost, "/new_gig", gigForm("Brunch", "2024", "5-2", "11", "am", "90"))
	path := "/gigs/" + first.Gig.ID

	t.Run("form is unpacked", func(t *testing.T) {
		rec := b.do(http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		body := decode[struct {
			Form  gig.Input `json:"form"`
			Years []int     `json:"years"`
		}](t, rec)
		want := gig.Input{Name: "Gala", Year: "2024", Date: "5-1", Time: "8:00", Meridiem: "pm", Income: "300"}
		if body.Form != want {
			t.Errorf("form = %+v, want %+v", body.Form, want)
		}
		if len(body.Years) != 4 || body.Years[0] != 2023 {
			t.Errorf("years = %v", body.Years)
		}
	})

	t.Run("unchanged", func(t *testing.T) {
		rec := b.do(http.MethodPost, path, gigForm("Gala", "2024", "5-1", "8:00", "pm", "300"))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if got := decode[gigBody](t, rec); got.Message != gig.MsgUnchanged || got.Status != string(gig.EditUnchanged) {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("edited", func(t *testing.T) {
		rec := b.do(http.MethodPost, path, gigForm("Gala", "2024", "5-1", "9", "pm", "350"))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		got := decode[gigBody](t, rec)
		if got.Message != gig.MsgEdited || got.Gig.Time != "21:00" || got.Gig.ID != first.Gig.ID {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("into a taken slot", func(t *testing.T) {
		rec := b.do(http.MethodPost, path, gigForm("Gala", "2024", "5-2", "11", "am", "350"))
		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", rec.Code)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		rec := b.do(http.MethodPost, path, gigForm("Gala", "2024", "5-1", "9:75", "pm", ""))
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want 422", rec.Code)
		}
	})

	t.Run("unknown gig", func(t *testing.T) {
		rec := b.do(http.MethodPost, "/gigs/nope", gigForm("Gala", "2024", "6-1", "9", "pm", ""))
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
		if rec := b.do(http.MethodGet, "/gigs/nope", nil); rec.Code != http.StatusNotFound {
			t.Errorf("form status = %d, want 404", rec.Code)
		}
	})
}

func TestNewGigForm(t *testing.T) {
	s, _ := newTestServer(t)
	rec := newBrowser(t, s).do(http.MethodGet, "/new_gig", nil)
	body := decode[struct {
		Form gig.Input `json:"form"`
	}](t, rec)
	want := gig.Input{Year: "2024", Date: "4-1", Time: "12:00", Meridiem: "am"}
	if body.Form != want {
		t.Errorf("form = %+v, want %+v", body.Form, want)
	}
}

func TestGigAt(t *testing.T) {
	s, _ := newTestServer(t)
	b := newBrowser(t, s)
	b.do(http.MethodPost, "/new_gig", gigForm("Gala", "2024", "5-1", "8", "pm", ""))

	rec := b.do(http.MethodGet, "/gigs/at/2024-05-01&20:00", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if g := decode[gig.Gig](t, rec); g.Name != "Gala" {
		t.Errorf("name = %q", g.Name)
	}

	if rec := b.do(http.MethodGet, "/gigs/at/2024-05-02&20:00", nil); rec.Code != http.StatusNotFound {
		t.Errorf("missing slot: status = %d, want 404", rec.Code)
	}
	if rec := b.do(http.MethodGet, "/gigs/at/2024-05-01", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed slot: status = %d, want 400", rec.Code)
	}
}

func TestPastGigsAndSummary(t *testing.T) {
	s, _ := newTestServer(t)
	b := newBrowser(t, s)
	b.do(http.MethodPost, "/new_gig", gigForm("Old", "2024", "3-1", "8", "pm", "100"))
	b.do(http.MethodPost, "/new_gig", gigForm("New", "2024", "5-1", "8", "pm", "250"))

	past := decode[listBody](t, b.do(http.MethodGet, "/past_gigs", nil))
	if len(past.Gigs) != 1 || past.Gigs[0].Name != "Old" {
		t.Fatalf("past = %+v", past.Gigs)
	}
	if past.Income.Past != "100" || past.Income.Future != "250" || past.Income.Total != "350" {
		t.Errorf("income = %+v", past.Income)
	}

	rec := b.do(http.MethodGet, "/summary", nil)
	sum := decode[struct {
		Months []struct {
			Label string `json:"label"`
			Gigs  int    `json:"gigs"`
		} `json:"months"`
	}](t, rec)
	if len(sum.Months) != 2 || sum.Months[0].Label != "2024-03" || sum.Months[1].Label != "2024-05" {
		t.Errorf("months = %+v", sum.Months)
	}
}

func TestExports(t *testing.T) {
	s, _ := newTestServer(t)
	b := newBrowser(t, s)
	b.do(http.MethodPost, "/new_gig", gigForm("Gala", "2024", "5-1", "8", "pm", "300"))

	rec := b.do(http.MethodGet, "/export.ics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ics status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("content type = %q", ct)
	}
	if body := rec.Body.String(); !strings.Contains(body, "BEGIN:VCALENDAR") || !strings.Contains(body, "SUMMARY:Gala") {
		t.Errorf("calendar body:\n%s", body)
	}

	rec = b.do(http.MethodGet, "/export.yaml", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "name: Gala") {
		t.Errorf("yaml export %d:\n%s", rec.Code, rec.Body)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	s, _ := newTestServer(t)
	b := newBrowser(t, s)

	if rec := b.do(http.MethodGet, "/healthz", nil); rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("healthz = %d %q", rec.Code, rec.Body)
	}

	b.do(http.MethodPost, "/new_gig", gigForm("Gala", "2024", "5-1", "8", "pm", ""))
	b.do(http.MethodPost, "/new_gig", gigForm("Gala", "2024", "5-1", "8", "pm", ""))

	body := b.do(http.MethodGet, "/metrics", nil).Body.String()
	for _, want := range []string{
		"gigbook_gigs_created_total 1",
		`gigbook_gig_rejections_total{reason="conflict"} 1`,
		`gigbook_http_requests_total{method="POST",route="/new_gig",status="201"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestMetricsHidden(t *testing.T) {
	mgr := session.NewManager(gig.NewMemoryRepository(), dateutil.FixedClock{T: testNow}, nil)
	s := New(Options{Sessions: mgr})
	if rec := newBrowser(t, s).do(http.MethodGet, "/metrics", nil); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestMalformedCookieGetsNewSession(t *testing.T) {
	s, _ := newTestServer(t)
	b := newBrowser(t, s)
	b.cookie = &http.Cookie{Name: "gigbook_session", Value: "../../etc"}

	b.do(http.MethodGet, "/", nil)
	if b.cookie.Value == "../../etc" {
		t.Error("expected a fresh session cookie")
	}
}

func TestBrowsingDoesNotStoreEmptySessions(t *testing.T) {
	repo := gig.NewMemoryRepository()
	mgr := session.NewManager(repo, dateutil.FixedClock{T: testNow}, nil)
	s := New(Options{Sessions: mgr})

	for i := 0; i < 3; i++ {
		b := newBrowser(t, s)
		b.do(http.MethodGet, "/", nil)
		b.do(http.MethodGet, "/past_gigs", nil)
	}

	ids, err := repo.ListSessions(context.Background())
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("stored sessions = %v, want none", ids)
	}
}

func TestSweeper(t *testing.T) {
	ctx := context.Background()
	repo := gig.NewMemoryRepository()
	early := session.NewManager(repo, dateutil.FixedClock{T: testNow}, nil)
	err := early.Do(ctx, "s1", func(b *gig.Book) error {
		_, err := b.CreateGig(gig.Input{Year: "2024", Date: "5-1", Time: "8", Meridiem: "pm"})
		return err
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	later := session.NewManager(repo, dateutil.FixedClock{T: testNow.AddDate(0, 3, 0)}, nil)
	sw, err := NewSweeper("@daily", later, nil, nil)
	if err != nil {
		t.Fatalf("NewSweeper: %v", err)
	}
	if moved := sw.Run(ctx); moved != 1 {
		t.Errorf("moved = %d, want 1", moved)
	}

	sw.Start()
	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	sw.Stop(stopCtx)

	if _, err := NewSweeper("whenever", later, nil, nil); err == nil {
		t.Error("expected error for bad schedule")
	}
}
