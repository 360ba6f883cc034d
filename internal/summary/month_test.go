package summary

import (
	"testing"
	"time"

	"github.com/javiermolinar/gigbook/internal/dateutil"
	"github.com/javiermolinar/gigbook/internal/gig"
)

func TestBuild(t *testing.T) {
	past := []gig.Gig{
		{Name: "Wedding", Date: "2024-03-02", Time: "18:00", Income: "400"},
		{Name: "Pub", Date: "2024-03-20", Time: "21:00", Income: "80.50"},
	}
	upcoming := []gig.Gig{
		{Name: "Festival", Date: "2024-05-11", Time: "15:00", Income: "1200"},
		{Name: "Busk", Date: "2024-03-30", Time: "12:00", Income: "tips"},
		{Name: "Broken", Date: "not-a-date", Time: "12:00", Income: "10"},
	}

	s := Build(upcoming, past)

	if len(s.Months) != 2 {
		t.Fatalf("months = %d, want 2", len(s.Months))
	}

	march := s.Months[0]
	if march.Label != "2024-03" {
		t.Fatalf("first month = %s, want 2024-03", march.Label)
	}
	if march.Gigs != 3 {
		t.Errorf("march gigs = %d, want 3", march.Gigs)
	}
	if march.Past.String() != "480.5" {
		t.Errorf("march past = %s, want 480.5", march.Past)
	}
	if !march.Future.IsZero() {
		t.Errorf("march future = %s, want 0", march.Future)
	}

	may := s.Months[1]
	if may.Label != "2024-05" || may.Total().String() != "1200" {
		t.Errorf("may = %s %s, want 2024-05 1200", may.Label, may.Total())
	}

	if s.Income.Past.String() != "480.5" {
		t.Errorf("past income = %s, want 480.5", s.Income.Past)
	}
	if s.Income.Future.String() != "1210" {
		t.Errorf("future income = %s, want 1210", s.Income.Future)
	}

	busiest, ok := s.Busiest()
	if !ok || busiest.Label != "2024-03" {
		t.Errorf("busiest = %s, want 2024-03", busiest.Label)
	}
}

func TestBuild_Empty(t *testing.T) {
	s := Build(nil, nil)
	if len(s.Months) != 0 {
		t.Errorf("months = %d, want 0", len(s.Months))
	}
	if _, ok := s.Busiest(); ok {
		t.Error("expected no busiest month")
	}
	if !s.Income.Total().IsZero() {
		t.Errorf("total = %s, want 0", s.Income.Total())
	}
}

func TestForBook_Reclassifies(t *testing.T) {
	clock := dateutil.FixedClock{T: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := gig.RestoreStore([]gig.Gig{
		{ID: "a", Name: "Old", Date: "2024-05-01", Time: "20:00", Income: "100"},
		{ID: "b", Name: "New", Date: "2024-07-01", Time: "20:00", Income: "50"},
	}, nil)

	s := ForBook(gig.NewBook(store, clock))

	if s.Income.Past.String() != "100" || s.Income.Future.String() != "50" {
		t.Errorf("income = %s/%s, want 100/50", s.Income.Past, s.Income.Future)
	}
	if len(s.Months) != 2 || !s.Months[0].Future.IsZero() {
		t.Errorf("unexpected months %+v", s.Months)
	}
}
