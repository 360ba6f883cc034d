package gig

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("valid gig", func(t *testing.T) {
		g, err := New(Input{Name: "Blue Note", Year: "2024", Date: "5-1", Time: "9", Meridiem: "pm", Income: "250"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if g.Date != "2024-05-01" {
			t.Errorf("got date %q, want %q", g.Date, "2024-05-01")
		}
		if g.Time != "21:00" {
			t.Errorf("got time %q, want %q", g.Time, "21:00")
		}
		if g.Name != "Blue Note" || g.Income != "250" {
			t.Errorf("got %+v, want name and income kept", g)
		}
		if g.ID == "" {
			t.Error("expected ID to be set")
		}
	})

	t.Run("ids are unique", func(t *testing.T) {
		in := Input{Year: "2024", Date: "5-1", Time: "9", Meridiem: "pm"}
		a, _ := New(in)
		b, _ := New(in)
		if a.ID == b.ID {
			t.Errorf("expected distinct IDs, got %q twice", a.ID)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := New(Input{Year: "2024", Date: "5-1", Time: "9"})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("got error %v, want *ValidationError", err)
		}
		if verr.Message != MsgSelectMeridiem {
			t.Errorf("got message %q, want %q", verr.Message, MsgSelectMeridiem)
		}
	})
}

func TestInputFrom(t *testing.T) {
	in := InputFrom(Gig{Name: "Jazz brunch", Date: "2024-05-01", Time: "09:00", Income: "80"})
	want := Input{Name: "Jazz brunch", Year: "2024", Date: "5-1", Time: "9:00", Meridiem: "am", Income: "80"}
	if in != want {
		t.Errorf("got %+v, want %+v", in, want)
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		gig  Gig
		want int64
	}{
		{"canonical", Gig{Date: "2024-05-01", Time: "14:00"}, 202405011400},
		{"morning", Gig{Date: "2024-05-01", Time: "09:30"}, 202405010930},
		{"three digit time padded", Gig{Date: "2024-05-01", Time: "9:30"}, 202405010930},
		{"noon quirk", Gig{Date: "2024-05-01", Time: "24:00"}, 202405012400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.gig.Key(); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestKeyOrdering(t *testing.T) {
	early := Gig{Date: "2024-05-01", Time: "9:30"}
	late := Gig{Date: "2024-05-01", Time: "10:00"}
	nextDay := Gig{Date: "2024-05-02", Time: "01:00"}
	if !(early.Key() < late.Key() && late.Key() < nextDay.Key()) {
		t.Errorf("keys out of order: %d %d %d", early.Key(), late.Key(), nextDay.Key())
	}
}

func TestDateKey(t *testing.T) {
	if got := DateKey("2024-05-01"); got != 20240501 {
		t.Errorf("got %d, want %d", got, 20240501)
	}
}

func TestSameBooking(t *testing.T) {
	a := Gig{ID: "a", Name: "x", Date: "2024-05-01", Time: "14:00", Income: "10"}
	b := a
	b.ID = "b"
	if !a.SameBooking(b) {
		t.Error("expected gigs differing only by ID to be the same booking")
	}
	b.Income = "11"
	if a.SameBooking(b) {
		t.Error("expected different income to differ")
	}
}

func TestSlot(t *testing.T) {
	g := Gig{Date: "2024-05-01", Time: "14:00"}
	date, clock, ok := ParseSlot(g.Slot())
	if !ok || date != g.Date || clock != g.Time {
		t.Errorf("got (%q, %q, %v), want (%q, %q, true)", date, clock, ok, g.Date, g.Time)
	}

	for _, bad := range []string{"", "2024-05-01", "&14:00", "2024-05-01&"} {
		if _, _, ok := ParseSlot(bad); ok {
			t.Errorf("ParseSlot(%q) ok, want failure", bad)
		}
	}
}
