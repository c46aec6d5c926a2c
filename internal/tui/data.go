package tui

import (
	"errors"
	"time"

	"github.com/theirongolddev/backpack/internal/model"
	"github.com/theirongolddev/backpack/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// TripLoadedMsg is sent when the trip has been read from the store.
// Found is false when the database holds no trip to show.
type TripLoadedMsg struct {
	Trip     model.Trip
	Found    bool
	Err      error
	LoadTime time.Duration
}

// TripSavedMsg reports the result of persisting the trip.
type TripSavedMsg struct {
	Trip model.Trip
	Err  error
}

// loadTrip resolves the trip to show: an explicit reference first, then the
// active trip, then the most recently created trip.
func loadTrip(st *store.Store, ref, activeID string) TripLoadedMsg {
	start := time.Now()
	done := func(t model.Trip, found bool, err error) TripLoadedMsg {
		return TripLoadedMsg{Trip: t, Found: found, Err: err, LoadTime: time.Since(start)}
	}

	if ref != "" {
		t, err := st.FindTrip(ref)
		return done(t, err == nil, err)
	}
	if activeID != "" {
		t, err := st.GetTrip(activeID)
		if err == nil {
			return done(t, true, nil)
		}
		if !errors.Is(err, store.ErrNotFound) {
			return done(t, false, err)
		}
	}

	trips, err := st.ListTrips()
	if err != nil {
		return done(model.Trip{}, false, err)
	}
	if len(trips) == 0 {
		return done(model.Trip{}, false, nil)
	}
	return done(trips[0], true, nil)
}

func loadTripCmd(st *store.Store, ref, activeID string) tea.Cmd {
	return func() tea.Msg {
		return loadTrip(st, ref, activeID)
	}
}

// saveTripCmd persists t in the background. t must not share slices with
// the model, since Update keeps mutating its own copy.
func saveTripCmd(st *store.Store, t model.Trip) tea.Cmd {
	return func() tea.Msg {
		err := st.SaveTrip(&t)
		return TripSavedMsg{Trip: t, Err: err}
	}
}

// cloneTrip copies a trip deeply enough to hand it to another goroutine.
func cloneTrip(t model.Trip) model.Trip {
	c := t
	c.Days = append([]model.DayRecord(nil), t.Days...)
	c.Budget.Categories = append([]model.Category(nil), t.Budget.Categories...)
	return c
}

type flashExpiredMsg struct{ id int }

func flashCmd(id int) tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return flashExpiredMsg{id: id}
	})
}
