package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/theirongolddev/backpack/internal/model"
	"github.com/theirongolddev/backpack/internal/pipeline"
	"github.com/theirongolddev/backpack/internal/store"
)

// maxBodyBytes bounds request bodies for trip writes.
const maxBodyBytes = 1 << 20

// Analytics is served at /v1/trips/{id}/analytics.
type Analytics struct {
	TripID          string             `json:"trip_id"`
	Summary         model.TripSummary  `json:"summary"`
	Types           model.TypeStats    `json:"types"`
	DayScores       []float64          `json:"day_scores"`
	SuggestedBudget float64            `json:"suggested_budget"`
	SuggestedDays   int                `json:"suggested_days"`
	Tips            []pipeline.Insight `json:"tips"`
	Suggestions     []pipeline.Insight `json:"suggestions"`
	Issues          []string           `json:"issues"`
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// storeError maps store errors to HTTP statuses.
func (s *Service) storeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "trip not found")
	case errors.Is(err, store.ErrAmbiguous):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.log.ErrorContext(r.Context(), "store error", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Service) decodeTrip(w http.ResponseWriter, r *http.Request) (model.Trip, bool) {
	var t model.Trip
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid trip: %v", err))
		return t, false
	}
	if issues := pipeline.ValidateTripInfo(t.TripInfo); len(issues) > 0 {
		writeError(w, http.StatusBadRequest, issues[0])
		return t, false
	}
	normalizeTrip(&t, s.cfg.DayDefaults)
	return t, true
}

func normalizeTrip(t *model.Trip, defaults pipeline.DayDefaults) {
	for i := range t.Days {
		t.Days[i] = pipeline.NormalizeDay(t.Days[i], defaults)
	}
	pipeline.Renumber(t.Days)
	if t.Days == nil {
		t.Days = []model.DayRecord{}
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.cfg.Store.ListTrips()
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	if name := r.URL.Query().Get("name"); name != "" {
		trips = pipeline.FilterByName(trips, name)
	}
	if trips == nil {
		trips = []model.Trip{}
	}
	writeJSON(w, http.StatusOK, trips)
}

func (s *Service) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	t, ok := s.decodeTrip(w, r)
	if !ok {
		return
	}
	t.ID = ""
	t.SourcePath = ""
	if err := s.cfg.Store.CreateTrip(&t); err != nil {
		s.storeError(w, r, err)
		return
	}
	s.log.InfoContext(r.Context(), "trip created", "trip_id", t.ID)
	s.emit(EventTripCreated, t.ID, t.Name)
	writeJSON(w, http.StatusCreated, t)
}

func (s *Service) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	t, err := s.cfg.Store.FindTrip(r.PathValue("id"))
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// handleUpdateTrip replaces a trip's info, days and budget. The ID, creation
// time and source path are kept. {id} resolves like GET.
func (s *Service) handleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	found, err := s.cfg.Store.FindTrip(r.PathValue("id"))
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	unlock := s.lockTrip(found.ID)
	defer unlock()

	existing, err := s.cfg.Store.GetTrip(found.ID)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	t, ok := s.decodeTrip(w, r)
	if !ok {
		return
	}
	t.ID = existing.ID
	t.CreatedAt = existing.CreatedAt
	t.SourcePath = existing.SourcePath
	if t.GroupSize < 1 {
		t.GroupSize = 1
	}

	if err := s.cfg.Store.SaveTrip(&t); err != nil {
		s.storeError(w, r, err)
		return
	}
	s.log.InfoContext(r.Context(), "trip updated", "trip_id", t.ID, "days", len(t.Days))
	s.emit(EventTripUpdated, t.ID, t.Name)
	writeJSON(w, http.StatusOK, t)
}

func (s *Service) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	found, err := s.cfg.Store.FindTrip(r.PathValue("id"))
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	unlock := s.lockTrip(found.ID)
	defer unlock()

	if err := s.cfg.Store.DeleteTrip(found.ID); err != nil {
		s.storeError(w, r, err)
		return
	}
	s.log.InfoContext(r.Context(), "trip deleted", "trip_id", found.ID)
	s.emit(EventTripDeleted, found.ID, found.Name)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	t, err := s.cfg.Store.FindTrip(r.PathValue("id"))
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.analyze(t))
}

func (s *Service) analyze(t model.Trip) Analytics {
	a := Analytics{
		TripID:        t.ID,
		Summary:       pipeline.Aggregate(t.TripState),
		Types:         pipeline.AggregateTypes(t.Days),
		DayScores:     make([]float64, len(t.Days)),
		SuggestedDays: pipeline.SuggestedDays(t.TripInfo),
		Tips:          pipeline.BudgetTips(t.TripState, s.cfg.Symbol),
		Suggestions:   pipeline.Suggest(s.cfg.Styles, t.TripInfo, len(t.Days), t.Budget.TotalBudget, s.cfg.Symbol),
		Issues:        pipeline.ValidateTripInfo(t.TripInfo),
	}
	for i, d := range t.Days {
		a.DayScores[i] = pipeline.DayCompletionScore(d)
		for _, issue := range pipeline.ValidateDay(d) {
			a.Issues = append(a.Issues, fmt.Sprintf("Day %d: %s", d.DayNumber, issue))
		}
	}
	days := a.SuggestedDays
	if days == 0 {
		days = len(t.Days)
	}
	a.SuggestedBudget = pipeline.SuggestedBudgetFrom(s.cfg.Styles, t.TravelStyle, days)
	if a.Tips == nil {
		a.Tips = []pipeline.Insight{}
	}
	if a.Suggestions == nil {
		a.Suggestions = []pipeline.Insight{}
	}
	if a.Issues == nil {
		a.Issues = []string{}
	}
	return a
}

func (s *Service) handleStats(w http.ResponseWriter, r *http.Request) {
	trips, err := s.cfg.Store.ListTrips()
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pipeline.AggregateTrips(trips))
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current totals immediately.
	current := Event{
		Type:      EventSnapshot,
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}
