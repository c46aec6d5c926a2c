// Package server provides the local HTTP API for trips, analytics and change events.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/theirongolddev/backpack/internal/config"
	"github.com/theirongolddev/backpack/internal/model"
	"github.com/theirongolddev/backpack/internal/pipeline"
	"github.com/theirongolddev/backpack/internal/store"
)

// Config controls the service runtime behavior.
type Config struct {
	Store        *store.Store
	Styles       config.StyleTable
	Symbol       string
	Addr         string
	EventsBuffer int

	// DayDefaults fill days posted or imported without a transport or
	// accommodation type. Unset fields fall back to Bus and Hostel.
	DayDefaults pipeline.DayDefaults

	// WatchDir, when set, is polled for trip snapshots to import.
	WatchDir string
	Interval time.Duration

	Logger *slog.Logger
}

// Snapshot is a compact totals state for status and event payloads.
type Snapshot struct {
	At          time.Time `json:"at"`
	Trips       int       `json:"trips"`
	Days        int       `json:"days"`
	TotalBudget float64   `json:"total_budget"`
	TotalSpent  float64   `json:"total_spent"`
}

// Delta captures snapshot deltas between changes.
type Delta struct {
	Trips       int     `json:"trips"`
	Days        int     `json:"days"`
	TotalBudget float64 `json:"total_budget"`
	TotalSpent  float64 `json:"total_spent"`
}

func (d Delta) isZero() bool {
	return d.Trips == 0 &&
		d.Days == 0 &&
		d.TotalBudget == 0 &&
		d.TotalSpent == 0
}

// Event types.
const (
	EventSnapshot     = "snapshot"
	EventTripCreated  = "trip.created"
	EventTripUpdated  = "trip.updated"
	EventTripDeleted  = "trip.deleted"
	EventTripImported = "trip.imported"
)

// Event is emitted whenever a trip changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	TripID    string    `json:"trip_id,omitempty"`
	TripName  string    `json:"trip_name,omitempty"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec,omitempty"`
	PollCount       int64     `json:"poll_count"`
	WatchDir        string    `json:"watch_dir,omitempty"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the HTTP API.
type Service struct {
	cfg Config
	log *slog.Logger

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	snapshot    Snapshot
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event

	// Per-trip locks serialize read-modify-write of a trip.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// New returns a new service with the provided config.
func New(cfg Config) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 10 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = config.DefaultServerAddr
	}
	if cfg.Styles == nil {
		cfg.Styles = config.DefaultStyles
	}
	if cfg.Symbol == "" {
		cfg.Symbol = config.CurrencySymbol("")
	}
	std := pipeline.StandardDayDefaults()
	if cfg.DayDefaults.TransportType == "" {
		cfg.DayDefaults.TransportType = std.TransportType
	}
	if cfg.DayDefaults.AccommodationType == "" {
		cfg.DayDefaults.AccommodationType = std.AccommodationType
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		cfg:       cfg,
		log:       logger.With("component", "server"),
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
		locks:     make(map[string]*sync.Mutex),
	}
}

// Handler returns the HTTP routes wrapped in request logging.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/status", s.handleStatus)
	mux.HandleFunc("GET /v1/trips", s.handleListTrips)
	mux.HandleFunc("POST /v1/trips", s.handleCreateTrip)
	mux.HandleFunc("GET /v1/trips/{id}", s.handleGetTrip)
	mux.HandleFunc("PUT /v1/trips/{id}", s.handleUpdateTrip)
	mux.HandleFunc("DELETE /v1/trips/{id}", s.handleDeleteTrip)
	mux.HandleFunc("GET /v1/trips/{id}/analytics", s.handleAnalytics)
	mux.HandleFunc("GET /v1/stats", s.handleStats)
	mux.HandleFunc("GET /v1/events", s.handleEvents)
	mux.HandleFunc("GET /v1/stream", s.handleStream)
	return s.logRequests(mux)
}

// Run serves the API, and polls WatchDir when set, until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed the snapshot so status is useful immediately.
	s.refreshSnapshot()
	s.pollOnce()

	var tick <-chan time.Time
	if s.cfg.WatchDir != "" {
		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-tick:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("http server: %w", err)
		}
	}
}

// pollOnce imports new or changed snapshots from WatchDir.
func (s *Service) pollOnce() {
	if s.cfg.WatchDir == "" {
		return
	}

	res, err := pipeline.LoadWithTracker(s.cfg.WatchDir, s.cfg.Store, s.cfg.DayDefaults, nil)

	s.mu.Lock()
	s.lastPollAt = time.Now()
	s.pollCount++
	if err != nil {
		s.lastError = err.Error()
	} else {
		s.lastError = ""
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Error("poll failed", "dir", s.cfg.WatchDir, "error", err)
		return
	}
	for _, e := range res.Errors {
		s.log.Warn("skipped trip file", "error", e)
	}
	for _, t := range res.Trips {
		s.log.Info("imported trip", "trip_id", t.ID, "path", t.SourcePath)
		s.emit(EventTripImported, t.ID, t.Name)
	}
}

// refreshSnapshot recomputes totals and returns the new snapshot and its delta.
func (s *Service) refreshSnapshot() (Snapshot, Delta, error) {
	trips, err := s.cfg.Store.ListTrips()
	if err != nil {
		return Snapshot{}, Delta{}, err
	}
	snap := snapshotFromStats(pipeline.AggregateTrips(trips), time.Now())

	s.mu.Lock()
	prev := s.snapshot
	s.snapshot = snap
	s.mu.Unlock()

	return snap, diffSnapshots(prev, snap), nil
}

// emit refreshes totals and publishes an event for a trip change.
func (s *Service) emit(typ, tripID, name string) {
	snap, delta, err := s.refreshSnapshot()
	if err != nil {
		s.log.Error("refreshing totals", "error", err)
	}

	s.mu.Lock()
	s.nextEventID++
	ev := Event{
		ID:        s.nextEventID,
		Type:      typ,
		Timestamp: time.Now(),
		TripID:    tripID,
		TripName:  name,
		Snapshot:  snap,
		Delta:     delta,
	}
	s.mu.Unlock()

	s.publishEvent(ev)
}

func snapshotFromStats(us model.UserStats, at time.Time) Snapshot {
	return Snapshot{
		At:          at,
		Trips:       us.TotalTrips,
		Days:        us.TotalDaysPlanned,
		TotalBudget: us.TotalBudget,
		TotalSpent:  us.TotalSpent,
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Trips:       curr.Trips - prev.Trips,
		Days:        curr.Days - prev.Days,
		TotalBudget: curr.TotalBudget - prev.TotalBudget,
		TotalSpent:  curr.TotalSpent - prev.TotalSpent,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollCount:       s.pollCount,
		WatchDir:        s.cfg.WatchDir,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
	if s.cfg.WatchDir != "" {
		st.PollIntervalSec = int(s.cfg.Interval.Seconds())
	}
	return st
}

// lockTrip serializes mutations of one trip and returns the unlock func.
func (s *Service) lockTrip(id string) func() {
	s.locksMu.Lock()
	m, ok := s.locks[id]
	if !ok {
		m = &sync.Mutex{}
		s.locks[id] = m
	}
	s.locksMu.Unlock()

	m.Lock()
	return m.Unlock
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
