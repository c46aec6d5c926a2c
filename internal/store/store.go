// Package store provides SQLite persistence for trips, their days and budgets.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/theirongolddev/backpack/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

var (
	// ErrNotFound is returned when no trip matches a lookup.
	ErrNotFound = errors.New("trip not found")
	// ErrAmbiguous is returned when a trip reference matches more than one trip.
	ErrAmbiguous = errors.New("trip reference is ambiguous")
)

// Store provides SQLite-backed trip storage.
type Store struct {
	db *sql.DB
}

// Open opens or creates the trip database at the given path and migrates it.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dsn := dbPath + "?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)"
	if err := runMigrations(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening trip db: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// FileInfo holds the tracked mtime and size for an imported file.
type FileInfo struct {
	MtimeNs   int64
	SizeBytes int64
	TripID    string
}

// GetTrackedFiles returns a map of file_path -> FileInfo for all imported files.
func (s *Store) GetTrackedFiles() (map[string]FileInfo, error) {
	rows, err := s.db.Query("SELECT file_path, mtime_ns, size_bytes, trip_id FROM file_tracker")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]FileInfo)
	for rows.Next() {
		var path string
		var fi FileInfo
		var tripID sql.NullString
		if err := rows.Scan(&path, &fi.MtimeNs, &fi.SizeBytes, &tripID); err != nil {
			return nil, err
		}
		fi.TripID = tripID.String
		result[path] = fi
	}
	return result, rows.Err()
}

// CreateTrip stores a new trip, assigning an ID and timestamps.
func (s *Store) CreateTrip(t *model.Trip) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	ts := now()
	t.CreatedAt = ts
	t.UpdatedAt = ts
	if t.GroupSize < 1 {
		t.GroupSize = 1
	}
	return s.SaveTrip(t)
}

// SaveTrip writes the trip and replaces its days and budget categories.
func (s *Store) SaveTrip(t *model.Trip) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := saveTrip(tx, t); err != nil {
		return err
	}
	return tx.Commit()
}

// ImportTrip saves a trip parsed from a file and records the file's state.
func (s *Store) ImportTrip(t *model.Trip, mtimeNs, sizeBytes int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now()
	}
	if err := saveTrip(tx, t); err != nil {
		return err
	}

	_, err = tx.Exec(`INSERT OR REPLACE INTO file_tracker (file_path, mtime_ns, size_bytes, trip_id)
		VALUES (?, ?, ?, ?)`, t.SourcePath, mtimeNs, sizeBytes, t.ID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func saveTrip(tx *sql.Tx, t *model.Trip) error {
	if t.ID == "" {
		return errors.New("saving trip: missing id")
	}
	t.UpdatedAt = now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = t.UpdatedAt
	}

	_, err := tx.Exec(`INSERT INTO trips
		(id, name, start_date, end_date, destinations, travel_style, group_size,
		 transport_preference, accommodation_preference, total_budget, source_path,
		 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		 name = excluded.name,
		 start_date = excluded.start_date,
		 end_date = excluded.end_date,
		 destinations = excluded.destinations,
		 travel_style = excluded.travel_style,
		 group_size = excluded.group_size,
		 transport_preference = excluded.transport_preference,
		 accommodation_preference = excluded.accommodation_preference,
		 total_budget = excluded.total_budget,
		 source_path = excluded.source_path,
		 updated_at = excluded.updated_at`,
		t.ID, t.Name, t.StartDate.String(), t.EndDate.String(), t.Destinations, t.TravelStyle, t.GroupSize,
		t.TransportPreference, t.AccommodationPreference, t.Budget.TotalBudget, t.SourcePath,
		t.CreatedAt.Format(time.RFC3339), t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving trip: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM trip_days WHERE trip_id = ?", t.ID); err != nil {
		return err
	}
	for i, d := range t.Days {
		_, err = tx.Exec(`INSERT INTO trip_days
			(trip_id, position, day_number, date, location, transport_type, transport_from,
			 transport_to, transport_time, transport_cost, accommodation_type,
			 accommodation_name, accommodation_cost, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, i, d.DayNumber, d.Date.String(), d.Location, string(d.TransportType), d.TransportFrom,
			d.TransportTo, d.TransportTime, d.TransportCost, string(d.AccommodationType),
			d.AccommodationName, d.AccommodationCost, d.Notes,
		)
		if err != nil {
			return fmt.Errorf("saving day %d: %w", d.DayNumber, err)
		}
	}

	if _, err := tx.Exec("DELETE FROM budget_categories WHERE trip_id = ?", t.ID); err != nil {
		return err
	}
	for i, c := range t.Budget.Categories {
		_, err = tx.Exec(`INSERT INTO budget_categories
			(trip_id, position, name, planned_amount, spent_amount)
			VALUES (?, ?, ?, ?, ?)`,
			t.ID, i, c.Name, c.Planned, c.Spent,
		)
		if err != nil {
			return fmt.Errorf("saving category %q: %w", c.Name, err)
		}
	}

	return nil
}

const tripColumns = `id, name, start_date, end_date, destinations, travel_style, group_size,
	transport_preference, accommodation_preference, total_budget, source_path,
	created_at, updated_at`

func scanTrip(sc interface{ Scan(...any) error }) (model.Trip, error) {
	var t model.Trip
	var start, end, created, updated string
	err := sc.Scan(
		&t.ID, &t.Name, &start, &end, &t.Destinations, &t.TravelStyle, &t.GroupSize,
		&t.TransportPreference, &t.AccommodationPreference, &t.Budget.TotalBudget, &t.SourcePath,
		&created, &updated,
	)
	if err != nil {
		return t, err
	}
	t.StartDate, _ = model.ParseDate(start)
	t.EndDate, _ = model.ParseDate(end)
	t.CreatedAt, _ = time.Parse(time.RFC3339, created)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return t, nil
}

// GetTrip loads one trip by exact ID.
func (s *Store) GetTrip(id string) (model.Trip, error) {
	row := s.db.QueryRow("SELECT "+tripColumns+" FROM trips WHERE id = ?", id)
	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return t, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return t, err
	}

	trips := []model.Trip{t}
	if err := s.loadChildren(trips, "WHERE trip_id = ?", id); err != nil {
		return t, err
	}
	return trips[0], nil
}

// FindTrip resolves a user-supplied reference: an exact ID, an exact name
// (ignoring case), or a unique ID prefix, in that order.
func (s *Store) FindTrip(ref string) (model.Trip, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Trip{}, ErrNotFound
	}

	if t, err := s.GetTrip(ref); err == nil || !errors.Is(err, ErrNotFound) {
		return t, err
	}

	var ids []string
	rows, err := s.db.Query("SELECT id FROM trips WHERE name = ? COLLATE NOCASE", ref)
	if err != nil {
		return model.Trip{}, err
	}
	ids, err = collectIDs(rows)
	if err != nil {
		return model.Trip{}, err
	}

	if len(ids) == 0 {
		rows, err = s.db.Query("SELECT id FROM trips WHERE id LIKE ? ESCAPE '\\'", escapeLike(ref)+"%")
		if err != nil {
			return model.Trip{}, err
		}
		ids, err = collectIDs(rows)
		if err != nil {
			return model.Trip{}, err
		}
	}

	switch len(ids) {
	case 0:
		return model.Trip{}, fmt.Errorf("%s: %w", ref, ErrNotFound)
	case 1:
		return s.GetTrip(ids[0])
	default:
		return model.Trip{}, fmt.Errorf("%s matches %d trips: %w", ref, len(ids), ErrAmbiguous)
	}
}

func collectIDs(rows *sql.Rows) ([]string, error) {
	defer func() { _ = rows.Close() }()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// ListTrips reads all trips with their days and categories, newest first.
func (s *Store) ListTrips() ([]model.Trip, error) {
	rows, err := s.db.Query("SELECT " + tripColumns + " FROM trips ORDER BY created_at DESC, name")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var trips []model.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.loadChildren(trips, ""); err != nil {
		return nil, err
	}
	return trips, nil
}

// loadChildren batch-loads days and categories for the given trips.
func (s *Store) loadChildren(trips []model.Trip, where string, args ...any) error {
	if len(trips) == 0 {
		return nil
	}

	tripIdx := make(map[string]int, len(trips))
	for i, t := range trips {
		tripIdx[t.ID] = i
	}

	dayRows, err := s.db.Query(`SELECT
		trip_id, day_number, date, location, transport_type, transport_from, transport_to,
		transport_time, transport_cost, accommodation_type, accommodation_name,
		accommodation_cost, notes
		FROM trip_days `+where+` ORDER BY trip_id, position`, args...)
	if err != nil {
		return err
	}
	defer func() { _ = dayRows.Close() }()

	for dayRows.Next() {
		var tripID, date, transportType, accomType string
		var d model.DayRecord
		err := dayRows.Scan(&tripID, &d.DayNumber, &date, &d.Location, &transportType,
			&d.TransportFrom, &d.TransportTo, &d.TransportTime, &d.TransportCost,
			&accomType, &d.AccommodationName, &d.AccommodationCost, &d.Notes)
		if err != nil {
			return err
		}
		d.Date, _ = model.ParseDate(date)
		d.TransportType = model.TransportType(transportType)
		d.AccommodationType = model.AccommodationType(accomType)
		if idx, ok := tripIdx[tripID]; ok {
			trips[idx].Days = append(trips[idx].Days, d)
		}
	}
	if err := dayRows.Err(); err != nil {
		return err
	}

	catRows, err := s.db.Query(`SELECT trip_id, name, planned_amount, spent_amount
		FROM budget_categories `+where+` ORDER BY trip_id, position`, args...)
	if err != nil {
		return err
	}
	defer func() { _ = catRows.Close() }()

	for catRows.Next() {
		var tripID string
		var c model.Category
		if err := catRows.Scan(&tripID, &c.Name, &c.Planned, &c.Spent); err != nil {
			return err
		}
		if idx, ok := tripIdx[tripID]; ok {
			trips[idx].Budget.Categories = append(trips[idx].Budget.Categories, c)
		}
	}
	return catRows.Err()
}

// DeleteTrip removes a trip and, by cascade, its days and categories.
func (s *Store) DeleteTrip(id string) error {
	res, err := s.db.Exec("DELETE FROM trips WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteFileTracker removes an import tracking entry.
func (s *Store) DeleteFileTracker(filePath string) error {
	_, err := s.db.Exec("DELETE FROM file_tracker WHERE file_path = ?", filePath)
	return err
}

// TripCount returns the number of stored trips.
func (s *Store) TripCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM trips").Scan(&count)
	return count, err
}

// now returns the current time at the one-second precision timestamps are stored with.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
