package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/backpack/internal/model"
	"github.com/theirongolddev/backpack/internal/source"
)

// MarshalSnapshot encodes a trip in the planner's JSON snapshot format.
func MarshalSnapshot(t model.Trip, savedAt time.Time) ([]byte, error) {
	return json.MarshalIndent(source.FromTrip(t, savedAt), "", "  ")
}

// WriteSnapshot writes the trip to path atomically via a temp file and rename.
func WriteSnapshot(path string, t model.Trip) error {
	data, err := MarshalSnapshot(t, time.Now())
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

// ReadSnapshot parses a snapshot file into a trip.
func ReadSnapshot(path string) (model.Trip, error) {
	res := source.ParseFile(source.DiscoveredFile{
		Path: path,
		Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
	})
	if res.Err != nil {
		return model.Trip{}, res.Err
	}
	return res.Trip, nil
}

// BackupName returns "<name>_backup_YYYYMMDD_HHMMSS.json" beside path.
func BackupName(path string, at time.Time) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return filepath.Join(filepath.Dir(path), fmt.Sprintf("%s_backup_%s.json", base, at.Format("20060102_150405")))
}

// Backup copies the snapshot at path to a timestamped sibling and returns its path.
func Backup(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	dst := BackupName(path, time.Now())
	if err := os.WriteFile(dst, data, 0o600); err != nil {
		return "", err
	}
	return dst, nil
}
