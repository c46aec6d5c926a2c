package source

import (
	"os"
	"path/filepath"
	"strings"
)

// DiscoveredFile is a trip snapshot found on disk.
type DiscoveredFile struct {
	Path string
	Name string // base name without extension
}

// backupMarker appears in the names of timestamped backup copies.
const backupMarker = "_backup_"

// ScanDir walks dir and discovers every trip snapshot (*.json).
// Backup copies and hidden directories are skipped. A missing dir yields no files.
func ScanDir(dir string) ([]DiscoveredFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		if IsTripFile(dir) {
			return []DiscoveredFile{newDiscovered(dir)}, nil
		}
		return nil, nil
	}

	var files []DiscoveredFile

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsTripFile(path) {
			return nil
		}
		files = append(files, newDiscovered(path))
		return nil
	})

	return files, err
}

// IsTripFile reports whether path names a trip snapshot rather than a backup.
func IsTripFile(path string) bool {
	name := filepath.Base(path)
	return filepath.Ext(name) == ".json" && !strings.Contains(name, backupMarker)
}

func newDiscovered(path string) DiscoveredFile {
	return DiscoveredFile{
		Path: path,
		Name: strings.TrimSuffix(filepath.Base(path), ".json"),
	}
}
