// Package store persists scrape run snapshots as JSON files in a single
// output directory and answers catalog queries over them.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"comments-service/model"
)

// ErrNotFound signals that the requested snapshot file does not exist.
var ErrNotFound = errors.New("file not found")

type Store struct {
	dir string
}

// New creates the output directory if needed and returns a Store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

// WriteSnapshot atomically replaces the named snapshot file. The write goes
// through a temp file and rename so readers never observe a torn document.
func (s *Store) WriteSnapshot(name string, snap *model.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", name, err)
	}
	data = append(data, '\n')

	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, ".snapshot-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", name, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file for %s: %w", name, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file for %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file for %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("atomic rename for %s: %w", name, err)
	}
	return nil
}

// ReadSnapshot parses the named snapshot file.
func (s *Store) ReadSnapshot(name string) (model.Snapshot, error) {
	path, err := s.ResolvePath(name)
	if err != nil {
		return model.Snapshot{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("read snapshot %s: %w", name, err)
	}
	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return model.Snapshot{}, fmt.Errorf("parse snapshot %s: %w", name, err)
	}
	return snap, nil
}

// ResolvePath maps a bare filename to its path in the output directory.
// Names carrying path separators are rejected as not found.
func (s *Store) ResolvePath(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", ErrNotFound
	}
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", ErrNotFound
	}
	return path, nil
}

// SeenVideoIDs scans every JSON file in the output directory and returns the
// union of video ids recorded across all parseable snapshots. Files that do
// not parse are skipped; the index is best effort, not authoritative.
func (s *Store) SeenVideoIDs() map[string]struct{} {
	seen := make(map[string]struct{})
	for _, name := range s.jsonFiles() {
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			continue
		}
		var snap model.Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			continue
		}
		for _, v := range snap.Videos {
			if v.VideoID != "" {
				seen[v.VideoID] = struct{}{}
			}
		}
	}
	return seen
}

// ListFiles returns all snapshot files with human-formatted sizes, newest
// modified first.
func (s *Store) ListFiles() ([]model.FileInfo, error) {
	type fileWithTime struct {
		info  model.FileInfo
		mtime time.Time
	}

	var files []fileWithTime
	for _, name := range s.jsonFiles() {
		path := filepath.Join(s.dir, name)
		fi, err := os.Stat(path)
		if err != nil {
			continue
		}
		files = append(files, fileWithTime{
			info: model.FileInfo{
				Name: name,
				Size: formatSize(fi.Size()),
				Path: path,
			},
			mtime: fi.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].mtime.After(files[j].mtime)
	})

	out := make([]model.FileInfo, 0, len(files))
	for _, f := range files {
		out = append(out, f.info)
	}
	return out, nil
}

// ListFilesWithStats returns the file listing enriched with each snapshot's
// header fields plus global totals. Files that do not parse keep bare
// name/size entries and sort last; ordering is by scraped_at descending.
func (s *Store) ListFilesWithStats() (model.FilesStatsResponse, error) {
	resp := model.FilesStatsResponse{Files: []model.FileInfo{}}
	channels := make(map[string]struct{})

	for _, name := range s.jsonFiles() {
		path := filepath.Join(s.dir, name)
		fi, err := os.Stat(path)
		if err != nil {
			continue
		}

		info := model.FileInfo{
			Name: name,
			Size: formatSize(fi.Size()),
			Path: path,
		}

		if data, err := os.ReadFile(path); err == nil {
			var snap model.Snapshot
			if err := json.Unmarshal(data, &snap); err == nil {
				info.ChannelName = snap.ChannelName
				info.VideoCount = snap.TotalVideos
				info.CommentCount = snap.TotalComments
				info.ScrapedAt = snap.ScrapedAt

				if snap.ChannelName != "" {
					channels[snap.ChannelName] = struct{}{}
				}
				resp.TotalVideos += snap.TotalVideos
				resp.TotalComments += snap.TotalComments
			}
		}

		resp.Files = append(resp.Files, info)
	}

	// ISO-8601 timestamps sort lexicographically; files without stats have
	// an empty scraped_at and fall to the end.
	sort.SliceStable(resp.Files, func(i, j int) bool {
		return resp.Files[i].ScrapedAt > resp.Files[j].ScrapedAt
	})

	resp.TotalChannels = len(channels)
	return resp, nil
}

func (s *Store) jsonFiles() []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// SanitizeChannelName strips a channel name down to characters safe in a
// filename: letters, digits, space, hyphen, underscore.
func SanitizeChannelName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// SnapshotFilename builds `<sanitized-channel>_<YYYYMMDD_HHMMSS>.json`. If a
// file of that name already exists (two runs of the same channel within one
// second), a short unique suffix keeps the runs from clobbering each other.
func (s *Store) SnapshotFilename(channelName string, now time.Time) string {
	base := SanitizeChannelName(channelName) + "_" + now.Format("20060102_150405")
	name := base + ".json"
	if _, err := os.Stat(filepath.Join(s.dir, name)); err == nil {
		name = base + "_" + uuid.NewString()[:8] + ".json"
	}
	return name
}

func formatSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d B", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	}
}
