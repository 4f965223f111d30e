package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"comments-service/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	return s
}

func writeSnapshot(t *testing.T, s *Store, name string, snap model.Snapshot) {
	t.Helper()
	if err := s.WriteSnapshot(name, &snap); err != nil {
		t.Fatalf("write snapshot %s: %v", name, err)
	}
}

func TestWriteSnapshot_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	snap := model.Snapshot{
		ChannelName: "Some Creator",
		ScrapedAt:   "2026-08-30T12:00:00Z",
		TotalVideos: 1,
		Videos: []model.VideoResult{
			{
				VideoID:      "vid1",
				Title:        "First",
				URL:          "https://www.youtube.com/watch?v=vid1",
				CommentCount: 2,
				Comments: []model.Comment{
					{Author: "alice", Text: "hi", Parent: "root"},
					{Author: "bob", Text: "re", Parent: "c1", IsReply: true},
				},
			},
		},
	}
	writeSnapshot(t, s, "run.json", snap)

	got, err := s.ReadSnapshot("run.json")
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if got.ChannelName != "Some Creator" || len(got.Videos) != 1 {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
	if got.Videos[0].Comments[1].Parent != "c1" || !got.Videos[0].Comments[1].IsReply {
		t.Fatalf("reply comment lost linkage: %+v", got.Videos[0].Comments[1])
	}
}

func TestWriteSnapshot_LeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)
	writeSnapshot(t, s, "run.json", model.Snapshot{ChannelName: "x"})

	entries, err := os.ReadDir(s.Dir())
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "run.json" {
		t.Fatalf("expected only run.json, got %v", entries)
	}
}

func TestReadSnapshot_MissingFile(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.ReadSnapshot("nope.json"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolvePath_RejectsPathTraversal(t *testing.T) {
	s := newTestStore(t)
	writeSnapshot(t, s, "run.json", model.Snapshot{})

	for _, name := range []string{"", "../run.json", "sub/run.json", "../../etc/passwd"} {
		if _, err := s.ResolvePath(name); err != ErrNotFound {
			t.Fatalf("expected ErrNotFound for %q, got %v", name, err)
		}
	}

	if _, err := s.ResolvePath("run.json"); err != nil {
		t.Fatalf("resolve existing file: %v", err)
	}
}

func TestSeenVideoIDs_UnionAcrossFilesSkippingCorrupt(t *testing.T) {
	s := newTestStore(t)

	writeSnapshot(t, s, "a.json", model.Snapshot{
		Videos: []model.VideoResult{{VideoID: "vid1"}, {VideoID: "vid2"}},
	})
	writeSnapshot(t, s, "b.json", model.Snapshot{
		Videos: []model.VideoResult{{VideoID: "vid2"}, {VideoID: "vid3"}},
	})
	if err := os.WriteFile(filepath.Join(s.Dir(), "corrupt.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	seen := s.SeenVideoIDs()
	if len(seen) != 3 {
		t.Fatalf("expected 3 seen ids, got %d: %v", len(seen), seen)
	}
	for _, id := range []string{"vid1", "vid2", "vid3"} {
		if _, ok := seen[id]; !ok {
			t.Fatalf("missing id %s", id)
		}
	}
}

func TestSeenVideoIDs_EmptyDirectory(t *testing.T) {
	s := newTestStore(t)
	if seen := s.SeenVideoIDs(); len(seen) != 0 {
		t.Fatalf("expected empty set, got %v", seen)
	}
}

func TestListFiles_SortsNewestFirst(t *testing.T) {
	s := newTestStore(t)

	writeSnapshot(t, s, "old.json", model.Snapshot{})
	writeSnapshot(t, s, "new.json", model.Snapshot{})

	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(filepath.Join(s.Dir(), "old.json"), past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	files, err := s.ListFiles()
	if err != nil {
		t.Fatalf("list files: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].Name != "new.json" || files[1].Name != "old.json" {
		t.Fatalf("wrong order: %s, %s", files[0].Name, files[1].Name)
	}
	if files[0].Size == "" || files[0].Path == "" {
		t.Fatalf("missing size/path: %+v", files[0])
	}
}

func TestListFilesWithStats_AggregatesAndSortsByScrapedAt(t *testing.T) {
	s := newTestStore(t)

	writeSnapshot(t, s, "older.json", model.Snapshot{
		ChannelName:   "Channel A",
		ScrapedAt:     "2026-08-01T10:00:00Z",
		TotalVideos:   2,
		TotalComments: 10,
	})
	writeSnapshot(t, s, "newer.json", model.Snapshot{
		ChannelName:   "Channel B",
		ScrapedAt:     "2026-08-20T10:00:00Z",
		TotalVideos:   3,
		TotalComments: 5,
	})
	if err := os.WriteFile(filepath.Join(s.Dir(), "corrupt.json"), []byte("oops"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	resp, err := s.ListFilesWithStats()
	if err != nil {
		t.Fatalf("list files with stats: %v", err)
	}

	if resp.TotalChannels != 2 || resp.TotalVideos != 5 || resp.TotalComments != 15 {
		t.Fatalf("wrong totals: %+v", resp)
	}
	if len(resp.Files) != 3 {
		t.Fatalf("expected 3 files, got %d", len(resp.Files))
	}
	if resp.Files[0].Name != "newer.json" || resp.Files[1].Name != "older.json" {
		t.Fatalf("wrong order: %s, %s", resp.Files[0].Name, resp.Files[1].Name)
	}
	// Unparseable file degrades to a bare listing entry and sorts last.
	if resp.Files[2].Name != "corrupt.json" || resp.Files[2].ChannelName != "" {
		t.Fatalf("corrupt file handled wrong: %+v", resp.Files[2])
	}
}

func TestSanitizeChannelName_StripsUnsafeCharacters(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Some Creator", "Some Creator"},
		{"a/b\\c:d*e?f", "abcdef"},
		{"  padded  ", "padded"},
		{"mixed_OK-123!@#", "mixed_OK-123"},
		{"日本語チャンネル", "日本語チャンネル"},
	}

	for _, tc := range cases {
		if got := SanitizeChannelName(tc.in); got != tc.want {
			t.Fatalf("SanitizeChannelName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSnapshotFilename_PatternAndCollisionSuffix(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC)

	name := s.SnapshotFilename("Some Creator", now)
	if name != "Some Creator_20260830_150405.json" {
		t.Fatalf("unexpected filename: %s", name)
	}

	writeSnapshot(t, s, name, model.Snapshot{})

	second := s.SnapshotFilename("Some Creator", now)
	if second == name {
		t.Fatal("expected a uniqueness suffix on filename collision")
	}
	if len(second) <= len(name) {
		t.Fatalf("suffixed name should be longer: %s", second)
	}
}

func TestFormatSize_Thresholds(t *testing.T) {
	cases := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1024*1024 - 1, "1024.0 KB"},
		{1024 * 1024, "1.0 MB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}

	for _, tc := range cases {
		if got := formatSize(tc.size); got != tc.want {
			t.Fatalf("formatSize(%d) = %q, want %q", tc.size, got, tc.want)
		}
	}
}
