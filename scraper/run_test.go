package scraper

import (
	"fmt"
	"testing"

	"comments-service/model"
)

func TestRecord_InvariantsHoldAfterEveryWrite(t *testing.T) {
	st := newTestStore(t)
	r := &run{
		store:    st,
		filename: "run.json",
		snapshot: model.Snapshot{
			ChannelName: "Some Creator",
			ScrapedAt:   "2026-08-30T12:00:00Z",
			TotalVideos: 4,
			Videos:      []model.VideoResult{},
		},
	}

	if err := r.save(); err != nil {
		t.Fatalf("initial save: %v", err)
	}
	checkInvariants(t, readOnlySnapshot(t, st, "run.json"))

	results := []model.VideoResult{
		{VideoID: "vid0", CommentCount: 2, Comments: make([]model.Comment, 2)},
		{VideoID: "vid1", CommentCount: 0, Comments: []model.Comment{}, Error: "comments disabled"},
		{VideoID: "vid2", CommentCount: 5, Comments: make([]model.Comment, 5)},
		{VideoID: "vid3", CommentCount: 1, Comments: make([]model.Comment, 1)},
	}

	wantComments := 0
	for i, res := range results {
		completed, totalComments, err := r.record(res)
		if err != nil {
			t.Fatalf("record %s: %v", res.VideoID, err)
		}
		wantComments += res.CommentCount

		if completed != i+1 {
			t.Fatalf("completed = %d, want %d", completed, i+1)
		}
		if totalComments != wantComments {
			t.Fatalf("running total = %d, want %d", totalComments, wantComments)
		}

		// The on-disk document must be consistent after each write.
		snap := readOnlySnapshot(t, st, "run.json")
		checkInvariants(t, snap)
		if snap.VideosCompleted != i+1 {
			t.Fatalf("snapshot videos_completed = %d, want %d", snap.VideosCompleted, i+1)
		}
	}
}

func TestRecord_ConcurrentCompletionsStayConsistent(t *testing.T) {
	st := newTestStore(t)
	const n = 20

	r := &run{
		store:    st,
		filename: "run.json",
		snapshot: model.Snapshot{
			ChannelName: "Some Creator",
			TotalVideos: n,
			Videos:      []model.VideoResult{},
		},
	}

	done := make(chan error, n)
	for i := 0; i < n; i++ {
		go func(i int) {
			_, _, err := r.record(model.VideoResult{
				VideoID:      fmt.Sprintf("vid%d", i),
				CommentCount: 1,
				Comments:     make([]model.Comment, 1),
			})
			done <- err
		}(i)
	}
	for i := 0; i < n; i++ {
		if err := <-done; err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	snap := readOnlySnapshot(t, st, "run.json")
	checkInvariants(t, snap)
	if snap.VideosCompleted != n || snap.TotalComments != n {
		t.Fatalf("unexpected final snapshot: completed=%d comments=%d", snap.VideosCompleted, snap.TotalComments)
	}

	ids := make(map[string]bool)
	for _, v := range snap.Videos {
		if ids[v.VideoID] {
			t.Fatalf("duplicate video id %s", v.VideoID)
		}
		ids[v.VideoID] = true
	}
}

func TestTruncateTitle_FiftyRunesAndUnknownFallback(t *testing.T) {
	if got := truncateTitle(""); got != "Unknown" {
		t.Fatalf("empty title = %q, want Unknown", got)
	}
	if got := truncateTitle("short"); got != "short" {
		t.Fatalf("short title changed: %q", got)
	}

	long := ""
	for i := 0; i < 60; i++ {
		long += "x"
	}
	if got := truncateTitle(long); len([]rune(got)) != 50 {
		t.Fatalf("long title truncated to %d runes, want 50", len([]rune(got)))
	}
}
