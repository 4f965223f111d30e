package scraper

import (
	"sync"

	"comments-service/metrics"
	"comments-service/model"
	"comments-service/store"
)

// run is the in-memory accumulator for one scrape. A single mutex serializes
// "append result + recompute totals + rewrite file", so concurrent worker
// completions never interleave partial writes.
type run struct {
	mu       sync.Mutex
	store    *store.Store
	filename string
	snapshot model.Snapshot
	saveErr  error
}

// record appends one completed result, recomputes the snapshot totals and
// rewrites the file. It returns the completion count and running comment
// total after this result.
func (r *run) record(result model.VideoResult) (completed, totalComments int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshot.Videos = append(r.snapshot.Videos, result)
	err = r.saveLocked()
	return r.snapshot.VideosCompleted, r.snapshot.TotalComments, err
}

// save writes the current snapshot. Used for the initial empty checkpoint.
func (r *run) save() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveLocked()
}

func (r *run) saveLocked() error {
	total := 0
	for _, v := range r.snapshot.Videos {
		total += v.CommentCount
	}
	r.snapshot.TotalComments = total
	r.snapshot.VideosCompleted = len(r.snapshot.Videos)

	if err := r.store.WriteSnapshot(r.filename, &r.snapshot); err != nil {
		if r.saveErr == nil {
			r.saveErr = err
		}
		return err
	}
	metrics.SnapshotWritesTotal.Inc()
	return nil
}

// result returns the final comment total and the first write error seen
// during the run, if any.
func (r *run) result() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot.TotalComments, r.saveErr
}
