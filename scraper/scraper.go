// Package scraper fans per-video comment extraction out across a bounded
// worker pool and checkpoints the run to disk after every completion.
package scraper

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"comments-service/events"
	"comments-service/extractor"
	"comments-service/metrics"
	"comments-service/model"
	"comments-service/store"
)

type Scraper struct {
	extractor extractor.Extractor
	store     *store.Store
	publisher *events.Publisher
	workers   int
}

func New(ext extractor.Extractor, st *store.Store, pub *events.Publisher, workers int) *Scraper {
	if workers <= 0 {
		workers = 5
	}
	return &Scraper{
		extractor: ext,
		store:     st,
		publisher: pub,
		workers:   workers,
	}
}

// ChannelInfo resolves a channel reference to its display name and uploads.
func (s *Scraper) ChannelInfo(ctx context.Context, channelRef string) (model.ChannelInfoResponse, error) {
	listing, err := s.extractor.ChannelVideos(ctx, channelRef)
	if err != nil {
		return model.ChannelInfoResponse{}, err
	}
	return model.ChannelInfoResponse{
		ChannelName: listing.ChannelName,
		VideoCount:  len(listing.Videos),
		Videos:      listing.Videos,
	}, nil
}

// Run executes one full scrape: list the channel, drop already-downloaded
// videos when requested, cap the list, then extract comments for every
// remaining video in parallel while progressively rewriting the snapshot
// file after each completion. Dispatched work is never cancelled; the run
// returns once every task has finished.
func (s *Scraper) Run(ctx context.Context, req model.ScrapeRequest) (model.ScrapeSummary, error) {
	listing, err := s.extractor.ChannelVideos(ctx, req.Channel)
	if err != nil {
		metrics.ScrapeRunsTotal.WithLabelValues("error").Inc()
		return model.ScrapeSummary{}, err
	}

	videos := listing.Videos
	totalAvailable := len(videos)
	skipped := 0

	if req.SkipExisting {
		seen := s.store.SeenVideoIDs()
		kept := videos[:0:0]
		for _, v := range videos {
			if _, ok := seen[v.ID]; !ok {
				kept = append(kept, v)
			}
		}
		skipped = len(videos) - len(kept)
		videos = kept
		log.Printf("[INFO] Skipping %d already downloaded videos", skipped)
	}

	if req.Limit > 0 && len(videos) > req.Limit {
		videos = videos[:req.Limit]
	}

	filename := s.store.SnapshotFilename(listing.ChannelName, time.Now())

	r := &run{
		store:    s.store,
		filename: filename,
		snapshot: model.Snapshot{
			ChannelName: listing.ChannelName,
			ScrapedAt:   time.Now().Format(time.RFC3339),
			TotalVideos: len(videos),
			Videos:      []model.VideoResult{},
		},
	}

	// The empty snapshot goes to disk before any task is dispatched so an
	// interrupted run always leaves a valid checkpoint behind.
	if err := r.save(); err != nil {
		metrics.ScrapeRunsTotal.WithLabelValues("error").Inc()
		return model.ScrapeSummary{}, err
	}

	log.Printf("[INFO] Starting parallel extraction for %d videos with %d workers", len(videos), s.workers)
	log.Printf("[INFO] Progress will be saved to: %s", filename)

	metrics.ScrapesInProgress.Inc()
	defer metrics.ScrapesInProgress.Dec()

	s.publisher.RunStarted(events.RunEvent{
		ChannelName: listing.ChannelName,
		Filename:    filename,
		TotalVideos: len(videos),
	})

	total := len(videos)
	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup

	for _, v := range videos {
		wg.Add(1)
		sem <- struct{}{}
		go func(v model.Video) {
			defer func() { <-sem; wg.Done() }()

			result := s.scrapeVideo(ctx, v)
			completed, comments, err := r.record(result)
			if err != nil {
				log.Printf("[ERROR] Failed to save progress for %s: %v", v.ID, err)
				return
			}

			title := truncateTitle(result.Title)
			if result.Error != "" {
				metrics.VideosScrapedTotal.WithLabelValues("error").Inc()
				log.Printf("[%d/%d] Error: %s - %s", completed, total, title, result.Error)
			} else {
				metrics.VideosScrapedTotal.WithLabelValues("ok").Inc()
				metrics.CommentsScrapedTotal.Add(float64(result.CommentCount))
				log.Printf("[%d/%d] Done: %s (%d comments)", completed, total, title, result.CommentCount)
			}

			s.publisher.RunProgress(events.RunEvent{
				ChannelName:     listing.ChannelName,
				Filename:        filename,
				TotalVideos:     total,
				VideosCompleted: completed,
				TotalComments:   comments,
			})
		}(v)
	}
	wg.Wait()

	totalComments, saveErr := r.result()
	if saveErr != nil {
		metrics.ScrapeRunsTotal.WithLabelValues("error").Inc()
		return model.ScrapeSummary{}, fmt.Errorf("save progress: %w", saveErr)
	}

	log.Printf("[INFO] Extraction complete! %d comments saved to %s", totalComments, filename)
	metrics.ScrapeRunsTotal.WithLabelValues("ok").Inc()

	s.publisher.RunCompleted(events.RunEvent{
		ChannelName:     listing.ChannelName,
		Filename:        filename,
		TotalVideos:     total,
		VideosCompleted: total,
		TotalComments:   totalComments,
	})

	return model.ScrapeSummary{
		Success:         true,
		ChannelName:     listing.ChannelName,
		TotalVideos:     total,
		TotalAvailable:  totalAvailable,
		SkippedExisting: skipped,
		TotalComments:   totalComments,
		Filename:        filename,
		Filepath:        filepath.Join(s.store.Dir(), filename),
	}, nil
}

// scrapeVideo is the task boundary: every failure of the upstream fetch is
// converted into a VideoResult with a populated error, never an abort.
func (s *Scraper) scrapeVideo(ctx context.Context, v model.Video) model.VideoResult {
	comments, err := s.extractor.VideoComments(ctx, v.URL)
	if err != nil {
		return model.VideoResult{
			VideoID:  v.ID,
			Title:    v.Title,
			URL:      v.URL,
			Comments: []model.Comment{},
			Error:    err.Error(),
		}
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	return model.VideoResult{
		VideoID:      v.ID,
		Title:        v.Title,
		URL:          v.URL,
		CommentCount: len(comments),
		Comments:     comments,
	}
}

func truncateTitle(title string) string {
	if title == "" {
		return "Unknown"
	}
	runes := []rune(title)
	if len(runes) > 50 {
		return string(runes[:50])
	}
	return title
}
