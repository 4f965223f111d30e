// Package extractor adapts the yt-dlp extraction tool into listing and
// per-video comment fetch operations.
package extractor

import (
	"context"

	"comments-service/model"
)

// Extractor is the upstream video/comment source. ChannelVideos resolves a
// channel reference to its uploads; VideoComments fetches one video's full
// comment thread. Both are single-attempt, no retry.
type Extractor interface {
	ChannelVideos(ctx context.Context, channelRef string) (model.ChannelListing, error)
	VideoComments(ctx context.Context, videoURL string) ([]model.Comment, error)
}
