package model

// Video is a single channel upload as returned by the flat channel listing.
type Video struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ChannelListing is the result of enumerating a channel's uploads.
type ChannelListing struct {
	ChannelName string  `json:"channel_name"`
	Videos      []Video `json:"videos"`
}

// Comment is one comment record, top-level or reply, in upstream order.
// Parent is "root" for top-level comments, otherwise the parent comment id.
type Comment struct {
	Author    string `json:"author"`
	AuthorID  string `json:"author_id"`
	Text      string `json:"text"`
	Likes     int    `json:"likes"`
	Timestamp int64  `json:"timestamp"`
	Parent    string `json:"parent"`
	IsReply   bool   `json:"is_reply"`
}

// VideoResult is the outcome of one video's comment extraction. A non-empty
// Error means Comments is empty and CommentCount is zero.
type VideoResult struct {
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	URL          string    `json:"url"`
	CommentCount int       `json:"comment_count"`
	Comments     []Comment `json:"comments"`
	Error        string    `json:"error,omitempty"`
}

// Snapshot is the persisted run document, one JSON file per scrape run.
// Videos is in completion order; VideosCompleted and TotalComments are
// recomputed on every write.
type Snapshot struct {
	ChannelName     string        `json:"channel_name"`
	ScrapedAt       string        `json:"scraped_at"`
	TotalVideos     int           `json:"total_videos"`
	VideosCompleted int           `json:"videos_completed"`
	TotalComments   int           `json:"total_comments"`
	Videos          []VideoResult `json:"videos"`
}

// ChannelInfoRequest is the body of POST /api/channel-info.
type ChannelInfoRequest struct {
	Channel string `json:"channel"`
}

// ChannelInfoResponse describes a channel and its uploads.
type ChannelInfoResponse struct {
	ChannelName string  `json:"channel_name"`
	VideoCount  int     `json:"video_count"`
	Videos      []Video `json:"videos"`
}

// ScrapeRequest is the body of POST /api/scrape-comments. Limit <= 0 means
// no cap on the number of videos.
type ScrapeRequest struct {
	Channel      string `json:"channel"`
	Limit        int    `json:"limit"`
	SkipExisting bool   `json:"skip_existing"`
}

// ScrapeSummary is returned once a scrape run has fully completed.
type ScrapeSummary struct {
	Success         bool   `json:"success"`
	ChannelName     string `json:"channel_name"`
	TotalVideos     int    `json:"total_videos"`
	TotalAvailable  int    `json:"total_available"`
	SkippedExisting int    `json:"skipped_existing"`
	TotalComments   int    `json:"total_comments"`
	Filename        string `json:"filename"`
	Filepath        string `json:"filepath"`
}

// FileInfo is one catalog entry for GET /api/files and /api/files-stats.
// The stat fields are only populated by the richer listing and only when
// the file parses as a Snapshot.
type FileInfo struct {
	Name         string `json:"name"`
	Size         string `json:"size"`
	Path         string `json:"path"`
	ChannelName  string `json:"channel_name,omitempty"`
	VideoCount   int    `json:"video_count,omitempty"`
	CommentCount int    `json:"comment_count,omitempty"`
	ScrapedAt    string `json:"scraped_at,omitempty"`
}

// FilesResponse is the body of GET /api/files.
type FilesResponse struct {
	Files []FileInfo `json:"files"`
}

// FilesStatsResponse is the body of GET /api/files-stats.
type FilesStatsResponse struct {
	Files         []FileInfo `json:"files"`
	TotalChannels int        `json:"total_channels"`
	TotalVideos   int        `json:"total_videos"`
	TotalComments int        `json:"total_comments"`
}
