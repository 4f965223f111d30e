package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/exec"
	"strings"
	"time"

	"comments-service/model"
)

// YTDLP runs the yt-dlp binary and parses its JSON output.
type YTDLP struct {
	binPath string
	timeout time.Duration
}

func NewYTDLP(binPath string, timeout time.Duration) *YTDLP {
	if binPath == "" {
		binPath = "yt-dlp"
	}
	return &YTDLP{binPath: binPath, timeout: timeout}
}

// CheckBinary verifies that the configured yt-dlp binary is on PATH.
func (y *YTDLP) CheckBinary() error {
	if _, err := exec.LookPath(y.binPath); err != nil {
		return fmt.Errorf("missing dependency: %s is not installed or not on PATH", y.binPath)
	}
	return nil
}

// ChannelVideos fetches a flat listing of a channel's uploads. Any failure
// is fatal for the whole listing; no partial result is returned.
func (y *YTDLP) ChannelVideos(ctx context.Context, channelRef string) (model.ChannelListing, error) {
	url := NormalizeChannelURL(channelRef)
	log.Printf("[INFO] Listing channel videos: %s", url)

	out, err := y.run(ctx, "--flat-playlist", "-J", "--no-warnings", url)
	if err != nil {
		return model.ChannelListing{}, err
	}
	return parseFlatListing(out)
}

// VideoComments fetches the full comment thread of one video in upstream
// "top" order.
func (y *YTDLP) VideoComments(ctx context.Context, videoURL string) ([]model.Comment, error) {
	out, err := y.run(ctx,
		"--skip-download",
		"--write-comments",
		"--dump-single-json",
		"--no-warnings",
		"--extractor-args", "youtube:comment_sort=top;skip=dash,hls",
		videoURL,
	)
	if err != nil {
		return nil, err
	}
	return parseComments(out)
}

func (y *YTDLP) run(ctx context.Context, args ...string) ([]byte, error) {
	if y.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, y.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, y.binPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := lastLine(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%s failed: %s", y.binPath, msg)
	}
	return stdout.Bytes(), nil
}

// lastLine returns the final non-empty line of yt-dlp's stderr, which is
// where it reports the actual failure reason.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

type flatListing struct {
	Channel  string `json:"channel"`
	Uploader string `json:"uploader"`
	Entries  []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"entries"`
}

func parseFlatListing(data []byte) (model.ChannelListing, error) {
	var fl flatListing
	if err := json.Unmarshal(data, &fl); err != nil {
		return model.ChannelListing{}, fmt.Errorf("parse channel listing: %w", err)
	}

	name := fl.Channel
	if name == "" {
		name = fl.Uploader
	}
	if name == "" {
		name = "Unknown"
	}

	var videos []model.Video
	for _, entry := range fl.Entries {
		// Entries without an id are not retrievable and are dropped.
		if entry.ID == "" {
			continue
		}
		videos = append(videos, model.Video{
			ID:    entry.ID,
			Title: entry.Title,
			URL:   "https://www.youtube.com/watch?v=" + entry.ID,
		})
	}

	return model.ChannelListing{ChannelName: name, Videos: videos}, nil
}

type videoInfo struct {
	Comments []struct {
		Author    string `json:"author"`
		AuthorID  string `json:"author_id"`
		Text      string `json:"text"`
		LikeCount int    `json:"like_count"`
		Timestamp int64  `json:"timestamp"`
		Parent    string `json:"parent"`
	} `json:"comments"`
}

func parseComments(data []byte) ([]model.Comment, error) {
	var info videoInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("parse video info: %w", err)
	}

	comments := make([]model.Comment, 0, len(info.Comments))
	for _, c := range info.Comments {
		parent := c.Parent
		if parent == "" {
			parent = "root"
		}
		comments = append(comments, model.Comment{
			Author:    c.Author,
			AuthorID:  c.AuthorID,
			Text:      c.Text,
			Likes:     c.LikeCount,
			Timestamp: c.Timestamp,
			Parent:    parent,
			IsReply:   parent != "root",
		})
	}
	return comments, nil
}
