// Package events publishes scrape run lifecycle events to NATS. Publishing
// is fire-and-forget; a nil Publisher (NATS not configured) is a no-op.
package events

import (
	"encoding/json"
	"log"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	SubjectRunStarted   = "comments.scrape.started"
	SubjectRunProgress  = "comments.scrape.progress"
	SubjectRunCompleted = "comments.scrape.completed"
)

// RunEvent is the payload published on every comments.scrape.* subject.
type RunEvent struct {
	ChannelName     string    `json:"channel_name"`
	Filename        string    `json:"filename"`
	TotalVideos     int       `json:"total_videos"`
	VideosCompleted int       `json:"videos_completed"`
	TotalComments   int       `json:"total_comments"`
	PublishedAt     time.Time `json:"published_at"`
}

type Publisher struct {
	nc *nats.Conn
}

// Connect dials NATS and returns a Publisher. An empty URL disables event
// publishing and returns nil, which every method accepts.
func Connect(url string) (*Publisher, error) {
	if url == "" {
		return nil, nil
	}
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] Connected to NATS at %s", url)
	return &Publisher{nc: nc}, nil
}

func (p *Publisher) Close() {
	if p == nil || p.nc == nil {
		return
	}
	p.nc.Close()
}

func (p *Publisher) RunStarted(ev RunEvent)   { p.publish(SubjectRunStarted, ev) }
func (p *Publisher) RunProgress(ev RunEvent)  { p.publish(SubjectRunProgress, ev) }
func (p *Publisher) RunCompleted(ev RunEvent) { p.publish(SubjectRunCompleted, ev) }

func (p *Publisher) publish(subject string, ev RunEvent) {
	if p == nil || p.nc == nil {
		return
	}
	ev.PublishedAt = time.Now()
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[ERROR] Failed to marshal run event: %v", err)
		return
	}
	if err := p.nc.Publish(subject, data); err != nil {
		log.Printf("[ERROR] Failed to publish %s: %v", subject, err)
	}
}
