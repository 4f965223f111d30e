package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"comments-service/model"
	"comments-service/scraper"
	"comments-service/store"
)

type Handler struct {
	scraper *scraper.Scraper
	store   *store.Store
}

func New(s *scraper.Scraper, st *store.Store) *Handler {
	return &Handler{scraper: s, store: st}
}

// ChannelInfo handles POST /api/channel-info.
func (h *Handler) ChannelInfo(c *gin.Context) {
	var req model.ChannelInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Channel == "" {
		log.Printf("[WARN] ChannelInfo called without a channel")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a channel name or ID"})
		return
	}

	log.Printf("[INFO] ChannelInfo called with channel: %s", req.Channel)

	info, err := h.scraper.ChannelInfo(c.Request.Context(), req.Channel)
	if err != nil {
		log.Printf("[ERROR] Channel listing failed for %s: %v", req.Channel, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("[INFO] Retrieved %d videos for channel %s", info.VideoCount, info.ChannelName)
	c.JSON(http.StatusOK, info)
}

// ScrapeComments handles POST /api/scrape-comments.
func (h *Handler) ScrapeComments(c *gin.Context) {
	var req model.ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Channel == "" {
		log.Printf("[WARN] ScrapeComments called without a channel")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a channel name or ID"})
		return
	}

	log.Printf("[INFO] ScrapeComments called with channel=%s, limit=%d, skipExisting=%v",
		req.Channel, req.Limit, req.SkipExisting)

	// The run is detached from the request context: once dispatched it is
	// carried to completion even if the client goes away.
	summary, err := h.scraper.Run(context.Background(), req)
	if err != nil {
		log.Printf("[ERROR] Scrape run failed for %s: %v", req.Channel, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}
