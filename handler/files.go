package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"comments-service/model"
	"comments-service/store"
)

// DownloadFile handles GET /api/download/:filename.
func (h *Handler) DownloadFile(c *gin.Context) {
	filename := c.Param("filename")

	path, err := h.store.ResolvePath(filename)
	if err != nil {
		log.Printf("[WARN] Download requested for missing file: %s", filename)
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	c.FileAttachment(path, filename)
}

// ListFiles handles GET /api/files.
func (h *Handler) ListFiles(c *gin.Context) {
	files, err := h.store.ListFiles()
	if err != nil {
		log.Printf("[ERROR] ListFiles failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if files == nil {
		files = []model.FileInfo{}
	}
	c.JSON(http.StatusOK, model.FilesResponse{Files: files})
}

// ListFilesWithStats handles GET /api/files-stats.
func (h *Handler) ListFilesWithStats(c *gin.Context) {
	resp, err := h.store.ListFilesWithStats()
	if err != nil {
		log.Printf("[ERROR] ListFilesWithStats failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// FileDetail handles GET /api/file-detail/:filename.
func (h *Handler) FileDetail(c *gin.Context) {
	filename := c.Param("filename")

	snap, err := h.store.ReadSnapshot(filename)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
			return
		}
		log.Printf("[ERROR] FileDetail failed for %s: %v", filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, snap)
}
