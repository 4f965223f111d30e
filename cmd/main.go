package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"comments-service/config"
	"comments-service/events"
	"comments-service/extractor"
	"comments-service/handler"
	"comments-service/router"
	"comments-service/scraper"
	"comments-service/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Snapshot store over the output directory
	st, err := store.New(cfg.OutputDir)
	if err != nil {
		log.Fatal("Failed to create snapshot store: ", err)
	}

	// yt-dlp extraction client
	ext := extractor.NewYTDLP(cfg.YTDLPPath, cfg.ExtractTimeout)
	if err := ext.CheckBinary(); err != nil {
		log.Printf("[WARN] %v", err)
	}

	// Optional NATS event publisher
	pub, err := events.Connect(cfg.NATSUrl)
	if err != nil {
		log.Fatal("Failed to connect to NATS: ", err)
	}
	defer pub.Close()

	s := scraper.New(ext, st, pub, cfg.MaxWorkers)

	r := router.Setup(handler.New(s, st))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Start server in background
	go func() {
		log.Printf("Comments service starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down comments service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Comments service stopped")
}
