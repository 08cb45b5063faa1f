package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hearthplan/backend/config"
	"github.com/hearthplan/backend/internal/database"
	"github.com/hearthplan/backend/internal/models"
	"github.com/hearthplan/backend/internal/sync"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if !cfg.SyncEnabled() {
		log.Fatal("Sync is not configured: set NOTION_TOKEN and NOTION_DATABASE_ID")
	}
	if cfg.HomeAssistantURL == "" {
		log.Fatal("Sync is not configured: set HASS_URL and HASS_TOKEN")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// The bridge tracks one set of dropdowns per household member.
	var people []models.Person
	if err := db.Find(&people).Error; err != nil {
		log.Fatalf("Failed to load people: %v", err)
	}
	names := make([]string, len(people))
	for i, p := range people {
		names[i] = p.Name
	}
	if len(names) == 0 {
		log.Fatal("No people found, seed the database first")
	}

	notion := sync.NewNotionClient(cfg.NotionToken, cfg.NotionDatabaseID)
	hass := sync.NewHassClient(cfg.HomeAssistantURL, cfg.HomeAssistantToken)
	bridge := sync.NewBridge(notion, hass, names, time.Duration(cfg.SyncPollMinutes)*time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		sig := <-quit
		log.Printf("Received signal: %v", sig)
		cancel()
	}()

	bridge.Run(ctx)
}
