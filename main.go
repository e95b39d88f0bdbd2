package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"shortsbot/api"
	"shortsbot/composer"
	"shortsbot/config"
	"shortsbot/generator"
	"shortsbot/pipeline"
	"shortsbot/scheduler"
	"shortsbot/storage"
	"shortsbot/uploader"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	cfg := config.Load()

	store := storage.New(cfg.Video.StatePath)

	scriptGen := generator.NewScriptGenerator(cfg.Cohere, cfg.Video.Niche)
	imageGen := generator.NewImageGenerator(cfg.Image)
	narrationGen := generator.NewNarrationGenerator(cfg.Speech)
	comp := composer.New(cfg.Video.TmpDir)
	ytUploader := uploader.New(cfg.YouTube)

	runner := pipeline.NewRunner(store, scriptGen, imageGen, narrationGen, comp, ytUploader, cfg.Video.CleanupDelay)

	sched := scheduler.New(cfg.Video.CronSchedule, store.CronEnabled, func() error {
		_, err := runner.StartScheduled()
		return err
	})
	if err := sched.Start(); err != nil {
		fmt.Printf("Failed to start scheduler: %v\n", err)
		os.Exit(1)
	}

	server := api.NewServer(store, runner, ytUploader, sched, cfg.Server.Port)
	server.Start()

	fmt.Printf("🎬 Shortsbot\n")
	fmt.Printf("   API:            http://0.0.0.0:%d\n", cfg.Server.Port)
	fmt.Printf("   Cron Schedule:  %s\n", cfg.Video.CronSchedule)
	fmt.Printf("   State:          %s\n", cfg.Video.StatePath)
	fmt.Println("\nPress Ctrl+C to shutdown")

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\nShutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sched.Stop()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
		os.Exit(1)
	}

	fmt.Println("Server stopped")
}
