package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/emoji-rain/emojirain/internal/config"
	"github.com/emoji-rain/emojirain/internal/mock"
	"github.com/emoji-rain/emojirain/internal/relay"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	port := flag.Int("port", 0, "Override listen port")
	mockMode := flag.Bool("mock", false, "Simulate a few connected players")
	flag.Parse()

	// A missing .env is fine; it only matters for PORT.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("dotenv: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.ApplyEnv()
	if *port > 0 {
		cfg.Server.Port = *port
	}

	store := relay.NewPlayerStore()
	hub := relay.NewHub()
	server := relay.NewServer(store, hub, cfg.Static.Dir)

	r := mux.NewRouter()
	server.Routes(r)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *mockMode {
		log.Println("Starting with simulated players")
		mock.NewGenerator(store, hub).Start(ctx)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutting down...")
		cancel()
		os.Exit(0)
	}()

	if err := relay.ListenAndServe(cfg.Server.Host, cfg.Server.Port, r); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
