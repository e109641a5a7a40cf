package main

import (
	"context"
	"log"

	"coach-backend/internal/bootstrap"
	"coach-backend/internal/shared/config"
	"coach-backend/internal/shared/server"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := app.Router().Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
