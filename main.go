package main

import (
	"log"

	"github.com/joho/godotenv"

	"datasweep/adapters/csvio"
	"datasweep/adapters/excel"
	"datasweep/adapters/summary"
	"datasweep/app"
	"datasweep/internal/config"
	"datasweep/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	pipeline := app.NewPipeline(
		summary.NewEngine(),
		cfg.Pipeline.Workers,
		csvio.NewCodec(),
		excel.NewCodec(),
	)

	server, err := ui.NewApp(cfg, pipeline)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	log.Fatal(server.Start())
}
