// @title Edu Portfolio API
// @version 1.0
// @description Backend server for the educational portfolio platform.

// @host localhost:5000
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"edu_portfolio_backend/internal/app"
	"edu_portfolio_backend/internal/config"

	_ "edu_portfolio_backend/docs"
)

func main() {
	configPath := flag.String("config", "configs", "path to the config directory")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
