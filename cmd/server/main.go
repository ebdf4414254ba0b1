package main

import (
	"log"

	"github.com/twmlab/probenplan-go/internal/api"
	"github.com/twmlab/probenplan-go/internal/config"
	"github.com/twmlab/probenplan-go/internal/database"
	"github.com/twmlab/probenplan-go/internal/repository"
	"github.com/twmlab/probenplan-go/internal/service"
)

func main() {
	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	uploadRepo := repository.NewUploadRepository(database.GetDB())
	planService := service.NewPlanService(uploadRepo)

	router := api.SetupRouter(cfg, planService)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
