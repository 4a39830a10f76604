package main

import (
	"log"

	"culturevault/internal/api"
	"culturevault/internal/config"
	"culturevault/internal/service/vault"
	"culturevault/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Local development reads a .env file; a missing file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := storage.Open(cfg.Driver, cfg)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	// Create necessary tables: users, sessions, answers
	if err := storage.Migrate(db, cfg.Driver); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	vaultService := vault.NewService(db)
	handlers := api.NewHandler(vaultService, cfg.PublicDir)

	router := gin.Default()
	router.Use(api.RequestID())
	handlers.RegisterRoutes(router)

	if err := router.Run(cfg.Addr()); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
