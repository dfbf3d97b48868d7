package main

import (
	"github.com/joho/godotenv"

	"github.com/devanpatel28/codegrin-backend/internal/app"
	"github.com/devanpatel28/codegrin-backend/internal/logger"
)

func main() {
	// .env is optional, real deployments set the environment directly.
	_ = godotenv.Load()

	if err := app.Run(); err != nil {
		logger.Fatal("server exited", "error", err)
	}
}
