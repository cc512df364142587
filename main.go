package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/klokku/bizcalc/internal/app"
	log "github.com/sirupsen/logrus"
)

func init() {
	// a missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	level := os.Getenv("LOG_LEVEL")
	if level != "" {
		logrusLevel, err := log.ParseLevel(level)
		if err != nil {
			log.Fatal(err)
		}
		log.SetLevel(logrusLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func main() {
	application, err := app.NewApplication(context.Background())
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	if err := application.Run(); err != nil {
		log.Fatal(err)
	}
}
