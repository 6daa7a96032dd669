package main

import (
	"log"

	"github.com/Sprudeel/nextPFF/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ nextPFF failed to start: %v", err)
	}
}
