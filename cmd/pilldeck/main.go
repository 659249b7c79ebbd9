package main

import (
	"log"

	"github.com/pilldeck/pilldeck/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ pilldeck failed to start: %v", err)
	}
}
