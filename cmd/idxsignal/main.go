package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// .env is optional; real env vars still win inside config.Load.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		log.Printf("[FATAL] %v", err)
		os.Exit(1)
	}
}
