package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dinehall/api/internal/store"
)

// Resets the store file to the default floor plan, menu, and stock list.
// Orders and carts start empty.
func main() {
	path := flag.String("store", "", "Path to the store file")
	flag.Parse()

	_ = godotenv.Load()
	if *path == "" {
		*path = os.Getenv("STORE_PATH")
	}
	if *path == "" {
		*path = "dinehall.db"
	}

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := store.Open(*path, log)
	if err != nil {
		log.Fatal("open store", zap.Error(err))
	}
	defer db.Close()

	db.Reset()
	log.Info("seed completed", zap.String("store", *path))
}
