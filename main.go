package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := LoadConfig()
	if err != nil {
		log.Error("config", "err", err)
		os.Exit(1)
	}

	db, err := OpenDB(cfg, log)
	if err != nil {
		log.Error("database", "err", err)
		os.Exit(1)
	}
	if err := SeedDB(db, cfg, log); err != nil {
		log.Error("seed", "err", err)
		os.Exit(1)
	}

	// `./depenses migrate` runs AutoMigrate and seeding then exits, for CI
	// or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		log.Info("migration and seeding completed")
		return
	}

	app := NewApp(db, cfg, log)
	r := gin.Default()
	app.SetupRoutes(r)

	log.Info("listening", "addr", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Error("server", "err", err)
		os.Exit(1)
	}
}
