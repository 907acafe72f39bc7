package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"staynest/internal/config"
	"staynest/internal/obs"
	"staynest/internal/repos"
	"staynest/internal/router"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer := obs.InitTracer(ctx, cfg)
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(sctx); err != nil {
			log.Printf("[warn] tracer shutdown: %v", err)
		}
	}()

	db, err := repos.OpenDB(repos.Options{Driver: cfg.DBDriver, DSN: cfg.DBDSN, Seed: cfg.Seed})
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	app := router.New(cfg, db)

	go func() {
		<-ctx.Done()
		log.Printf("[server] shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("[warn] shutdown: %v", err)
		}
	}()

	log.Printf("[server] listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("[server] %v", err)
	}
}
