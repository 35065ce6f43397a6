// pgn-turns-server serves turn trees and board diagrams over HTTP.
//
//	POST /api/parse     PGN body, JSON turn trees back
//	POST /api/diagram   PGN body, ?ply=path:n&size=45&flip=true, SVG back
//	GET  /api/health    running totals
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/lgbarn/pgn-turns-go/internal/config"
	"github.com/lgbarn/pgn-turns-go/internal/server"
)

var (
	addr      = flag.String("addr", envOr("PGN_TURNS_ADDR", ":3000"), "Listen address")
	origins   = flag.String("origins", os.Getenv("PGN_TURNS_ORIGINS"), "Allowed CORS origins (default: any)")
	lenient   = flag.Bool("lenient", false, "Keep games with unresolved moves")
	maxDepth  = flag.Int("depth", config.DefaultMaxVariationDepth, "Maximum variation nesting depth")
	capacity  = flag.Int("duplicate-capacity", 0, "Maximum duplicate hash table entries (0 = unlimited)")
	workers   = flag.Int("workers", 0, "Games resolved in parallel per request (0 = number of CPUs)")
	verbose   = flag.Bool("v", false, "Log every request")
	bodyLimit = flag.Int("body-limit", 16<<20, "Maximum request body in bytes")
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	flag.Parse()

	cfg := config.NewConfigBuilder().
		WithLenient(*lenient).
		WithMaxVariationDepth(*maxDepth).
		WithWorkers(*workers).
		Build()
	cfg.Duplicate.MaxCapacity = *capacity
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if *verbose {
		cfg.Verbosity = 2
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Error: %v", err)
	}

	app := server.New(cfg, server.Options{AllowOrigins: *origins, BodyLimit: *bodyLimit})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		if err := app.Shutdown(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("pgn-turns-server listening on %s", *addr)
	if err := app.Listen(*addr); err != nil {
		log.Fatal(err)
	}
}
