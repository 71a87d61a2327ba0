package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ewilliams-labs/moodquiz/internal/adapters/itunes"
	"github.com/ewilliams-labs/moodquiz/internal/adapters/lexicon"
	"github.com/ewilliams-labs/moodquiz/internal/adapters/moodml"
	"github.com/ewilliams-labs/moodquiz/internal/adapters/rest"
	"github.com/ewilliams-labs/moodquiz/internal/adapters/sqlite"
	"github.com/ewilliams-labs/moodquiz/internal/core/ports"
	"github.com/ewilliams-labs/moodquiz/internal/core/services"
	"github.com/ewilliams-labs/moodquiz/internal/worker"
)

func main() {
	// 1. Configuration (environment variables, optionally from .env)
	_ = godotenv.Load()

	port := envOr("PORT", "8080")

	// 2. Initialize "driven" adapters (the tools)
	// -- Mood inference driver
	moodDriver := os.Getenv("MOOD_DRIVER")
	if moodDriver == "" {
		if os.Getenv("MOOD_ML_URL") != "" {
			moodDriver = "remote"
		} else {
			moodDriver = "lexicon"
		}
	}

	var inferrer ports.MoodInferrer
	switch moodDriver {
	case "remote":
		inferrer = moodml.NewClient(os.Getenv("MOOD_ML_URL"))
		log.Printf("mood inference: remote service at %s", os.Getenv("MOOD_ML_URL"))
	case "lexicon":
		var err error
		var lex *lexicon.Inferrer
		if path := os.Getenv("VAD_LEXICON_PATH"); path != "" {
			lex, err = lexicon.NewFromFile(path)
		} else {
			lex, err = lexicon.New()
		}
		if err != nil {
			log.Fatalf("FATAL: failed to load mood lexicon: %v", err)
		}
		inferrer = lex
		log.Printf("mood inference: local lexicon (%d terms)", lex.Terms())
	default:
		log.Fatalf("Unknown mood driver: %s", moodDriver)
	}

	// -- Catalog search adapter
	catalog := itunes.NewClient(nil, os.Getenv("ITUNES_BASE_URL"))

	// -- Optional search cache with async writes
	var cache ports.SearchCache
	var pool *worker.Pool
	switch driver := envOr("CACHE_DRIVER", "none"); driver {
	case "sqlite":
		ttl := time.Duration(envInt("CACHE_TTL_MINUTES", 15)) * time.Minute
		sqlCache, err := sqlite.NewCache(envOr("CACHE_PATH", "moodquiz.db"), ttl)
		if err != nil {
			log.Fatalf("FATAL: failed to initialize cache: %v", err)
		}
		defer sqlCache.Close()

		pool = worker.NewPool(sqlCache, 100)
		pool.Start(2, ttl)
		defer pool.Stop()

		cache = worker.NewWriteBehind(sqlCache, pool)
	case "none":
		// run without a cache; every (country, query) pair hits the catalog
	default:
		log.Fatalf("Unknown cache driver: %s", driver)
	}

	// 3. Initialize core logic and the "driving" adapter
	fetcher := services.NewFetcher(catalog, cache)
	svc := services.NewAssembler(inferrer, fetcher, "itunes")
	handler := rest.NewHandler(svc)

	// 4. Start the server
	log.Println("------------------------------------------------")
	log.Printf("🎶 MoodQuiz API is running on http://localhost:%s", port)
	log.Println("------------------------------------------------")

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("FATAL: %s must be an integer, got %q", key, raw)
	}
	return parsed
}
