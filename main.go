package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/chainblog-backend/api"
	"github.com/rpupo63/chainblog-backend/cache"
	"github.com/rpupo63/chainblog-backend/config"
	"github.com/rpupo63/chainblog-backend/database"
	"github.com/rpupo63/chainblog-backend/models"
	"github.com/rpupo63/chainblog-backend/scheduler"
	"github.com/rpupo63/chainblog-backend/services"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg := config.Load(config.New())
	setupLogger(cfg)
	log.Info().Str("env", cfg.AppEnv).Str("db", cfg.DBType).Msg("Initializing app...")

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error opening database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing database")
		}
	}()

	// If generating column mismatch report, run report and exit
	if cfg.ColumnReport {
		runColumnReport(db)
		return
	}

	if cfg.SeedSampleData {
		seeded, err := db.Seed(context.Background(), time.Now().UTC())
		if err != nil {
			log.Fatal().Err(err).Msg("Error seeding sample data")
		}
		log.Info().Bool("seeded", seeded).Msg("Sample data checked")
	}

	var cacheClient *cache.Client
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, continuing without cache")
			cacheClient = nil
		} else {
			defer cacheClient.Close()
		}
	}

	blog := services.NewBlog(db, services.WithCache(cacheClient))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.TrendingSchedule != "" {
		sweep, err := scheduler.NewTrendingSweep(blog, cfg.TrendingSchedule)
		if err != nil {
			log.Fatal().Err(err).Msg("Error creating trending sweep")
		}
		if err := sweep.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Error starting trending sweep")
		}
		defer sweep.Stop()
		log.Info().Time("next", sweep.Next()).Msg("Trending sweep scheduled")
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server := api.NewServer(cfg, blog)
	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

func setupLogger(cfg config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}
}

func runColumnReport(db database.Database) {
	if db.SQL() == nil {
		log.Warn().Msg("Column report needs a SQL backed store, nothing to compare")
		return
	}
	report, err := models.ColumnMismatchReport(db.SQL())
	if err != nil {
		log.Fatal().Err(err).Msg("Error generating column mismatch report")
	}
	if len(report) == 0 {
		log.Info().Msg("All tables match their models")
		return
	}
	for _, mismatch := range report {
		log.Warn().Str("table", mismatch.Table).Strs("columns", mismatch.Columns).Msg("Columns without a model field")
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
