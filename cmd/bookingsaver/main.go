package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"bookingsaver/config"
	"bookingsaver/internal/api"
	"bookingsaver/internal/database"
	"bookingsaver/internal/maps"
	"bookingsaver/internal/models"
	"bookingsaver/internal/processor"
	"bookingsaver/internal/queue"
	"bookingsaver/internal/scraper"
	"bookingsaver/internal/sheets"
	"bookingsaver/internal/telegram"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		logger.WithError(err).Fatal("Failed to create database directory")
	}
	logger.Infof("Using database at: %s", cfg.Database.Path)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	var sheet processor.RowAppender
	if cfg.Sheets.SheetID != "" {
		appender, err := sheets.NewAppender(ctx, logger, cfg.Sheets.SheetID, cfg.Sheets.Credentials)
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize Google Sheets client")
		}
		if err := appender.InitSheet(ctx); err != nil {
			logger.WithError(err).Fatal("Failed to initialize sheet formatting")
		}
		sheet = appender
	} else {
		logger.Info("No sheet ID configured, skipping Google Sheets export")
	}

	cacheDir := cfg.Maps.CacheDir
	if cacheDir == "" {
		cacheDir = filepath.Join(os.TempDir(), "bookingsaver", "maps_cache")
	}
	ratings := maps.NewLookup(logger, cacheDir, time.Duration(cfg.Maps.Timeout)*time.Second, cfg.Scraper.Headless)

	listings := scraper.NewScraper(logger, time.Duration(cfg.Scraper.Timeout)*time.Second, cfg.Scraper.Headless)

	bot := telegram.NewService(logger, cfg.Telegram.BotToken, cfg.Telegram.PollTimeout)

	proc := processor.NewProcessor(logger, listings, ratings, db, sheet, bot)

	msgQueue := queue.NewMessageQueue(cfg.Queue.BufferSize, logger)
	msgQueue.Subscribe(proc.HandleMessage)
	msgQueue.Start()
	defer msgQueue.Close()

	router := gin.Default()
	router.Use(cors.Default())
	api.SetupRoutes(router, db, logger)

	go func() {
		logger.Infof("Starting API server on %s", cfg.HTTP.Addr)
		if err := router.Run(cfg.HTTP.Addr); err != nil {
			logger.WithError(err).Error("API server stopped")
		}
	}()

	logger.Info("Starting Telegram polling loop")
	bot.Poll(ctx, func(msg models.TelegramMessage) {
		if err := msgQueue.Push(msg); err != nil {
			logger.WithError(err).WithField("chat_id", msg.Chat.ID).Error("Failed to enqueue message")
		}
	})

	logger.Info("Shutting down")
}
