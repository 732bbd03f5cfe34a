package main

import (
	"VoiceBot/internal/config"
	"VoiceBot/pkg/audio"
	"VoiceBot/pkg/log"
	"VoiceBot/pkg/redis"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warnf("No .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Error loading config: %v", err)
	}

	logger := log.NewLogger(log.Options{
		Level:  cfg.LogLvl,
		File:   cfg.LogFile,
		AppEnv: cfg.Env,
	})

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()

	options := []config.ServerOption{
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithConfig(cfg),
		config.WithValidator(validator),
		config.WithMiddleware(),
		config.WithDialogEngine(),
		config.WithUtils(),
		config.WithSpeech(
			audio.NewTranscriber(cfg.OpenAIAPIKey),
			audio.NewSynthesizer(cfg.ElevenLabsAPIKey, cfg.ElevenLabsVoiceID),
		),
	}

	if cfg.RedisEnabled() {
		options = append(options, config.WithRedisServer(redis.New(redis.Options{
			Address:  cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})))
	} else {
		logger.Info("REDIS_ADDRESS not set, conversation history stays in memory only")
	}

	server, err := config.NewServer(options...)
	if err != nil {
		logger.Fatal(err)
	}

	if err := server.RegisterHandler(); err != nil {
		logger.Fatal(err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")

	if err := server.Shutdown(); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
}
