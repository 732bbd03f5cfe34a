package config

import (
	chatHandler "VoiceBot/internal/api/chat/handler"
	chatRepository "VoiceBot/internal/api/chat/repository"
	chatService "VoiceBot/internal/api/chat/service"
	"VoiceBot/internal/dialog"
	"VoiceBot/internal/middleware"
	"VoiceBot/pkg/audio"
	"VoiceBot/pkg/langdetect"
	"VoiceBot/pkg/redis"
	"VoiceBot/pkg/utils"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	config      *AppConfig
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	handlers    []handler
	redisServer redis.IRedis
	transcriber audio.ITranscriber
	synthesizer audio.ISynthesizer
	dialog      *dialog.Engine
	chatService chatService.IChatService
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if server.middleware == nil {
		return nil, fmt.Errorf("middleware is required")
	}
	if server.validator == nil {
		server.validator = NewValidator()
	}
	if server.utils == nil {
		server.utils = utils.New()
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithConfig(cfg *AppConfig) ServerOption {
	return func(s *Server) error {
		s.config = cfg
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

// WithSpeech wires the external speech backends. Either may be nil.
func WithSpeech(transcriber audio.ITranscriber, synthesizer audio.ISynthesizer) ServerOption {
	return func(s *Server) error {
		s.transcriber = transcriber
		s.synthesizer = synthesizer
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		if s.config == nil {
			return fmt.Errorf("config must be loaded before middleware")
		}
		s.middleware = middleware.New(s.log, middleware.Options{
			RequestsPerSecond: s.config.RateLimitRPS,
			Burst:             s.config.RateLimitBurst,
			TokenSecret:       s.config.JWTSecret,
		})
		return nil
	}
}

func WithDialogEngine() ServerOption {
	return func(s *Server) error {
		engine, err := dialog.NewEngine()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to build dialog engine: %v", err)
			}
			return fmt.Errorf("failed to build dialog engine: %w", err)
		}
		s.dialog = engine
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() error {
	if s.dialog == nil {
		if err := WithDialogEngine()(s); err != nil {
			return err
		}
	}

	// Chat Domain
	chatRepo := chatRepository.New(s.redisServer, s.log, chatRepository.Options{
		MaxTurns: dialog.DefaultHistorySize,
		TTL:      s.config.RedisHistoryTTL,
	})
	s.chatService = chatService.NewChatService(
		s.log,
		s.dialog,
		chatRepo,
		langdetect.New(langdetect.DefaultConfidenceThreshold),
		s.transcriber,
		s.synthesizer,
		s.utils,
		chatService.Config{
			MaxSessions: s.config.SessionMax,
			IdleTimeout: s.config.SessionIdleTimeout,
			Cache: dialog.CacheConfig{
				Enabled:        s.config.CacheEnabled,
				RecognizerSize: s.config.RecognizerCacheSize,
				GeneratorSize:  s.config.GeneratorCacheSize,
			},
		},
	)
	chatHandlers := chatHandler.New(s.log, s.validator, s.middleware, s.chatService)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, chatHandlers)
	return nil
}

// Mount attaches the global middleware and every registered handler under
// /api/v1.
func (s *Server) Mount() {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware)

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}
}

func (s *Server) Run() error {
	s.Mount()

	if err := s.engine.Listen(fmt.Sprintf(":%s", s.config.Port)); err != nil {
		return err
	}

	return nil
}

func (s *Server) Shutdown() error {
	if s.chatService != nil {
		s.chatService.Close()
	}
	if s.redisServer != nil {
		if err := s.redisServer.Close(); err != nil {
			s.log.Warnf("Failed to close Redis client: %v", err)
		}
	}
	return s.engine.Shutdown()
}

func (s *Server) App() *fiber.App {
	return s.engine
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
