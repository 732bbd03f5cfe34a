package chatHandler

import (
	chatService "VoiceBot/internal/api/chat/service"
	"VoiceBot/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type ChatHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	chatService chatService.IChatService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	cs chatService.IChatService,
) *ChatHandler {
	return &ChatHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		chatService: cs,
	}
}

func (h *ChatHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	chat := srv.Group("/chat")
	chat.Use(h.middleware.NewRateLimiter)

	chat.Post("/sessions", h.CreateSession)
	chat.Get("/sessions/:session_id/history", h.GetHistory)
	chat.Delete("/sessions/:session_id/history", h.ClearHistory)
	chat.Delete("/sessions/:session_id", h.DeleteSession)

	chat.Post("/message", h.ProcessMessage)
	chat.Post("/voice", h.ProcessVoice)

	chat.Post("/nlp/test", h.TestNLPProcessing)
	chat.Get("/intents", h.GetIntents)

	chat.Use("/ws", wsMiddleware)
	chat.Get("/ws", websocket.New(h.handleChatWebSocket))

	admin := srv.Group("/admin")
	admin.Use(h.middleware.NewTokenMiddleware, h.middleware.NewAdminMiddleware)
	admin.Get("/stats", h.GetStats)
	admin.Post("/caches/clear", h.ClearCaches)
}
