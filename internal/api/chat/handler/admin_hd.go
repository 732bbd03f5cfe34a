package chatHandler

import (
	contextPkg "VoiceBot/pkg/context"
	"VoiceBot/pkg/handlerUtil"
	jwtPkg "VoiceBot/pkg/jwt"
	"VoiceBot/pkg/log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *ChatHandler) GetStats(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	operator, err := jwtPkg.GetOperatorLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	h.log.WithFields(log.Fields{
		"request_id":  requestID,
		"operator_id": operator.ID,
	}).Debug("Processing stats request")

	response, err := h.chatService.GetStats(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_stats")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

func (h *ChatHandler) ClearCaches(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	operator, err := jwtPkg.GetOperatorLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	h.log.WithFields(log.Fields{
		"request_id":  requestID,
		"operator_id": operator.ID,
	}).Info("Clearing dialog caches")

	response, err := h.chatService.ClearCaches(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "clear_caches")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}
