package chatHandler

import (
	"VoiceBot/internal/api/chat"
	"VoiceBot/internal/entity"
	contextPkg "VoiceBot/pkg/context"
	"VoiceBot/pkg/handlerUtil"
	"VoiceBot/pkg/log"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *ChatHandler) CreateSession(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing create session request")

	response, err := h.chatService.CreateSession(c, entity.ChannelHTTP)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_session")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, response)
	}
}

func (h *ChatHandler) ProcessMessage(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing chat message request")

	var req chat.MessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	response, err := h.chatService.ProcessMessage(c, req, entity.ChannelHTTP)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "process_message")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

func (h *ChatHandler) ProcessVoice(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 60*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing voice message request")

	audioFile, err := ctx.FormFile("audio")
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("audio file is required"), ctx.Path())
	}

	req := chat.VoiceRequest{
		AudioFile: audioFile,
		SessionID: ctx.FormValue("session_id"),
		Language:  ctx.FormValue("language"),
		Speak:     ctx.FormValue("speak") == "true",
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	response, err := h.chatService.ProcessVoice(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "process_voice")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

func (h *ChatHandler) GetHistory(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	sessionID := ctx.Params("session_id")
	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"session_id": sessionID,
	}).Debug("Processing get history request")

	response, err := h.chatService.GetHistory(c, sessionID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_history")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

func (h *ChatHandler) ClearHistory(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	sessionID := ctx.Params("session_id")
	if err := h.chatService.ClearHistory(c, sessionID); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "clear_history")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusNoContent, nil)
	}
}

func (h *ChatHandler) DeleteSession(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	sessionID := ctx.Params("session_id")
	if err := h.chatService.DeleteSession(c, sessionID); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "delete_session")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusNoContent, nil)
	}
}

func (h *ChatHandler) TestNLPProcessing(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req chat.NLPTestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	response, err := h.chatService.TestNLPProcessing(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "test_nlp_processing")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

func (h *ChatHandler) GetIntents(ctx *fiber.Ctx) error {
	errHandler := handlerUtil.New(h.log)
	return errHandler.HandleSuccess(ctx, fiber.StatusOK, h.chatService.Intents(ctx.UserContext()))
}
