package chatHandler

import (
	"VoiceBot/internal/api/chat"
	"VoiceBot/internal/entity"
	"VoiceBot/internal/middleware"
	contextPkg "VoiceBot/pkg/context"
	"VoiceBot/pkg/response"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/websocket/v2"
	jsoniter "github.com/json-iterator/go"
)

const (
	wsReadTimeout  = 5 * time.Minute
	wsWriteTimeout = 10 * time.Second
	wsTurnTimeout  = 10 * time.Second
)

// handleChatWebSocket runs one dialog session per connection. Clients may pass
// ?session_id= to resume and ?language= to pin the reply language. Frames are
// JSON WSMessage objects; a frame that is not JSON is treated as plain text.
func (h *ChatHandler) handleChatWebSocket(c *websocket.Conn) {
	requestID, _ := c.Locals(middleware.RequestIDKey).(string)
	baseCtx := contextPkg.WithRequestID(context.Background(), requestID)

	log := h.log.WithField("request_id", requestID)
	log.Info("Chat WebSocket client connected")
	defer log.Info("Chat WebSocket client disconnected")

	c.SetPingHandler(func(data string) error {
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	sessionID := c.Query("session_id")
	language := c.Query("language")

	if sessionID == "" {
		created, err := h.chatService.CreateSession(baseCtx, entity.ChannelWebSocket)
		if err != nil {
			h.writeError(c, err)
			return
		}
		sessionID = created.SessionID
	} else if !h.chatService.SessionExists(baseCtx, sessionID) {
		h.writeError(c, chat.ErrSessionNotFound)
		return
	}

	if !h.write(c, chat.WSReply{Type: chat.WSTypeSession, SessionID: sessionID}) {
		return
	}

	for {
		if err := c.SetReadDeadline(time.Now().Add(wsReadTimeout)); err != nil {
			log.Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Errorf("Chat WebSocket error: %v", err)
			} else {
				log.Info("Chat WebSocket connection closed")
			}
			break
		}

		if messageType != websocket.TextMessage {
			log.Warnf("Received unexpected message type: %d", messageType)
			continue
		}

		frame := parseFrame(message)
		if frame.Language == "" {
			frame.Language = language
		}

		ctx, cancel := context.WithTimeout(baseCtx, wsTurnTimeout)
		reply := h.handleFrame(ctx, sessionID, frame)
		cancel()

		if !h.write(c, reply) {
			break
		}
	}
}

func parseFrame(message []byte) chat.WSMessage {
	var frame chat.WSMessage
	if err := jsoniter.Unmarshal(message, &frame); err != nil {
		return chat.WSMessage{Text: string(message)}
	}
	return frame
}

func (h *ChatHandler) handleFrame(ctx context.Context, sessionID string, frame chat.WSMessage) chat.WSReply {
	switch strings.ToLower(strings.TrimSpace(frame.Command)) {
	case "":
		resp, err := h.chatService.ProcessMessage(ctx, chat.MessageRequest{
			SessionID: sessionID,
			Text:      frame.Text,
			Language:  frame.Language,
		}, entity.ChannelWebSocket)
		if err != nil {
			return errorReply(err)
		}
		return chat.WSReply{Type: chat.WSTypeMessage, SessionID: sessionID, Message: resp}

	case chat.WSCommandHistory:
		history, err := h.chatService.GetHistory(ctx, sessionID)
		if err != nil {
			return errorReply(err)
		}
		return chat.WSReply{Type: chat.WSTypeHistory, SessionID: sessionID, History: history}

	case chat.WSCommandClear:
		if err := h.chatService.ClearHistory(ctx, sessionID); err != nil {
			return errorReply(err)
		}
		return chat.WSReply{Type: chat.WSTypeCleared, SessionID: sessionID}

	default:
		return errorReply(chat.ErrUnknownCommand)
	}
}

func errorReply(err error) chat.WSReply {
	reply := chat.WSReply{Type: chat.WSTypeError, Error: err.Error()}

	var respErr *response.Error
	if errors.As(err, &respErr) {
		reply.Code = respErr.ErrCode
	}
	return reply
}

func (h *ChatHandler) writeError(c *websocket.Conn, err error) {
	h.write(c, errorReply(err))
}

func (h *ChatHandler) write(c *websocket.Conn, reply chat.WSReply) bool {
	if err := c.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		h.log.Errorf("Error setting write deadline: %v", err)
		return false
	}

	if err := c.WriteJSON(reply); err != nil {
		h.log.Errorf("Error writing JSON response: %v", err)
		return false
	}

	if err := c.SetWriteDeadline(time.Time{}); err != nil {
		h.log.Errorf("Error resetting write deadline: %v", err)
		return false
	}
	return true
}
