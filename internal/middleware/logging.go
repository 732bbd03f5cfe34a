package middleware

import (
	"VoiceBot/pkg/log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

const maxLoggedBody = 512

var sensitiveFields = []string{
	"password", "token", "secret", "key", "auth",
	"credential", "authorization", "api_key",
}

type loggingMiddleware struct {
	logger *logrus.Logger
}

func newLoggingMiddleware(logger *logrus.Logger) *loggingMiddleware {
	return &loggingMiddleware{
		logger: logger,
	}
}

func (m *middleware) NewLoggingMiddleware(c *fiber.Ctx) error {
	start := time.Now()
	requestID := m.GetRequestID(c)

	err := c.Next()

	status := c.Response().StatusCode()
	fields := log.Fields{
		"request_id":    requestID,
		"method":        c.Method(),
		"path":          c.Path(),
		"status":        status,
		"latency_ms":    time.Since(start).Milliseconds(),
		"ip":            c.IP(),
		"user_agent":    c.Get("User-Agent"),
		"response_size": len(c.Response().Body()),
	}

	if body := c.Request().Body(); len(body) > 0 && strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		fields["request_body"] = sanitizeRequestBody(body)
	}

	entry := m.loggingMiddleware.logger.WithFields(fields)
	switch {
	case status >= 500:
		entry.Error("Server error")
	case status >= 400:
		entry.Warn("Client error")
	default:
		entry.Info("Success")
	}

	return err
}

// sanitizeRequestBody masks credential-like fields and truncates free text
// so user utterances do not flood the log.
func sanitizeRequestBody(body []byte) string {
	var jsonBody map[string]interface{}
	if err := jsoniter.Unmarshal(body, &jsonBody); err != nil {
		return "[non-JSON body]"
	}

	for _, field := range sensitiveFields {
		if _, exists := jsonBody[field]; exists {
			jsonBody[field] = "[SECRET]"
		}
	}

	if text, ok := jsonBody["text"].(string); ok && len(text) > maxLoggedBody {
		jsonBody["text"] = text[:maxLoggedBody] + "..."
	}

	sanitized, err := jsoniter.MarshalToString(jsonBody)
	if err != nil {
		return "[sanitization-failed]"
	}

	return sanitized
}
