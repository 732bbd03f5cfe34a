package middleware

import (
	"VoiceBot/internal/entity"
	jwtPkg "VoiceBot/pkg/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"strings"
)

const OperatorKey = "operator"

type tokenMiddleware struct {
	secret string
}

func newTokenMiddleware(secret string) *tokenMiddleware {
	return &tokenMiddleware{secret: secret}
}

func (m *middleware) unauthorized(ctx *fiber.Ctx, reason string) error {
	m.log.WithFields(logrus.Fields{
		"request_id": m.GetRequestID(ctx),
		"path":       ctx.Path(),
		"client_ip":  ctx.IP(),
		"error":      reason,
	}).Warn("Token check failed")

	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized, access token invalid or expired",
		"code":  "UNAUTHORIZED",
	})
}

func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")

	if authHeader == "" {
		return m.unauthorized(ctx, "Authorization header is missing")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return m.unauthorized(ctx, "Authorization header format is invalid")
	}

	operatorToken, err := jwtPkg.VerifyTokenHeader(ctx, m.token.secret)
	if err != nil {
		return m.unauthorized(ctx, err.Error())
	}

	claims, ok := operatorToken.Claims.(jwt.MapClaims)
	if !ok {
		return m.unauthorized(ctx, "Invalid token claims")
	}

	id, _ := claims["id"].(string)
	if id == "" {
		return m.unauthorized(ctx, "Token claims are missing required fields")
	}
	role, _ := claims["role"].(string)

	ctx.Locals(OperatorKey, entity.OperatorLoginData{
		ID:   id,
		Role: role,
	})

	m.log.WithFields(logrus.Fields{
		"request_id":  m.GetRequestID(ctx),
		"operator_id": id,
		"role":        role,
	}).Debug("Authentication successful")

	return ctx.Next()
}

// NewAdminMiddleware must run after NewTokenMiddleware.
func (m *middleware) NewAdminMiddleware(ctx *fiber.Ctx) error {
	operator, err := jwtPkg.GetOperatorLoginData(ctx)
	if err != nil {
		return m.unauthorized(ctx, "Operator not authenticated")
	}

	if operator.Role != entity.RoleAdmin {
		m.log.WithFields(logrus.Fields{
			"request_id":  m.GetRequestID(ctx),
			"operator_id": operator.ID,
			"role":        operator.Role,
		}).Warn("Operator lacks admin role")
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden, admin role required",
			"code":  "FORBIDDEN",
		})
	}

	return ctx.Next()
}
