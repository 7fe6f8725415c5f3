package middleware

import (
	"context"
	"strings"

	"tmm-backend/domain"
	"tmm-backend/internal/api/presenters"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	// SessionValidator resolves a raw session token into an admin session.
	SessionValidator interface {
		ValidateSession(ctx context.Context, token string) (domain.Session, error)
	}

	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(sessions SessionValidator) fiber.Handler
	}

	middleware struct {
		allowOrigins string
	}

	sessionKey struct{}
)

func NewMiddleware(allowOrigins string) Middleware {
	if allowOrigins == "" {
		allowOrigins = "*"
	}
	return &middleware{allowOrigins: allowOrigins}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     m.allowOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: m.allowOrigins != "*",
	})
}

// AuthMiddleware admits requests carrying a valid admin session in the
// session cookie or an Authorization bearer header.
func (m *middleware) AuthMiddleware(sessions SessionValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := sessionToken(c)
		if token == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		session, err := sessions.ValidateSession(c.UserContext(), token)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}
		if session.Role != domain.RoleAdmin {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MesaageUserNotAllowed, domain.ErrUserNotAllowed)
		}

		c.Locals("user_id", session.UserID)
		c.Locals("role", session.Role)
		c.SetUserContext(WithSession(c.UserContext(), session))
		return c.Next()
	}
}

func sessionToken(c *fiber.Ctx) string {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return c.Cookies(domain.SessionCookieName)
}

func WithSession(ctx context.Context, session domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFromContext returns the session injected by AuthMiddleware.
func SessionFromContext(ctx context.Context) (domain.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(domain.Session)
	return session, ok
}
