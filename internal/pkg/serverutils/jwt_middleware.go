package serverutils

import (
	"faq-management-be/internal/repository/memory"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// SessionKey is the Locals key the middleware stores the loaded session under.
const SessionKey = "session"

// SessionMiddleware authenticates the Bearer token and loads the live
// session it points at. A valid token whose session has expired out of the
// store is still a 401: the user has to log in again.
func SessionMiddleware(secret string, sessions *memory.SessionRepository) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return Fail(ctx, fiber.StatusUnauthorized, "Missing token")
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return Fail(ctx, fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return Fail(ctx, fiber.StatusUnauthorized, "Invalid claims")
		}

		sid, _ := claims["sid"].(string)
		session, found := sessions.Get(sid)
		if !found || !session.Authenticated {
			return Fail(ctx, fiber.StatusUnauthorized, "Session expired")
		}

		ctx.Locals(SessionKey, session)
		return ctx.Next()
	}
}
