package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/silogtran-api/internal/application/dto"
	"github.com/jhoicas/silogtran-api/internal/application/session"
	"github.com/jhoicas/silogtran-api/internal/domain/entity"
	"github.com/jhoicas/silogtran-api/pkg/jwt"
)

// Locals keys de la sesión de consola en Fiber.
const (
	LocalSessionID = "session_id"
	LocalUsername  = "username"
	LocalSession   = "session"
)

// SessionMiddleware valida el Bearer Token JWT y carga el id de sesión (namespace de
// almacenamiento) y el usuario en c.Locals. Sin token válido responde 401 con redirect a login.
func SessionMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthenticated(c, "MISSING_TOKEN", "Authorization header requerido")
		}
		tokenString, ok := bearerToken(authHeader)
		if !ok {
			return unauthenticated(c, "INVALID_TOKEN", "formato: Bearer <token>")
		}
		if tokenString == "" {
			return unauthenticated(c, "MISSING_TOKEN", "token vacío")
		}
		sessionID, username, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return unauthenticated(c, "INVALID_TOKEN", "token inválido o expirado")
		}
		c.Locals(LocalSessionID, sessionID)
		c.Locals(LocalUsername, username)
		return c.Next()
	}
}

// OptionalSession carga la sesión si viene un token válido y sigue sin ella en otro caso.
// Lo usan login (para reutilizar el namespace) y la consulta de sesión.
func OptionalSession(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenString, ok := bearerToken(c.Get("Authorization")); ok && tokenString != "" {
			if sessionID, username, err := jwt.Parse(jwtSecret, tokenString); err == nil {
				c.Locals(LocalSessionID, sessionID)
				c.Locals(LocalUsername, username)
			}
		}
		return c.Next()
	}
}

// RequireStep exige que la sesión persistida haya alcanzado required. Si falta un paso previo
// responde 409 SESSION_STEP con la vista a la que volver. Debe ir después de SessionMiddleware.
func RequireStep(svc *session.Service, required entity.Step) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := svc.Gate(c.UserContext(), GetSessionID(c), required)
		if err != nil {
			return writeError(c, err)
		}
		c.Locals(LocalSession, sess)
		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func unauthenticated(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.SessionStepResponse{
		Code:     code,
		Message:  msg,
		Redirect: entity.StepLoggedOut.RedirectView(),
	})
}

// GetSessionID devuelve el id de sesión del contexto (después del middleware de sesión).
func GetSessionID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSessionID).(string)
	return s
}

// GetUsername devuelve el usuario del token.
func GetUsername(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUsername).(string)
	return s
}

// GetSession devuelve la sesión cargada por RequireStep, o nil.
func GetSession(c *fiber.Ctx) *entity.Session {
	s, _ := c.Locals(LocalSession).(*entity.Session)
	return s
}
