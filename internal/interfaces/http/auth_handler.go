package http

import (
	"errors"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/silogtran-api/internal/application/dto"
	"github.com/jhoicas/silogtran-api/internal/application/session"
	"github.com/jhoicas/silogtran-api/internal/domain"
	"github.com/jhoicas/silogtran-api/internal/domain/entity"
)

// AuthHandler maneja el flujo de acceso: login, segundo factor, centro de costos y cierre.
type AuthHandler struct {
	svc *session.Service
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(svc *session.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Valida las credenciales de la consola. Si llega un token válido se reutiliza su sesión y se borra la verificación de segundo factor anterior.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.Login(c.UserContext(), GetSessionID(c), in.Username, in.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.LoginResponse{Token: out.Token, Username: out.Username, Next: out.Next})
}

// VerifyTwoFactor godoc
// @Summary      Verificar código de seguridad
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.TwoFactorRequest  true  "código de 6 dígitos"
// @Success      200   {object}  dto.NextStepResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.SessionStepResponse
// @Router       /api/auth/two-factor [post]
func (h *AuthHandler) VerifyTwoFactor(c *fiber.Ctx) error {
	var in dto.TwoFactorRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	next, err := h.svc.VerifyTwoFactor(c.UserContext(), GetSessionID(c), in.Code)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NextStepResponse{Next: next})
}

// ResendCode godoc
// @Summary      Reenviar código de seguridad
// @Description  Simula el reenvío. Dentro del tiempo de espera responde 429 con retry_after_seconds.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  dto.ResendResponse
// @Failure      409   {object}  dto.SessionStepResponse
// @Failure      429   {object}  dto.ResendResponse
// @Router       /api/auth/two-factor/resend [post]
func (h *AuthHandler) ResendCode(c *fiber.Ctx) error {
	out, err := h.svc.ResendCode(c.UserContext(), GetSessionID(c))
	if err != nil {
		if errors.Is(err, domain.ErrConflict) && out != nil {
			secs := int(math.Ceil(out.RetryAfter.Seconds()))
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(secs))
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ResendResponse{
				Message:           "Espera antes de solicitar un nuevo código",
				RetryAfterSeconds: secs,
			})
		}
		return writeError(c, err)
	}
	return c.JSON(dto.ResendResponse{Message: out.Message, RetryAfterSeconds: int(out.RetryAfter.Seconds())})
}

// ForgotPassword godoc
// @Summary      Recuperar contraseña
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ForgotPasswordRequest  true  "username, email"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.ForgotPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	msg, err := h.svc.ForgotPassword(c.UserContext(), in.Username, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code: "NOT_FOUND", Message: "Usuario o correo electrónico no encontrado en el sistema",
			})
		}
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: msg})
}

// CostCenters godoc
// @Summary      Centros de costos seleccionables
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {array}   dto.CostCenterDTO
// @Failure      409   {object}  dto.SessionStepResponse
// @Router       /api/cost-centers [get]
func (h *AuthHandler) CostCenters(c *fiber.Ctx) error {
	list := h.svc.CostCenters()
	out := make([]dto.CostCenterDTO, len(list))
	for i, cc := range list {
		out[i] = dto.CostCenterDTO{Code: cc.Code, Name: cc.Name}
	}
	return c.JSON(out)
}

// SelectCostCenter godoc
// @Summary      Seleccionar centro de costos
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CostCenterRequest  true  "código o nombre del centro de costos"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.SessionStepResponse
// @Router       /api/auth/cost-center [post]
func (h *AuthHandler) SelectCostCenter(c *fiber.Ctx) error {
	var in dto.CostCenterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	sess, err := h.svc.SelectCostCenter(c.UserContext(), GetSessionID(c), in.CostCenter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toSessionResponse(sess))
}

// Session godoc
// @Summary      Estado de la sesión
// @Description  Paso actual del flujo de acceso y vista a la que dirigir al usuario. Sin token responde logged_out.
// @Tags         auth
// @Produce      json
// @Success      200   {object}  dto.SessionResponse
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	return c.JSON(toSessionResponse(h.svc.Current(c.UserContext(), GetSessionID(c))))
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Borra usuario, segundo factor, centro de costos e historial de la sesión.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  dto.MessageResponse
// @Failure      401   {object}  dto.SessionStepResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.svc.Logout(c.UserContext(), GetSessionID(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Sesión cerrada"})
}

func toSessionResponse(sess *entity.Session) dto.SessionResponse {
	step := sess.Step()
	out := dto.SessionResponse{Step: step.String(), Redirect: step.RedirectView()}
	if sess != nil {
		out.Username = sess.Username
		out.Initial = sess.Initial()
		out.CostCenter = sess.CostCenter
		out.TwoFactorVerified = sess.TwoFactorVerified
	}
	return out
}
