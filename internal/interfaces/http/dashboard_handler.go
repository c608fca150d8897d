package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/silogtran-api/internal/application/usecase"
)

// DashboardHandler maneja la pantalla principal de la consola.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get godoc
// @Summary      Datos del dashboard
// @Description  Bienvenida, centro de costos, historial (sembrado en la primera visita) y notificaciones.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DashboardResponse
// @Failure      409  {object}  dto.SessionStepResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.uc.Get(c.UserContext(), GetSessionID(c), GetSession(c)))
}
