package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/silogtran-api/internal/application/dto"
	"github.com/jhoicas/silogtran-api/internal/application/usecase"
	"github.com/jhoicas/silogtran-api/internal/domain"
	"github.com/jhoicas/silogtran-api/pkg/logger"
)

// HistorialHandler actividad reciente de la sesión.
type HistorialHandler struct {
	uc  *usecase.HistorialUseCase
	log *logger.Logger
}

// NewHistorialHandler construye el handler.
func NewHistorialHandler(uc *usecase.HistorialUseCase, log *logger.Logger) *HistorialHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &HistorialHandler{uc: uc, log: log.Component("historial_handler")}
}

// List godoc
// @Summary      Historial reciente
// @Description  Hasta 5 entradas, la más reciente primero.
// @Tags         historial
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.HistorialResponse
// @Failure      409  {object}  dto.SessionStepResponse
// @Router       /api/historial [get]
func (h *HistorialHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.uc.List(c.UserContext(), GetSessionID(c)))
}

// RecordVisit godoc
// @Summary      Registrar visita
// @Description  Por {module, option} o por el id de acción de un resultado de búsqueda. Si el almacenamiento falla se devuelve el historial vigente.
// @Tags         historial
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.RecordVisitRequest  true  "module y option, o action"
// @Success      200  {object}  dto.HistorialResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.SessionStepResponse
// @Router       /api/historial [post]
func (h *HistorialHandler) RecordVisit(c *fiber.Ctx) error {
	var in dto.RecordVisitRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	ns := GetSessionID(c)
	out, err := h.uc.RecordVisit(c.UserContext(), ns, in)
	if err != nil {
		if errors.Is(err, domain.ErrStorage) {
			h.log.Warn().Err(err).Str("namespace", ns).Msg("no se pudo guardar el historial")
			return c.JSON(h.uc.List(c.UserContext(), ns))
		}
		return writeError(c, err)
	}
	return c.JSON(out)
}
