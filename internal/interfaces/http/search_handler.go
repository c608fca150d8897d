package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/silogtran-api/internal/application/dto"
	"github.com/jhoicas/silogtran-api/internal/application/usecase"
)

// SearchHandler búsqueda en el catálogo de páginas, trámites y reportes de cada vista.
type SearchHandler struct {
	uc *usecase.SearchUseCase
}

// NewSearchHandler construye el handler.
func NewSearchHandler(uc *usecase.SearchUseCase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

// Search godoc
// @Summary      Buscar en el catálogo
// @Description  Coincidencia sin distinguir mayúsculas en nombre, módulo o descripción. Con menos de 2 caracteres la búsqueda no está activa.
// @Tags         search
// @Produce      json
// @Security     BearerAuth
// @Param        context  query  string  false  "dashboard (por defecto), manifest o remesa"
// @Param        q        query  string  false  "texto a buscar"
// @Param        filter   query  string  false  "all (por defecto), pages, procedures o reports"
// @Success      200  {object}  dto.SearchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.SessionStepResponse
// @Router       /api/search [get]
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.Search(req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
