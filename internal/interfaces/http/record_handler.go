package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/silogtran-api/internal/application/dto"
	"github.com/jhoicas/silogtran-api/internal/application/usecase"
	"github.com/jhoicas/silogtran-api/internal/domain"
	"github.com/jhoicas/silogtran-api/internal/domain/records"
)

// HeaderContentSHA256 digest sha256 (hex) del XML canónico exportado.
const HeaderContentSHA256 = "X-Content-SHA256"

// RecordHandler listado, resumen, exportación, consulta y borrado de manifiestos o remesas.
// Las mismas rutas se montan para cada tipo de registro.
type RecordHandler[T records.Record] struct {
	uc *usecase.RecordUseCase[T]
}

// NewRecordHandler construye el handler para un tipo de registro.
func NewRecordHandler[T records.Record](uc *usecase.RecordUseCase[T]) *RecordHandler[T] {
	return &RecordHandler[T]{uc: uc}
}

// Register monta las rutas en r. Las rutas fijas van antes de /:code.
func (h *RecordHandler[T]) Register(r fiber.Router) {
	r.Get("/", h.List)
	r.Get("/summary", h.Summary)
	r.Get("/export.pdf", h.ExportPDF)
	r.Get("/export.xml", h.ExportXML)
	r.Get("/:code", h.Get)
	r.Delete("/:code", h.Delete)
}

// List godoc
// @Summary      Listar registros
// @Description  Filtra por texto (código o cliente), estado y rango de fechas y pagina. Una página posterior a la última devuelve items vacíos.
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        search     query  string  false  "texto en código o cliente"
// @Param        status     query  string  false  "pending, in_progress, completed, cancelled o all"
// @Param        date_from  query  string  false  "YYYY-MM-DD"
// @Param        date_to    query  string  false  "YYYY-MM-DD"
// @Param        page       query  int     false  "página (desde 1)"
// @Param        page_size  query  int     false  "tamaño de página (10 por defecto)"
// @Success      200  {object}  dto.RecordListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.SessionStepResponse
// @Router       /api/manifests [get]
// @Router       /api/remesas [get]
func (h *RecordHandler[T]) List(c *fiber.Ctx) error {
	req, err := parseRecordFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de registros
// @Description  Total y conteo por estado con los mismos filtros del listado. En remesas incluye peso y valor declarado.
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        search     query  string  false  "texto en código o cliente"
// @Param        status     query  string  false  "estado"
// @Param        date_from  query  string  false  "YYYY-MM-DD"
// @Param        date_to    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.SummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/manifests/summary [get]
// @Router       /api/remesas/summary [get]
func (h *RecordHandler[T]) Summary(c *fiber.Ctx) error {
	req, err := parseRecordFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Summary(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExportPDF godoc
// @Summary      Exportar listado en PDF
// @Tags         records
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        search     query  string  false  "texto en código o cliente"
// @Param        status     query  string  false  "estado"
// @Param        date_from  query  string  false  "YYYY-MM-DD"
// @Param        date_to    query  string  false  "YYYY-MM-DD"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/manifests/export.pdf [get]
// @Router       /api/remesas/export.pdf [get]
func (h *RecordHandler[T]) ExportPDF(c *fiber.Ctx) error {
	req, err := parseRecordFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	b, filename, err := h.uc.ExportPDF(c.UserContext(), req, exportMeta(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(b)
}

// ExportXML godoc
// @Summary      Exportar listado en XML canónico
// @Description  El header X-Content-SHA256 lleva el digest del documento.
// @Tags         records
// @Produce      application/xml
// @Security     BearerAuth
// @Param        search     query  string  false  "texto en código o cliente"
// @Param        status     query  string  false  "estado"
// @Param        date_from  query  string  false  "YYYY-MM-DD"
// @Param        date_to    query  string  false  "YYYY-MM-DD"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/manifests/export.xml [get]
// @Router       /api/remesas/export.xml [get]
func (h *RecordHandler[T]) ExportXML(c *fiber.Ctx) error {
	req, err := parseRecordFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	b, digest, filename, err := h.uc.ExportXML(c.UserContext(), req, exportMeta(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Set(HeaderContentSHA256, digest)
	return c.Send(b)
}

// Get godoc
// @Summary      Obtener registro por código
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        code  path  string  true  "código (ej. MF-001234)"
// @Success      200  {object}  dto.RecordDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manifests/{code} [get]
// @Router       /api/remesas/{code} [get]
func (h *RecordHandler[T]) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar registro por código
// @Tags         records
// @Security     BearerAuth
// @Param        code  path  string  true  "código"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manifests/{code} [delete]
// @Router       /api/remesas/{code} [delete]
func (h *RecordHandler[T]) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("code")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseRecordFilter lee filtros y paginación. page y page_size ausentes toman el valor por
// defecto; presentes deben ser enteros positivos.
func parseRecordFilter(c *fiber.Ctx) (dto.RecordFilterRequest, error) {
	var req dto.RecordFilterRequest
	if err := c.QueryParser(&req); err != nil {
		return req, domain.NewValidationError("parámetros de consulta inválidos")
	}
	var err error
	if req.Page, err = positiveQueryInt(c, "page"); err != nil {
		return req, err
	}
	if req.PageSize, err = positiveQueryInt(c, "page_size"); err != nil {
		return req, err
	}
	return req, nil
}

// positiveQueryInt devuelve 0 si el parámetro no viene.
func positiveQueryInt(c *fiber.Ctx, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, domain.NewValidationError(key + " debe ser un entero mayor que cero")
	}
	return n, nil
}

func exportMeta(c *fiber.Ctx) usecase.ExportMeta {
	meta := usecase.ExportMeta{Username: GetUsername(c)}
	if sess := GetSession(c); sess != nil {
		meta.Username = sess.Username
		meta.CostCenter = sess.CostCenter
	}
	return meta
}
