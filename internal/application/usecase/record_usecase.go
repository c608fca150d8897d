package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/silogtran-api/internal/application/dto"
	"github.com/jhoicas/silogtran-api/internal/application/ports"
	"github.com/jhoicas/silogtran-api/internal/domain"
	"github.com/jhoicas/silogtran-api/internal/domain/entity"
	"github.com/jhoicas/silogtran-api/internal/domain/records"
	"github.com/jhoicas/silogtran-api/internal/domain/repository"
	"github.com/jhoicas/silogtran-api/pkg/logger"
)

// ExportMeta datos de quien solicita una exportación.
type ExportMeta struct {
	Username   string
	CostCenter string
}

// RecordUseCase listado, resumen, consulta, borrado y exportación de un tipo de registro
// (manifiestos o remesas). Filtrado y paginación se resuelven con el paquete records.
type RecordUseCase[T records.Record] struct {
	kind     string // manifests, remesas
	title    string // Manifiestos, Remesas
	repo     repository.RecordRepository[T]
	pdf      ports.PDFExporter
	xml      ports.XMLExporter
	log      *logger.Logger
	measured bool
	now      func() time.Time
}

// NewRecordUseCase construye el caso de uso para un tipo de registro.
func NewRecordUseCase[T records.Record](kind, title string, repo repository.RecordRepository[T], pdf ports.PDFExporter, xml ports.XMLExporter, log *logger.Logger) *RecordUseCase[T] {
	if log == nil {
		log = logger.Nop()
	}
	var zero T
	_, measured := any(zero).(records.Measured)
	return &RecordUseCase[T]{
		kind: kind, title: title, repo: repo, pdf: pdf, xml: xml,
		log: log.Component(kind), measured: measured, now: time.Now,
	}
}

// NewManifestUseCase caso de uso de manifiestos.
func NewManifestUseCase(repo repository.ManifestRepository, pdf ports.PDFExporter, xml ports.XMLExporter, log *logger.Logger) *RecordUseCase[*entity.Manifest] {
	return NewRecordUseCase[*entity.Manifest]("manifests", "Manifiestos", repo, pdf, xml, log)
}

// NewRemesaUseCase caso de uso de remesas.
func NewRemesaUseCase(repo repository.RemesaRepository, pdf ports.PDFExporter, xml ports.XMLExporter, log *logger.Logger) *RecordUseCase[*entity.Remesa] {
	return NewRecordUseCase[*entity.Remesa]("remesas", "Remesas", repo, pdf, xml, log)
}

// Kind nombre del recurso (manifests, remesas).
func (uc *RecordUseCase[T]) Kind() string { return uc.kind }

// List filtra y pagina. Página o tamaño no positivos devuelven error de validación;
// una página posterior a la última devuelve items vacíos.
func (uc *RecordUseCase[T]) List(ctx context.Context, req dto.RecordFilterRequest) (*dto.RecordListResponse, error) {
	filtered, err := uc.filtered(ctx, req)
	if err != nil {
		return nil, err
	}
	req.DefaultPage()
	page, err := records.Paginate(filtered, req.Page, req.PageSize)
	if err != nil {
		return nil, domain.NewValidationError("page y page_size deben ser mayores que cero")
	}
	from, to := page.Range()
	out := &dto.RecordListResponse{
		Items: make([]dto.RecordDTO, len(page.Items)),
		Page: dto.PageResponse{
			Page:       page.Page,
			PageSize:   page.PageSize,
			TotalItems: page.TotalItems,
			TotalPages: page.TotalPages,
			From:       from,
			To:         to,
		},
	}
	for i, r := range page.Items {
		out.Items[i] = toRecordDTO(r)
	}
	return out, nil
}

// Summary total y conteo por estado de los registros que cumplen los filtros
// (sin filtros, de toda la colección). En remesas suma además peso y valor declarado.
func (uc *RecordUseCase[T]) Summary(ctx context.Context, req dto.RecordFilterRequest) (*dto.SummaryResponse, error) {
	filtered, err := uc.filtered(ctx, req)
	if err != nil {
		return nil, err
	}
	s := records.Summarize(filtered)
	out := &dto.SummaryResponse{Total: s.Total, ByStatus: make([]dto.StatusCountDTO, 0, len(entity.Statuses))}
	for _, st := range entity.Statuses {
		out.ByStatus = append(out.ByStatus, dto.StatusCountDTO{
			Status: string(st), Label: st.Label(), Color: st.Color(), Count: s.CountByStatus[st],
		})
	}
	if uc.measured {
		w, v, _ := records.Totals(filtered)
		out.TotalWeightKg, out.TotalDeclaredValue = &w, &v
	}
	return out, nil
}

// Get registro por código. domain.ErrNotFound si no existe.
func (uc *RecordUseCase[T]) Get(ctx context.Context, code string) (*dto.RecordDTO, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.NewValidationError("código requerido")
	}
	r, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%s: obtener %s: %w", uc.kind, code, err)
	}
	d := toRecordDTO(r)
	return &d, nil
}

// Delete elimina el registro por código. domain.ErrNotFound si no existe.
func (uc *RecordUseCase[T]) Delete(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.NewValidationError("código requerido")
	}
	if err := uc.repo.Delete(ctx, code); err != nil {
		return fmt.Errorf("%s: eliminar %s: %w", uc.kind, code, err)
	}
	uc.log.Info().Str("code", code).Msg("registro eliminado")
	return nil
}

// ExportPDF listado filtrado en PDF. Devuelve bytes y nombre de archivo sugerido.
func (uc *RecordUseCase[T]) ExportPDF(ctx context.Context, req dto.RecordFilterRequest, meta ExportMeta) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("%s: exportación PDF no configurada", uc.kind)
	}
	doc, err := uc.exportDocument(ctx, req, meta)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.Generate(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("%s: generar pdf: %w", uc.kind, err)
	}
	return b, uc.filename(doc.GeneratedAt, "pdf"), nil
}

// ExportXML listado filtrado en XML canónico con su digest sha256.
func (uc *RecordUseCase[T]) ExportXML(ctx context.Context, req dto.RecordFilterRequest, meta ExportMeta) (xml []byte, digest, filename string, err error) {
	if uc.xml == nil {
		return nil, "", "", fmt.Errorf("%s: exportación XML no configurada", uc.kind)
	}
	doc, err := uc.exportDocument(ctx, req, meta)
	if err != nil {
		return nil, "", "", err
	}
	xml, digest, err = uc.xml.Generate(ctx, doc)
	if err != nil {
		return nil, "", "", fmt.Errorf("%s: generar xml: %w", uc.kind, err)
	}
	return xml, digest, uc.filename(doc.GeneratedAt, "xml"), nil
}

func (uc *RecordUseCase[T]) filename(at time.Time, ext string) string {
	return fmt.Sprintf("%s_%s.%s", uc.kind, at.Format("20060102_150405"), ext)
}

func (uc *RecordUseCase[T]) exportDocument(ctx context.Context, req dto.RecordFilterRequest, meta ExportMeta) (ports.ExportDocument, error) {
	filtered, err := uc.filtered(ctx, req)
	if err != nil {
		return ports.ExportDocument{}, err
	}
	doc := ports.ExportDocument{
		Title:       uc.title,
		Kind:        uc.kind,
		GeneratedAt: uc.now().UTC(),
		GeneratedBy: meta.Username,
		CostCenter:  meta.CostCenter,
		Filters:     map[string]string{},
		Columns: []ports.ExportColumn{
			{Key: "code", Title: "Código"},
			{Key: "client", Title: "Cliente"},
			{Key: "date", Title: "Fecha"},
			{Key: "origin", Title: "Origen"},
			{Key: "destination", Title: "Destino"},
			{Key: "status", Title: "Estado"},
		},
		Rows: make([][]string, 0, len(filtered)),
	}
	for k, v := range map[string]string{"search": req.Search, "status": req.Status, "date_from": req.DateFrom, "date_to": req.DateTo} {
		if v = strings.TrimSpace(v); v != "" {
			doc.Filters[k] = v
		}
	}
	if uc.measured {
		doc.Columns = append(doc.Columns,
			ports.ExportColumn{Key: "weight_kg", Title: "Peso (kg)"},
			ports.ExportColumn{Key: "declared_value", Title: "Valor declarado"},
		)
	}
	for _, r := range filtered {
		d := toRecordDTO(r)
		row := []string{d.Code, d.Client, d.Date, d.Origin, d.Destination, d.StatusLabel}
		if uc.measured {
			row = append(row, d.WeightKg.StringFixed(2), d.DeclaredValue.StringFixed(2))
		}
		doc.Rows = append(doc.Rows, row)
	}
	if uc.measured {
		w, v, _ := records.Totals(filtered)
		doc.Totals = map[string]string{"weight_kg": w.StringFixed(2), "declared_value": v.StringFixed(2)}
	}
	return doc, nil
}

// filtered carga todos los registros y aplica los criterios de la petición.
func (uc *RecordUseCase[T]) filtered(ctx context.Context, req dto.RecordFilterRequest) ([]T, error) {
	criteria, err := parseCriteria(req)
	if err != nil {
		return nil, err
	}
	all, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: listar: %w", uc.kind, err)
	}
	f := records.NewFilter[T]()
	f.Configure(criteria)
	return f.Apply(all), nil
}

func parseCriteria(req dto.RecordFilterRequest) (records.Criteria, error) {
	c := records.Criteria{Search: req.Search}
	if s := strings.TrimSpace(req.Status); s != "" && s != "all" {
		st, ok := entity.ParseStatus(s)
		if !ok {
			return c, domain.NewValidationError("estado inválido: use pending, in_progress, completed o cancelled")
		}
		c.Status = st
	}
	var err error
	if c.DateFrom, err = records.ParseDate(req.DateFrom); err != nil {
		return c, domain.NewValidationError("date_from inválida, use el formato YYYY-MM-DD")
	}
	if c.DateTo, err = records.ParseDate(req.DateTo); err != nil {
		return c, domain.NewValidationError("date_to inválida, use el formato YYYY-MM-DD")
	}
	return c, nil
}

func toRecordDTO[T records.Record](r T) dto.RecordDTO {
	st := r.RecordStatus()
	d := dto.RecordDTO{
		ID:          r.RecordID(),
		Code:        r.RecordCode(),
		Client:      r.RecordClient(),
		Date:        r.RecordDate().Format(records.DateLayout),
		Origin:      r.RecordOrigin(),
		Destination: r.RecordDestination(),
		Status:      string(st),
		StatusLabel: st.Label(),
		StatusColor: st.Color(),
	}
	if m, ok := any(r).(records.Measured); ok {
		w, v := m.RecordWeight(), m.RecordValue()
		d.WeightKg, d.DeclaredValue = &w, &v
	}
	return d
}
