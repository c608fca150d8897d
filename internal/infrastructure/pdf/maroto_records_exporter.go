// Package pdf genera el listado de manifiestos o remesas en PDF con Maroto v2.
//
// Layout de la página A4 (horizontal):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + filtros     │  Usuario / Centro / Fecha    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Cliente | Fecha | Origen | Destino | ...    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES (remesas): Peso total / Valor declarado            │
//	│  FOOTER: QR con el resumen del listado                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/silogtran-api/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 30, Green: 41, Blue: 59}
	colorGray    = &props.Color{Red: 100, Green: 116, Blue: 139}
)

// anchos de columna (grilla de 12) según la cantidad de columnas del listado.
var columnWidths = map[int][]int{
	6: {2, 3, 2, 2, 2, 1},
	8: {2, 2, 1, 1, 1, 1, 2, 2},
}

// columnas numéricas alineadas a la derecha.
var numericColumns = map[string]bool{"weight_kg": true, "declared_value": true}

// ── Exporter ──────────────────────────────────────────────────────────────────

// MarotoRecordsExporter implementa ports.PDFExporter usando Maroto v2.
type MarotoRecordsExporter struct{}

var _ ports.PDFExporter = (*MarotoRecordsExporter)(nil)

// NewMarotoRecordsExporter construye el generador.
func NewMarotoRecordsExporter() *MarotoRecordsExporter { return &MarotoRecordsExporter{} }

// Generate genera el PDF y devuelve sus bytes.
func (g *MarotoRecordsExporter) Generate(ctx context.Context, doc ports.ExportDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(doc.Columns) == 0 {
		return nil, fmt.Errorf("pdf: documento sin columnas")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title, true).
		WithAuthor(nonEmpty(doc.GeneratedBy, "silogtran"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	widths := widthsFor(len(doc.Columns))
	m.AddRows(tableHeaderRow(doc.Columns, widths))
	m.AddRows(tableRows(doc, widths)...)

	if len(doc.Totals) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(totalsRow(doc))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + filtros (izq) y usuario, centro de costos y fecha (der).
func headerRow(doc ports.ExportDocument) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(doc.Title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(filtersLine(doc.Filters), props.Text{
				Size: 8, Top: 10, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Usuario: "+nonEmpty(doc.GeneratedBy, "-"), props.Text{
				Size: 8, Align: align.Right, Top: 1,
			}),
			text.New("Centro de costos: "+nonEmpty(doc.CostCenter, "-"), props.Text{
				Size: 8, Align: align.Right, Top: 6, Color: colorGray,
			}),
			text.New("Generado: "+doc.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla.
func tableHeaderRow(cols []ports.ExportColumn, widths []int) core.Row {
	r := row.New(8)
	for i, c := range cols {
		r.Add(col.New(widths[i]).Add(text.New(c.Title, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: alignFor(c.Key),
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return r
}

// tableRows: una fila por registro; sin registros, una fila con el aviso.
func tableRows(doc ports.ExportDocument, widths []int) []core.Row {
	if len(doc.Rows) == 0 {
		return []core.Row{row.New(10).Add(col.New(12).Add(
			text.New("No se encontraron registros con los filtros aplicados", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		))}
	}
	result := make([]core.Row, 0, len(doc.Rows))
	for _, values := range doc.Rows {
		r := row.New(7)
		for i, c := range doc.Columns {
			v := ""
			if i < len(values) {
				v = values[i]
			}
			if c.Key == "declared_value" {
				v = "$" + formatMoney(v)
			}
			r.Add(col.New(widths[i]).Add(text.New(v, props.Text{
				Size: 8, Align: alignFor(c.Key), Top: 1, Left: 1, Right: 1,
			})))
		}
		result = append(result, r)
	}
	return result
}

// totalsRow: peso total y valor declarado total (remesas).
func totalsRow(doc ports.ExportDocument) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Right: 1})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(
			label("Peso total (kg):"),
			text.New("Valor declarado total:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 6}),
		),
		col.New(3).Add(
			value(doc.Totals["weight_kg"]),
			text.New("$"+formatMoney(doc.Totals["declared_value"]), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Right: 1, Top: 6,
			}),
		),
	)
}

// footerRow: QR con el resumen del listado + conteo.
func footerRow(doc ports.ExportDocument) core.Row {
	summary := fmt.Sprintf("%s|%d|%s|%s", doc.Kind, len(doc.Rows), doc.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"), doc.GeneratedBy)
	return row.New(30).Add(
		col.New(2).Add(code.NewQr(summary, props.Rect{Percent: 90, Center: true})),
		col.New(10).Add(
			text.New(fmt.Sprintf("Total de registros: %d", len(doc.Rows)), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 4, Left: 3,
			}),
			text.New("Listado generado desde la consola Silogtran.", props.Text{
				Size: 7, Top: 12, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func widthsFor(n int) []int {
	if w, ok := columnWidths[n]; ok {
		return w
	}
	out := make([]int, n)
	for i := range out {
		out[i] = max(1, 12/n)
	}
	return out
}

func alignFor(key string) align.Type {
	if numericColumns[key] {
		return align.Right
	}
	return align.Left
}

func filtersLine(filters map[string]string) string {
	if len(filters) == 0 {
		return "Sin filtros"
	}
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + filters[k]
	}
	return "Filtros: " + strings.Join(parts, "   |   ")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en la parte entera de un número; los decimales
// se separan con coma. Ej: "2500000.00" → "2.500.000,00".
func formatMoney(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3+len(frac)+1)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if hasFrac {
		buf = append(buf, ',')
		buf = append(buf, frac...)
	}
	return string(buf)
}
