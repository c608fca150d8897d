package ports

import (
	"context"
	"time"
)

// ExportColumn columna de un listado exportado.
type ExportColumn struct {
	Key   string // nombre estable (atributo/elemento XML)
	Title string // encabezado visible (PDF)
}

// ExportDocument listado de registros ya filtrados, listo para renderizar.
// Cada fila tiene un valor por columna, en el mismo orden que Columns.
type ExportDocument struct {
	Title       string // ej. "Manifiestos"
	Kind        string // manifests, remesas
	GeneratedAt time.Time
	GeneratedBy string
	CostCenter  string
	Filters     map[string]string
	Columns     []ExportColumn
	Rows        [][]string
	Totals      map[string]string // totales opcionales (peso, valor declarado)
}

// PDFExporter puerto de salida para el listado en PDF.
// Cualquier adaptador (Maroto, wkhtmltopdf, mock) debe implementar esta interfaz.
type PDFExporter interface {
	// Generate devuelve los bytes del PDF listo para descargar.
	Generate(ctx context.Context, doc ExportDocument) ([]byte, error)
}

// XMLExporter puerto de salida para el listado en XML canónico.
// Además del documento devuelve su digest (sha256 en hex) para verificar integridad.
type XMLExporter interface {
	Generate(ctx context.Context, doc ExportDocument) (xml []byte, digest string, err error)
}
