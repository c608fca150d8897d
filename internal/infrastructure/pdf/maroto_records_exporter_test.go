package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/silogtran-api/internal/application/ports"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "25.000", formatMoney("25000"))
	assert.Equal(t, "1.000.000", formatMoney("1000000"))
	assert.Equal(t, "2.500.000,00", formatMoney("2500000.00"))
	assert.Equal(t, "900", formatMoney("900"))
}

func TestFiltersLine(t *testing.T) {
	assert.Equal(t, "Sin filtros", filtersLine(nil))
	assert.Equal(t, "Filtros: search: abc   |   status: pending",
		filtersLine(map[string]string{"status": "pending", "search": "abc"}))
}

func TestWidthsFor_SumaDoce(t *testing.T) {
	for _, n := range []int{6, 8} {
		sum := 0
		for _, w := range widthsFor(n) {
			sum += w
		}
		assert.Equal(t, 12, sum, "columnas=%d", n)
	}
	assert.Len(t, widthsFor(4), 4)
}

func TestGenerate_ProducePDF(t *testing.T) {
	doc := ports.ExportDocument{
		Title:       "Remesas",
		Kind:        "remesas",
		GeneratedAt: time.Date(2024, 1, 20, 9, 30, 0, 0, time.UTC),
		GeneratedBy: "admin",
		CostCenter:  "Centro Principal - Bogotá",
		Columns: []ports.ExportColumn{
			{Key: "code", Title: "Código"}, {Key: "client", Title: "Cliente"}, {Key: "date", Title: "Fecha"},
			{Key: "origin", Title: "Origen"}, {Key: "destination", Title: "Destino"}, {Key: "status", Title: "Estado"},
			{Key: "weight_kg", Title: "Peso (kg)"}, {Key: "declared_value", Title: "Valor declarado"},
		},
		Rows: [][]string{
			{"RM-001234", "Empresa ABC S.A.S", "2024-01-15", "Bogotá", "Medellín", "Pendiente", "1500.00", "2500000.00"},
		},
		Totals: map[string]string{"weight_kg": "1500.00", "declared_value": "2500000.00"},
	}
	out, err := NewMarotoRecordsExporter().Generate(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerate_SinColumnas(t *testing.T) {
	_, err := NewMarotoRecordsExporter().Generate(context.Background(), ports.ExportDocument{})
	assert.Error(t, err)
}
