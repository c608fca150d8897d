package search_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/silogtran-api/internal/domain/entity"
	"github.com/jhoicas/silogtran-api/internal/domain/search"
)

func testCatalog() *search.Catalog {
	return search.NewCatalog("manifest",
		[]entity.CatalogEntry{
			{Name: "Dashboard", Module: "Principal", Description: "Panel de control"},
			{Name: "Buscar", Module: "Búsqueda", Description: "Búsqueda avanzada de manifiestos y documentos"},
		},
		[]entity.CatalogEntry{
			{Name: "Actualizar Manifiesto", Module: "Manifiesto", Description: "Modificar información de manifiestos existentes"},
			{Name: "Adición Remesa", Module: "Remesa", Description: "Crear nuevas remesas en el sistema"},
		},
		[]entity.CatalogEntry{
			{Name: "Informe DIAN", Module: "DIAN", Description: "Reportes para la DIAN"},
			{Name: "Informe General Control", Module: "Control", Description: "Reporte general de control"},
		},
	)
}

func names(entries []entity.CatalogEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestCatalog_EntriesFor_AllConservaOrden(t *testing.T) {
	all := testCatalog().EntriesFor(entity.KindAll)
	require.Len(t, all, 6)
	assert.Equal(t, entity.KindPage, all[0].Kind)
	assert.Equal(t, entity.KindPage, all[1].Kind)
	assert.Equal(t, entity.KindProcedure, all[2].Kind)
	assert.Equal(t, entity.KindProcedure, all[3].Kind)
	assert.Equal(t, entity.KindReport, all[4].Kind)
	assert.Equal(t, entity.KindReport, all[5].Kind)
}

func TestCatalog_EntriesFor_CopiaNoMutaCatalogo(t *testing.T) {
	c := testCatalog()
	pages := c.EntriesFor(entity.KindPage)
	pages[0].Name = "alterado"
	assert.Equal(t, "Dashboard", c.EntriesFor(entity.KindPage)[0].Name)
	assert.Nil(t, c.EntriesFor(entity.Kind("desconocido")))
}

func TestSearch_ConsultaCortaNoEsBusquedaActiva(t *testing.T) {
	eng := search.NewEngine(testCatalog())
	for _, q := range []string{"", " ", "d", "  a  ", "é"} {
		res := eng.Search(q, entity.KindAll)
		assert.False(t, res.Active, "consulta %q no debe activar la búsqueda", q)
		assert.Empty(t, res.Entries)
	}
}

func TestSearch_CoincidenciaPorNombreModuloODescripcion(t *testing.T) {
	eng := search.NewEngine(testCatalog())

	res := eng.Search("dash", entity.KindAll)
	assert.True(t, res.Active)
	assert.Equal(t, []string{"Dashboard"}, names(res.Entries))

	res = eng.Search("PRINCIPAL", entity.KindAll)
	assert.Equal(t, []string{"Dashboard"}, names(res.Entries))

	res = eng.Search("panel de", entity.KindAll)
	assert.Equal(t, []string{"Dashboard"}, names(res.Entries))

	res = eng.Search("xyz123", entity.KindAll)
	assert.True(t, res.Active, "sin coincidencias sigue siendo una búsqueda activa")
	assert.Empty(t, res.Entries)
}

func TestSearch_OrdenDeCatalogoYFiltroPorCategoria(t *testing.T) {
	eng := search.NewEngine(testCatalog())

	res := eng.Search("manifiesto", entity.KindAll)
	assert.Equal(t, []string{"Buscar", "Actualizar Manifiesto"}, names(res.Entries))

	res = eng.Search("manifiesto", entity.KindProcedure)
	assert.Equal(t, []string{"Actualizar Manifiesto"}, names(res.Entries))

	res = eng.Search("dian", entity.KindReport)
	assert.Equal(t, []string{"Informe DIAN"}, names(res.Entries))
}

func TestSearch_RecortaEspaciosYAcentos(t *testing.T) {
	eng := search.NewEngine(testCatalog())
	res := eng.Search("  ADICIÓN ", entity.KindAll)
	assert.Equal(t, "ADICIÓN", res.Query)
	assert.Equal(t, []string{"Adición Remesa"}, names(res.Entries))

	// "ó" descompuesta (o + acento combinante) también coincide tras normalizar.
	res = eng.Search("adicio\u0301n", entity.KindAll)
	assert.Equal(t, []string{"Adición Remesa"}, names(res.Entries))
}

func TestSearch_DuplicadosSonDeterministas(t *testing.T) {
	dup := entity.CatalogEntry{Name: "Anulación", Module: "General", Description: "Anular documentos"}
	eng := search.NewEngine(search.NewCatalog("x", nil, []entity.CatalogEntry{dup, dup}, nil))
	first := eng.Search("anula", entity.KindAll)
	second := eng.Search("anula", entity.KindAll)
	assert.Len(t, first.Entries, 2)
	assert.Equal(t, first.Entries, second.Entries)
}

func TestHighlight(t *testing.T) {
	assert.Equal(t, "Dashboard", search.Highlight("Dashboard", ""))
	assert.Equal(t, "Dash<mark>board</mark>", search.Highlight("Dashboard", "board"))
	assert.Equal(t, "Dash<mark>Board</mark>", search.Highlight("DashBoard", "BOARD"))
	assert.Equal(t, "<mark>in</mark>forme general de <mark>in</mark>greso", search.Highlight("informe general de ingreso", "in"))
	assert.Equal(t, "Sin cambios", search.Highlight("Sin cambios", "zz"))
}

func TestHighlight_ConsultaConCaracteresEspecialesEsLiteral(t *testing.T) {
	for _, q := range []string{"(", "a(b", "*", "[x", "\\", ".*"} {
		assert.NotPanics(t, func() { search.Highlight("texto a(b) con .* y [x]", q) })
	}
	assert.Equal(t, "texto <mark>a(b</mark>) fin", search.Highlight("texto a(b) fin", "A(B"))
	assert.Equal(t, "abc", search.Highlight("abc", ".*"))
}

func TestSegments_ReconstruyeElTexto(t *testing.T) {
	segs := search.Segments("Informe General Operación", "ge")
	var sb strings.Builder
	matches := 0
	for _, s := range segs {
		sb.WriteString(s.Text)
		if s.Match {
			matches++
		}
	}
	assert.Equal(t, "Informe General Operación", sb.String())
	assert.Equal(t, 1, matches)
}

func TestHighlight_TextoDescompuestoSeConservaFueraDeLaMarca(t *testing.T) {
	text := "Cafe\u0301 Dashboard"
	assert.Equal(t, "Cafe\u0301 Dash<mark>board</mark>", search.Highlight(text, "board"))

	segs := search.Segments(text, "board")
	require.Len(t, segs, 2)
	assert.Equal(t, "Cafe\u0301 Dash", segs[0].Text)
	assert.False(t, segs[0].Match)

	// La consulta compuesta coincide con el texto descompuesto y la marca conserva sus bytes.
	assert.Equal(t, "<mark>Cafe\u0301</mark> Dashboard", search.Highlight(text, "caf\u00e9"))
	assert.Equal(t, "Dash<mark>board</mark> Cafe\u0301", search.Highlight("Dashboard Cafe\u0301", "board"))
}
