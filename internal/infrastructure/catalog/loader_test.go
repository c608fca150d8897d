package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/silogtran-api/internal/domain/entity"
	"github.com/jhoicas/silogtran-api/internal/infrastructure/catalog"
)

func TestDefault_CargaLasTresVistas(t *testing.T) {
	set, err := catalog.Default()
	require.NoError(t, err)

	assert.Equal(t, []string{"dashboard", "manifest", "remesa"}, set.Views())

	m := set.Catalogs["manifest"]
	assert.Len(t, m.EntriesFor(entity.KindPage), 2)
	assert.Len(t, m.EntriesFor(entity.KindProcedure), 11)
	assert.Len(t, m.EntriesFor(entity.KindReport), 8)

	all := m.EntriesFor(entity.KindAll)
	require.Len(t, all, 21)
	assert.Equal(t, "Buscar", all[0].Name)
	assert.Equal(t, entity.KindPage, all[0].Kind)
	assert.Equal(t, "Informe General Operación", all[20].Name)
	assert.Equal(t, entity.KindReport, all[20].Kind)
}

func TestDefault_MapaDeNavegacion(t *testing.T) {
	set, err := catalog.Default()
	require.NoError(t, err)

	target, ok := set.Navigation.Resolve("dashboard.manifiestos")
	require.True(t, ok)
	assert.Equal(t, entity.NavTarget{Module: "Despacho", Option: "Manifiesto"}, target)

	_, ok = set.Navigation.Resolve("no-existe")
	assert.False(t, ok)
}

func TestDefault_BusquedaSobreMotor(t *testing.T) {
	set, err := catalog.Default()
	require.NoError(t, err)

	res := set.Engines()["manifest"].Search("adición", entity.KindAll)
	require.True(t, res.Active)
	names := make([]string, len(res.Entries))
	for i, e := range res.Entries {
		names[i] = e.Name
	}
	assert.Equal(t, []string{"Adición Equipo", "Adición Remesa"}, names)
}

func TestParse_Errores(t *testing.T) {
	_, err := catalog.Parse([]byte("contexts: {}"))
	assert.Error(t, err, "sin vistas")

	_, err = catalog.Parse([]byte(`
contexts:
  x:
    pages:
      - {name: "", module: M, description: d}
`))
	assert.Error(t, err, "entrada sin nombre")

	_, err = catalog.Parse([]byte(`
contexts:
  x:
    pages:
      - {name: A, module: M, description: d, action: a, target: {module: M, option: A}}
    reports:
      - {name: B, module: M, description: d, action: a, target: {module: M, option: B}}
`))
	assert.Error(t, err, "acción duplicada con destinos distintos")

	_, err = catalog.Parse([]byte("contexts: ["))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
contexts:
  custom:
    procedures:
      - {name: Proceso, module: Mod, description: Desc}
`), 0o600))

	set, err := catalog.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, set.Catalogs["custom"].Len())

	_, err = catalog.LoadFile(filepath.Join(t.TempDir(), "no-existe.yaml"))
	assert.Error(t, err)
}
