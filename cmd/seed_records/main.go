// seed_records genera el script SQL para poblar manifests y remesas a partir de la exportación
// CSV del sistema anterior (separada por ';' y codificada en ISO-8859-1).
//
// Uso: go run ./cmd/seed_records [ruta/registros.csv]
// Por defecto busca registros.csv en el directorio actual.
// Escribe: migrations/002_seed_records.sql
//
// Columnas: tipo;codigo;cliente;fecha;origen;destino;estado;peso_kg;valor_declarado
// tipo es MANIFIESTO o REMESA; fecha admite DD/MM/AAAA o AAAA-MM-DD.
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/silogtran-api/internal/domain/entity"
)

type row struct {
	kind        string // manifests | remesas
	code        string
	client      string
	date        time.Time
	origin      string
	destination string
	status      entity.Status
	weight      decimal.Decimal
	value       decimal.Decimal
}

func main() {
	csvPath := "registros.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, skipped, err := readRows(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "migrations", "002_seed_records.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d registros (%d filas omitidas)\n", outPath, len(rows), skipped)
}

// readRows interpreta el CSV ya decodificado a UTF-8. La primera fila es el encabezado.
// Las filas incompletas se omiten; un valor mal formado es un error.
func readRows(r io.Reader) ([]row, int, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []row
	skipped := 0
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		line++
		if line == 1 {
			continue
		}
		if len(rec) < 7 || strings.TrimSpace(rec[1]) == "" {
			skipped++
			continue
		}
		rw, err := parseRow(rec)
		if err != nil {
			return nil, 0, fmt.Errorf("línea %d: %w", line, err)
		}
		rows = append(rows, rw)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].kind != rows[j].kind {
			return rows[i].kind < rows[j].kind
		}
		return rows[i].code < rows[j].code
	})
	return rows, skipped, nil
}

func parseRow(rec []string) (row, error) {
	field := func(i int) string {
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}
	var rw row
	switch strings.ToUpper(field(0)) {
	case "MANIFIESTO":
		rw.kind = "manifests"
	case "REMESA":
		rw.kind = "remesas"
	default:
		return rw, fmt.Errorf("tipo %q desconocido", field(0))
	}
	rw.code, rw.client, rw.origin, rw.destination = field(1), field(2), field(4), field(5)

	date, err := parseDate(field(3))
	if err != nil {
		return rw, err
	}
	rw.date = date

	st, ok := entity.ParseStatus(field(6))
	if !ok {
		return rw, fmt.Errorf("estado %q desconocido", field(6))
	}
	rw.status = st

	if rw.kind == "remesas" {
		if rw.weight, err = parseAmount(field(7)); err != nil {
			return rw, fmt.Errorf("peso: %w", err)
		}
		if rw.value, err = parseAmount(field(8)); err != nil {
			return rw, fmt.Errorf("valor: %w", err)
		}
	}
	return rw, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha %q inválida", s)
}

// parseAmount acepta "2500000", "1500.5" y el formato local "2.500.000,00". Vacío es cero.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}

// recordID uuid estable por código: regenerar el script no cambia los ids.
func recordID(kind, code string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("silogtran:"+kind+":"+code)).String()
}

func writeSQL(w io.Writer, rows []row) error {
	var b strings.Builder
	b.WriteString("-- Manifiestos y remesas importados del sistema anterior\n")
	b.WriteString("-- Generado por cmd/seed_records\n\n")
	for _, r := range rows {
		date := r.date.Format("2006-01-02")
		switch r.kind {
		case "manifests":
			fmt.Fprintf(&b, "INSERT INTO manifests (id, code, client, date, origin, destination, status)\n")
			fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', '%s', '%s', '%s')\n",
				recordID(r.kind, r.code), escapeSQL(r.code), escapeSQL(r.client), date,
				escapeSQL(r.origin), escapeSQL(r.destination), r.status)
		case "remesas":
			fmt.Fprintf(&b, "INSERT INTO remesas (id, code, client, date, origin, destination, status, weight_kg, declared_value)\n")
			fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', '%s', '%s', '%s', %s, %s)\n",
				recordID(r.kind, r.code), escapeSQL(r.code), escapeSQL(r.client), date,
				escapeSQL(r.origin), escapeSQL(r.destination), r.status,
				r.weight.StringFixed(2), r.value.StringFixed(2))
		}
		b.WriteString("ON CONFLICT (code) DO NOTHING;\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
