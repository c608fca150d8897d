// Package xmlexport genera el listado de manifiestos o remesas como XML canónico (C14N)
// y calcula su digest SHA-256, de modo que el receptor pueda verificar que no fue alterado.
package xmlexport

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/silogtran-api/internal/application/ports"
)

// Namespace espacio de nombres del documento de exportación.
const Namespace = "urn:silogtran:console:export:1"

// Exporter implementa ports.XMLExporter con etree + c14n.
type Exporter struct{}

var _ ports.XMLExporter = (*Exporter)(nil)

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// Generate construye el documento, lo canonicaliza y devuelve bytes canónicos + digest hex.
func (e *Exporter) Generate(ctx context.Context, doc ports.ExportDocument) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	raw, err := Build(doc).WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("xmlexport: serializar: %w", err)
	}
	canonical, err := Canonicalize(raw)
	if err != nil {
		return nil, "", err
	}
	return canonical, Digest(canonical), nil
}

// Build arma el árbol XML:
//
//	<export xmlns="..." kind="remesas" title="Remesas" generated_at="..." count="5">
//	  <meta><user/><cost_center/><filter name="status">pending</filter></meta>
//	  <records><record code="..."><client>..</client>...</record></records>
//	  <totals><weight_kg>..</weight_kg></totals>
//	</export>
func Build(doc ports.ExportDocument) *etree.Document {
	d := etree.NewDocument()
	root := d.CreateElement("export")
	root.CreateAttr("xmlns", Namespace)
	root.CreateAttr("kind", doc.Kind)
	root.CreateAttr("title", doc.Title)
	root.CreateAttr("generated_at", doc.GeneratedAt.UTC().Format(time.RFC3339))
	root.CreateAttr("count", strconv.Itoa(len(doc.Rows)))

	meta := root.CreateElement("meta")
	meta.CreateElement("user").SetText(doc.GeneratedBy)
	meta.CreateElement("cost_center").SetText(doc.CostCenter)
	for _, k := range sortedKeys(doc.Filters) {
		f := meta.CreateElement("filter")
		f.CreateAttr("name", k)
		f.SetText(doc.Filters[k])
	}

	recs := root.CreateElement("records")
	for _, values := range doc.Rows {
		rec := recs.CreateElement("record")
		for i, c := range doc.Columns {
			v := ""
			if i < len(values) {
				v = values[i]
			}
			if c.Key == "code" {
				rec.CreateAttr("code", v)
				continue
			}
			rec.CreateElement(c.Key).SetText(v)
		}
	}

	if len(doc.Totals) > 0 {
		totals := root.CreateElement("totals")
		for _, k := range sortedKeys(doc.Totals) {
			totals.CreateElement(k).SetText(doc.Totals[k])
		}
	}
	return d
}

// Canonicalize aplica Canonical XML 1.0 (sin comentarios).
func Canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	out, err := c14n.Canonicalize(dec)
	if err != nil {
		return nil, fmt.Errorf("xmlexport: canonicalizar: %w", err)
	}
	return out, nil
}

// Digest SHA-256 en hexadecimal.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
