// Package memory implementa los repositorios de manifiestos y remesas en memoria,
// sembrados con los datos de ejemplo embebidos.
package memory

import (
	"context"
	_ "embed"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/silogtran-api/internal/domain"
	"github.com/jhoicas/silogtran-api/internal/domain/entity"
	"github.com/jhoicas/silogtran-api/internal/domain/records"
	"github.com/jhoicas/silogtran-api/internal/domain/repository"
)

//go:embed records.yaml
var sampleData []byte

var (
	_ repository.ManifestRepository = (*RecordRepo[*entity.Manifest])(nil)
	_ repository.RemesaRepository   = (*RecordRepo[*entity.Remesa])(nil)
)

// RecordRepo repositorio en memoria seguro para uso concurrente. Conserva el orden de inserción.
type RecordRepo[T records.Record] struct {
	mu    sync.RWMutex
	items []T
}

// NewRecordRepo construye el repositorio con una copia de items.
func NewRecordRepo[T records.Record](items []T) *RecordRepo[T] {
	cp := make([]T, len(items))
	copy(cp, items)
	return &RecordRepo[T]{items: cp}
}

func (r *RecordRepo[T]) List(_ context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *RecordRepo[T]) GetByCode(_ context.Context, code string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, it := range r.items {
		if it.RecordCode() == code {
			return it, nil
		}
	}
	var zero T
	return zero, domain.ErrNotFound
}

func (r *RecordRepo[T]) Delete(_ context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, it := range r.items {
		if it.RecordCode() == code {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type sampleRecord struct {
	ID            string `yaml:"id"`
	Code          string `yaml:"code"`
	Client        string `yaml:"client"`
	Date          string `yaml:"date"`
	Origin        string `yaml:"origin"`
	Destination   string `yaml:"destination"`
	Status        string `yaml:"status"`
	WeightKg      string `yaml:"weight_kg"`
	DeclaredValue string `yaml:"declared_value"`
}

type sampleDoc struct {
	Manifests []sampleRecord `yaml:"manifests"`
	Remesas   []sampleRecord `yaml:"remesas"`
}

// SampleData manifiestos y remesas de ejemplo.
func SampleData() ([]*entity.Manifest, []*entity.Remesa, error) {
	var doc sampleDoc
	if err := yaml.Unmarshal(sampleData, &doc); err != nil {
		return nil, nil, fmt.Errorf("memory: datos de ejemplo: %w", err)
	}
	manifests := make([]*entity.Manifest, 0, len(doc.Manifests))
	for _, s := range doc.Manifests {
		date, st, err := s.parse()
		if err != nil {
			return nil, nil, err
		}
		manifests = append(manifests, &entity.Manifest{
			ID: s.ID, Code: s.Code, Client: s.Client, Date: date,
			Origin: s.Origin, Destination: s.Destination, Status: st, CreatedAt: date,
		})
	}
	remesas := make([]*entity.Remesa, 0, len(doc.Remesas))
	for _, s := range doc.Remesas {
		date, st, err := s.parse()
		if err != nil {
			return nil, nil, err
		}
		weight, err := decimal.NewFromString(s.WeightKg)
		if err != nil {
			return nil, nil, fmt.Errorf("memory: %s peso: %w", s.Code, err)
		}
		value, err := decimal.NewFromString(s.DeclaredValue)
		if err != nil {
			return nil, nil, fmt.Errorf("memory: %s valor: %w", s.Code, err)
		}
		remesas = append(remesas, &entity.Remesa{
			ID: s.ID, Code: s.Code, Client: s.Client, Date: date,
			Origin: s.Origin, Destination: s.Destination, Status: st,
			WeightKg: weight, DeclaredValue: value, CreatedAt: date,
		})
	}
	return manifests, remesas, nil
}

func (s sampleRecord) parse() (time.Time, entity.Status, error) {
	date, err := time.Parse(records.DateLayout, s.Date)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("memory: %s fecha: %w", s.Code, err)
	}
	st, ok := entity.ParseStatus(s.Status)
	if !ok {
		return time.Time{}, "", fmt.Errorf("memory: %s estado %q desconocido", s.Code, s.Status)
	}
	return date, st, nil
}

// NewSampleRepositories repositorios sembrados con los datos de ejemplo.
func NewSampleRepositories() (*RecordRepo[*entity.Manifest], *RecordRepo[*entity.Remesa], error) {
	m, r, err := SampleData()
	if err != nil {
		return nil, nil, err
	}
	return NewRecordRepo(m), NewRecordRepo(r), nil
}
