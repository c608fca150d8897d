package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Remesa consignación individual de carga. Para filtrar y paginar es equivalente a un manifiesto;
// además lleva peso y valor declarado.
type Remesa struct {
	ID            string
	Code          string // ej. RM-001234
	Client        string
	Date          time.Time
	Origin        string
	Destination   string
	Status        Status
	WeightKg      decimal.Decimal
	DeclaredValue decimal.Decimal // COP
	CreatedAt     time.Time
}

func (r *Remesa) RecordID() string          { return r.ID }
func (r *Remesa) RecordCode() string        { return r.Code }
func (r *Remesa) RecordClient() string      { return r.Client }
func (r *Remesa) RecordDate() time.Time     { return r.Date }
func (r *Remesa) RecordOrigin() string      { return r.Origin }
func (r *Remesa) RecordDestination() string { return r.Destination }
func (r *Remesa) RecordStatus() Status      { return r.Status }

func (r *Remesa) RecordWeight() decimal.Decimal { return r.WeightKg }
func (r *Remesa) RecordValue() decimal.Decimal  { return r.DeclaredValue }
