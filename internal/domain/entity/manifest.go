package entity

import "time"

// Manifest manifiesto de carga (despacho).
type Manifest struct {
	ID          string
	Code        string // ej. MF-001234
	Client      string
	Date        time.Time // fecha civil, medianoche UTC
	Origin      string
	Destination string
	Status      Status
	CreatedAt   time.Time
}

func (m *Manifest) RecordID() string          { return m.ID }
func (m *Manifest) RecordCode() string        { return m.Code }
func (m *Manifest) RecordClient() string      { return m.Client }
func (m *Manifest) RecordDate() time.Time     { return m.Date }
func (m *Manifest) RecordOrigin() string      { return m.Origin }
func (m *Manifest) RecordDestination() string { return m.Destination }
func (m *Manifest) RecordStatus() Status      { return m.Status }
