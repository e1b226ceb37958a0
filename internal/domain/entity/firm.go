package entity

import "time"

// Firm representa un despacho de abogados (tenant del sistema).
// Todos los registros de CRM se aíslan por FirmID.
type Firm struct {
	ID        string
	Name      string
	TaxID     string // NIT / CIF del despacho
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended
	CreatedAt time.Time
	UpdatedAt time.Time
}
