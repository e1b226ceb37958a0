package entity

import "time"

// Estados de un cliente.
const (
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
)

// Client representa un cliente del despacho.
type Client struct {
	ID        string
	FirmID    string
	UserID    string // usuario que lo registró
	Name      string
	Email     string
	Phone     string
	Company   string
	Address   string
	Notes     string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
