package entity

import "time"

// MatterStatus estado de un asunto.
type MatterStatus string

const (
	MatterActive    MatterStatus = "active"
	MatterOnHold    MatterStatus = "on_hold"
	MatterCompleted MatterStatus = "completed"
	MatterCancelled MatterStatus = "cancelled"
)

// Matter representa un asunto (encargo legal en curso) con sus tareas.
// TaskCount, horas y avance no se persisten: se calculan desde las tareas.
type Matter struct {
	ID                   string
	FirmID               string
	UserID               string
	ClientID             *string
	ClientName           string // solo lectura (join con clients)
	OpportunityID        *string
	Name                 string
	Description          string
	Status               MatterStatus
	StartDate            time.Time
	TargetCompletionDate *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
