package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpportunityStatus etapa de una oportunidad en el embudo comercial.
// El orden de las constantes es el orden del embudo.
type OpportunityStatus string

const (
	OpportunityProspect     OpportunityStatus = "prospect"
	OpportunityConsultation OpportunityStatus = "consultation"
	OpportunityActive       OpportunityStatus = "active"
	OpportunityWon          OpportunityStatus = "won"
	OpportunityLost         OpportunityStatus = "lost"
)

// Priority prioridad de oportunidades y tareas. Solo se usa para presentación.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Opportunity representa un posible encargo profesional en seguimiento comercial.
type Opportunity struct {
	ID                 string
	FirmID             string
	UserID             string
	ClientID           *string // nil = sin cliente asociado
	ClientName         string  // solo lectura (join con clients)
	Title              string
	Description        string
	Value              *decimal.Decimal // honorarios estimados; nil = sin estimar
	Status             OpportunityStatus
	Priority           Priority
	PracticeArea       string
	EstimatedCloseDate *time.Time
	Notes              string
	MatterID           *string // asunto creado al ganar la oportunidad
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// OpportunityActivity entrada del historial de estados de una oportunidad.
type OpportunityActivity struct {
	ID            string
	OpportunityID string
	Status        OpportunityStatus
	Action        string
	CreatedAt     time.Time
}
