package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOpportunityRequest body para POST /api/opportunities.
// Status por defecto "prospect", Priority por defecto "medium".
type CreateOpportunityRequest struct {
	Title              string           `json:"title"`
	Description        string           `json:"description,omitempty"`
	ClientID           string           `json:"client_id,omitempty"`
	Value              *decimal.Decimal `json:"value,omitempty"`
	Status             string           `json:"status,omitempty"`
	Priority           string           `json:"priority,omitempty"`
	PracticeArea       string           `json:"practice_area,omitempty"`
	EstimatedCloseDate string           `json:"estimated_close_date,omitempty"` // YYYY-MM-DD
	Notes              string           `json:"notes,omitempty"`
}

// ChangeStatusRequest body para PATCH .../status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// OpportunityResponse oportunidad con metadatos del embudo.
type OpportunityResponse struct {
	ID                 string           `json:"id"`
	Title              string           `json:"title"`
	Description        string           `json:"description,omitempty"`
	ClientID           string           `json:"client_id,omitempty"`
	ClientName         string           `json:"client_name,omitempty"`
	Value              *decimal.Decimal `json:"value,omitempty"`
	ValueFormatted     string           `json:"value_formatted,omitempty"`
	Status             StatusMeta       `json:"status"`
	Priority           StatusMeta       `json:"priority"`
	PracticeArea       string           `json:"practice_area,omitempty"`
	EstimatedCloseDate string           `json:"estimated_close_date,omitempty"`
	Notes              string           `json:"notes,omitempty"`
	MatterID           string           `json:"matter_id,omitempty"`
	NextStatuses       []StatusMeta     `json:"next_statuses"`
	Activities         []ActivityDTO    `json:"activities,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
}

// ActivityDTO entrada del historial de estados.
type ActivityDTO struct {
	Status string    `json:"status"`
	Action string    `json:"action"`
	Date   time.Time `json:"date"`
}

// OpportunityListResponse listado con totales del filtro aplicado.
type OpportunityListResponse struct {
	Items               []OpportunityResponse `json:"items"`
	TotalValue          decimal.Decimal       `json:"total_value"`
	TotalValueFormatted string                `json:"total_value_formatted"`
	ActiveCount         int                   `json:"active_count"`
	Page                PageResponse          `json:"page"`
}

// StatusChangeResponse resultado de PATCH /api/opportunities/:id/status.
// MatterID viene informado cuando la oportunidad pasó a "won" y se creó el asunto.
type StatusChangeResponse struct {
	Opportunity   OpportunityResponse `json:"opportunity"`
	MatterCreated bool                `json:"matter_created"`
	MatterID      string              `json:"matter_id,omitempty"`
}
