package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalClients           int                   `json:"total_clients"`
	ActiveOpportunities    int                   `json:"active_opportunities"`
	PipelineValue          decimal.Decimal       `json:"pipeline_value"` // suma de oportunidades abiertas
	PipelineValueFormatted string                `json:"pipeline_value_formatted"`
	ConversionRate         int                   `json:"conversion_rate"` // % won / (won + lost)
	ExpiringDocuments      int                   `json:"expiring_documents"`
	RecentOpportunities    []OpportunityResponse `json:"recent_opportunities"`
	DateLabel              string                `json:"date_label"` // ej: "Marzo 2024"
}
