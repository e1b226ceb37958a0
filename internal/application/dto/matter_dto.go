package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMatterRequest body para POST /api/matters.
type CreateMatterRequest struct {
	Name                 string `json:"name"`
	Description          string `json:"description,omitempty"`
	ClientID             string `json:"client_id,omitempty"`
	StartDate            string `json:"start_date,omitempty"` // por defecto hoy
	TargetCompletionDate string `json:"target_completion_date,omitempty"`
}

// MatterSummaryDTO métricas derivadas de las tareas (nunca persistidas).
type MatterSummaryDTO struct {
	TaskCount           int             `json:"task_count"`
	CompletedTasks      int             `json:"completed_tasks"`
	TotalHours          decimal.Decimal `json:"total_hours"`
	TotalEstimatedHours decimal.Decimal `json:"total_estimated_hours"`
	ProgressPercent     int             `json:"progress_percent"`
}

// MatterResponse asunto con su resumen de avance.
type MatterResponse struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	Description          string           `json:"description,omitempty"`
	ClientID             string           `json:"client_id,omitempty"`
	ClientName           string           `json:"client_name,omitempty"`
	OpportunityID        string           `json:"opportunity_id,omitempty"`
	Status               StatusMeta       `json:"status"`
	StartDate            string           `json:"start_date"`
	TargetCompletionDate string           `json:"target_completion_date,omitempty"`
	Summary              MatterSummaryDTO `json:"summary"`
	Tasks                []TaskResponse   `json:"tasks,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
}

// CreateTaskRequest body para POST /api/matters/:id/tasks.
type CreateTaskRequest struct {
	Title          string           `json:"title"`
	Description    string           `json:"description,omitempty"`
	Priority       string           `json:"priority,omitempty"`
	AssignedTo     string           `json:"assigned_to,omitempty"`
	EstimatedHours *decimal.Decimal `json:"estimated_hours,omitempty"`
	DueDate        string           `json:"due_date,omitempty"`
}

// TaskResponse tarea en respuestas.
type TaskResponse struct {
	ID             string           `json:"id"`
	MatterID       string           `json:"matter_id"`
	Title          string           `json:"title"`
	Description    string           `json:"description,omitempty"`
	Status         StatusMeta       `json:"status"`
	Priority       StatusMeta       `json:"priority"`
	AssignedTo     string           `json:"assigned_to,omitempty"`
	EstimatedHours *decimal.Decimal `json:"estimated_hours,omitempty"`
	ActualHours    decimal.Decimal  `json:"actual_hours"`
	DueDate        string           `json:"due_date,omitempty"`
}

// LogTimeRequest body para POST /api/tasks/:id/time-entries.
type LogTimeRequest struct {
	HoursSpent  decimal.Decimal `json:"hours_spent"`
	Description string          `json:"description"`
	UserName    string          `json:"user_name"`
}

// TimeEntryResponse registro de tiempo.
type TimeEntryResponse struct {
	ID          string          `json:"id"`
	TaskID      string          `json:"task_id"`
	UserName    string          `json:"user_name"`
	HoursSpent  decimal.Decimal `json:"hours_spent"`
	Description string          `json:"description,omitempty"`
	EntryDate   string          `json:"entry_date"`
}

// LogTimeResponse tarea actualizada más el registro creado.
type LogTimeResponse struct {
	Task  TaskResponse      `json:"task"`
	Entry TimeEntryResponse `json:"entry"`
}
