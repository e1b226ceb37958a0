package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaskStatus estado de una tarea dentro de un asunto.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskReview     TaskStatus = "review"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

// Task unidad de trabajo de un asunto.
type Task struct {
	ID             string
	MatterID       string
	Title          string
	Description    string
	Status         TaskStatus
	Priority       Priority
	AssignedTo     string
	EstimatedHours *decimal.Decimal
	ActualHours    decimal.Decimal // acumulado de los registros de tiempo
	DueDate        *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TimeEntry registro de horas dedicadas a una tarea.
type TimeEntry struct {
	ID          string
	TaskID      string
	UserName    string
	HoursSpent  decimal.Decimal
	Description string
	EntryDate   time.Time
}
