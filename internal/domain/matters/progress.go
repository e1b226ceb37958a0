// Package matters agrega el avance de las tareas de un asunto y valida los registros de tiempo.
package matters

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bufete-crm/internal/domain"
	"github.com/jhoicas/bufete-crm/internal/domain/entity"
)

// Summary métricas derivadas de la lista de tareas de un asunto.
type Summary struct {
	TaskCount           int
	CompletedCount      int
	TotalActualHours    decimal.Decimal // todas las tareas, no solo las completadas
	TotalEstimatedHours decimal.Decimal
	ProgressPercent     int
}

// Summarize calcula el resumen de tareas. No modifica tasks.
func Summarize(tasks []entity.Task) Summary {
	s := Summary{
		TaskCount:           len(tasks),
		TotalActualHours:    decimal.Zero,
		TotalEstimatedHours: decimal.Zero,
	}
	for _, t := range tasks {
		if t.Status == entity.TaskCompleted {
			s.CompletedCount++
		}
		s.TotalActualHours = s.TotalActualHours.Add(t.ActualHours)
		if t.EstimatedHours != nil {
			s.TotalEstimatedHours = s.TotalEstimatedHours.Add(*t.EstimatedHours)
		}
	}
	s.ProgressPercent = ProgressPercent(s.CompletedCount, s.TaskCount)
	return s
}

// ProgressPercent redondea completed/total*100 al entero más cercano (mitades hacia arriba).
// Devuelve 0 si total es 0.
func ProgressPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return (completed*200 + total) / (2 * total)
}

// LogTime devuelve una copia de task con hours sumadas a ActualHours.
// Falla con domain.ErrInvalidHours si hours <= 0.
func LogTime(task entity.Task, hours decimal.Decimal) (entity.Task, error) {
	if !hours.IsPositive() {
		return task, fmt.Errorf("registrar %s horas: %w", hours.String(), domain.ErrInvalidHours)
	}
	task.ActualHours = task.ActualHours.Add(hours)
	return task, nil
}

// NewTimeEntry valida y construye un registro de tiempo (sin ID).
func NewTimeEntry(taskID, userName, description string, hours decimal.Decimal, at time.Time) (entity.TimeEntry, error) {
	if !hours.IsPositive() {
		return entity.TimeEntry{}, domain.ErrInvalidHours
	}
	if strings.TrimSpace(userName) == "" {
		return entity.TimeEntry{}, fmt.Errorf("user_name requerido: %w", domain.ErrInvalidInput)
	}
	return entity.TimeEntry{
		TaskID:      taskID,
		UserName:    strings.TrimSpace(userName),
		HoursSpent:  hours,
		Description: description,
		EntryDate:   at,
	}, nil
}
