package matters

import (
	"fmt"

	"github.com/jhoicas/bufete-crm/internal/domain"
	"github.com/jhoicas/bufete-crm/internal/domain/entity"
)

// Label etiqueta y color de presentación.
type Label struct {
	Label string
	Color string
}

var taskLabels = map[entity.TaskStatus]Label{
	entity.TaskPending:    {Label: "Pendiente", Color: "gray"},
	entity.TaskInProgress: {Label: "En Progreso", Color: "yellow"},
	entity.TaskReview:     {Label: "En Revisión", Color: "blue"},
	entity.TaskCompleted:  {Label: "Completada", Color: "green"},
	entity.TaskCancelled:  {Label: "Cancelada", Color: "red"},
}

var matterLabels = map[entity.MatterStatus]Label{
	entity.MatterActive:    {Label: "Activo", Color: "green"},
	entity.MatterOnHold:    {Label: "En Pausa", Color: "yellow"},
	entity.MatterCompleted: {Label: "Completado", Color: "blue"},
	entity.MatterCancelled: {Label: "Cancelado", Color: "red"},
}

// AllTaskStatuses estados de tarea en orden de flujo.
func AllTaskStatuses() []entity.TaskStatus {
	return []entity.TaskStatus{
		entity.TaskPending, entity.TaskInProgress, entity.TaskReview, entity.TaskCompleted, entity.TaskCancelled,
	}
}

// AllMatterStatuses estados de asunto.
func AllMatterStatuses() []entity.MatterStatus {
	return []entity.MatterStatus{entity.MatterActive, entity.MatterOnHold, entity.MatterCompleted, entity.MatterCancelled}
}

// TaskLabel metadatos de un estado de tarea.
func TaskLabel(s entity.TaskStatus) (Label, bool) {
	l, ok := taskLabels[s]
	return l, ok
}

// MatterLabel metadatos de un estado de asunto.
func MatterLabel(s entity.MatterStatus) (Label, bool) {
	l, ok := matterLabels[s]
	return l, ok
}

// ParseTaskStatus convierte texto a estado de tarea.
// Las tareas no tienen grafo de transiciones: cualquier estado válido es asignable.
func ParseTaskStatus(s string) (entity.TaskStatus, error) {
	st := entity.TaskStatus(s)
	if _, ok := taskLabels[st]; !ok {
		return "", fmt.Errorf("estado de tarea %q: %w", s, domain.ErrInvalidInput)
	}
	return st, nil
}

// ParseMatterStatus convierte texto a estado de asunto.
func ParseMatterStatus(s string) (entity.MatterStatus, error) {
	st := entity.MatterStatus(s)
	if _, ok := matterLabels[st]; !ok {
		return "", fmt.Errorf("estado de asunto %q: %w", s, domain.ErrInvalidInput)
	}
	return st, nil
}
