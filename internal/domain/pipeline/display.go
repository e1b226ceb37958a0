package pipeline

import (
	"fmt"

	"github.com/jhoicas/bufete-crm/internal/domain"
	"github.com/jhoicas/bufete-crm/internal/domain/entity"
)

// StatusDisplay metadatos de presentación de un valor de enumeración.
type StatusDisplay struct {
	Label string
	Color string // token de color del front (success, warning, destructive...)
}

var statusDisplay = map[entity.OpportunityStatus]StatusDisplay{
	entity.OpportunityProspect:     {Label: "Prospecto", Color: "accent"},
	entity.OpportunityConsultation: {Label: "Consulta", Color: "warning"},
	entity.OpportunityActive:       {Label: "Activa", Color: "success"},
	entity.OpportunityWon:          {Label: "Ganada", Color: "green"},
	entity.OpportunityLost:         {Label: "Perdida", Color: "destructive"},
}

var priorityDisplay = map[entity.Priority]StatusDisplay{
	entity.PriorityLow:    {Label: "Baja", Color: "muted"},
	entity.PriorityMedium: {Label: "Media", Color: "warning"},
	entity.PriorityHigh:   {Label: "Alta", Color: "destructive"},
	entity.PriorityUrgent: {Label: "Urgente", Color: "red"},
}

// Display devuelve etiqueta y color de un estado. ok=false si el estado no existe.
func Display(s entity.OpportunityStatus) (StatusDisplay, bool) {
	d, ok := statusDisplay[s]
	return d, ok
}

// AllPriorities devuelve las prioridades de menor a mayor.
func AllPriorities() []entity.Priority {
	return []entity.Priority{entity.PriorityLow, entity.PriorityMedium, entity.PriorityHigh, entity.PriorityUrgent}
}

// PriorityDisplay devuelve etiqueta y color de una prioridad.
func PriorityDisplay(p entity.Priority) (StatusDisplay, bool) {
	d, ok := priorityDisplay[p]
	return d, ok
}

// ParsePriority convierte texto a prioridad; vacío equivale a medium.
func ParsePriority(s string) (entity.Priority, error) {
	if s == "" {
		return entity.PriorityMedium, nil
	}
	p := entity.Priority(s)
	if _, ok := priorityDisplay[p]; !ok {
		return "", fmt.Errorf("prioridad %q: %w", s, domain.ErrInvalidInput)
	}
	return p, nil
}
