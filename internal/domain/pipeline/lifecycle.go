// Package pipeline contiene las reglas del embudo comercial de oportunidades:
// qué transiciones de estado son legales y cuáles son los siguientes estados posibles.
package pipeline

import (
	"fmt"

	"github.com/jhoicas/bufete-crm/internal/domain"
	"github.com/jhoicas/bufete-crm/internal/domain/entity"
)

// sequence es el orden del embudo. won y lost son terminales.
var sequence = [...]entity.OpportunityStatus{
	entity.OpportunityProspect,
	entity.OpportunityConsultation,
	entity.OpportunityActive,
	entity.OpportunityWon,
	entity.OpportunityLost,
}

// Transition resultado de aplicar un cambio de estado válido.
// ShouldCreateMatter indica al llamador que debe crear el asunto de la oportunidad ganada.
type Transition struct {
	From               entity.OpportunityStatus
	To                 entity.OpportunityStatus
	ShouldCreateMatter bool
}

// AllOpportunityStatuses devuelve los estados en orden del embudo.
func AllOpportunityStatuses() []entity.OpportunityStatus {
	out := make([]entity.OpportunityStatus, len(sequence))
	copy(out, sequence[:])
	return out
}

// Valid indica si s es uno de los cinco estados conocidos.
func Valid(s entity.OpportunityStatus) bool {
	return indexOf(s) >= 0
}

// IsTerminal: won y lost no tienen transiciones de salida.
func IsTerminal(s entity.OpportunityStatus) bool {
	return s == entity.OpportunityWon || s == entity.OpportunityLost
}

// ParseOpportunityStatus convierte texto a estado. Devuelve ErrInvalidInput si no existe.
func ParseOpportunityStatus(s string) (entity.OpportunityStatus, error) {
	st := entity.OpportunityStatus(s)
	if !Valid(st) {
		return "", fmt.Errorf("estado de oportunidad %q: %w", s, domain.ErrInvalidInput)
	}
	return st, nil
}

// NextStates devuelve los estados alcanzables desde current, en orden:
// el siguiente estado secuencial (solo antes de active), luego won y lost.
// Vacío para estados terminales o desconocidos.
func NextStates(current entity.OpportunityStatus) []entity.OpportunityStatus {
	i := indexOf(current)
	if i < 0 || IsTerminal(current) {
		return []entity.OpportunityStatus{}
	}
	out := make([]entity.OpportunityStatus, 0, 3)
	if current != entity.OpportunityActive {
		out = append(out, sequence[i+1])
	}
	return append(out, entity.OpportunityWon, entity.OpportunityLost)
}

// CanTransition indica si target es un siguiente estado legal de current.
func CanTransition(current, target entity.OpportunityStatus) bool {
	for _, s := range NextStates(current) {
		if s == target {
			return true
		}
	}
	return false
}

// ApplyTransition valida el cambio current → target.
// Falla con domain.ErrIllegalTransition si target no está en NextStates(current).
func ApplyTransition(current, target entity.OpportunityStatus) (Transition, error) {
	if !CanTransition(current, target) {
		return Transition{}, fmt.Errorf("%s → %s: %w", current, target, domain.ErrIllegalTransition)
	}
	return Transition{
		From:               current,
		To:                 target,
		ShouldCreateMatter: target == entity.OpportunityWon,
	}, nil
}

func indexOf(s entity.OpportunityStatus) int {
	for i, v := range sequence {
		if v == s {
			return i
		}
	}
	return -1
}
