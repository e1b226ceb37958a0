package crm

import (
	"github.com/jhoicas/bufete-crm/internal/application/dto"
	"github.com/jhoicas/bufete-crm/internal/domain/entity"
	"github.com/jhoicas/bufete-crm/internal/domain/pipeline"
)

// activityAction texto del historial al entrar en cada estado.
var activityAction = map[entity.OpportunityStatus]string{
	entity.OpportunityProspect:     "Oportunidad creada",
	entity.OpportunityConsultation: "Consulta inicial realizada",
	entity.OpportunityActive:       "Propuesta aceptada",
	entity.OpportunityWon:          "Oportunidad ganada",
	entity.OpportunityLost:         "Oportunidad perdida",
}

// StatusMeta metadatos de presentación de un estado de oportunidad.
func StatusMeta(s entity.OpportunityStatus) dto.StatusMeta {
	d, _ := pipeline.Display(s)
	return dto.StatusMeta{Value: string(s), Label: d.Label, Color: d.Color}
}

// PriorityMeta metadatos de presentación de una prioridad.
func PriorityMeta(p entity.Priority) dto.StatusMeta {
	d, _ := pipeline.PriorityDisplay(p)
	return dto.StatusMeta{Value: string(p), Label: d.Label, Color: d.Color}
}

// StatusCatalog tabla completa de estados en orden del embudo.
func StatusCatalog() []dto.StatusMeta {
	all := pipeline.AllOpportunityStatuses()
	out := make([]dto.StatusMeta, 0, len(all))
	for _, s := range all {
		out = append(out, StatusMeta(s))
	}
	return out
}

// ToOpportunityResponse convierte la entidad a DTO. amounts puede ser nil.
func ToOpportunityResponse(o *entity.Opportunity, amounts AmountFormatter) dto.OpportunityResponse {
	next := pipeline.NextStates(o.Status)
	nextMeta := make([]dto.StatusMeta, 0, len(next))
	for _, s := range next {
		nextMeta = append(nextMeta, StatusMeta(s))
	}
	out := dto.OpportunityResponse{
		ID:                 o.ID,
		Title:              o.Title,
		Description:        o.Description,
		ClientName:         o.ClientName,
		Value:              o.Value,
		Status:             StatusMeta(o.Status),
		Priority:           PriorityMeta(o.Priority),
		PracticeArea:       o.PracticeArea,
		EstimatedCloseDate: dto.FormatDate(o.EstimatedCloseDate),
		Notes:              o.Notes,
		NextStatuses:       nextMeta,
		CreatedAt:          o.CreatedAt,
	}
	if o.ClientID != nil {
		out.ClientID = *o.ClientID
	}
	if o.MatterID != nil {
		out.MatterID = *o.MatterID
	}
	if o.Value != nil && amounts != nil {
		out.ValueFormatted = amounts.Format(*o.Value)
	}
	return out
}
