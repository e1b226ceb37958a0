package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bufete-crm/internal/domain/entity"
)

// OpportunityFilter criterios de listado de oportunidades.
type OpportunityFilter struct {
	Search string // título, nombre de cliente o área de práctica
	Status entity.OpportunityStatus
	Limit  int
	Offset int
}

// PipelineStats agregados del embudo para el dashboard.
type PipelineStats struct {
	ActiveCount int             // oportunidades en estado active
	OpenValue   decimal.Decimal // suma de valores de estados no terminales
	WonCount    int
	LostCount   int
}

// OpportunityRepository define el puerto de persistencia para Opportunity y su historial.
type OpportunityRepository interface {
	Create(ctx context.Context, opp *entity.Opportunity) error
	GetByID(ctx context.Context, firmID, id string) (*entity.Opportunity, error)
	List(ctx context.Context, firmID string, f OpportunityFilter) ([]*entity.Opportunity, error)
	// UpdateStatus persiste estado y matter_id (si no es nil) siempre que el estado
	// guardado siga siendo from; si otro cambio se adelantó devuelve domain.ErrConflict.
	UpdateStatus(ctx context.Context, opp *entity.Opportunity, from entity.OpportunityStatus) error
	AddActivity(ctx context.Context, a *entity.OpportunityActivity) error
	ListActivities(ctx context.Context, opportunityID string) ([]*entity.OpportunityActivity, error)
	Stats(ctx context.Context, firmID string) (PipelineStats, error)
}
