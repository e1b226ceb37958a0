package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bufete-crm/internal/domain/entity"
)

// MatterRepository define el puerto de persistencia para asuntos.
// No persiste contadores ni horas: se recalculan desde TaskRepository.
type MatterRepository interface {
	Create(ctx context.Context, m *entity.Matter) error
	GetByID(ctx context.Context, firmID, id string) (*entity.Matter, error)
	List(ctx context.Context, firmID string, limit, offset int) ([]*entity.Matter, error)
	UpdateStatus(ctx context.Context, m *entity.Matter) error
}

// TaskRepository define el puerto de persistencia para tareas y registros de tiempo.
type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	GetByID(ctx context.Context, firmID, id string) (*entity.Task, error)
	ListByMatter(ctx context.Context, matterID string) ([]entity.Task, error)
	// ListByMatters devuelve las tareas agrupadas por matter_id (evita N+1 en listados).
	ListByMatters(ctx context.Context, matterIDs []string) (map[string][]entity.Task, error)
	UpdateStatus(ctx context.Context, t *entity.Task) error
	// AddActualHours suma hours a las horas reales de la tarea y devuelve el total resultante.
	// El incremento es atómico: registros concurrentes no se pisan.
	AddActualHours(ctx context.Context, taskID string, hours decimal.Decimal, at time.Time) (decimal.Decimal, error)
	AddTimeEntry(ctx context.Context, e *entity.TimeEntry) error
	ListTimeEntries(ctx context.Context, taskID string) ([]*entity.TimeEntry, error)
}
