package matters

import (
	"context"

	"github.com/jhoicas/bufete-crm/internal/domain/entity"
	"github.com/jhoicas/bufete-crm/internal/domain/matters"
	"github.com/jhoicas/bufete-crm/internal/domain/repository"
)

// TimeLogTxRunner ejecuta fn en una transacción; el TaskRepository recibido
// opera dentro de ella. Registro de tiempo y horas de la tarea se confirman juntos.
type TimeLogTxRunner interface {
	RunTimeLog(ctx context.Context, fn func(taskRepo repository.TaskRepository) error) error
}

// MatterReportGenerator genera el informe PDF de un asunto (implementación en infrastructure/pdf).
type MatterReportGenerator interface {
	GenerateMatterReport(ctx context.Context, m *entity.Matter, tasks []entity.Task, summary matters.Summary) ([]byte, error)
}
