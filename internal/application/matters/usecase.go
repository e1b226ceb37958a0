package matters

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bufete-crm/internal/application/dto"
	"github.com/jhoicas/bufete-crm/internal/domain"
	"github.com/jhoicas/bufete-crm/internal/domain/entity"
	"github.com/jhoicas/bufete-crm/internal/domain/matters"
	"github.com/jhoicas/bufete-crm/internal/domain/pipeline"
	"github.com/jhoicas/bufete-crm/internal/domain/repository"
)

// MatterUseCase gestiona asuntos, sus tareas y el registro de horas.
// Las métricas de avance nunca se leen de la base: se recalculan con matters.Summarize.
type MatterUseCase struct {
	matterRepo repository.MatterRepository
	taskRepo   repository.TaskRepository
	clientRepo repository.ClientRepository
	tx         TimeLogTxRunner
	reports    MatterReportGenerator
}

// NewMatterUseCase construye el caso de uso. reports puede ser nil (sin PDF).
func NewMatterUseCase(
	matterRepo repository.MatterRepository,
	taskRepo repository.TaskRepository,
	clientRepo repository.ClientRepository,
	tx TimeLogTxRunner,
	reports MatterReportGenerator,
) *MatterUseCase {
	return &MatterUseCase{
		matterRepo: matterRepo,
		taskRepo:   taskRepo,
		clientRepo: clientRepo,
		tx:         tx,
		reports:    reports,
	}
}

// Create abre un asunto manualmente (sin oportunidad de origen). StartDate por defecto hoy.
func (uc *MatterUseCase) Create(ctx context.Context, firmID, userID string, in dto.CreateMatterRequest) (*dto.MatterResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("name requerido: %w", domain.ErrInvalidInput)
	}
	start, err := dto.ParseDate(in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
	}
	target, err := dto.ParseDate(in.TargetCompletionDate)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
	}
	now := time.Now()
	if start == nil {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		start = &today
	}
	if target != nil && target.Before(*start) {
		return nil, fmt.Errorf("target_completion_date anterior a start_date: %w", domain.ErrInvalidInput)
	}

	m := &entity.Matter{
		ID:                   uuid.New().String(),
		FirmID:               firmID,
		UserID:               userID,
		Name:                 name,
		Description:          in.Description,
		Status:               entity.MatterActive,
		StartDate:            *start,
		TargetCompletionDate: target,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if in.ClientID != "" {
		c, err := uc.clientRepo.GetByID(ctx, firmID, in.ClientID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("cliente %s: %w", in.ClientID, domain.ErrNotFound)
		}
		m.ClientID = &c.ID
		m.ClientName = c.Name
	}
	if err := uc.matterRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	out := toMatterResponse(m, nil, false)
	return &out, nil
}

// Get devuelve el asunto con sus tareas y el resumen de avance.
func (uc *MatterUseCase) Get(ctx context.Context, firmID, id string) (*dto.MatterResponse, error) {
	m, err := uc.load(ctx, firmID, id)
	if err != nil {
		return nil, err
	}
	tasks, err := uc.taskRepo.ListByMatter(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	out := toMatterResponse(m, tasks, true)
	return &out, nil
}

// List lista asuntos, cada uno con su resumen. Las tareas se cargan en una sola consulta.
func (uc *MatterUseCase) List(ctx context.Context, firmID string, page dto.PageRequest) ([]dto.MatterResponse, error) {
	page.DefaultPage()
	list, err := uc.matterRepo.List(ctx, firmID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list))
	for _, m := range list {
		ids = append(ids, m.ID)
	}
	byMatter := map[string][]entity.Task{}
	if len(ids) > 0 {
		byMatter, err = uc.taskRepo.ListByMatters(ctx, ids)
		if err != nil {
			return nil, err
		}
	}
	out := make([]dto.MatterResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMatterResponse(m, byMatter[m.ID], false))
	}
	return out, nil
}

// ChangeStatus fija cualquier estado válido de asunto; no hay grafo de transiciones.
func (uc *MatterUseCase) ChangeStatus(ctx context.Context, firmID, id, status string) (*dto.MatterResponse, error) {
	s, err := matters.ParseMatterStatus(status)
	if err != nil {
		return nil, err
	}
	m, err := uc.load(ctx, firmID, id)
	if err != nil {
		return nil, err
	}
	m.Status = s
	m.UpdatedAt = time.Now()
	if err := uc.matterRepo.UpdateStatus(ctx, m); err != nil {
		return nil, err
	}
	return uc.Get(ctx, firmID, id)
}

// CreateTask añade una tarea pendiente al asunto. Priority por defecto medium.
func (uc *MatterUseCase) CreateTask(ctx context.Context, firmID, matterID string, in dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("title requerido: %w", domain.ErrInvalidInput)
	}
	priority, err := pipeline.ParsePriority(in.Priority)
	if err != nil {
		return nil, err
	}
	if in.EstimatedHours != nil && in.EstimatedHours.IsNegative() {
		return nil, fmt.Errorf("estimated_hours negativo: %w", domain.ErrInvalidInput)
	}
	due, err := dto.ParseDate(in.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
	}
	m, err := uc.load(ctx, firmID, matterID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	t := &entity.Task{
		ID:             uuid.New().String(),
		MatterID:       m.ID,
		Title:          title,
		Description:    in.Description,
		Status:         entity.TaskPending,
		Priority:       priority,
		AssignedTo:     in.AssignedTo,
		EstimatedHours: in.EstimatedHours,
		DueDate:        due,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.taskRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	out := toTaskResponse(*t)
	return &out, nil
}

// UpdateTaskStatus fija cualquier estado válido de tarea.
func (uc *MatterUseCase) UpdateTaskStatus(ctx context.Context, firmID, taskID, status string) (*dto.TaskResponse, error) {
	s, err := matters.ParseTaskStatus(status)
	if err != nil {
		return nil, err
	}
	t, err := uc.loadTask(ctx, firmID, taskID)
	if err != nil {
		return nil, err
	}
	t.Status = s
	t.UpdatedAt = time.Now()
	if err := uc.taskRepo.UpdateStatus(ctx, t); err != nil {
		return nil, err
	}
	out := toTaskResponse(*t)
	return &out, nil
}

// LogTime registra horas en una tarea: inserta el registro e incrementa ActualHours
// en la misma transacción. Horas <= 0 devuelven domain.ErrInvalidHours sin tocar nada.
func (uc *MatterUseCase) LogTime(ctx context.Context, firmID, taskID string, in dto.LogTimeRequest) (*dto.LogTimeResponse, error) {
	t, err := uc.loadTask(ctx, firmID, taskID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	entry, err := matters.NewTimeEntry(t.ID, in.UserName, in.Description, in.HoursSpent, now)
	if err != nil {
		return nil, err
	}
	entry.ID = uuid.New().String()
	updated, err := matters.LogTime(*t, in.HoursSpent)
	if err != nil {
		return nil, err
	}
	updated.UpdatedAt = now

	// El total se toma del UPDATE: otro registro pudo confirmarse después de loadTask.
	err = uc.tx.RunTimeLog(ctx, func(taskRepo repository.TaskRepository) error {
		if err := taskRepo.AddTimeEntry(ctx, &entry); err != nil {
			return err
		}
		total, err := taskRepo.AddActualHours(ctx, t.ID, entry.HoursSpent, now)
		if err != nil {
			return err
		}
		updated.ActualHours = total
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.LogTimeResponse{Task: toTaskResponse(updated), Entry: toTimeEntryResponse(&entry)}, nil
}

// ListTimeEntries registros de tiempo de una tarea, más recientes primero.
func (uc *MatterUseCase) ListTimeEntries(ctx context.Context, firmID, taskID string) ([]dto.TimeEntryResponse, error) {
	t, err := uc.loadTask(ctx, firmID, taskID)
	if err != nil {
		return nil, err
	}
	entries, err := uc.taskRepo.ListTimeEntries(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TimeEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toTimeEntryResponse(e))
	}
	return out, nil
}

// ReportPDF genera el informe del asunto con tareas y resumen.
func (uc *MatterUseCase) ReportPDF(ctx context.Context, firmID, id string) ([]byte, error) {
	if uc.reports == nil {
		return nil, fmt.Errorf("generador de informes no configurado: %w", domain.ErrConflict)
	}
	m, err := uc.load(ctx, firmID, id)
	if err != nil {
		return nil, err
	}
	tasks, err := uc.taskRepo.ListByMatter(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	return uc.reports.GenerateMatterReport(ctx, m, tasks, matters.Summarize(tasks))
}

func (uc *MatterUseCase) load(ctx context.Context, firmID, id string) (*entity.Matter, error) {
	m, err := uc.matterRepo.GetByID(ctx, firmID, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

func (uc *MatterUseCase) loadTask(ctx context.Context, firmID, id string) (*entity.Task, error) {
	t, err := uc.taskRepo.GetByID(ctx, firmID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return t, nil
}
