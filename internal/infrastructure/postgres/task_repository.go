package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bufete-crm/internal/domain"
	"github.com/jhoicas/bufete-crm/internal/domain/entity"
	"github.com/jhoicas/bufete-crm/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

// TaskRepo implementación de TaskRepository (usable con pool o tx).
type TaskRepo struct {
	q Querier
}

// NewTaskRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTaskRepository(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

const taskColumns = `t.id, t.matter_id, t.title, t.description, t.status, t.priority, t.assigned_to,
	t.estimated_hours, t.actual_hours, t.due_date, t.created_at, t.updated_at`

func scanTask(row pgx.Row) (entity.Task, error) {
	var t entity.Task
	err := row.Scan(&t.ID, &t.MatterID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.AssignedTo,
		&t.EstimatedHours, &t.ActualHours, &t.DueDate, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// Create persiste una tarea.
func (r *TaskRepo) Create(ctx context.Context, t *entity.Task) error {
	query := `
		INSERT INTO tasks (id, matter_id, title, description, status, priority, assigned_to,
			estimated_hours, actual_hours, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.MatterID, t.Title, t.Description, t.Status, t.Priority, t.AssignedTo,
		t.EstimatedHours, t.ActualHours, t.DueDate, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// GetByID obtiene una tarea cuyo asunto pertenece al despacho.
func (r *TaskRepo) GetByID(ctx context.Context, firmID, id string) (*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks t
		JOIN matters m ON m.id = t.matter_id
		WHERE m.firm_id = $1 AND t.id = $2`
	t, err := scanTask(r.q.QueryRow(ctx, query, firmID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &t, nil
}

// ListByMatter tareas de un asunto en orden de creación.
func (r *TaskRepo) ListByMatter(ctx context.Context, matterID string) ([]entity.Task, error) {
	grouped, err := r.ListByMatters(ctx, []string{matterID})
	if err != nil {
		return nil, err
	}
	return grouped[matterID], nil
}

// ListByMatters tareas de varios asuntos en una sola consulta, agrupadas por matter_id.
func (r *TaskRepo) ListByMatters(ctx context.Context, matterIDs []string) (map[string][]entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks t
		WHERE t.matter_id = ANY($1::uuid[]) ORDER BY t.created_at`
	rows, err := r.q.Query(ctx, query, matterIDs)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.Task, len(matterIDs))
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out[t.MatterID] = append(out[t.MatterID], t)
	}
	return out, rows.Err()
}

// UpdateStatus persiste el estado de la tarea.
func (r *TaskRepo) UpdateStatus(ctx context.Context, t *entity.Task) error {
	return r.exec(ctx, "update task status",
		`UPDATE tasks SET status = $2, updated_at = $3 WHERE id = $1`, t.ID, t.Status, t.UpdatedAt)
}

// AddActualHours incrementa actual_hours en la propia sentencia y devuelve el total.
func (r *TaskRepo) AddActualHours(ctx context.Context, taskID string, hours decimal.Decimal, at time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`UPDATE tasks SET actual_hours = actual_hours + $2, updated_at = $3 WHERE id = $1 RETURNING actual_hours`,
		taskID, hours, at).Scan(&total)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, domain.ErrNotFound
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("add task hours: %w", err)
	}
	return total, nil
}

func (r *TaskRepo) exec(ctx context.Context, op, query string, args ...any) error {
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddTimeEntry inserta un registro de tiempo.
func (r *TaskRepo) AddTimeEntry(ctx context.Context, e *entity.TimeEntry) error {
	query := `
		INSERT INTO time_entries (id, task_id, user_name, hours_spent, description, entry_date)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, e.ID, e.TaskID, e.UserName, e.HoursSpent, e.Description, e.EntryDate); err != nil {
		return fmt.Errorf("insert time entry: %w", err)
	}
	return nil
}

// ListTimeEntries registros de una tarea, más recientes primero.
func (r *TaskRepo) ListTimeEntries(ctx context.Context, taskID string) ([]*entity.TimeEntry, error) {
	query := `
		SELECT id, task_id, user_name, hours_spent, description, entry_date
		FROM time_entries WHERE task_id = $1 ORDER BY entry_date DESC`
	rows, err := r.q.Query(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.TimeEntry
	for rows.Next() {
		var e entity.TimeEntry
		if err := rows.Scan(&e.ID, &e.TaskID, &e.UserName, &e.HoursSpent, &e.Description, &e.EntryDate); err != nil {
			return nil, fmt.Errorf("scan time entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
