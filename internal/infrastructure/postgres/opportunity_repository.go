package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bufete-crm/internal/domain"
	"github.com/jhoicas/bufete-crm/internal/domain/entity"
	"github.com/jhoicas/bufete-crm/internal/domain/repository"
)

var _ repository.OpportunityRepository = (*OpportunityRepo)(nil)

// OpportunityRepo implementación de OpportunityRepository (usable con pool o tx).
type OpportunityRepo struct {
	q Querier
}

// NewOpportunityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOpportunityRepository(q Querier) *OpportunityRepo {
	return &OpportunityRepo{q: q}
}

// opportunitySelect incluye el nombre del cliente (LEFT JOIN, client_id es opcional).
const opportunitySelect = `
	SELECT o.id, o.firm_id, o.user_id, o.client_id, COALESCE(c.name, ''), o.title, o.description,
		o.value, o.status, o.priority, o.practice_area, o.estimated_close_date, o.notes, o.matter_id,
		o.created_at, o.updated_at
	FROM opportunities o
	LEFT JOIN clients c ON c.id = o.client_id`

func scanOpportunity(row pgx.Row) (*entity.Opportunity, error) {
	var o entity.Opportunity
	err := row.Scan(&o.ID, &o.FirmID, &o.UserID, &o.ClientID, &o.ClientName, &o.Title, &o.Description,
		&o.Value, &o.Status, &o.Priority, &o.PracticeArea, &o.EstimatedCloseDate, &o.Notes, &o.MatterID,
		&o.CreatedAt, &o.UpdatedAt)
	return &o, err
}

// Create persiste una oportunidad.
func (r *OpportunityRepo) Create(ctx context.Context, o *entity.Opportunity) error {
	query := `
		INSERT INTO opportunities (id, firm_id, user_id, client_id, title, description, value, status,
			priority, practice_area, estimated_close_date, notes, matter_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.FirmID, o.UserID, nullIfEmpty(o.ClientID), o.Title, o.Description, o.Value, o.Status,
		o.Priority, o.PracticeArea, o.EstimatedCloseDate, o.Notes, nullIfEmpty(o.MatterID),
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("cliente inexistente: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert opportunity: %w", err)
	}
	return nil
}

// GetByID obtiene una oportunidad del despacho.
func (r *OpportunityRepo) GetByID(ctx context.Context, firmID, id string) (*entity.Opportunity, error) {
	o, err := scanOpportunity(r.q.QueryRow(ctx, opportunitySelect+` WHERE o.firm_id = $1 AND o.id = $2`, firmID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get opportunity: %w", err)
	}
	return o, nil
}

// List lista oportunidades recientes primero; Search cubre título, cliente y área de práctica.
func (r *OpportunityRepo) List(ctx context.Context, firmID string, f repository.OpportunityFilter) ([]*entity.Opportunity, error) {
	query := opportunitySelect + `
		WHERE o.firm_id = $1
		  AND ($2 = '' OR o.title ILIKE $2 OR c.name ILIKE $2 OR o.practice_area ILIKE $2)
		  AND ($3 = '' OR o.status = $3)
		ORDER BY o.created_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, firmID, likePattern(f.Search), string(f.Status), f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list opportunities: %w", err)
	}
	defer rows.Close()
	var list []*entity.Opportunity
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan opportunity: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// UpdateStatus persiste estado y matter_id solo si el estado guardado sigue siendo from.
// matter_id nil conserva el valor actual. Sin fila afectada devuelve domain.ErrConflict.
func (r *OpportunityRepo) UpdateStatus(ctx context.Context, o *entity.Opportunity, from entity.OpportunityStatus) error {
	query := `
		UPDATE opportunities SET status = $3, matter_id = COALESCE($4, matter_id), updated_at = $5
		WHERE firm_id = $1 AND id = $2 AND status = $6`
	tag, err := r.q.Exec(ctx, query, o.FirmID, o.ID, o.Status, nullIfEmpty(o.MatterID), o.UpdatedAt, from)
	if err != nil {
		return fmt.Errorf("update opportunity status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("oportunidad %s ya no está en %s: %w", o.ID, from, domain.ErrConflict)
	}
	return nil
}

// AddActivity añade una entrada al historial de estados.
func (r *OpportunityRepo) AddActivity(ctx context.Context, a *entity.OpportunityActivity) error {
	query := `
		INSERT INTO opportunity_activities (id, opportunity_id, status, action, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, a.ID, a.OpportunityID, a.Status, a.Action, a.CreatedAt); err != nil {
		return fmt.Errorf("insert opportunity activity: %w", err)
	}
	return nil
}

// ListActivities historial en orden cronológico.
func (r *OpportunityRepo) ListActivities(ctx context.Context, opportunityID string) ([]*entity.OpportunityActivity, error) {
	query := `
		SELECT id, opportunity_id, status, action, created_at
		FROM opportunity_activities WHERE opportunity_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, opportunityID)
	if err != nil {
		return nil, fmt.Errorf("list opportunity activities: %w", err)
	}
	defer rows.Close()
	var list []*entity.OpportunityActivity
	for rows.Next() {
		var a entity.OpportunityActivity
		if err := rows.Scan(&a.ID, &a.OpportunityID, &a.Status, &a.Action, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan opportunity activity: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Stats agregados del embudo en una sola consulta.
func (r *OpportunityRepo) Stats(ctx context.Context, firmID string) (repository.PipelineStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'active'),
			COALESCE(SUM(value) FILTER (WHERE status NOT IN ('won', 'lost')), 0),
			COUNT(*) FILTER (WHERE status = 'won'),
			COUNT(*) FILTER (WHERE status = 'lost')
		FROM opportunities WHERE firm_id = $1`
	var s repository.PipelineStats
	var open decimal.Decimal
	if err := r.q.QueryRow(ctx, query, firmID).Scan(&s.ActiveCount, &open, &s.WonCount, &s.LostCount); err != nil {
		return repository.PipelineStats{}, fmt.Errorf("opportunity stats: %w", err)
	}
	s.OpenValue = open
	return s, nil
}
