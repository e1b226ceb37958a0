package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bufete-crm/internal/domain"
	"github.com/jhoicas/bufete-crm/internal/domain/entity"
	"github.com/jhoicas/bufete-crm/internal/domain/repository"
)

var _ repository.MatterRepository = (*MatterRepo)(nil)

// MatterRepo implementación de MatterRepository (usable con pool o tx).
type MatterRepo struct {
	q Querier
}

// NewMatterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMatterRepository(q Querier) *MatterRepo {
	return &MatterRepo{q: q}
}

const matterSelect = `
	SELECT m.id, m.firm_id, m.user_id, m.client_id, COALESCE(c.name, ''), m.opportunity_id, m.name,
		m.description, m.status, m.start_date, m.target_completion_date, m.created_at, m.updated_at
	FROM matters m
	LEFT JOIN clients c ON c.id = m.client_id`

func scanMatter(row pgx.Row) (*entity.Matter, error) {
	var m entity.Matter
	err := row.Scan(&m.ID, &m.FirmID, &m.UserID, &m.ClientID, &m.ClientName, &m.OpportunityID, &m.Name,
		&m.Description, &m.Status, &m.StartDate, &m.TargetCompletionDate, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

// Create persiste un asunto. ErrDuplicate si ya existe uno para la misma oportunidad.
func (r *MatterRepo) Create(ctx context.Context, m *entity.Matter) error {
	query := `
		INSERT INTO matters (id, firm_id, user_id, client_id, opportunity_id, name, description, status,
			start_date, target_completion_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.FirmID, m.UserID, nullIfEmpty(m.ClientID), nullIfEmpty(m.OpportunityID), m.Name, m.Description,
		m.Status, m.StartDate, m.TargetCompletionDate, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert matter: %w", err)
	}
	return nil
}

// GetByID obtiene un asunto del despacho.
func (r *MatterRepo) GetByID(ctx context.Context, firmID, id string) (*entity.Matter, error) {
	m, err := scanMatter(r.q.QueryRow(ctx, matterSelect+` WHERE m.firm_id = $1 AND m.id = $2`, firmID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get matter: %w", err)
	}
	return m, nil
}

// List lista asuntos del despacho, más recientes primero.
func (r *MatterRepo) List(ctx context.Context, firmID string, limit, offset int) ([]*entity.Matter, error) {
	rows, err := r.q.Query(ctx, matterSelect+` WHERE m.firm_id = $1 ORDER BY m.created_at DESC LIMIT $2 OFFSET $3`,
		firmID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list matters: %w", err)
	}
	defer rows.Close()
	var list []*entity.Matter
	for rows.Next() {
		m, err := scanMatter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan matter: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// UpdateStatus persiste el estado del asunto.
func (r *MatterRepo) UpdateStatus(ctx context.Context, m *entity.Matter) error {
	tag, err := r.q.Exec(ctx, `UPDATE matters SET status = $3, updated_at = $4 WHERE firm_id = $1 AND id = $2`,
		m.FirmID, m.ID, m.Status, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update matter status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
