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

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, firm_id, user_id, name, email, phone, company, address, notes, status, created_at, updated_at`

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(&c.ID, &c.FirmID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.Company,
		&c.Address, &c.Notes, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.FirmID, c.UserID, c.Name, c.Email, c.Phone, c.Company, c.Address, c.Notes, c.Status,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente del despacho.
func (r *ClientRepo) GetByID(ctx context.Context, firmID, id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE firm_id = $1 AND id = $2`
	c, err := scanClient(r.q.QueryRow(ctx, query, firmID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// List lista clientes del despacho; Search busca sin distinguir mayúsculas en nombre, email y empresa.
func (r *ClientRepo) List(ctx context.Context, firmID string, f repository.ClientFilter) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients
		WHERE firm_id = $1
		  AND ($2 = '' OR name ILIKE $2 OR email ILIKE $2 OR company ILIKE $2)
		  AND ($3 = '' OR status = $3)
		ORDER BY name LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, firmID, likePattern(f.Search), f.Status, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza los datos editables del cliente.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	query := `
		UPDATE clients SET name = $3, email = $4, phone = $5, company = $6, address = $7,
			notes = $8, status = $9, updated_at = $10
		WHERE firm_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		c.FirmID, c.ID, c.Name, c.Email, c.Phone, c.Company, c.Address, c.Notes, c.Status, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count número de clientes del despacho.
func (r *ClientRepo) Count(ctx context.Context, firmID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM clients WHERE firm_id = $1`, firmID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return n, nil
}
