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

var _ repository.FirmRepository = (*FirmRepo)(nil)

// FirmRepo implementación de FirmRepository.
type FirmRepo struct {
	q Querier
}

// NewFirmRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFirmRepository(q Querier) *FirmRepo {
	return &FirmRepo{q: q}
}

const firmColumns = `id, name, tax_id, address, phone, email, status, created_at, updated_at`

// Create persiste un despacho. ErrDuplicate si el tax_id ya existe.
func (r *FirmRepo) Create(ctx context.Context, f *entity.Firm) error {
	query := `INSERT INTO firms (` + firmColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		f.ID, f.Name, f.TaxID, f.Address, f.Phone, f.Email, f.Status, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert firm: %w", err)
	}
	return nil
}

// GetByID obtiene un despacho por ID.
func (r *FirmRepo) GetByID(ctx context.Context, id string) (*entity.Firm, error) {
	return r.findOne(ctx, `SELECT `+firmColumns+` FROM firms WHERE id = $1`, id)
}

// GetByTaxID obtiene un despacho por NIT/CIF.
func (r *FirmRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.Firm, error) {
	return r.findOne(ctx, `SELECT `+firmColumns+` FROM firms WHERE tax_id = $1`, taxID)
}

func (r *FirmRepo) findOne(ctx context.Context, query, arg string) (*entity.Firm, error) {
	var f entity.Firm
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&f.ID, &f.Name, &f.TaxID, &f.Address, &f.Phone, &f.Email, &f.Status, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get firm: %w", err)
	}
	return &f, nil
}
