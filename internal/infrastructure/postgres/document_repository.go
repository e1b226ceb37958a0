package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bufete-crm/internal/domain"
	"github.com/jhoicas/bufete-crm/internal/domain/entity"
	"github.com/jhoicas/bufete-crm/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de DocumentRepository (usable con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, firm_id, client_id, user_id, name, file_path, file_size, file_type, expiration_date, created_at`

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	err := row.Scan(&d.ID, &d.FirmID, &d.ClientID, &d.UserID, &d.Name, &d.FilePath, &d.FileSize,
		&d.FileType, &d.ExpirationDate, &d.CreatedAt)
	return &d, err
}

// Create persiste los metadatos del documento.
func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	query := `INSERT INTO documents (` + documentColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.FirmID, d.ClientID, d.UserID, d.Name, d.FilePath, d.FileSize, d.FileType,
		d.ExpirationDate, d.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID obtiene un documento del despacho.
func (r *DocumentRepo) GetByID(ctx context.Context, firmID, id string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE firm_id = $1 AND id = $2`
	d, err := scanDocument(r.q.QueryRow(ctx, query, firmID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

// ListByClient documentos de un cliente, más recientes primero.
func (r *DocumentRepo) ListByClient(ctx context.Context, firmID, clientID string) ([]*entity.Document, error) {
	return r.list(ctx, `SELECT `+documentColumns+` FROM documents
		WHERE firm_id = $1 AND client_id = $2 ORDER BY created_at DESC`, firmID, clientID)
}

// ListExpiringBefore documentos con fecha de vencimiento anterior a before, el más urgente primero.
func (r *DocumentRepo) ListExpiringBefore(ctx context.Context, firmID string, before time.Time) ([]*entity.Document, error) {
	return r.list(ctx, `SELECT `+documentColumns+` FROM documents
		WHERE firm_id = $1 AND expiration_date IS NOT NULL AND expiration_date < $2
		ORDER BY expiration_date`, firmID, before)
}

func (r *DocumentRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Document, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Delete elimina los metadatos del documento.
func (r *DocumentRepo) Delete(ctx context.Context, firmID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM documents WHERE firm_id = $1 AND id = $2`, firmID, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
