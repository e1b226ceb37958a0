package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/bufete-crm/internal/application/crm"
	"github.com/jhoicas/bufete-crm/internal/application/matters"
	"github.com/jhoicas/bufete-crm/internal/domain/repository"
)

var (
	_ crm.PipelineTxRunner    = (*TxRunner)(nil)
	_ matters.TimeLogTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunPipeline transacción con repos de oportunidades y asuntos (cambio de estado + creación de asunto).
func (r *TxRunner) RunPipeline(ctx context.Context, fn func(
	oppRepo repository.OpportunityRepository,
	matterRepo repository.MatterRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewOpportunityRepository(tx), NewMatterRepository(tx))
	})
}

// RunTimeLog transacción con el repo de tareas (registro de tiempo + horas acumuladas).
func (r *TxRunner) RunTimeLog(ctx context.Context, fn func(taskRepo repository.TaskRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewTaskRepository(tx))
	})
}

// run inicia la transacción, ejecuta fn y hace Commit; cualquier error provoca Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
