package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/LabOps-api/internal/application/importing"
	"github.com/jhoicas/LabOps-api/internal/application/workflow"
	"github.com/jhoicas/LabOps-api/internal/domain/repository"
)

var (
	_ workflow.TxRunner  = (*TxRunner)(nil)
	_ importing.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunWorkflow transacción de una transición start/stop: ejecuciones y lote atados a la tx.
func (r *TxRunner) RunWorkflow(ctx context.Context, fn func(
	execRepo repository.WorkflowExecutionRepository,
	batchRepo repository.BatchRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewWorkflowExecutionRepository(tx), NewBatchRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunImport transacción de escritura de una importación (órdenes o catálogo).
func (r *TxRunner) RunImport(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	methodRepo repository.TestMethodRepository,
	panelRepo repository.TestPanelRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewOrderRepository(tx), NewTestMethodRepository(tx), NewTestPanelRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
