package crm

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bufete-crm/internal/domain/repository"
)

// PipelineTxRunner ejecuta fn en una transacción con los repos de oportunidades y asuntos.
// Cambiar una oportunidad a "won" y crear su asunto debe ser atómico.
type PipelineTxRunner interface {
	RunPipeline(ctx context.Context, fn func(
		oppRepo repository.OpportunityRepository,
		matterRepo repository.MatterRepository,
	) error) error
}

// AmountFormatter formatea importes de honorarios (lo implementa *money.Formatter).
type AmountFormatter interface {
	Format(amount decimal.Decimal) string
}
