package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bufete-crm/internal/application/analytics"
	"github.com/jhoicas/bufete-crm/internal/domain/entity"
	"github.com/jhoicas/bufete-crm/internal/domain/repository"
)

type stubClients struct {
	repository.ClientRepository
	n int
}

func (s stubClients) Count(context.Context, string) (int, error) { return s.n, nil }

type stubOpps struct {
	repository.OpportunityRepository
	stats    repository.PipelineStats
	recent   []*entity.Opportunity
	statsErr error
	limit    int
}

func (s *stubOpps) Stats(context.Context, string) (repository.PipelineStats, error) {
	return s.stats, s.statsErr
}

func (s *stubOpps) List(_ context.Context, _ string, f repository.OpportunityFilter) ([]*entity.Opportunity, error) {
	s.limit = f.Limit
	return s.recent, nil
}

type stubExpiring int

func (s stubExpiring) CountExpiring(context.Context, string) (int, error) { return int(s), nil }

func TestGetSummary_Agregados(t *testing.T) {
	opps := &stubOpps{
		stats: repository.PipelineStats{
			ActiveCount: 3,
			OpenValue:   decimal.RequireFromString("12500.555"),
			WonCount:    2,
			LostCount:   1,
		},
		recent: []*entity.Opportunity{
			{ID: "o1", Title: "A", Status: entity.OpportunityProspect, Priority: entity.PriorityHigh},
		},
	}
	uc := analytics.NewDashboardUseCase(stubClients{n: 7}, opps, stubExpiring(4), nil)

	out, err := uc.GetSummary(context.Background(), "firm-a")
	require.NoError(t, err)
	assert.Equal(t, 7, out.TotalClients)
	assert.Equal(t, 3, out.ActiveOpportunities)
	assert.True(t, out.PipelineValue.Equal(decimal.RequireFromString("12500.56")))
	assert.Equal(t, 67, out.ConversionRate)
	assert.Equal(t, 4, out.ExpiringDocuments)
	require.Len(t, out.RecentOpportunities, 1)
	assert.Equal(t, "Prospecto", out.RecentOpportunities[0].Status.Label)
	assert.Equal(t, 5, opps.limit)
	assert.NotEmpty(t, out.DateLabel)
}

func TestGetSummary_SinCerradasConversionCero(t *testing.T) {
	uc := analytics.NewDashboardUseCase(stubClients{}, &stubOpps{}, stubExpiring(0), nil)
	out, err := uc.GetSummary(context.Background(), "firm-a")
	require.NoError(t, err)
	assert.Equal(t, 0, out.ConversionRate)
	assert.Empty(t, out.RecentOpportunities)
}

func TestGetSummary_PropagaError(t *testing.T) {
	opps := &stubOpps{statsErr: errors.New("db caída")}
	uc := analytics.NewDashboardUseCase(stubClients{}, opps, stubExpiring(0), nil)
	_, err := uc.GetSummary(context.Background(), "firm-a")
	assert.ErrorContains(t, err, "embudo")
}
