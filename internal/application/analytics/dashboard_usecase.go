// Package analytics contiene el caso de uso del dashboard del despacho.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/bufete-crm/internal/application/crm"
	"github.com/jhoicas/bufete-crm/internal/application/dto"
	"github.com/jhoicas/bufete-crm/internal/domain/pipeline"
	"github.com/jhoicas/bufete-crm/internal/domain/repository"
)

const dashboardRecentOpportunities = 5 // oportunidades en el widget "recientes"

// ExpiringCounter cuenta documentos vencidos o por vencer (implementado por documents.DocumentUseCase).
type ExpiringCounter interface {
	CountExpiring(ctx context.Context, firmID string) (int, error)
}

// DashboardUseCase genera el resumen del despacho.
//
// Fuentes: ClientRepository, OpportunityRepository (read-only) y el contador de documentos.
type DashboardUseCase struct {
	clientRepo repository.ClientRepository
	oppRepo    repository.OpportunityRepository
	expiring   ExpiringCounter
	amounts    crm.AmountFormatter
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	clientRepo repository.ClientRepository,
	oppRepo repository.OpportunityRepository,
	expiring ExpiringCounter,
	amounts crm.AmountFormatter,
) *DashboardUseCase {
	return &DashboardUseCase{clientRepo: clientRepo, oppRepo: oppRepo, expiring: expiring, amounts: amounts}
}

// GetSummary construye el DashboardSummaryDTO del despacho.
//
// Cuatro llamadas en paralelo:
//  1. Count(clientes)
//  2. Stats(embudo)          → activas, valor abierto, ganadas/perdidas
//  3. List(recientes, top 5)
//  4. CountExpiring(documentos)
func (uc *DashboardUseCase) GetSummary(ctx context.Context, firmID string) (*dto.DashboardSummaryDTO, error) {
	type countResult struct {
		n   int
		err error
	}
	type statsResult struct {
		stats repository.PipelineStats
		err   error
	}
	type recentResult struct {
		items []dto.OpportunityResponse
		err   error
	}

	clientsCh := make(chan countResult, 1)
	statsCh := make(chan statsResult, 1)
	recentCh := make(chan recentResult, 1)
	docsCh := make(chan countResult, 1)

	go func() {
		n, err := uc.clientRepo.Count(ctx, firmID)
		clientsCh <- countResult{n, err}
	}()
	go func() {
		s, err := uc.oppRepo.Stats(ctx, firmID)
		statsCh <- statsResult{s, err}
	}()
	go func() {
		list, err := uc.oppRepo.List(ctx, firmID, repository.OpportunityFilter{Limit: dashboardRecentOpportunities})
		if err != nil {
			recentCh <- recentResult{err: err}
			return
		}
		items := make([]dto.OpportunityResponse, 0, len(list))
		for _, o := range list {
			items = append(items, crm.ToOpportunityResponse(o, uc.amounts))
		}
		recentCh <- recentResult{items: items}
	}()
	go func() {
		n, err := uc.expiring.CountExpiring(ctx, firmID)
		docsCh <- countResult{n, err}
	}()

	clients := <-clientsCh
	stats := <-statsCh
	recent := <-recentCh
	docs := <-docsCh

	if clients.err != nil {
		return nil, fmt.Errorf("dashboard: clientes: %w", clients.err)
	}
	if stats.err != nil {
		return nil, fmt.Errorf("dashboard: embudo: %w", stats.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: oportunidades recientes: %w", recent.err)
	}
	if docs.err != nil {
		return nil, fmt.Errorf("dashboard: documentos: %w", docs.err)
	}

	out := &dto.DashboardSummaryDTO{
		TotalClients:        clients.n,
		ActiveOpportunities: stats.stats.ActiveCount,
		PipelineValue:       stats.stats.OpenValue.Round(2),
		ConversionRate:      pipeline.ConversionRate(stats.stats.WonCount, stats.stats.LostCount),
		ExpiringDocuments:   docs.n,
		RecentOpportunities: recent.items,
		DateLabel:           monthLabel(time.Now()),
	}
	if uc.amounts != nil {
		out.PipelineValueFormatted = uc.amounts.Format(out.PipelineValue)
	}
	return out, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
