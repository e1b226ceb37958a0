package crm_test

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bufete-crm/internal/domain"
	"github.com/jhoicas/bufete-crm/internal/domain/entity"
	"github.com/jhoicas/bufete-crm/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memClients struct {
	mu   sync.Mutex
	rows map[string]*entity.Client
}

func newMemClients() *memClients { return &memClients{rows: map[string]*entity.Client{}} }

func (m *memClients) Create(_ context.Context, c *entity.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memClients) GetByID(_ context.Context, firmID, id string) (*entity.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok || c.FirmID != firmID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memClients) List(_ context.Context, firmID string, f repository.ClientFilter) ([]*entity.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := strings.ToLower(f.Search)
	var out []*entity.Client
	for _, c := range m.rows {
		if c.FirmID != firmID {
			continue
		}
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		hay := strings.ToLower(c.Name + " " + c.Email + " " + c.Company)
		if q != "" && !strings.Contains(hay, q) {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memClients) Update(_ context.Context, c *entity.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memClients) Count(_ context.Context, firmID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.rows {
		if c.FirmID == firmID {
			n++
		}
	}
	return n, nil
}

type memOpps struct {
	mu         sync.Mutex
	rows       map[string]*entity.Opportunity
	activities []*entity.OpportunityActivity
	failUpdate error
}

func newMemOpps() *memOpps { return &memOpps{rows: map[string]*entity.Opportunity{}} }

func (m *memOpps) Create(_ context.Context, o *entity.Opportunity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *o
	m.rows[o.ID] = &cp
	return nil
}

func (m *memOpps) GetByID(_ context.Context, firmID, id string) (*entity.Opportunity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.rows[id]
	if !ok || o.FirmID != firmID {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *memOpps) List(_ context.Context, firmID string, f repository.OpportunityFilter) ([]*entity.Opportunity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := strings.ToLower(f.Search)
	var out []*entity.Opportunity
	for _, o := range m.rows {
		if o.FirmID != firmID || (f.Status != "" && o.Status != f.Status) {
			continue
		}
		hay := strings.ToLower(o.Title + " " + o.ClientName + " " + o.PracticeArea)
		if q != "" && !strings.Contains(hay, q) {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memOpps) UpdateStatus(_ context.Context, o *entity.Opportunity, from entity.OpportunityStatus) error {
	if m.failUpdate != nil {
		return m.failUpdate
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[o.ID]
	if !ok {
		return errors.New("no existe")
	}
	if row.Status != from {
		return domain.ErrConflict
	}
	row.Status = o.Status
	row.MatterID = o.MatterID
	return nil
}

func (m *memOpps) AddActivity(_ context.Context, a *entity.OpportunityActivity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activities = append(m.activities, a)
	return nil
}

func (m *memOpps) ListActivities(_ context.Context, oppID string) ([]*entity.OpportunityActivity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.OpportunityActivity
	for _, a := range m.activities {
		if a.OpportunityID == oppID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memOpps) Stats(_ context.Context, firmID string) (repository.PipelineStats, error) {
	return repository.PipelineStats{OpenValue: decimal.Zero}, nil
}

type memMatters struct {
	mu   sync.Mutex
	rows []*entity.Matter
}

func (m *memMatters) Create(_ context.Context, mt *entity.Matter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, mt)
	return nil
}

func (m *memMatters) GetByID(_ context.Context, firmID, id string) (*entity.Matter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mt := range m.rows {
		if mt.ID == id && mt.FirmID == firmID {
			return mt, nil
		}
	}
	return nil, nil
}

func (m *memMatters) List(_ context.Context, firmID string, _, _ int) ([]*entity.Matter, error) {
	return m.rows, nil
}

func (m *memMatters) UpdateStatus(_ context.Context, _ *entity.Matter) error { return nil }

// fakeTx ejecuta fn sobre los repos en memoria; si fn falla descarta los
// asuntos creados dentro de la "transacción". beforeRun corre una sola vez.
type fakeTx struct {
	opps      *memOpps
	matters   *memMatters
	beforeRun func()
}

func (f *fakeTx) RunPipeline(ctx context.Context, fn func(repository.OpportunityRepository, repository.MatterRepository) error) error {
	if hook := f.beforeRun; hook != nil {
		f.beforeRun = nil
		hook()
	}
	before := len(f.matters.rows)
	if err := fn(f.opps, f.matters); err != nil {
		f.matters.rows = f.matters.rows[:before]
		return err
	}
	return nil
}

type plainAmounts struct{}

func (plainAmounts) Format(d decimal.Decimal) string { return "USD " + d.StringFixed(2) }
