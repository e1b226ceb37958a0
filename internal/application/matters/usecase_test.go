package matters_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bufete-crm/internal/application/dto"
	"github.com/jhoicas/bufete-crm/internal/application/matters"
	"github.com/jhoicas/bufete-crm/internal/domain"
	"github.com/jhoicas/bufete-crm/internal/domain/entity"
	dommatters "github.com/jhoicas/bufete-crm/internal/domain/matters"
	"github.com/jhoicas/bufete-crm/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

const firmA = "firm-a"

type memMatters struct {
	mu   sync.Mutex
	rows map[string]*entity.Matter
}

func (m *memMatters) Create(_ context.Context, mt *entity.Matter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *mt
	m.rows[mt.ID] = &cp
	return nil
}

func (m *memMatters) GetByID(_ context.Context, firmID, id string) (*entity.Matter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mt, ok := m.rows[id]
	if !ok || mt.FirmID != firmID {
		return nil, nil
	}
	cp := *mt
	return &cp, nil
}

func (m *memMatters) List(_ context.Context, firmID string, _, _ int) ([]*entity.Matter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Matter
	for _, mt := range m.rows {
		if mt.FirmID == firmID {
			cp := *mt
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memMatters) UpdateStatus(_ context.Context, mt *entity.Matter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[mt.ID].Status = mt.Status
	return nil
}

type memTasks struct {
	mu        sync.Mutex
	matters   *memMatters
	rows      []*entity.Task
	entries   []*entity.TimeEntry
	failHours error
	batched   int
}

func (m *memTasks) Create(_ context.Context, t *entity.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memTasks) GetByID(ctx context.Context, firmID, id string) (*entity.Task, error) {
	m.mu.Lock()
	var found *entity.Task
	for _, t := range m.rows {
		if t.ID == id {
			cp := *t
			found = &cp
		}
	}
	m.mu.Unlock()
	if found == nil {
		return nil, nil
	}
	if mt, _ := m.matters.GetByID(ctx, firmID, found.MatterID); mt == nil {
		return nil, nil
	}
	return found, nil
}

func (m *memTasks) ListByMatter(_ context.Context, matterID string) ([]entity.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Task
	for _, t := range m.rows {
		if t.MatterID == matterID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memTasks) ListByMatters(ctx context.Context, ids []string) (map[string][]entity.Task, error) {
	m.batched++
	out := map[string][]entity.Task{}
	for _, id := range ids {
		ts, _ := m.ListByMatter(ctx, id)
		out[id] = ts
	}
	return out, nil
}

func (m *memTasks) set(t *entity.Task, fn func(row *entity.Task)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.ID == t.ID {
			fn(row)
		}
	}
}

func (m *memTasks) UpdateStatus(_ context.Context, t *entity.Task) error {
	m.set(t, func(row *entity.Task) { row.Status = t.Status })
	return nil
}

func (m *memTasks) AddActualHours(_ context.Context, taskID string, h decimal.Decimal, _ time.Time) (decimal.Decimal, error) {
	if m.failHours != nil {
		return decimal.Zero, m.failHours
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.ID == taskID {
			row.ActualHours = row.ActualHours.Add(h)
			return row.ActualHours, nil
		}
	}
	return decimal.Zero, domain.ErrNotFound
}

func (m *memTasks) AddTimeEntry(_ context.Context, e *entity.TimeEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

func (m *memTasks) ListTimeEntries(_ context.Context, taskID string) ([]*entity.TimeEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.TimeEntry
	for _, e := range m.entries {
		if e.TaskID == taskID {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeTx descarta los registros de tiempo insertados si fn falla.
// beforeRun, si está definido, se ejecuta una vez antes de abrir la transacción.
type fakeTx struct {
	tasks     *memTasks
	beforeRun func()
}

func (f *fakeTx) RunTimeLog(_ context.Context, fn func(repository.TaskRepository) error) error {
	if hook := f.beforeRun; hook != nil {
		f.beforeRun = nil
		hook()
	}
	before := len(f.tasks.entries)
	if err := fn(f.tasks); err != nil {
		f.tasks.entries = f.tasks.entries[:before]
		return err
	}
	return nil
}

type nilClients struct{ repository.ClientRepository }

func (nilClients) GetByID(context.Context, string, string) (*entity.Client, error) { return nil, nil }

type fakeReport struct{ summary dommatters.Summary }

func (f *fakeReport) GenerateMatterReport(_ context.Context, _ *entity.Matter, _ []entity.Task, s dommatters.Summary) ([]byte, error) {
	f.summary = s
	return []byte("%PDF"), nil
}

type fixture struct {
	uc      *matters.MatterUseCase
	tasks   *memTasks
	tx      *fakeTx
	reports *fakeReport
}

func newFixture() *fixture {
	ms := &memMatters{rows: map[string]*entity.Matter{}}
	ts := &memTasks{matters: ms}
	rep := &fakeReport{}
	tx := &fakeTx{tasks: ts}
	return &fixture{
		uc:      matters.NewMatterUseCase(ms, ts, nilClients{}, tx, rep),
		tasks:   ts,
		tx:      tx,
		reports: rep,
	}
}

func (f *fixture) matter(t *testing.T, name string) *dto.MatterResponse {
	t.Helper()
	m, err := f.uc.Create(context.Background(), firmA, "user-a", dto.CreateMatterRequest{Name: name})
	require.NoError(t, err)
	return m
}

func (f *fixture) task(t *testing.T, matterID, title string) *dto.TaskResponse {
	t.Helper()
	tk, err := f.uc.CreateTask(context.Background(), firmA, matterID, dto.CreateTaskRequest{Title: title})
	require.NoError(t, err)
	return tk
}

func hours(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Asuntos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ValoresPorDefecto(t *testing.T) {
	f := newFixture()
	m := f.matter(t, "Sucesión García")
	assert.Equal(t, "active", m.Status.Value)
	assert.Equal(t, "Activo", m.Status.Label)
	assert.NotEmpty(t, m.StartDate)
	assert.Equal(t, 0, m.Summary.TaskCount)
	assert.Equal(t, 0, m.Summary.ProgressPercent)
}

func TestCreate_ClienteInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), firmA, "u", dto.CreateMatterRequest{Name: "X", ClientID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_FechaObjetivoAnterior(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), firmA, "u", dto.CreateMatterRequest{
		Name: "X", StartDate: "2024-05-10", TargetCompletionDate: "2024-05-01",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGet_ResumenDerivadoDeTareas(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	m := f.matter(t, "X")
	t1 := f.task(t, m.ID, "Demanda")
	f.task(t, m.ID, "Pruebas")
	f.task(t, m.ID, "Alegatos")

	_, err := f.uc.UpdateTaskStatus(ctx, firmA, t1.ID, "completed")
	require.NoError(t, err)
	_, err = f.uc.LogTime(ctx, firmA, t1.ID, dto.LogTimeRequest{HoursSpent: hours("4.5"), UserName: "Ana"})
	require.NoError(t, err)

	got, err := f.uc.Get(ctx, firmA, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Summary.TaskCount)
	assert.Equal(t, 1, got.Summary.CompletedTasks)
	assert.Equal(t, 33, got.Summary.ProgressPercent)
	assert.True(t, got.Summary.TotalHours.Equal(hours("4.5")))
	assert.Len(t, got.Tasks, 3)
}

func TestList_CargaTareasEnLote(t *testing.T) {
	f := newFixture()
	a := f.matter(t, "A")
	f.matter(t, "B")
	f.task(t, a.ID, "T1")

	list, err := f.uc.List(context.Background(), firmA, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, f.tasks.batched)
	assert.Equal(t, 1, list[0].Summary.TaskCount)
	assert.Equal(t, 0, list[1].Summary.TaskCount)
}

func TestChangeStatus_Asunto(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	m := f.matter(t, "X")

	got, err := f.uc.ChangeStatus(ctx, firmA, m.ID, "on_hold")
	require.NoError(t, err)
	assert.Equal(t, "on_hold", got.Status.Value)

	_, err = f.uc.ChangeStatus(ctx, firmA, m.ID, "archivado")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tareas y horas
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateTask_Pendiente(t *testing.T) {
	f := newFixture()
	m := f.matter(t, "X")
	tk := f.task(t, m.ID, "Redactar demanda")
	assert.Equal(t, "pending", tk.Status.Value)
	assert.Equal(t, "medium", tk.Priority.Value)
	assert.True(t, tk.ActualHours.IsZero())
}

func TestCreateTask_AsuntoInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.uc.CreateTask(context.Background(), firmA, "nope", dto.CreateTaskRequest{Title: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogTime_AcumulaExacto(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	m := f.matter(t, "X")
	tk := f.task(t, m.ID, "T")

	_, err := f.uc.LogTime(ctx, firmA, tk.ID, dto.LogTimeRequest{HoursSpent: hours("4.5"), UserName: "Ana"})
	require.NoError(t, err)
	res, err := f.uc.LogTime(ctx, firmA, tk.ID, dto.LogTimeRequest{HoursSpent: hours("2.5"), UserName: "Luis"})
	require.NoError(t, err)

	assert.True(t, res.Task.ActualHours.Equal(hours("7")))
	assert.Equal(t, "Luis", res.Entry.UserName)

	entries, err := f.uc.ListTimeEntries(ctx, firmA, tk.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestLogTime_RegistrosSolapadosNoPierdenHoras(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	m := f.matter(t, "X")
	tk := f.task(t, m.ID, "T")

	// Otro registro se confirma entre la lectura de la tarea y la transacción.
	f.tx.beforeRun = func() {
		_, err := f.uc.LogTime(ctx, firmA, tk.ID, dto.LogTimeRequest{HoursSpent: hours("2"), UserName: "Luis"})
		require.NoError(t, err)
	}
	res, err := f.uc.LogTime(ctx, firmA, tk.ID, dto.LogTimeRequest{HoursSpent: hours("2"), UserName: "Ana"})
	require.NoError(t, err)
	assert.True(t, res.Task.ActualHours.Equal(hours("4")), "got %s", res.Task.ActualHours)

	sum := decimal.Zero
	for _, e := range f.tasks.entries {
		sum = sum.Add(e.HoursSpent)
	}
	got, err := f.tasks.GetByID(ctx, firmA, tk.ID)
	require.NoError(t, err)
	assert.Len(t, f.tasks.entries, 2)
	assert.True(t, got.ActualHours.Equal(sum), "actual_hours=%s suma=%s", got.ActualHours, sum)
}

func TestLogTime_FraccionesDeCentesima(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	m := f.matter(t, "X")
	tk := f.task(t, m.ID, "T")

	_, err := f.uc.LogTime(ctx, firmA, tk.ID, dto.LogTimeRequest{HoursSpent: hours("0.001"), UserName: "Ana"})
	require.NoError(t, err)
	res, err := f.uc.LogTime(ctx, firmA, tk.ID, dto.LogTimeRequest{HoursSpent: hours("2.555"), UserName: "Ana"})
	require.NoError(t, err)

	assert.True(t, res.Task.ActualHours.Equal(hours("2.556")), "got %s", res.Task.ActualHours)
	assert.True(t, res.Entry.HoursSpent.Equal(hours("2.555")))
}

func TestLogTime_HorasInvalidas(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	m := f.matter(t, "X")
	tk := f.task(t, m.ID, "T")

	for _, h := range []string{"0", "-1"} {
		_, err := f.uc.LogTime(ctx, firmA, tk.ID, dto.LogTimeRequest{HoursSpent: hours(h), UserName: "Ana"})
		assert.ErrorIs(t, err, domain.ErrInvalidHours, h)
	}
	assert.Empty(t, f.tasks.entries)
}

func TestLogTime_FalloTransaccionRevierte(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	m := f.matter(t, "X")
	tk := f.task(t, m.ID, "T")
	f.tasks.failHours = errors.New("db caída")

	_, err := f.uc.LogTime(ctx, firmA, tk.ID, dto.LogTimeRequest{HoursSpent: hours("1"), UserName: "Ana"})
	require.Error(t, err)
	assert.Empty(t, f.tasks.entries)
}

func TestUpdateTaskStatus_CualquierEstado(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	m := f.matter(t, "X")
	tk := f.task(t, m.ID, "T")

	for _, s := range []string{"completed", "pending", "review", "cancelled", "in_progress"} {
		got, err := f.uc.UpdateTaskStatus(ctx, firmA, tk.ID, s)
		require.NoError(t, err)
		assert.Equal(t, s, got.Status.Value)
	}
}

func TestReportPDF_UsaResumen(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	m := f.matter(t, "X")
	tk := f.task(t, m.ID, "T")
	_, err := f.uc.UpdateTaskStatus(ctx, firmA, tk.ID, "completed")
	require.NoError(t, err)

	pdf, err := f.uc.ReportPDF(ctx, firmA, m.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, 100, f.reports.summary.ProgressPercent)
}
