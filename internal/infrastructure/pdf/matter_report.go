// Package pdf genera el informe de avance de un asunto con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del asunto + cliente │ Estado + fechas        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Tareas | Completadas | Avance % | Horas            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Tarea | Estado | Prioridad | Asignada | Est. | Real  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: fecha de generación                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appmatters "github.com/jhoicas/bufete-crm/internal/application/matters"
	"github.com/jhoicas/bufete-crm/internal/domain/entity"
	"github.com/jhoicas/bufete-crm/internal/domain/matters"
	"github.com/jhoicas/bufete-crm/internal/domain/pipeline"
)

var _ appmatters.MatterReportGenerator = (*MatterReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 31, Green: 41, Blue: 84}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MatterReportGenerator implementa matters.MatterReportGenerator usando Maroto v2.
type MatterReportGenerator struct {
	firmName string
	now      func() time.Time
}

// NewMatterReportGenerator construye el generador; firmName aparece como autor del PDF.
func NewMatterReportGenerator(firmName string) *MatterReportGenerator {
	return &MatterReportGenerator{firmName: firmName, now: time.Now}
}

// GenerateMatterReport genera el PDF y devuelve sus bytes.
func (g *MatterReportGenerator) GenerateMatterReport(
	_ context.Context,
	m *entity.Matter,
	tasks []entity.Task,
	summary matters.Summary,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de asunto: "+m.Name, true).
		WithAuthor(g.firmName, true).
		Build()

	mt := maroto.New(cfg)

	mt.AddRows(headerRow(m))
	mt.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	mt.AddRows(summaryRow(summary))
	mt.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	mt.AddRows(tableHeaderRow())
	if len(tasks) == 0 {
		mt.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin tareas registradas.", props.Text{Size: 8, Top: 2, Color: colorGray}),
		)))
	}
	for _, r := range taskRows(tasks) {
		mt.AddRows(r)
	}

	mt.AddRows(line.NewRow(3))
	mt.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	mt.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Generado el "+g.now().Format("02/01/2006 15:04"), props.Text{
			Size: 7, Color: colorGray, Top: 1, Align: align.Right,
		}),
	)))

	doc, err := mt.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre + cliente (izq) y estado + fechas (der).
func headerRow(m *entity.Matter) core.Row {
	status, _ := matters.MatterLabel(m.Status)
	dates := "Inicio: " + m.StartDate.Format("02/01/2006")
	if m.TargetCompletionDate != nil {
		dates += "   Objetivo: " + m.TargetCompletionDate.Format("02/01/2006")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(m.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Cliente: "+nonEmpty(m.ClientName, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("INFORME DE ASUNTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(status.Label, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(dates, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// summaryRow: cuatro indicadores derivados de las tareas.
func summaryRow(s matters.Summary) core.Row {
	metric := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Top: 6, Align: align.Center}),
		)
	}
	return row.New(16).Add(
		metric("Tareas", fmt.Sprintf("%d", s.TaskCount)),
		metric("Completadas", fmt.Sprintf("%d", s.CompletedCount)),
		metric("Avance", fmt.Sprintf("%d%%", s.ProgressPercent)),
		metric("Horas (real / est.)", s.TotalActualHours.StringFixed(1)+" / "+s.TotalEstimatedHours.StringFixed(1)),
	)
}

// tableHeaderRow: cabecera de la tabla de tareas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Tarea", 4, align.Left),
		h("Estado", 2, align.Center),
		h("Prioridad", 1, align.Center),
		h("Asignada a", 3, align.Left),
		h("Est. h", 1, align.Right),
		h("Real h", 1, align.Right),
	)
}

// taskRows: una fila por tarea.
func taskRows(tasks []entity.Task) []core.Row {
	result := make([]core.Row, 0, len(tasks))
	for _, t := range tasks {
		status, _ := matters.TaskLabel(t.Status)
		prio, _ := pipeline.PriorityDisplay(t.Priority)
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(t.Title, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(status.Label, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(prio.Label, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(nonEmpty(t.AssignedTo, "—"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(optionalHours(t.EstimatedHours), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(t.ActualHours.StringFixed(1), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func optionalHours(h *decimal.Decimal) string {
	if h == nil {
		return "—"
	}
	return h.StringFixed(1)
}
