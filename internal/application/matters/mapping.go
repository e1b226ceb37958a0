package matters

import (
	"github.com/jhoicas/bufete-crm/internal/application/dto"
	"github.com/jhoicas/bufete-crm/internal/domain/entity"
	"github.com/jhoicas/bufete-crm/internal/domain/matters"
	"github.com/jhoicas/bufete-crm/internal/domain/pipeline"
)

func toMatterResponse(m *entity.Matter, tasks []entity.Task, withTasks bool) dto.MatterResponse {
	s := matters.Summarize(tasks)
	label, _ := matters.MatterLabel(m.Status)
	out := dto.MatterResponse{
		ID:                   m.ID,
		Name:                 m.Name,
		Description:          m.Description,
		ClientName:           m.ClientName,
		Status:               dto.StatusMeta{Value: string(m.Status), Label: label.Label, Color: label.Color},
		StartDate:            m.StartDate.Format(dto.DateLayout),
		TargetCompletionDate: dto.FormatDate(m.TargetCompletionDate),
		Summary: dto.MatterSummaryDTO{
			TaskCount:           s.TaskCount,
			CompletedTasks:      s.CompletedCount,
			TotalHours:          s.TotalActualHours,
			TotalEstimatedHours: s.TotalEstimatedHours,
			ProgressPercent:     s.ProgressPercent,
		},
		CreatedAt: m.CreatedAt,
	}
	if m.ClientID != nil {
		out.ClientID = *m.ClientID
	}
	if m.OpportunityID != nil {
		out.OpportunityID = *m.OpportunityID
	}
	if withTasks {
		out.Tasks = make([]dto.TaskResponse, 0, len(tasks))
		for _, t := range tasks {
			out.Tasks = append(out.Tasks, toTaskResponse(t))
		}
	}
	return out
}

func toTaskResponse(t entity.Task) dto.TaskResponse {
	status, _ := matters.TaskLabel(t.Status)
	prio, _ := pipeline.PriorityDisplay(t.Priority)
	return dto.TaskResponse{
		ID:             t.ID,
		MatterID:       t.MatterID,
		Title:          t.Title,
		Description:    t.Description,
		Status:         dto.StatusMeta{Value: string(t.Status), Label: status.Label, Color: status.Color},
		Priority:       dto.StatusMeta{Value: string(t.Priority), Label: prio.Label, Color: prio.Color},
		AssignedTo:     t.AssignedTo,
		EstimatedHours: t.EstimatedHours,
		ActualHours:    t.ActualHours,
		DueDate:        dto.FormatDate(t.DueDate),
	}
}

func toTimeEntryResponse(e *entity.TimeEntry) dto.TimeEntryResponse {
	return dto.TimeEntryResponse{
		ID:          e.ID,
		TaskID:      e.TaskID,
		UserName:    e.UserName,
		HoursSpent:  e.HoursSpent,
		Description: e.Description,
		EntryDate:   e.EntryDate.Format(dto.DateLayout),
	}
}
