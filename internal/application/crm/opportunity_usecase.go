package crm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bufete-crm/internal/application/dto"
	"github.com/jhoicas/bufete-crm/internal/domain"
	"github.com/jhoicas/bufete-crm/internal/domain/entity"
	"github.com/jhoicas/bufete-crm/internal/domain/pipeline"
	"github.com/jhoicas/bufete-crm/internal/domain/repository"
)

// OpportunityUseCase orquesta el embudo comercial: alta, consulta y cambios de estado.
//
// Las reglas de transición viven en domain/pipeline; este caso de uso solo persiste
// el resultado y, cuando la oportunidad se gana, crea el asunto en la misma transacción.
type OpportunityUseCase struct {
	repo       repository.OpportunityRepository
	clientRepo repository.ClientRepository
	tx         PipelineTxRunner
	amounts    AmountFormatter
}

// NewOpportunityUseCase construye el caso de uso.
func NewOpportunityUseCase(
	repo repository.OpportunityRepository,
	clientRepo repository.ClientRepository,
	tx PipelineTxRunner,
	amounts AmountFormatter,
) *OpportunityUseCase {
	return &OpportunityUseCase{repo: repo, clientRepo: clientRepo, tx: tx, amounts: amounts}
}

// Create registra una oportunidad. Title es obligatorio; status por defecto prospect,
// priority por defecto medium. No se puede crear directamente en un estado terminal.
func (uc *OpportunityUseCase) Create(ctx context.Context, firmID, userID string, in dto.CreateOpportunityRequest) (*dto.OpportunityResponse, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("title requerido: %w", domain.ErrInvalidInput)
	}
	status := entity.OpportunityProspect
	if in.Status != "" {
		s, err := pipeline.ParseOpportunityStatus(in.Status)
		if err != nil {
			return nil, err
		}
		if pipeline.IsTerminal(s) {
			return nil, fmt.Errorf("estado inicial %s: %w", s, domain.ErrInvalidInput)
		}
		status = s
	}
	priority, err := pipeline.ParsePriority(in.Priority)
	if err != nil {
		return nil, err
	}
	if in.Value != nil && in.Value.IsNegative() {
		return nil, fmt.Errorf("value negativo: %w", domain.ErrInvalidInput)
	}
	closeDate, err := dto.ParseDate(in.EstimatedCloseDate)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
	}

	now := time.Now()
	opp := &entity.Opportunity{
		ID:                 uuid.New().String(),
		FirmID:             firmID,
		UserID:             userID,
		Title:              title,
		Description:        in.Description,
		Value:              in.Value,
		Status:             status,
		Priority:           priority,
		PracticeArea:       in.PracticeArea,
		EstimatedCloseDate: closeDate,
		Notes:              in.Notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if in.ClientID != "" {
		client, err := uc.clientRepo.GetByID(ctx, firmID, in.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, fmt.Errorf("cliente %s: %w", in.ClientID, domain.ErrNotFound)
		}
		opp.ClientID = &client.ID
		opp.ClientName = client.Name
	}

	err = uc.tx.RunPipeline(ctx, func(oppRepo repository.OpportunityRepository, _ repository.MatterRepository) error {
		if err := oppRepo.Create(ctx, opp); err != nil {
			return err
		}
		return oppRepo.AddActivity(ctx, newActivity(opp.ID, opp.Status, now))
	})
	if err != nil {
		return nil, err
	}
	out := ToOpportunityResponse(opp, uc.amounts)
	return &out, nil
}

// Get devuelve la oportunidad con su historial y los siguientes estados permitidos.
func (uc *OpportunityUseCase) Get(ctx context.Context, firmID, id string) (*dto.OpportunityResponse, error) {
	opp, err := uc.load(ctx, firmID, id)
	if err != nil {
		return nil, err
	}
	acts, err := uc.repo.ListActivities(ctx, opp.ID)
	if err != nil {
		return nil, err
	}
	out := ToOpportunityResponse(opp, uc.amounts)
	for _, a := range acts {
		out.Activities = append(out.Activities, dto.ActivityDTO{Status: string(a.Status), Action: a.Action, Date: a.CreatedAt})
	}
	return &out, nil
}

// List lista oportunidades filtradas por texto y estado, con el valor total
// y el número de oportunidades activas del resultado.
func (uc *OpportunityUseCase) List(ctx context.Context, firmID, search, status string, page dto.PageRequest) (*dto.OpportunityListResponse, error) {
	page.DefaultPage()
	f := repository.OpportunityFilter{Search: strings.TrimSpace(search), Limit: page.Limit, Offset: page.Offset}
	if status != "" && status != "all" {
		s, err := pipeline.ParseOpportunityStatus(status)
		if err != nil {
			return nil, err
		}
		f.Status = s
	}
	list, err := uc.repo.List(ctx, firmID, f)
	if err != nil {
		return nil, err
	}
	out := &dto.OpportunityListResponse{
		Items:      make([]dto.OpportunityResponse, 0, len(list)),
		TotalValue: decimal.Zero,
		Page:       dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, o := range list {
		out.Items = append(out.Items, ToOpportunityResponse(o, uc.amounts))
		if o.Value != nil {
			out.TotalValue = out.TotalValue.Add(*o.Value)
		}
		if o.Status == entity.OpportunityActive {
			out.ActiveCount++
		}
	}
	if uc.amounts != nil {
		out.TotalValueFormatted = uc.amounts.Format(out.TotalValue)
	}
	return out, nil
}

// ChangeStatus aplica una transición del embudo. Si la transición indica
// ShouldCreateMatter, crea el asunto y lo enlaza a la oportunidad en la misma transacción.
// Devuelve domain.ErrIllegalTransition si target no es un siguiente estado válido.
func (uc *OpportunityUseCase) ChangeStatus(ctx context.Context, firmID, userID, id, target string) (*dto.StatusChangeResponse, error) {
	opp, err := uc.load(ctx, firmID, id)
	if err != nil {
		return nil, err
	}
	tr, err := pipeline.ApplyTransition(opp.Status, entity.OpportunityStatus(target))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	from := opp.Status
	opp.Status = tr.To
	opp.UpdatedAt = now
	var matter *entity.Matter
	if tr.ShouldCreateMatter {
		matter = matterFromOpportunity(opp, userID, now)
		opp.MatterID = &matter.ID
	}

	err = uc.tx.RunPipeline(ctx, func(oppRepo repository.OpportunityRepository, matterRepo repository.MatterRepository) error {
		if matter != nil {
			if err := matterRepo.Create(ctx, matter); err != nil {
				return fmt.Errorf("crear asunto: %w", err)
			}
		}
		if err := oppRepo.UpdateStatus(ctx, opp, from); err != nil {
			return err
		}
		return oppRepo.AddActivity(ctx, newActivity(opp.ID, tr.To, now))
	})
	if err != nil {
		return nil, err
	}

	out := &dto.StatusChangeResponse{Opportunity: ToOpportunityResponse(opp, uc.amounts)}
	if matter != nil {
		out.MatterCreated = true
		out.MatterID = matter.ID
	}
	return out, nil
}

func (uc *OpportunityUseCase) load(ctx context.Context, firmID, id string) (*entity.Opportunity, error) {
	opp, err := uc.repo.GetByID(ctx, firmID, id)
	if err != nil {
		return nil, err
	}
	if opp == nil {
		return nil, domain.ErrNotFound
	}
	return opp, nil
}

// matterFromOpportunity arma el asunto que nace de una oportunidad ganada.
func matterFromOpportunity(opp *entity.Opportunity, userID string, now time.Time) *entity.Matter {
	oppID := opp.ID
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	name := opp.Title
	if opp.ClientName != "" {
		name = opp.Title + " - " + opp.ClientName
	}
	return &entity.Matter{
		ID:            uuid.New().String(),
		FirmID:        opp.FirmID,
		UserID:        userID,
		ClientID:      opp.ClientID,
		ClientName:    opp.ClientName,
		OpportunityID: &oppID,
		Name:          name,
		Description:   opp.Description,
		Status:        entity.MatterActive,
		StartDate:     start,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func newActivity(oppID string, s entity.OpportunityStatus, at time.Time) *entity.OpportunityActivity {
	return &entity.OpportunityActivity{
		ID:            uuid.New().String(),
		OpportunityID: oppID,
		Status:        s,
		Action:        activityAction[s],
		CreatedAt:     at,
	}
}
