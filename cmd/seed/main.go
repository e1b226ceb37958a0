// seed crea un despacho de demostración con un usuario admin, clientes y oportunidades.
//
// Uso: go run ./cmd/seed [email-admin] [password-admin]
// Por defecto admin@demo.legal / demo-demo-123. Es idempotente por tax_id y email.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bufete-crm/internal/application/auth"
	"github.com/jhoicas/bufete-crm/internal/application/crm"
	"github.com/jhoicas/bufete-crm/internal/application/dto"
	"github.com/jhoicas/bufete-crm/internal/application/usecase"
	"github.com/jhoicas/bufete-crm/internal/domain"
	"github.com/jhoicas/bufete-crm/internal/domain/entity"
	"github.com/jhoicas/bufete-crm/internal/infrastructure/postgres"
	"github.com/jhoicas/bufete-crm/pkg/config"
	"github.com/jhoicas/bufete-crm/pkg/logger"
	"github.com/jhoicas/bufete-crm/pkg/money"
)

const demoTaxID = "DEMO-000001"

type demoClient struct {
	client dto.CreateClientRequest
	opp    dto.CreateOpportunityRequest
	moves  []string // transiciones a aplicar tras crear la oportunidad
}

var demoData = []demoClient{
	{
		client: dto.CreateClientRequest{Name: "María Fernández", Email: "maria@example.com", Company: "Fernández Importaciones"},
		opp:    dto.CreateOpportunityRequest{Title: "Constitución de sociedad", PracticeArea: "Corporativo", Priority: "high"},
		moves:  []string{"consultation", "proposal"},
	},
	{
		client: dto.CreateClientRequest{Name: "Jorge Ramírez", Phone: "+57 300 000 0000"},
		opp:    dto.CreateOpportunityRequest{Title: "Demanda laboral", PracticeArea: "Laboral"},
		moves:  []string{"won"},
	},
	{
		client: dto.CreateClientRequest{Name: "Inmobiliaria Los Andes", Company: "Los Andes S.A.S."},
		opp:    dto.CreateOpportunityRequest{Title: "Revisión de contratos de arriendo", PracticeArea: "Civil", Priority: "low"},
		moves:  []string{"lost"},
	},
}

func main() {
	email, password := "admin@demo.legal", "demo-demo-123"
	if len(os.Args) > 2 {
		email, password = os.Args[1], os.Args[2]
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool, log.Component("migrate").Zerolog()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	amounts, err := money.NewFormatter(cfg.App.Currency)
	if err != nil {
		log.Fatal().Err(err).Msg("APP_CURRENCY")
	}

	firmRepo := postgres.NewFirmRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	firmUC := usecase.NewFirmUseCase(firmRepo)
	authUC := auth.NewAuthUseCase(userRepo, firmRepo, auth.JWTConfig{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer})
	clientUC := crm.NewClientUseCase(clientRepo)
	oppUC := crm.NewOpportunityUseCase(postgres.NewOpportunityRepository(pool), clientRepo, postgres.NewTxRunner(pool), amounts)

	firm, err := firmUC.Create(ctx, dto.CreateFirmRequest{Name: "Despacho Demo", TaxID: demoTaxID, Email: email})
	if errors.Is(err, domain.ErrDuplicate) {
		log.Info().Str("tax_id", demoTaxID).Msg("el despacho demo ya existe, nada que hacer")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("crear despacho")
	}

	admin, err := authUC.RegisterUser(ctx, dto.RegisterRequest{
		Email: email, Password: password, FirmID: firm.ID, Name: "Administrador", Role: entity.RoleAdmin,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear usuario admin")
	}

	for i, d := range demoData {
		client, err := clientUC.Create(ctx, firm.ID, admin.ID, d.client)
		if err != nil {
			log.Fatal().Err(err).Str("client", d.client.Name).Msg("crear cliente")
		}
		value := decimal.NewFromInt(int64(5000 * (i + 1)))
		d.opp.ClientID = client.ID
		d.opp.Value = &value
		opp, err := oppUC.Create(ctx, firm.ID, admin.ID, d.opp)
		if err != nil {
			log.Fatal().Err(err).Str("opportunity", d.opp.Title).Msg("crear oportunidad")
		}
		for _, target := range d.moves {
			if _, err := oppUC.ChangeStatus(ctx, firm.ID, admin.ID, opp.ID, target); err != nil {
				log.Fatal().Err(err).Str("opportunity", opp.ID).Str("target", target).Msg("cambiar estado")
			}
		}
	}

	log.Info().
		Str("firm_id", firm.ID).
		Str("admin", admin.Email).
		Int("clients", len(demoData)).
		Msg("datos de demostración creados")
}
