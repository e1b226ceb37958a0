package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/bufete-crm/docs" // registra la especificación en swag
	"github.com/jhoicas/bufete-crm/internal/application/analytics"
	"github.com/jhoicas/bufete-crm/internal/application/auth"
	"github.com/jhoicas/bufete-crm/internal/application/crm"
	"github.com/jhoicas/bufete-crm/internal/application/documents"
	"github.com/jhoicas/bufete-crm/internal/application/matters"
	"github.com/jhoicas/bufete-crm/internal/application/usecase"
	infrapdf "github.com/jhoicas/bufete-crm/internal/infrastructure/pdf"
	"github.com/jhoicas/bufete-crm/internal/infrastructure/postgres"
	"github.com/jhoicas/bufete-crm/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/bufete-crm/internal/interfaces/http"
	"github.com/jhoicas/bufete-crm/pkg/config"
	"github.com/jhoicas/bufete-crm/pkg/logger"
	"github.com/jhoicas/bufete-crm/pkg/money"
)

// @title                       Bufete CRM API
// @version                     1.0
// @description                 CRM para despachos de abogados.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.Migrate {
		if err := postgres.Migrate(ctx, pool, log.Component("migrate").Zerolog()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	amounts, err := money.NewFormatter(cfg.App.Currency)
	if err != nil {
		log.Fatal().Err(err).Msg("APP_CURRENCY")
	}

	fileStore, err := storage.NewOsFileStore(cfg.Documents.StorageDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Documents.StorageDir).Msg("almacenamiento de documentos")
	}

	firmRepo := postgres.NewFirmRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	oppRepo := postgres.NewOpportunityRepository(pool)
	matterRepo := postgres.NewMatterRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	firmUC := usecase.NewFirmUseCase(firmRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	authUC := auth.NewAuthUseCase(userRepo, firmRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	clientUC := crm.NewClientUseCase(clientRepo)
	opportunityUC := crm.NewOpportunityUseCase(oppRepo, clientRepo, txRunner, amounts)

	// PDF: informe de avance de asuntos
	reportGenerator := infrapdf.NewMatterReportGenerator(cfg.App.Name)
	matterUC := matters.NewMatterUseCase(matterRepo, taskRepo, clientRepo, txRunner, reportGenerator)

	documentUC := documents.NewDocumentUseCase(documentRepo, clientRepo, fileStore,
		documents.WithWarningWindow(cfg.Documents.WarningWindowDays),
		documents.WithMaxBytes(int64(cfg.Documents.MaxUploadMB)<<20),
	)
	dashboardUC := analytics.NewDashboardUseCase(clientRepo, oppRepo, documentUC, amounts)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    (cfg.Documents.MaxUploadMB + 1) << 20,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http").Zerolog()))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bufete CRM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		FirmUC:        firmUC,
		UserUC:        userUC,
		AuthUC:        authUC,
		ClientUC:      clientUC,
		OpportunityUC: opportunityUC,
		MatterUC:      matterUC,
		DocumentUC:    documentUC,
		DashboardUC:   dashboardUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
