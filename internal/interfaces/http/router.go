package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bufete-crm/internal/domain/entity"
)

// firmUseCase alta y consulta de despachos más el chequeo de despacho activo.
type firmUseCase interface {
	firmService
	firmChecker
}

// RouterDeps dependencias para el router. En producción son los casos de uso
// de internal/application; cada campo solo exige lo que usa su handler.
type RouterDeps struct {
	FirmUC        firmUseCase
	UserUC        userService
	AuthUC        authService
	ClientUC      clientService
	OpportunityUC opportunityService
	MatterUC      matterService
	DocumentUC    documentService
	DashboardUC   dashboardService
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Alta de despachos (público)
	firmHandler := NewFirmHandler(deps.FirmUC)
	api.Post("/firms", firmHandler.Create)

	// Rutas protegidas: token válido y despacho activo
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireActiveFirm(deps.FirmUC))
	partners := RequireRole(entity.RoleAdmin, entity.RoleSocio)

	protected.Get("/me", authHandler.Me)
	protected.Get("/firm", firmHandler.Current)

	// Clientes
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	documentHandler := NewDocumentHandler(deps.DocumentUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", partners, clientHandler.Deactivate)
	clients.Post("/:id/documents", documentHandler.Upload)
	clients.Get("/:id/documents", documentHandler.List)

	// Documentos
	docs := protected.Group("/documents")
	docs.Get("/expiring", documentHandler.Expiring)
	docs.Get("/:id/download", documentHandler.Download)
	docs.Delete("/:id", partners, documentHandler.Delete)

	// Oportunidades
	opps := protected.Group("/opportunities")
	oppHandler := NewOpportunityHandler(deps.OpportunityUC)
	opps.Get("/statuses", oppHandler.Statuses)
	opps.Post("/", oppHandler.Create)
	opps.Get("/", oppHandler.List)
	opps.Get("/:id", oppHandler.GetByID)
	opps.Patch("/:id/status", oppHandler.ChangeStatus)

	// Asuntos y tareas
	matterHandler := NewMatterHandler(deps.MatterUC)
	mattersGroup := protected.Group("/matters")
	mattersGroup.Post("/", matterHandler.Create)
	mattersGroup.Get("/", matterHandler.List)
	mattersGroup.Get("/:id", matterHandler.GetByID)
	mattersGroup.Patch("/:id/status", matterHandler.ChangeStatus)
	mattersGroup.Get("/:id/report.pdf", matterHandler.Report)
	mattersGroup.Post("/:id/tasks", matterHandler.CreateTask)

	tasks := protected.Group("/tasks")
	tasks.Patch("/:id/status", matterHandler.UpdateTaskStatus)
	tasks.Post("/:id/time-entries", matterHandler.LogTime)
	tasks.Get("/:id/time-entries", matterHandler.ListTimeEntries)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
}
