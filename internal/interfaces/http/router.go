package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/LabOps-api/internal/application/auth"
	"github.com/jhoicas/LabOps-api/internal/application/importing"
	"github.com/jhoicas/LabOps-api/internal/application/reporting"
	"github.com/jhoicas/LabOps-api/internal/application/usecase"
	"github.com/jhoicas/LabOps-api/internal/application/workflow"
	"github.com/jhoicas/LabOps-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	OrganizationUC *usecase.OrganizationUseCase
	LocationUC     *usecase.LocationUseCase
	ContactUC      *usecase.ContactUseCase
	TestMethodUC   *usecase.TestMethodUseCase
	TestPanelUC    *usecase.TestPanelUseCase
	ProtocolUC     *usecase.ProtocolUseCase
	BatchUC        *usecase.BatchUseCase
	OrderUC        *usecase.OrderUseCase
	TransitionUC   *workflow.TransitionUseCase
	ScanUC         *workflow.ScanUseCase
	Importer       *importing.Importer
	Reports        *reporting.ReportUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público; registro abierto solo para el primer usuario)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", OptionalAuth(deps.JWTSecret), authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)
	protected.Get("/users", RequireRole(entity.RoleAdmin), authHandler.ListUsers)

	// Escritura de datos maestros: admin o supervisor
	editor := RequireRole(entity.RoleAdmin, entity.RoleSupervisor)

	orgHandler := NewOrganizationHandler(deps.OrganizationUC)
	orgs := protected.Group("/organizations")
	orgs.Get("/", orgHandler.List)
	orgs.Post("/", editor, orgHandler.Create)
	orgs.Get("/:id", orgHandler.GetByID)
	orgs.Put("/:id", editor, orgHandler.Update)
	orgs.Delete("/:id", editor, orgHandler.Delete)

	locHandler := NewLocationHandler(deps.LocationUC)
	locs := protected.Group("/locations")
	locs.Get("/", locHandler.List)
	locs.Post("/", editor, locHandler.Create)
	locs.Get("/:id", locHandler.GetByID)
	locs.Put("/:id", editor, locHandler.Update)
	locs.Delete("/:id", editor, locHandler.Delete)

	contactHandler := NewContactHandler(deps.ContactUC)
	contacts := protected.Group("/contacts")
	contacts.Get("/", contactHandler.List)
	contacts.Post("/", editor, contactHandler.Create)
	contacts.Get("/:id", contactHandler.GetByID)
	contacts.Put("/:id", editor, contactHandler.Update)
	contacts.Delete("/:id", editor, contactHandler.Delete)

	importHandler := NewImportHandler(deps.Importer)

	methodHandler := NewTestMethodHandler(deps.TestMethodUC)
	methods := protected.Group("/test-methods")
	methods.Get("/", methodHandler.List)
	methods.Post("/", editor, methodHandler.Create)
	methods.Post("/import", editor, importHandler.Catalog)
	methods.Get("/:id", methodHandler.GetByID)
	methods.Put("/:id", editor, methodHandler.Update)
	methods.Delete("/:id", editor, methodHandler.Delete)

	panelHandler := NewTestPanelHandler(deps.TestPanelUC)
	panels := protected.Group("/test-panels")
	panels.Get("/", panelHandler.List)
	panels.Post("/", editor, panelHandler.Create)
	panels.Get("/:id", panelHandler.GetByID)
	panels.Put("/:id", editor, panelHandler.Update)
	panels.Put("/:id/members", editor, panelHandler.SetMembers)
	panels.Delete("/:id", editor, panelHandler.Delete)

	protocolHandler := NewProtocolHandler(deps.ProtocolUC)
	protocols := protected.Group("/protocols")
	protocols.Get("/", protocolHandler.List)
	protocols.Post("/", editor, protocolHandler.Create)
	protocols.Get("/:id", protocolHandler.GetByID)
	protocols.Put("/:id", editor, protocolHandler.Update)
	protocols.Delete("/:id", editor, protocolHandler.Delete)
	protocols.Put("/:id/test-methods", editor, protocolHandler.SetTestMethods)
	protocols.Post("/:id/steps", editor, protocolHandler.AddStep)
	protocols.Put("/:id/steps/:stepId", editor, protocolHandler.UpdateStep)
	protocols.Delete("/:id/steps/:stepId", editor, protocolHandler.DeleteStep)

	// Lotes y flujo de trabajo: cualquier rol autenticado opera pasos
	batchHandler := NewBatchHandler(deps.BatchUC, deps.Reports)
	workflowHandler := NewWorkflowHandler(deps.TransitionUC, deps.ScanUC)
	batches := protected.Group("/batches")
	batches.Get("/", batchHandler.List)
	batches.Post("/", editor, batchHandler.Create)
	batches.Get("/:id", batchHandler.GetByID)
	batches.Put("/:id", editor, batchHandler.Update)
	batches.Delete("/:id", editor, batchHandler.Delete)
	batches.Post("/:id/orders", editor, batchHandler.AssignOrders)
	batches.Get("/:id/board", batchHandler.Board)
	batches.Get("/:id/board.xlsx", batchHandler.BoardXLSX)
	batches.Get("/:id/barcodes", batchHandler.Barcodes)
	batches.Get("/:id/barcodes.pdf", batchHandler.BarcodesPDF)
	batches.Post("/:id/steps/:stepId/start", workflowHandler.Start)
	batches.Post("/:id/steps/:stepId/stop", workflowHandler.Stop)
	protected.Post("/scan", workflowHandler.Scan)

	orderHandler := NewOrderHandler(deps.OrderUC, deps.Reports)
	orders := protected.Group("/orders")
	orders.Get("/", orderHandler.List)
	orders.Get("/export.xlsx", orderHandler.ExportXLSX)
	orders.Post("/", editor, orderHandler.Create)
	orders.Post("/import", editor, importHandler.Orders)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", editor, orderHandler.Update)
	orders.Delete("/:id", editor, orderHandler.Delete)
}
