package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-curves/internal/application/auth"
	"github.com/jhoicas/retail-curves/internal/application/catalog"
	"github.com/jhoicas/retail-curves/internal/application/navidad"
	"github.com/jhoicas/retail-curves/internal/application/report"
	"github.com/jhoicas/retail-curves/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	Imports   *navidad.ImportService
	Catalog   *catalog.Service
	Reports   *report.Service
	JWTSecret string
	UploadDir string
	ChunkSize int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", Health)

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleAnalyst)

	protected.Post("/users", adminOnly, authHandler.CreateUser)

	// Importaciones
	importHandler := NewImportHandler(deps.Imports, deps.UploadDir, deps.ChunkSize)
	protected.Post("/imports/navidad", adminOnly, importHandler.Upload)
	protected.Get("/imports", anyRole, importHandler.List)
	protected.Get("/imports/:id", anyRole, importHandler.GetByID)
	protected.Get("/imports/:id/pdf", anyRole, importHandler.Receipt)

	// Maestros
	catalogHandler := NewCatalogHandler(deps.Catalog)
	protected.Get("/regions", anyRole, catalogHandler.Regions)
	protected.Get("/zones", anyRole, catalogHandler.Zones)
	protected.Get("/stores/info", anyRole, catalogHandler.StoreInfo)
	protected.Get("/stores", anyRole, catalogHandler.Stores)
	protected.Get("/families", anyRole, catalogHandler.Families)

	// Curvas
	reportHandler := NewReportHandler(deps.Reports)
	protected.Get("/stock/curves", anyRole, reportHandler.StockCurves)
	protected.Get("/sales/curves", anyRole, reportHandler.SalesCurves)
}

// Health godoc
// @Summary  Estado del servicio
// @Tags     health
// @Produce  json
// @Success  200  {object}  map[string]string
// @Router   /health [get]
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
