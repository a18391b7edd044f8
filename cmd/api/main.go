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

	"github.com/jhoicas/retail-curves/docs"
	"github.com/jhoicas/retail-curves/internal/application/auth"
	"github.com/jhoicas/retail-curves/internal/application/catalog"
	"github.com/jhoicas/retail-curves/internal/application/navidad"
	"github.com/jhoicas/retail-curves/internal/application/report"
	infrapdf "github.com/jhoicas/retail-curves/internal/infrastructure/pdf"
	"github.com/jhoicas/retail-curves/internal/infrastructure/postgres"
	"github.com/jhoicas/retail-curves/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/retail-curves/internal/interfaces/http"
	"github.com/jhoicas/retail-curves/pkg/config"
	"github.com/jhoicas/retail-curves/pkg/logger"
)

// @title                       Retail Curves API
// @version                     1.0
// @description                 Importación de planillas Navidad y curvas de temporada de stock y ventas.
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	if len(applied) > 0 {
		log.Info().Strs("migrations", applied).Msg("migraciones aplicadas")
	}

	season, err := report.ParseSeason(cfg.Season.Start, cfg.Season.End)
	if err != nil {
		log.Fatal().Err(err).Msg("ventana de temporada")
	}

	txRunner := postgres.NewTxRunner(pool)
	userRepo := postgres.NewUserRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	familyRepo := postgres.NewFamilyRepository(pool)
	runRepo := postgres.NewImportRunRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	loader := navidad.NewLoader(spreadsheet.NewOpener(), txRunner, log)
	importSvc := navidad.NewImportService(loader, runRepo, infrapdf.NewReceiptGenerator(), log)
	catalogSvc := catalog.NewService(
		txRunner,
		postgres.NewRegionRepository(pool),
		postgres.NewZoneRepository(pool),
		storeRepo,
		familyRepo,
		log,
	)
	reportSvc := report.NewService(reportRepo, storeRepo, season, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.Import.MaxUploadMB * 1024 * 1024,
		ReadTimeout:  time.Minute,
		WriteTimeout: 10 * time.Minute, // importaciones grandes
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		Imports:   importSvc,
		Catalog:   catalogSvc,
		Reports:   reportSvc,
		JWTSecret: cfg.JWT.Secret,
		UploadDir: cfg.Import.UploadDir,
		ChunkSize: cfg.Import.ChunkSize,
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
