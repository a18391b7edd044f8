package main

import (
	"context"
	"os"

	"github.com/jhoicas/retail-curves/internal/application/auth"
	"github.com/jhoicas/retail-curves/internal/application/catalog"
	"github.com/jhoicas/retail-curves/internal/application/navidad"
	"github.com/jhoicas/retail-curves/internal/commands"
	infrapdf "github.com/jhoicas/retail-curves/internal/infrastructure/pdf"
	"github.com/jhoicas/retail-curves/internal/infrastructure/postgres"
	"github.com/jhoicas/retail-curves/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/retail-curves/pkg/config"
	"github.com/jhoicas/retail-curves/pkg/logger"
)

func main() {
	if err := commands.NewRootCommand(bootstrap).Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap conecta a PostgreSQL, aplica migraciones y arma los servicios.
func bootstrap(ctx context.Context) (*commands.Env, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.WithWriter(os.Stderr, cfg.App.LogLevel)

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	if _, err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}

	txRunner := postgres.NewTxRunner(pool)
	loader := navidad.NewLoader(spreadsheet.NewOpener(), txRunner, log)

	env := &commands.Env{
		Imports: navidad.NewImportService(loader, postgres.NewImportRunRepository(pool), infrapdf.NewReceiptGenerator(), log),
		Catalog: catalog.NewService(
			txRunner,
			postgres.NewRegionRepository(pool),
			postgres.NewZoneRepository(pool),
			postgres.NewStoreRepository(pool),
			postgres.NewFamilyRepository(pool),
			log,
		),
		Auth: auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}),
		Backup:    postgres.NewBackupSource(pool),
		ChunkSize: cfg.Import.ChunkSize,
	}
	return env, pool.Close, nil
}
