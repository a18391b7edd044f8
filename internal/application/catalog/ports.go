package catalog

import (
	"context"

	"github.com/jhoicas/retail-curves/internal/domain/repository"
)

// TxRunner ejecuta una carga de maestros de forma atómica.
type TxRunner interface {
	RunCatalog(ctx context.Context, fn func(tx Tx) error) error
}

// Tx repositorios de maestros atados a una transacción.
type Tx interface {
	Regions() repository.RegionRepository
	Zones() repository.ZoneRepository
	Stores() repository.StoreRepository
	Families() repository.FamilyRepository
}
