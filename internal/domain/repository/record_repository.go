package repository

import (
	"context"
	"time"

	"github.com/jhoicas/retail-curves/internal/domain/entity"
)

// StockRecordRepository operaciones por lote sobre stock diario.
// Pensado para usarse dentro de la transacción de un chunk del cargador.
type StockRecordRepository interface {
	// FindExisting devuelve las claves existentes dentro del producto cartesiano
	// sucursales × familias × fechas.
	FindExisting(ctx context.Context, storeIDs, familyIDs []int64, dates []time.Time) ([]entity.RecordKey, error)
	BulkCreate(ctx context.Context, records []*entity.StockRecord) (int64, error)
	BulkUpdate(ctx context.Context, records []*entity.StockRecord) (int64, error)
}

// SalesRecordRepository operaciones por lote sobre ventas diarias.
type SalesRecordRepository interface {
	FindExisting(ctx context.Context, storeIDs, familyIDs []int64, dates []time.Time) ([]entity.RecordKey, error)
	BulkCreate(ctx context.Context, records []*entity.SalesRecord) (int64, error)
	BulkUpdate(ctx context.Context, records []*entity.SalesRecord) (int64, error)
}
