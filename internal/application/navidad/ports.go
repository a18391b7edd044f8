package navidad

import (
	"context"

	"github.com/jhoicas/retail-curves/internal/domain/entity"
	domnavidad "github.com/jhoicas/retail-curves/internal/domain/navidad"
	"github.com/jhoicas/retail-curves/internal/domain/repository"
)

// SourceOpener abre una planilla para recorrerla en streaming.
// sheet puede ser un nombre o un índice base 0; vacío = primera hoja.
type SourceOpener interface {
	Open(path, sheet string) (domnavidad.RowSource, error)
}

// TxRunner abre la transacción que envuelve la importación de un archivo completo.
// Si fn devuelve error se hace Rollback de todo lo escrito.
type TxRunner interface {
	RunImport(ctx context.Context, fn func(tx ImportTx) error) error
}

// ImportTx repositorios atados a la transacción del archivo.
type ImportTx interface {
	Stores() repository.StoreRepository
	Families() repository.FamilyRepository
	// Chunk ejecuta fn en una transacción anidada (savepoint): si falla se deshace solo
	// el chunk y el error sube, abortando también la transacción externa.
	Chunk(ctx context.Context, fn func(
		stockRepo repository.StockRecordRepository,
		salesRepo repository.SalesRecordRepository,
	) error) error
}

// ReceiptGenerator genera el comprobante PDF de una corrida de importación.
type ReceiptGenerator interface {
	GenerateImportReceipt(ctx context.Context, run *entity.ImportRun) ([]byte, error)
}
