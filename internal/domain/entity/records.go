package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordKey clave natural de los registros diarios: (sucursal, familia, día).
type RecordKey struct {
	StoreID  int64
	FamilyID int64
	Date     time.Time
}

// StockRecord stock final de una familia en una sucursal para un día.
type StockRecord struct {
	ID         int64
	StoreID    int64
	FamilyID   int64
	Date       time.Time
	StockUnits decimal.Decimal
	StockValue *decimal.Decimal
}

// Key devuelve la clave natural del registro.
func (r *StockRecord) Key() RecordKey {
	return RecordKey{StoreID: r.StoreID, FamilyID: r.FamilyID, Date: r.Date}
}

// SalesRecord unidades vendidas de una familia en una sucursal para un día.
// Nunca existe para un CDR ni con unidades <= 0.
type SalesRecord struct {
	ID        int64
	StoreID   int64
	FamilyID  int64
	Date      time.Time
	UnitsSold decimal.Decimal
	Revenue   *decimal.Decimal
}

// Key devuelve la clave natural del registro.
func (r *SalesRecord) Key() RecordKey {
	return RecordKey{StoreID: r.StoreID, FamilyID: r.FamilyID, Date: r.Date}
}
