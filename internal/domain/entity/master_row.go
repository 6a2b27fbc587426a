package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MasterRow una fila de hechos de venta (MasterData). Cardinalidad alta:
// cientos de miles de filas; nunca se materializa el conjunto completo en
// memoria, solo filas de un cliente o agregados por cliente.
//
// SalesmanCode puede venir vacío cuando la fila está atribuida directamente
// a un BSM a través de SupervisorCode.
type MasterRow struct {
	SalesmanCode   string
	SupervisorCode string
	CustomerCode   string
	CustomerName   string
	RouteCode      string
	Sector         string
	Class          string
	Region         string
	Branch         string
	Brand          string
	ProductGroup   string
	SubBrand       string
	Product        string
	Date           time.Time

	L3S      decimal.Decimal
	L6S      decimal.Decimal
	AchCY    decimal.Decimal
	AchLY    decimal.Decimal
	ActualCY decimal.Decimal
	ActualLY decimal.Decimal
}
