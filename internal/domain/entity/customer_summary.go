package entity

import "github.com/shopspring/decimal"

// CustomerSummary agregado por cliente, derivado de MasterData; nunca se
// persiste. Los campos descriptivos (Customer, SalesmanCode, RouteCode,
// Sector, Class) se toman de una fila cualquiera del grupo: el desempate
// entre filas es no determinista y los consumidores no deben depender de él.
type CustomerSummary struct {
	CustomerCode string
	Customer     string
	SalesmanCode string
	RouteCode    string
	Sector       string
	Class        string

	TotalL3S   decimal.Decimal
	TotalL6S   decimal.Decimal
	TotalCY    decimal.Decimal
	TotalLY    decimal.Decimal
	TotalAchCY decimal.Decimal
	TotalAchLY decimal.Decimal

	RowCount    int
	VariancePct decimal.Decimal
}

// Variance calcula el porcentaje de variación CY vs LY, protegido contra
// división por cero: con LY en cero devuelve 0, nunca infinito ni NaN.
func Variance(totalCY, totalLY decimal.Decimal) decimal.Decimal {
	if totalLY.IsZero() {
		return decimal.Zero
	}
	return totalCY.Sub(totalLY).Div(totalLY).Mul(decimal.NewFromInt(100)).Round(2)
}
