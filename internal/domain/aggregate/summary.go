// Package aggregate reduce filas de hechos a resúmenes por cliente en
// streaming. Es la alternativa en memoria al GROUP BY del almacén SQL y
// debe producir resultados idénticos sobre los mismos datos.
package aggregate

import (
	"github.com/jhoicas/sales-portal-api/internal/domain/entity"
	"github.com/jhoicas/sales-portal-api/internal/domain/hierarchy"
)

// SummaryAccumulator acumula una fila a la vez: solo mantiene en memoria un
// resumen por cliente, nunca las filas crudas. Los campos descriptivos se
// fijan con la primera fila vista de cada cliente (el desempate entre filas
// es no determinista, igual que el MAX() del camino SQL).
type SummaryAccumulator struct {
	order      []string
	byCustomer map[string]*entity.CustomerSummary
}

// NewSummaryAccumulator crea un acumulador vacío.
func NewSummaryAccumulator() *SummaryAccumulator {
	return &SummaryAccumulator{
		byCustomer: make(map[string]*entity.CustomerSummary),
	}
}

// Add incorpora una fila de hechos. Filas sin código de cliente se ignoran.
// Las medidas nulas ya llegan como cero (decimal.Zero): nunca se propaga
// null a una suma.
func (a *SummaryAccumulator) Add(row entity.MasterRow) {
	code := hierarchy.NormalizeCode(row.CustomerCode)
	if code == "" {
		return
	}

	s, ok := a.byCustomer[code]
	if !ok {
		s = &entity.CustomerSummary{
			CustomerCode: code,
			Customer:     row.CustomerName,
			SalesmanCode: hierarchy.NormalizeCode(row.SalesmanCode),
			RouteCode:    hierarchy.NormalizeCode(row.RouteCode),
			Sector:       row.Sector,
			Class:        row.Class,
		}
		a.byCustomer[code] = s
		a.order = append(a.order, code)
	}

	s.TotalL3S = s.TotalL3S.Add(row.L3S)
	s.TotalL6S = s.TotalL6S.Add(row.L6S)
	s.TotalCY = s.TotalCY.Add(row.ActualCY)
	s.TotalLY = s.TotalLY.Add(row.ActualLY)
	s.TotalAchCY = s.TotalAchCY.Add(row.AchCY)
	s.TotalAchLY = s.TotalAchLY.Add(row.AchLY)
	s.RowCount++
}

// Summaries cierra la reducción: calcula el porcentaje de variación de cada
// cliente y devuelve los resúmenes en orden de primera aparición.
func (a *SummaryAccumulator) Summaries() []entity.CustomerSummary {
	out := make([]entity.CustomerSummary, 0, len(a.order))
	for _, code := range a.order {
		s := *a.byCustomer[code]
		s.VariancePct = entity.Variance(s.TotalCY, s.TotalLY)
		out = append(out, s)
	}
	return out
}
