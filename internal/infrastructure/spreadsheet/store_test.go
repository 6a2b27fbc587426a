package spreadsheet_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/sales-portal-api/internal/domain/hierarchy"
	"github.com/jhoicas/sales-portal-api/internal/infrastructure/spreadsheet"
)

// buildWorkbook arma en memoria un libro con las cinco pestañas esperadas,
// con espacios sueltos en algunos códigos para ejercitar la normalización.
func buildWorkbook(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()

	sheets := map[string][][]any{
		spreadsheet.SheetUsers: {
			{"User Code", "User Name", "Role"},
			{" S1 ", "Vendedor Uno", "Salesman"},
			{"SUP1", "Supervisor Uno", "Supervisor"},
			{"B1", "BSM Uno", "BSM"},
		},
		spreadsheet.SheetSalesmen: {
			{"Salesman Code", "Salesman Name", "Assigned SUP", "Route Code", "Branch", "Target CY", "ACT-CY"},
			{"S1", "Vendedor Uno", "SUP1", "R1", "Centro", "1000", "800"},
			{"S2", "Vendedor Dos", " SUP1", "R2", "Centro", "900", "950"},
			{"S9", "Vendedor Directo", "B1", "R9", "Norte", "500", "100"},
		},
		spreadsheet.SheetSUP: {
			{"Supervisor Code", "Supervisor Name", "AssignedBSM", "Branch"},
			{"SUP1", "Supervisor Uno", "B1", "Centro"},
		},
		spreadsheet.SheetBSM: {
			{"BSM Code", "BSM Name", "Region"},
			{"B1", "BSM Uno", "Norte"},
		},
		spreadsheet.SheetMasterData: {
			{"Salesman Code", "Supervisor Code", "Customer Code", "Customer", "Route Code", "Brand", "Product", "Date", "ACT-CY", "ACT-LY"},
			{"S1", "SUP1", "A1", "Cliente A1", "R1", "MarcaX", "P1", "2026-02-10", "50", "40"},
			{"S1", "SUP1", " A1 ", "Cliente A1", "R1", "MarcaX", "P2", "2026-01-05", "60", "40"},
			{"S1", "SUP1", "A1", "Cliente A1", "R1", "MarcaY", "P3", "2026-02-10", "10", "20"},
			{"S2", "SUP1", "A2", "Cliente A2", "R2", "MarcaX", "P1", "2026-03-01", "30", "30"},
			{"", "B1", "A3", "Cliente A3", "", "MarcaZ", "P9", "2026-03-02", "5", "5"},
			{"", "", "", "", "", "", "", "", "", ""}, // fila en blanco: se descarta
		},
	}

	for name, rows := range sheets {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	return f
}

func loadStore(t *testing.T) *spreadsheet.Store {
	t.Helper()
	s, err := spreadsheet.Load(buildWorkbook(t))
	require.NoError(t, err)
	return s
}

func TestLoad_Usuarios(t *testing.T) {
	s := loadStore(t)

	u, err := s.GetByCode(context.Background(), "S1")
	require.NoError(t, err)
	require.NotNil(t, u, "el código con espacios en la hoja matchea normalizado")
	assert.Equal(t, "Vendedor Uno", u.Name)
	assert.Equal(t, "Salesman", u.Role)

	u, err = s.GetByCode(context.Background(), "NADIE")
	require.NoError(t, err)
	assert.Nil(t, u, "sin coincidencia devuelve nil, nil")

	all, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestLoad_Directorio(t *testing.T) {
	s := loadStore(t)
	ctx := context.Background()

	own, err := s.SalesmenByCode(ctx, "S1")
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.True(t, decimal.NewFromInt(800).Equal(own[0].ActualCY))

	bySup, err := s.SalesmenByAssigned(ctx, []string{"SUP1"})
	require.NoError(t, err)
	assert.Len(t, bySup, 2, "el 'Assigned SUP' con espacios igual matchea")

	vacio, err := s.SalesmenByAssigned(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, vacio, "lista de códigos vacía no devuelve todo")

	sups, err := s.SupervisorsByBSM(ctx, "B1")
	require.NoError(t, err)
	require.Len(t, sups, 1)
	assert.Equal(t, "SUP1", sups[0].Code)

	bsms, err := s.BSMsByCode(ctx, "B1")
	require.NoError(t, err)
	require.Len(t, bsms, 1)
	assert.Equal(t, "Norte", bsms[0].Region)
}

func TestCustomerSummaries_AlcanceDeVendedor(t *testing.T) {
	s := loadStore(t)

	scope := hierarchy.Scope{SalesmanCodes: []string{"S1"}}
	out, err := s.CustomerSummaries(context.Background(), scope)
	require.NoError(t, err)

	require.Len(t, out, 1)
	sum := out[0]
	assert.Equal(t, "A1", sum.CustomerCode)
	assert.True(t, decimal.NewFromInt(120).Equal(sum.TotalCY), "totalCY fue %s", sum.TotalCY)
	assert.True(t, decimal.NewFromInt(100).Equal(sum.TotalLY), "totalLY fue %s", sum.TotalLY)
	assert.True(t, decimal.NewFromInt(20).Equal(sum.VariancePct), "variancePct fue %s", sum.VariancePct)
	assert.Equal(t, 3, sum.RowCount)
}

func TestCustomerSummaries_AlcanceVacioNoDevuelveNada(t *testing.T) {
	s := loadStore(t)

	out, err := s.CustomerSummaries(context.Background(), hierarchy.Scope{})
	require.NoError(t, err)
	assert.Empty(t, out, "alcance vacío jamás agrega filas")
}

func TestCustomerSummaries_SinRestriccionOrdenadoPorCliente(t *testing.T) {
	s := loadStore(t)

	out, err := s.CustomerSummaries(context.Background(), hierarchy.Scope{Unrestricted: true})
	require.NoError(t, err)

	require.Len(t, out, 3)
	assert.Equal(t, "A1", out[0].CustomerCode)
	assert.Equal(t, "A2", out[1].CustomerCode)
	assert.Equal(t, "A3", out[2].CustomerCode)
}

func TestCustomerSummaries_VinculoDirectoDelBSM(t *testing.T) {
	s := loadStore(t)

	// Sin vendedores en el alcance pero con el vínculo directo: solo A3.
	scope := hierarchy.Scope{DirectBSMCode: "B1"}
	out, err := s.CustomerSummaries(context.Background(), scope)
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, "A3", out[0].CustomerCode)
}

func TestCustomerDetail_OrdenYAlcance(t *testing.T) {
	s := loadStore(t)

	scope := hierarchy.Scope{SalesmanCodes: []string{"S1"}}
	rows, err := s.CustomerDetail(context.Background(), " A1 ", scope)
	require.NoError(t, err)

	require.Len(t, rows, 3)
	// Orden (fecha, marca, producto): 2026-01-05 primero, luego las dos del
	// 2026-02-10 por marca.
	assert.Equal(t, "P2", rows[0].Product)
	assert.Equal(t, "MarcaX", rows[1].Brand)
	assert.Equal(t, "MarcaY", rows[2].Brand)
}

func TestCustomerDetail_FueraDelAlcance(t *testing.T) {
	s := loadStore(t)

	scope := hierarchy.Scope{SalesmanCodes: []string{"S1"}}
	rows, err := s.CustomerDetail(context.Background(), "A2", scope)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLoad_PestanaAusenteEsVacia(t *testing.T) {
	f := excelize.NewFile()
	// Libro recién creado: ninguna de las pestañas del portal existe.
	s, err := spreadsheet.Load(f)
	require.NoError(t, err)

	all, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}
