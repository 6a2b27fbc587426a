// Package spreadsheet implementa los puertos del portal sobre un libro
// .xlsx con las mismas pestañas que la hoja de cálculo original:
// Users, SalesmenData, SUPdata, BSMdata y MasterData (fila 1 = encabezados).
//
// El libro se carga completo al abrir y las consultas se resuelven en
// memoria; los resúmenes por cliente usan la reducción en streaming de
// aggregate, con resultados idénticos al GROUP BY del almacén SQL.
package spreadsheet

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/sales-portal-api/internal/domain/aggregate"
	"github.com/jhoicas/sales-portal-api/internal/domain/entity"
	"github.com/jhoicas/sales-portal-api/internal/domain/hierarchy"
	"github.com/jhoicas/sales-portal-api/internal/domain/repository"
)

// Nombres exactos de las pestañas esperadas.
const (
	SheetUsers      = "Users"
	SheetSalesmen   = "SalesmenData"
	SheetSUP        = "SUPdata"
	SheetBSM        = "BSMdata"
	SheetMasterData = "MasterData"
)

var (
	_ repository.UserRepository      = (*Store)(nil)
	_ repository.DirectoryRepository = (*Store)(nil)
	_ repository.SalesRepository     = (*Store)(nil)
)

// Store almacén de solo lectura respaldado por un libro de cálculo.
type Store struct {
	users       []entity.User
	salesmen    []entity.Salesman
	supervisors []entity.Supervisor
	bsms        []entity.BSM
	master      []entity.MasterRow
}

// Open carga el libro desde disco.
func Open(path string) (*Store, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: abrir %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Load construye el almacén desde un libro ya abierto (usado por Open y por
// los tests, que arman el libro en memoria).
func Load(f *excelize.File) (*Store, error) {
	s := &Store{}

	if err := eachRecord(f, SheetUsers, func(rec record) {
		s.users = append(s.users, entity.User{
			Code: rec.code("User Code"),
			Name: rec.text("User Name"),
			Role: rec.text("Role"),
		})
	}); err != nil {
		return nil, err
	}

	if err := eachRecord(f, SheetSalesmen, func(rec record) {
		s.salesmen = append(s.salesmen, entity.Salesman{
			Code:       rec.code("Salesman Code"),
			Name:       rec.text("Salesman Name"),
			AssignedTo: entity.Assignment{Code: rec.code("Assigned SUP")},
			RouteCode:  rec.code("Route Code"),
			Branch:     rec.text("Branch"),
			TargetCY:   rec.number("Target CY"),
			ActualCY:   rec.number("ACT-CY"),
		})
	}); err != nil {
		return nil, err
	}

	if err := eachRecord(f, SheetSUP, func(rec record) {
		s.supervisors = append(s.supervisors, entity.Supervisor{
			Code:        rec.code("Supervisor Code"),
			Name:        rec.text("Supervisor Name"),
			AssignedBSM: rec.code("AssignedBSM"),
			Branch:      rec.text("Branch"),
		})
	}); err != nil {
		return nil, err
	}

	if err := eachRecord(f, SheetBSM, func(rec record) {
		s.bsms = append(s.bsms, entity.BSM{
			Code:   rec.code("BSM Code"),
			Name:   rec.text("BSM Name"),
			Region: rec.text("Region"),
		})
	}); err != nil {
		return nil, err
	}

	if err := eachRecord(f, SheetMasterData, func(rec record) {
		s.master = append(s.master, entity.MasterRow{
			SalesmanCode:   rec.code("Salesman Code"),
			SupervisorCode: rec.code("Supervisor Code"),
			CustomerCode:   rec.code("Customer Code"),
			CustomerName:   rec.text("Customer"),
			RouteCode:      rec.code("Route Code"),
			Sector:         rec.text("Sector"),
			Class:          rec.text("Class"),
			Region:         rec.text("Region"),
			Branch:         rec.text("Branch"),
			Brand:          rec.text("Brand"),
			ProductGroup:   rec.text("Product Group"),
			SubBrand:       rec.text("Sub Brand"),
			Product:        rec.text("Product"),
			Date:           rec.date("Date"),
			L3S:            rec.number("L3S"),
			L6S:            rec.number("L6S"),
			AchCY:          rec.number("ACH CY (P)"),
			AchLY:          rec.number("ACH LY (P)"),
			ActualCY:       rec.number("ACT-CY"),
			ActualLY:       rec.number("ACT-LY"),
		})
	}); err != nil {
		return nil, err
	}

	return s, nil
}

// ── UserRepository ────────────────────────────────────────────────────────────

func (s *Store) GetByCode(_ context.Context, code string) (*entity.User, error) {
	want := hierarchy.NormalizeCode(code)
	if want == "" {
		return nil, nil
	}
	for _, u := range s.users {
		if hierarchy.NormalizeCode(u.Code) == want {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (s *Store) List(_ context.Context) ([]entity.User, error) {
	out := make([]entity.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

// ── DirectoryRepository ───────────────────────────────────────────────────────

func (s *Store) SalesmenByCode(_ context.Context, code string) ([]entity.Salesman, error) {
	want := hierarchy.NormalizeCode(code)
	if want == "" {
		return nil, nil
	}
	var out []entity.Salesman
	for _, sm := range s.salesmen {
		if hierarchy.NormalizeCode(sm.Code) == want {
			out = append(out, sm)
		}
	}
	return out, nil
}

func (s *Store) SalesmenByAssigned(_ context.Context, codes []string) ([]entity.Salesman, error) {
	want := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		if n := hierarchy.NormalizeCode(c); n != "" {
			want[n] = struct{}{}
		}
	}
	if len(want) == 0 {
		return nil, nil
	}
	var out []entity.Salesman
	for _, sm := range s.salesmen {
		if _, ok := want[hierarchy.NormalizeCode(sm.AssignedTo.Code)]; ok {
			out = append(out, sm)
		}
	}
	return out, nil
}

func (s *Store) SupervisorsByBSM(_ context.Context, bsmCode string) ([]entity.Supervisor, error) {
	want := hierarchy.NormalizeCode(bsmCode)
	if want == "" {
		return nil, nil
	}
	var out []entity.Supervisor
	for _, sup := range s.supervisors {
		if hierarchy.NormalizeCode(sup.AssignedBSM) == want {
			out = append(out, sup)
		}
	}
	return out, nil
}

func (s *Store) BSMsByCode(_ context.Context, code string) ([]entity.BSM, error) {
	want := hierarchy.NormalizeCode(code)
	if want == "" {
		return nil, nil
	}
	var out []entity.BSM
	for _, b := range s.bsms {
		if hierarchy.NormalizeCode(b.Code) == want {
			out = append(out, b)
		}
	}
	return out, nil
}

// ── SalesRepository ───────────────────────────────────────────────────────────

// CustomerSummaries reducción en streaming sobre las filas del alcance:
// solo los resúmenes por cliente residen en memoria adicional.
func (s *Store) CustomerSummaries(_ context.Context, scope hierarchy.Scope) ([]entity.CustomerSummary, error) {
	if scope.Empty() {
		return []entity.CustomerSummary{}, nil
	}
	acc := aggregate.NewSummaryAccumulator()
	for _, row := range s.master {
		if scope.MatchesRow(row.SalesmanCode, row.SupervisorCode) {
			acc.Add(row)
		}
	}
	summaries := acc.Summaries()
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CustomerCode < summaries[j].CustomerCode
	})
	return summaries, nil
}

func (s *Store) CustomerDetail(_ context.Context, customerCode string, scope hierarchy.Scope) ([]entity.MasterRow, error) {
	if scope.Empty() {
		return []entity.MasterRow{}, nil
	}
	want := hierarchy.NormalizeCode(customerCode)
	if want == "" {
		return []entity.MasterRow{}, nil
	}
	result := []entity.MasterRow{}
	for _, row := range s.master {
		if hierarchy.NormalizeCode(row.CustomerCode) != want {
			continue
		}
		if !scope.MatchesRow(row.SalesmanCode, row.SupervisorCode) {
			continue
		}
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Brand != b.Brand {
			return a.Brand < b.Brand
		}
		return a.Product < b.Product
	})
	return result, nil
}

// ── Lectura del libro ─────────────────────────────────────────────────────────

// record fila de una pestaña con acceso por nombre de encabezado.
type record struct {
	header map[string]int
	cells  []string
}

func (r record) raw(col string) string {
	i, ok := r.header[col]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return r.cells[i]
}

func (r record) text(col string) string { return strings.TrimSpace(r.raw(col)) }

func (r record) code(col string) string { return hierarchy.NormalizeCode(r.raw(col)) }

func (r record) number(col string) decimal.Decimal {
	v := r.text(col)
	if v == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// date acepta el formato yyyy-MM-dd de la hoja original; cualquier otra
// cosa queda como fecha cero (no rompe la carga).
func (r record) date(col string) time.Time {
	v := r.text(col)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "01-02-06", "1/2/06 15:04"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// eachRecord recorre las filas de datos de una pestaña. Una pestaña ausente
// se trata como vacía; filas completamente en blanco se descartan.
func eachRecord(f *excelize.File, sheet string, fn func(record)) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		var notExist excelize.ErrSheetNotExist
		if errors.As(err, &notExist) {
			return nil
		}
		return fmt.Errorf("spreadsheet: leer pestaña %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil
	}

	header := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		header[strings.TrimSpace(h)] = i
	}

	for _, cells := range rows[1:] {
		hasData := false
		for _, c := range cells {
			if strings.TrimSpace(c) != "" {
				hasData = true
				break
			}
		}
		if !hasData {
			continue
		}
		fn(record{header: header, cells: cells})
	}
	return nil
}
