package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/sales-portal-api/internal/domain/entity"
	"github.com/jhoicas/sales-portal-api/internal/domain/hierarchy"
	"github.com/jhoicas/sales-portal-api/internal/domain/repository"
)

var _ repository.SalesRepository = (*SalesRepo)(nil)

// SalesRepo consultas de solo lectura sobre master_data. Los resúmenes por
// cliente se agregan en SQL (GROUP BY), nunca cargando las filas crudas en
// memoria: la tabla puede superar las 800K filas.
type SalesRepo struct {
	session *Session
}

// NewSalesRepository construye el adaptador de ventas.
func NewSalesRepository(session *Session) *SalesRepo {
	return &SalesRepo{session: session}
}

// scopeClause construye el filtro WHERE del alcance con placeholders a
// partir de $start. Alcance vacío produce FALSE: la consulta no matchea
// nada (jamás se degrada a "sin filtro").
func scopeClause(scope hierarchy.Scope, start int) (string, []any) {
	if scope.Unrestricted {
		return "TRUE", nil
	}
	if scope.Empty() {
		return "FALSE", nil
	}
	var parts []string
	var args []any
	n := start
	if len(scope.SalesmanCodes) > 0 {
		parts = append(parts, fmt.Sprintf("BTRIM(salesman_code) = ANY($%d)", n))
		args = append(args, scope.SalesmanCodes)
		n++
	}
	if scope.DirectBSMCode != "" {
		parts = append(parts, fmt.Sprintf("BTRIM(supervisor_code) = BTRIM($%d)", n))
		args = append(args, scope.DirectBSMCode)
	}
	return strings.Join(parts, " OR "), args
}

// CustomerSummaries agrega master_data por cliente dentro del alcance.
// Los campos descriptivos usan MAX(): fila representativa arbitraria entre
// empates. El porcentaje de variación se calcula en Go sobre los totales.
func (r *SalesRepo) CustomerSummaries(ctx context.Context, scope hierarchy.Scope) ([]entity.CustomerSummary, error) {
	if scope.Empty() {
		return []entity.CustomerSummary{}, nil
	}
	pool, err := r.session.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("sales.CustomerSummaries: %w", err)
	}

	clause, args := scopeClause(scope, 1)
	query := fmt.Sprintf(`
	SELECT
	    BTRIM(customer_code)                        AS customer_code,
	    COALESCE(MAX(customer_name), '')            AS customer,
	    BTRIM(COALESCE(MAX(salesman_code), ''))     AS salesman_code,
	    BTRIM(COALESCE(MAX(route_code), ''))        AS route_code,
	    COALESCE(MAX(sector), '')                   AS sector,
	    COALESCE(MAX(class), '')                    AS class,
	    COALESCE(SUM(l3s),    0)                    AS total_l3s,
	    COALESCE(SUM(l6s),    0)                    AS total_l6s,
	    COALESCE(SUM(act_cy), 0)                    AS total_cy,
	    COALESCE(SUM(act_ly), 0)                    AS total_ly,
	    COALESCE(SUM(ach_cy), 0)                    AS total_ach_cy,
	    COALESCE(SUM(ach_ly), 0)                    AS total_ach_ly,
	    COUNT(*)                                    AS row_count
	FROM master_data
	WHERE (%s)
	GROUP BY BTRIM(customer_code)
	ORDER BY BTRIM(customer_code)`, clause)

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sales.CustomerSummaries: %w", err)
	}
	defer rows.Close()

	summaries := []entity.CustomerSummary{}
	for rows.Next() {
		var s entity.CustomerSummary
		var rowCount int64
		if err := rows.Scan(
			&s.CustomerCode, &s.Customer, &s.SalesmanCode, &s.RouteCode,
			&s.Sector, &s.Class,
			&s.TotalL3S, &s.TotalL6S, &s.TotalCY, &s.TotalLY,
			&s.TotalAchCY, &s.TotalAchLY,
			&rowCount,
		); err != nil {
			return nil, fmt.Errorf("sales.CustomerSummaries scan: %w", err)
		}
		s.RowCount = int(rowCount)
		s.VariancePct = entity.Variance(s.TotalCY, s.TotalLY)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sales.CustomerSummaries rows: %w", err)
	}
	return summaries, nil
}

// CustomerDetail filas completas de un cliente dentro del alcance,
// ordenadas por (fecha, marca, producto) para paginación estable.
func (r *SalesRepo) CustomerDetail(ctx context.Context, customerCode string, scope hierarchy.Scope) ([]entity.MasterRow, error) {
	if scope.Empty() {
		return []entity.MasterRow{}, nil
	}
	pool, err := r.session.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("sales.CustomerDetail: %w", err)
	}

	clause, args := scopeClause(scope, 2)
	query := fmt.Sprintf(`
	SELECT
	    BTRIM(COALESCE(salesman_code, ''))   AS salesman_code,
	    BTRIM(COALESCE(supervisor_code, '')) AS supervisor_code,
	    BTRIM(customer_code)                 AS customer_code,
	    COALESCE(customer_name, '')          AS customer_name,
	    BTRIM(COALESCE(route_code, ''))      AS route_code,
	    COALESCE(sector, '')                 AS sector,
	    COALESCE(class, '')                  AS class,
	    COALESCE(region, '')                 AS region,
	    COALESCE(branch, '')                 AS branch,
	    COALESCE(brand, '')                  AS brand,
	    COALESCE(product_group, '')          AS product_group,
	    COALESCE(sub_brand, '')              AS sub_brand,
	    COALESCE(product, '')                AS product,
	    day_date,
	    COALESCE(l3s,    0)                  AS l3s,
	    COALESCE(l6s,    0)                  AS l6s,
	    COALESCE(ach_cy, 0)                  AS ach_cy,
	    COALESCE(ach_ly, 0)                  AS ach_ly,
	    COALESCE(act_cy, 0)                  AS act_cy,
	    COALESCE(act_ly, 0)                  AS act_ly
	FROM master_data
	WHERE BTRIM(customer_code) = BTRIM($1) AND (%s)
	ORDER BY day_date, brand, product`, clause)

	queryArgs := append([]any{customerCode}, args...)
	rows, err := pool.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("sales.CustomerDetail: %w", err)
	}
	defer rows.Close()

	result := []entity.MasterRow{}
	for rows.Next() {
		var m entity.MasterRow
		if err := rows.Scan(
			&m.SalesmanCode, &m.SupervisorCode, &m.CustomerCode, &m.CustomerName,
			&m.RouteCode, &m.Sector, &m.Class, &m.Region, &m.Branch,
			&m.Brand, &m.ProductGroup, &m.SubBrand, &m.Product,
			&m.Date,
			&m.L3S, &m.L6S, &m.AchCY, &m.AchLY, &m.ActualCY, &m.ActualLY,
		); err != nil {
			return nil, fmt.Errorf("sales.CustomerDetail scan: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sales.CustomerDetail rows: %w", err)
	}
	return result, nil
}
