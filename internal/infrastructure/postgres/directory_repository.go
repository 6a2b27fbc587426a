package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sales-portal-api/internal/domain/entity"
	"github.com/jhoicas/sales-portal-api/internal/domain/hierarchy"
	"github.com/jhoicas/sales-portal-api/internal/domain/repository"
)

var _ repository.DirectoryRepository = (*DirectoryRepo)(nil)

// DirectoryRepo consultas de solo lectura sobre las tablas de jerarquía
// (salesmen_data, sup_data, bsm_data).
type DirectoryRepo struct {
	session *Session
}

// NewDirectoryRepository construye el adaptador de jerarquía.
func NewDirectoryRepository(session *Session) *DirectoryRepo {
	return &DirectoryRepo{session: session}
}

const salesmanColumns = `
	BTRIM(salesman_code),
	COALESCE(salesman_name, ''),
	BTRIM(COALESCE(assigned_sup, '')),
	BTRIM(COALESCE(route_code, '')),
	COALESCE(branch, ''),
	COALESCE(target_cy, 0),
	COALESCE(act_cy, 0)`

func scanSalesmen(rows pgx.Rows) ([]entity.Salesman, error) {
	var list []entity.Salesman
	for rows.Next() {
		var s entity.Salesman
		if err := rows.Scan(
			&s.Code, &s.Name, &s.AssignedTo.Code, &s.RouteCode, &s.Branch,
			&s.TargetCY, &s.ActualCY,
		); err != nil {
			return nil, fmt.Errorf("scan salesman: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// SalesmenByCode registros del propio vendedor.
func (r *DirectoryRepo) SalesmenByCode(ctx context.Context, code string) ([]entity.Salesman, error) {
	pool, err := r.session.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("salesmen by code: %w", err)
	}
	query := `SELECT ` + salesmanColumns + `
		FROM salesmen_data WHERE BTRIM(salesman_code) = BTRIM($1)`
	rows, err := pool.Query(ctx, query, code)
	if err != nil {
		return nil, fmt.Errorf("salesmen by code: %w", err)
	}
	defer rows.Close()
	return scanSalesmen(rows)
}

// SalesmenByAssigned vendedores cuyo assigned_sup (normalizado) está en codes.
// Con una lista vacía no consulta: devuelve cero filas.
func (r *DirectoryRepo) SalesmenByAssigned(ctx context.Context, codes []string) ([]entity.Salesman, error) {
	normalized := normalizeAll(codes)
	if len(normalized) == 0 {
		return nil, nil
	}
	pool, err := r.session.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("salesmen by assigned: %w", err)
	}
	query := `SELECT ` + salesmanColumns + `
		FROM salesmen_data WHERE BTRIM(assigned_sup) = ANY($1)`
	rows, err := pool.Query(ctx, query, normalized)
	if err != nil {
		return nil, fmt.Errorf("salesmen by assigned: %w", err)
	}
	defer rows.Close()
	return scanSalesmen(rows)
}

// SupervisorsByBSM supervisores asignados al BSM.
func (r *DirectoryRepo) SupervisorsByBSM(ctx context.Context, bsmCode string) ([]entity.Supervisor, error) {
	pool, err := r.session.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("supervisors by bsm: %w", err)
	}
	const query = `
		SELECT BTRIM(supervisor_code), COALESCE(supervisor_name, ''),
		       BTRIM(COALESCE(assigned_bsm, '')), COALESCE(branch, '')
		FROM sup_data WHERE BTRIM(assigned_bsm) = BTRIM($1)`
	rows, err := pool.Query(ctx, query, bsmCode)
	if err != nil {
		return nil, fmt.Errorf("supervisors by bsm: %w", err)
	}
	defer rows.Close()

	var list []entity.Supervisor
	for rows.Next() {
		var s entity.Supervisor
		if err := rows.Scan(&s.Code, &s.Name, &s.AssignedBSM, &s.Branch); err != nil {
			return nil, fmt.Errorf("scan supervisor: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// BSMsByCode registro propio del BSM.
func (r *DirectoryRepo) BSMsByCode(ctx context.Context, code string) ([]entity.BSM, error) {
	pool, err := r.session.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("bsm by code: %w", err)
	}
	const query = `
		SELECT BTRIM(bsm_code), COALESCE(bsm_name, ''), COALESCE(region, '')
		FROM bsm_data WHERE BTRIM(bsm_code) = BTRIM($1)`
	rows, err := pool.Query(ctx, query, code)
	if err != nil {
		return nil, fmt.Errorf("bsm by code: %w", err)
	}
	defer rows.Close()

	var list []entity.BSM
	for rows.Next() {
		var b entity.BSM
		if err := rows.Scan(&b.Code, &b.Name, &b.Region); err != nil {
			return nil, fmt.Errorf("scan bsm: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func normalizeAll(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if n := hierarchy.NormalizeCode(c); n != "" {
			out = append(out, n)
		}
	}
	return out
}
