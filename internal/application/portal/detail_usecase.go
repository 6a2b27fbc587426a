package portal

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/sales-portal-api/internal/application/dto"
	"github.com/jhoicas/sales-portal-api/internal/domain"
	"github.com/jhoicas/sales-portal-api/internal/domain/hierarchy"
	"github.com/jhoicas/sales-portal-api/internal/domain/repository"
	"github.com/jhoicas/sales-portal-api/pkg/logger"
)

// CustomerDetailUseCase devuelve las filas completas de UN cliente dentro
// del alcance del usuario. Este camino nunca consulta ni alimenta la caché:
// el detalle siempre es en vivo.
type CustomerDetailUseCase struct {
	users    repository.UserRepository
	sales    repository.SalesRepository
	resolver *hierarchy.Resolver
	log      *logger.Logger
}

// NewCustomerDetailUseCase construye el caso de uso.
func NewCustomerDetailUseCase(
	users repository.UserRepository,
	dir repository.DirectoryRepository,
	sales repository.SalesRepository,
	log *logger.Logger,
) *CustomerDetailUseCase {
	return &CustomerDetailUseCase{
		users:    users,
		sales:    sales,
		resolver: hierarchy.NewResolver(dir),
		log:      log,
	}
}

// Fetch resuelve el detalle. Ambos parámetros son obligatorios; un cliente
// fuera del alcance produce {rows: [], total: 0}, no un error.
func (uc *CustomerDetailUseCase) Fetch(ctx context.Context, code, customerCode string) (*dto.CustomerDetailResponse, error) {
	t0 := time.Now()

	root := hierarchy.NormalizeCode(code)
	customer := hierarchy.NormalizeCode(customerCode)
	if root == "" || customer == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.users.GetByCode(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("customerDetail %s: %w", root, err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	res, err := uc.resolver.Resolve(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("customerDetail %s: %w", root, err)
	}

	rows, err := uc.sales.CustomerDetail(ctx, customer, res.Scope)
	if err != nil {
		return nil, fmt.Errorf("customerDetail %s: cliente %s: %w", root, customer, err)
	}

	uc.log.Info().
		Str("code", root).
		Str("customer", customer).
		Int("rows", len(rows)).
		Dur("elapsed", time.Since(t0)).
		Msg("detalle de cliente resuelto")

	return &dto.CustomerDetailResponse{
		Rows:  dto.FromMasterRows(rows),
		Total: len(rows),
	}, nil
}
