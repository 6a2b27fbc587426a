package repository

import (
	"context"

	"github.com/jhoicas/sales-portal-api/internal/domain/entity"
	"github.com/jhoicas/sales-portal-api/internal/domain/hierarchy"
)

// UserRepository puerto de lectura para Users (DIP). Los métodos devuelven
// (nil, nil) cuando no hay coincidencia; el llamador decide si eso es error.
type UserRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
}

// DirectoryRepository puerto de lectura de la jerarquía comercial.
// Superconjunto de hierarchy.Directory más la consulta del propio BSM.
type DirectoryRepository interface {
	hierarchy.Directory
	BSMsByCode(ctx context.Context, code string) ([]entity.BSM, error)
}

// SalesRepository puerto de lectura sobre MasterData. Ambas operaciones
// reciben el alcance ya resuelto; con un alcance vacío devuelven cero filas
// sin tocar el almacén.
type SalesRepository interface {
	// CustomerSummaries un resumen por cliente alcanzable dentro del scope.
	// La agregación se empuja al almacén cuando este la soporta; el clon de
	// hoja de cálculo reduce en streaming con el mismo resultado.
	CustomerSummaries(ctx context.Context, scope hierarchy.Scope) ([]entity.CustomerSummary, error)
	// CustomerDetail todas las filas de un cliente dentro del scope,
	// ordenadas por (fecha, marca, producto). Nunca se cachea.
	CustomerDetail(ctx context.Context, customerCode string, scope hierarchy.Scope) ([]entity.MasterRow, error)
}
