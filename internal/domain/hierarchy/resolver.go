// Package hierarchy resuelve el alcance de datos autorizado para cada rol
// recorriendo la jerarquía comercial de cuatro niveles. Es la única pieza
// del portal donde un error de lógica filtra u oculta datos en silencio.
package hierarchy

import (
	"context"
	"fmt"

	"github.com/jhoicas/sales-portal-api/internal/domain"
	"github.com/jhoicas/sales-portal-api/internal/domain/entity"
)

// Directory consultas de jerarquía que necesita el resolver. Lo implementan
// los adaptadores de Postgres y de hoja de cálculo.
type Directory interface {
	// SalesmenByCode registros del propio vendedor (código exacto normalizado).
	SalesmenByCode(ctx context.Context, code string) ([]entity.Salesman, error)
	// SalesmenByAssigned vendedores cuyo "Assigned SUP" está en codes.
	SalesmenByAssigned(ctx context.Context, codes []string) ([]entity.Salesman, error)
	// SupervisorsByBSM supervisores asignados al BSM dado.
	SupervisorsByBSM(ctx context.Context, bsmCode string) ([]entity.Supervisor, error)
}

// Resolution resultado de resolver la jerarquía: el alcance más los
// registros deduplicados que alimentan la respuesta de login.
type Resolution struct {
	Scope       Scope
	Salesmen    []entity.Salesman
	Supervisors []entity.Supervisor
}

// Resolver calcula el alcance autorizado de un usuario.
//
// Desempate de deduplicación: cuando un vendedor es alcanzable por dos
// caminos (vía un supervisor del BSM y directamente bajo el BSM), gana el
// registro de la relación directa. Las versiones históricas lograban el
// mismo resultado por orden de inserción en un mapa; aquí la preferencia
// es explícita.
type Resolver struct {
	dir Directory
}

// NewResolver construye el resolver sobre un directorio de jerarquía.
func NewResolver(dir Directory) *Resolver {
	return &Resolver{dir: dir}
}

// Resolve calcula el alcance para el usuario dado según su rol.
// El rol se compara normalizado; un rol desconocido produce un alcance
// vacío (ninguna fila autorizada), nunca uno sin restricción.
func (r *Resolver) Resolve(ctx context.Context, user *entity.User) (*Resolution, error) {
	if user == nil {
		return nil, domain.ErrInvalidInput
	}
	root := NormalizeCode(user.Code)
	if root == "" {
		return nil, domain.ErrInvalidInput
	}

	switch NormalizeRole(user.Role) {
	case entity.RoleSalesman:
		return r.resolveSalesman(ctx, root)
	case entity.RoleSupervisor:
		return r.resolveSupervisor(ctx, root)
	case entity.RoleBSM:
		return r.resolveBSM(ctx, root)
	case entity.RoleManagement:
		return &Resolution{Scope: Scope{Unrestricted: true}}, nil
	default:
		return &Resolution{}, nil
	}
}

func (r *Resolver) resolveSalesman(ctx context.Context, root string) (*Resolution, error) {
	own, err := r.dir.SalesmenByCode(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("hierarchy: registro del vendedor %s: %w", root, err)
	}
	return &Resolution{
		Scope:    Scope{SalesmanCodes: []string{root}},
		Salesmen: own,
	}, nil
}

func (r *Resolver) resolveSupervisor(ctx context.Context, root string) (*Resolution, error) {
	salesmen, err := r.dir.SalesmenByAssigned(ctx, []string{root})
	if err != nil {
		return nil, fmt.Errorf("hierarchy: vendedores del supervisor %s: %w", root, err)
	}
	merged := mergeSalesmen(tagAssignments(salesmen, entity.AssignedToSupervisor))
	return &Resolution{
		Scope:    Scope{SalesmanCodes: salesmanCodes(merged)},
		Salesmen: merged,
	}, nil
}

// resolveBSM recorre los dos caminos del BSM: supervisores → vendedores, y
// vendedores colgados directamente del BSM. Las dos consultas iniciales son
// independientes y se lanzan en paralelo; la de vendedores-por-supervisor
// depende de la primera.
func (r *Resolver) resolveBSM(ctx context.Context, root string) (*Resolution, error) {
	type supsResult struct {
		sups []entity.Supervisor
		err  error
	}
	type directResult struct {
		salesmen []entity.Salesman
		err      error
	}

	supsCh := make(chan supsResult, 1)
	directCh := make(chan directResult, 1)

	go func() {
		sups, err := r.dir.SupervisorsByBSM(ctx, root)
		supsCh <- supsResult{sups, err}
	}()
	go func() {
		sm, err := r.dir.SalesmenByAssigned(ctx, []string{root})
		directCh <- directResult{sm, err}
	}()

	sups := <-supsCh
	direct := <-directCh

	if sups.err != nil {
		return nil, fmt.Errorf("hierarchy: supervisores del BSM %s: %w", root, sups.err)
	}
	if direct.err != nil {
		return nil, fmt.Errorf("hierarchy: vendedores directos del BSM %s: %w", root, direct.err)
	}

	supCodes := make([]string, 0, len(sups.sups))
	seenSup := make(map[string]struct{}, len(sups.sups))
	for _, s := range sups.sups {
		c := NormalizeCode(s.Code)
		if c == "" {
			continue
		}
		if _, ok := seenSup[c]; ok {
			continue
		}
		seenSup[c] = struct{}{}
		supCodes = append(supCodes, c)
	}

	var fromSups []entity.Salesman
	if len(supCodes) > 0 {
		var err error
		fromSups, err = r.dir.SalesmenByAssigned(ctx, supCodes)
		if err != nil {
			return nil, fmt.Errorf("hierarchy: vendedores bajo supervisores de %s: %w", root, err)
		}
	}

	// Primero los indirectos, después los directos: mergeSalesmen conserva
	// el último registro por código, de modo que la relación directa gana.
	tagged := append(
		tagAssignments(fromSups, entity.AssignedToSupervisor),
		tagAssignments(direct.salesmen, entity.AssignedToBSMDirect)...,
	)
	merged := mergeSalesmen(tagged)

	return &Resolution{
		Scope: Scope{
			SalesmanCodes:   salesmanCodes(merged),
			SupervisorCodes: supCodes,
			DirectBSMCode:   root,
		},
		Salesmen:    merged,
		Supervisors: sups.sups,
	}, nil
}

// tagAssignments resuelve la unión etiquetada Assignment según la consulta
// de origen: aquí se decide una sola vez si "Assigned SUP" apuntaba a un
// supervisor o directamente al BSM.
func tagAssignments(salesmen []entity.Salesman, kind entity.AssignmentKind) []entity.Salesman {
	out := make([]entity.Salesman, len(salesmen))
	for i, s := range salesmen {
		s.AssignedTo.Code = NormalizeCode(s.AssignedTo.Code)
		s.AssignedTo.Kind = kind
		out[i] = s
	}
	return out
}

// mergeSalesmen deduplica por código normalizado conservando el orden de
// primera aparición; ante el mismo código, el registro posterior reemplaza
// al anterior (los llamadores ordenan la entrada para que "posterior"
// signifique "más específico").
func mergeSalesmen(salesmen []entity.Salesman) []entity.Salesman {
	byCode := make(map[string]int, len(salesmen))
	out := make([]entity.Salesman, 0, len(salesmen))
	for _, s := range salesmen {
		code := NormalizeCode(s.Code)
		if code == "" {
			continue
		}
		s.Code = code
		if i, ok := byCode[code]; ok {
			out[i] = s
			continue
		}
		byCode[code] = len(out)
		out = append(out, s)
	}
	return out
}

func salesmanCodes(salesmen []entity.Salesman) []string {
	codes := make([]string, len(salesmen))
	for i, s := range salesmen {
		codes[i] = s.Code
	}
	return codes
}
