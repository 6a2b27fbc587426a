// Package portal contiene los casos de uso del portal de ventas: login con
// resolución de jerarquía, detalle por cliente y listado de usuarios, más
// la caché de respuestas.
package portal

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/sales-portal-api/internal/application/dto"
	"github.com/jhoicas/sales-portal-api/internal/domain"
	"github.com/jhoicas/sales-portal-api/internal/domain/entity"
	"github.com/jhoicas/sales-portal-api/internal/domain/hierarchy"
	"github.com/jhoicas/sales-portal-api/internal/domain/repository"
	"github.com/jhoicas/sales-portal-api/pkg/logger"
)

// LoginOptions banderas del login.
type LoginOptions struct {
	// NoCache salta la lectura de caché (?nocache=1). La respuesta fresca
	// igualmente se escribe en la caché.
	NoCache bool
	// SummaryMode flag de modo de presentación; participa en la clave de
	// caché. Desde v5 ambos modos devuelven solo resúmenes.
	SummaryMode bool
}

// LoginUseCase arma la respuesta de login: usuario + bloques de jerarquía
// según rol + resúmenes por cliente dentro del alcance autorizado.
type LoginUseCase struct {
	users    repository.UserRepository
	dir      repository.DirectoryRepository
	sales    repository.SalesRepository
	resolver *hierarchy.Resolver
	cache    *ResponseCache
	log      *logger.Logger
}

// NewLoginUseCase construye el caso de uso.
func NewLoginUseCase(
	users repository.UserRepository,
	dir repository.DirectoryRepository,
	sales repository.SalesRepository,
	cache *ResponseCache,
	log *logger.Logger,
) *LoginUseCase {
	return &LoginUseCase{
		users:    users,
		dir:      dir,
		sales:    sales,
		resolver: hierarchy.NewResolver(dir),
		cache:    cache,
		log:      log,
	}
}

// Login resuelve el login para el código raíz dado.
// Devuelve domain.ErrInvalidInput con código vacío y domain.ErrUserNotFound
// si ningún usuario matchea (sin tocar las tablas de jerarquía).
func (uc *LoginUseCase) Login(ctx context.Context, code string, opts LoginOptions) (*dto.LoginResponse, error) {
	t0 := time.Now()

	root := hierarchy.NormalizeCode(code)
	if root == "" {
		return nil, domain.ErrInvalidInput
	}

	key := Key(root, opts.SummaryMode)
	if !opts.NoCache {
		if cached, ok := uc.cache.Get(key); ok {
			uc.log.Info().
				Str("code", root).
				Dur("elapsed", time.Since(t0)).
				Msg("cache HIT en login")
			return cached, nil
		}
	}

	user, err := uc.users.GetByCode(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("login %s: %w", root, err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	// Los bloques siempre presentes arrancan vacíos, no nil: con alcance
	// vacío igual se serializan como [] y 0.
	resp := &dto.LoginResponse{
		User: &dto.UserDTO{
			Code: user.Code, Name: user.Name, Role: user.Role,
		},
		SalesmenData:    []dto.SalesmanDTO{},
		CustomerSummary: []dto.CustomerSummaryDTO{},
	}

	role := hierarchy.NormalizeRole(user.Role)
	switch role {
	case entity.RoleManagement:
		// Management ve el directorio completo; sin resúmenes en el login.
		all, err := uc.users.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("login %s: listar usuarios: %w", root, err)
		}
		resp.AllUsers = dto.FromUsers(all)

	case entity.RoleBSM:
		if err := uc.fillBSM(ctx, root, user, resp); err != nil {
			return nil, err
		}

	default: // salesman, supervisor
		res, err := uc.resolver.Resolve(ctx, user)
		if err != nil {
			return nil, fmt.Errorf("login %s: %w", root, err)
		}
		resp.SalesmenData = dto.FromSalesmen(res.Salesmen)
		if err := uc.fillSummaries(ctx, res.Scope, resp); err != nil {
			return nil, fmt.Errorf("login %s: %w", root, err)
		}
	}

	uc.cache.Set(key, resp)

	uc.log.Info().
		Str("code", root).
		Str("role", role).
		Int("customers", len(resp.CustomerSummary)).
		Int("rows", resp.MasterDataTotal).
		Dur("elapsed", time.Since(t0)).
		Msg("login resuelto")
	return resp, nil
}

// fillBSM resuelve el rol BSM. La resolución de jerarquía y la consulta del
// registro propio del BSM son independientes y corren en paralelo.
func (uc *LoginUseCase) fillBSM(ctx context.Context, root string, user *entity.User, resp *dto.LoginResponse) error {
	type resolveResult struct {
		res *hierarchy.Resolution
		err error
	}
	type bsmResult struct {
		bsms []entity.BSM
		err  error
	}

	resolveCh := make(chan resolveResult, 1)
	bsmCh := make(chan bsmResult, 1)

	go func() {
		res, err := uc.resolver.Resolve(ctx, user)
		resolveCh <- resolveResult{res, err}
	}()
	go func() {
		bsms, err := uc.dir.BSMsByCode(ctx, root)
		bsmCh <- bsmResult{bsms, err}
	}()

	resolved := <-resolveCh
	own := <-bsmCh

	if resolved.err != nil {
		return fmt.Errorf("login %s: %w", root, resolved.err)
	}
	if own.err != nil {
		return fmt.Errorf("login %s: registro BSM: %w", root, own.err)
	}

	resp.SupData = dto.FromSupervisors(resolved.res.Supervisors)
	resp.BSMData = dto.FromBSMs(own.bsms)
	resp.SalesmenData = dto.FromSalesmen(resolved.res.Salesmen)
	if err := uc.fillSummaries(ctx, resolved.res.Scope, resp); err != nil {
		return fmt.Errorf("login %s: %w", root, err)
	}
	return nil
}

// fillSummaries agrega los resúmenes por cliente y el total de filas.
// Un alcance vacío produce arreglos vacíos, nunca un error ni "todo".
func (uc *LoginUseCase) fillSummaries(ctx context.Context, scope hierarchy.Scope, resp *dto.LoginResponse) error {
	summaries, err := uc.sales.CustomerSummaries(ctx, scope)
	if err != nil {
		return fmt.Errorf("resúmenes por cliente: %w", err)
	}
	resp.CustomerSummary = dto.FromSummaries(summaries)

	total := 0
	for _, s := range summaries {
		total += s.RowCount
	}
	resp.MasterDataTotal = total
	return nil
}
