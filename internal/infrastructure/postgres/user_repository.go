package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sales-portal-api/internal/domain/entity"
	"github.com/jhoicas/sales-portal-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// Solo lectura: la tabla users es dato de referencia externo.
type UserRepo struct {
	session *Session
}

// NewUserRepository construye el adaptador de usuarios.
func NewUserRepository(session *Session) *UserRepo {
	return &UserRepo{session: session}
}

// GetByCode busca un usuario por código con igualdad normalizada
// (BTRIM en ambos lados, como el LTRIM(RTRIM(...)) de la fuente histórica).
// Devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByCode(ctx context.Context, code string) (*entity.User, error) {
	pool, err := r.session.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("get user by code: %w", err)
	}
	const query = `
		SELECT BTRIM(user_code), COALESCE(user_name, ''), COALESCE(role, '')
		FROM users WHERE BTRIM(user_code) = BTRIM($1)`
	var u entity.User
	err = pool.QueryRow(ctx, query, code).Scan(&u.Code, &u.Name, &u.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by code: %w", err)
	}
	return &u, nil
}

// List devuelve todos los usuarios (bloque allUsers del login de Management).
func (r *UserRepo) List(ctx context.Context) ([]entity.User, error) {
	pool, err := r.session.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	const query = `
		SELECT BTRIM(user_code), COALESCE(user_name, ''), COALESCE(role, '')
		FROM users ORDER BY user_code`
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.Code, &u.Name, &u.Role); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}
