package portal

import (
	"context"
	"fmt"

	"github.com/jhoicas/sales-portal-api/internal/application/dto"
	"github.com/jhoicas/sales-portal-api/internal/domain/repository"
)

// UsersUseCase listado completo de usuarios (action=getUsers).
type UsersUseCase struct {
	users repository.UserRepository
}

// NewUsersUseCase construye el caso de uso.
func NewUsersUseCase(users repository.UserRepository) *UsersUseCase {
	return &UsersUseCase{users: users}
}

// List devuelve todos los usuarios del portal.
func (uc *UsersUseCase) List(ctx context.Context) (*dto.UsersResponse, error) {
	all, err := uc.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("getUsers: %w", err)
	}
	return &dto.UsersResponse{Users: dto.FromUsers(all)}, nil
}
