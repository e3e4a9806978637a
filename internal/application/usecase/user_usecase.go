package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventory-system/internal/application/dto"
	"github.com/jhoicas/inventory-system/internal/domain"
	"github.com/jhoicas/inventory-system/internal/domain/entity"
	"github.com/jhoicas/inventory-system/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios. La contraseña se guarda con bcrypt.
type UserUseCase struct {
	repo repository.UserRepository
	cost int
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo, cost: bcrypt.DefaultCost}
}

// WithHashCost ajusta el costo de bcrypt (tests usan bcrypt.MinCost).
func (uc *UserUseCase) WithHashCost(cost int) *UserUseCase {
	uc.cost = cost
	return uc
}

// Create crea un usuario; password es obligatorio.
func (uc *UserUseCase) Create(ctx context.Context, in dto.UserRequest) (*dto.UserResponse, error) {
	if in.Password == "" {
		return nil, fmt.Errorf("password requerido: %w", domain.ErrInvalidInput)
	}
	if err := validateUserRequest(in); err != nil {
		return nil, err
	}
	email := normalizeEmail(in.Email)
	if existing, err := uc.repo.GetByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("email %s: %w", email, domain.ErrDuplicate)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now().UTC()
	u := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Role:         in.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	out := dto.UserFrom(u)
	return &out, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.UserFrom(u)
	return &out, nil
}

// Update reemplaza los datos del usuario; password vacío conserva el hash actual.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UserRequest) (*dto.UserResponse, error) {
	if err := validateUserRequest(in); err != nil {
		return nil, err
	}
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	u.Email = normalizeEmail(in.Email)
	u.Name = strings.TrimSpace(in.Name)
	u.Role = in.Role
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}
	u.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	out := dto.UserFrom(u)
	return &out, nil
}

// List lista usuarios.
func (uc *UserUseCase) List(ctx context.Context, in dto.ListRequest) (*dto.ListResponse[dto.UserResponse], error) {
	in.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ListParams{Search: in.Search, Limit: in.Limit, Offset: in.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, dto.UserFrom(u))
	}
	return &dto.ListResponse[dto.UserResponse]{Items: items, Page: dto.PageResponse{Limit: in.Limit, Offset: in.Offset}}, nil
}

// Delete elimina un usuario.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// VerifyPassword compara password con el hash guardado del usuario.
func (uc *UserUseCase) VerifyPassword(ctx context.Context, email, password string) (bool, error) {
	u, err := uc.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil || u == nil {
		return false, err
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil, nil
}

func validateUserRequest(in dto.UserRequest) error {
	if strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.Name) == "" || !entity.ValidRole(in.Role) {
		return domain.ErrInvalidInput
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
