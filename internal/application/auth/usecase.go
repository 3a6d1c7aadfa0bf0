package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventory-ims/internal/application/dto"
	"github.com/jhoicas/inventory-ims/internal/domain"
	"github.com/jhoicas/inventory-ims/internal/domain/entity"
	"github.com/jhoicas/inventory-ims/internal/domain/repository"
	"github.com/jhoicas/inventory-ims/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario con rol USER (password con bcrypt) y devuelve un token.
// Devuelve ErrUsernameExists si el username ya está tomado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	existing, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameExists
	}
	user, err := NewUser(in.Username, in.Password, entity.RoleUser)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrUsernameExists
		}
		return nil, err
	}
	return uc.issue(user)
}

// Login verifica username/password y genera un token. Usuario inexistente y password incorrecto
// devuelven el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return uc.issue(user)
}

func (uc *AuthUseCase) issue(user *entity.User) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	return &dto.AuthResponse{Token: token, Username: user.Username, Role: user.Role}, nil
}

// NewUser construye un usuario con el password hasheado con bcrypt.
func NewUser(username, password, role string) (*entity.User, error) {
	if !entity.IsValidRole(role) {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, role)
	}
	if len(password) > dto.MaxPasswordBytes {
		return nil, fmt.Errorf("%w: password no puede superar %d bytes", domain.ErrInvalidInput, dto.MaxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}, nil
}
