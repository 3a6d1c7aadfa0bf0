package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ims/internal/application/auth"
	"github.com/jhoicas/inventory-ims/internal/application/dto"
	"github.com/jhoicas/inventory-ims/internal/domain"
	"github.com/jhoicas/inventory-ims/internal/domain/entity"
	pkgjwt "github.com/jhoicas/inventory-ims/pkg/jwt"
)

const testSecret = "auth-test-secret"

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*entity.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*entity.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func newUseCase(repo *MockUserRepository) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "inventory-ims-test"})
}

func TestRegister_CreaUsuarioConRolUser(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("GetByUsername", ctx, "ana").Return(nil, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Username == "ana" && u.Role == entity.RoleUser && u.PasswordHash != "secreto1"
	})).Return(nil)

	out, err := newUseCase(repo).Register(ctx, dto.RegisterRequest{Username: "  ana ", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, "ana", out.Username)
	assert.Equal(t, entity.RoleUser, out.Role)

	_, username, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "ana", username)
	assert.Equal(t, entity.RoleUser, role)
	repo.AssertExpectations(t)
}

func TestRegister_UsernameTomado(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("GetByUsername", ctx, "ana").Return(&entity.User{Username: "ana"}, nil)

	_, err := newUseCase(repo).Register(ctx, dto.RegisterRequest{Username: "ana", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrUsernameExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_CarreraEnElStore(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("GetByUsername", ctx, "ana").Return(nil, nil)
	repo.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicate)

	_, err := newUseCase(repo).Register(ctx, dto.RegisterRequest{Username: "ana", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrUsernameExists)
}

func TestRegister_Validacion(t *testing.T) {
	repo := new(MockUserRepository)
	uc := newUseCase(repo)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{Username: "ab", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Register(context.Background(), dto.RegisterRequest{Username: "ana", Password: "12345"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Register(context.Background(), dto.RegisterRequest{Username: "ana", Password: strings.Repeat("a", 73)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	user, err := auth.NewUser("ana", "secreto1", entity.RoleManager)
	require.NoError(t, err)

	repo := new(MockUserRepository)
	repo.On("GetByUsername", ctx, "ana").Return(user, nil)
	repo.On("GetByUsername", ctx, "nadie").Return(nil, nil)
	repo.On("GetByUsername", ctx, "roto").Return(nil, errors.New("db caída"))
	uc := newUseCase(repo)

	out, err := uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, out.Role)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "otro"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "roto", Password: "secreto1"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestNewUser_RolInvalido(t *testing.T) {
	_, err := auth.NewUser("ana", "secreto1", "ROOT")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewUser_PasswordSuperaLimiteBcrypt(t *testing.T) {
	_, err := auth.NewUser("ana", strings.Repeat("ñ", 37), entity.RoleUser)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	u, err := auth.NewUser("ana", strings.Repeat("a", 72), entity.RoleUser)
	require.NoError(t, err)
	assert.NotEmpty(t, u.PasswordHash)
}
