package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/scenicairways/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type staticTokenIssuer struct{}

func (staticTokenIssuer) GenerateToken(*domain.User) (string, error) {
	return "signed-token", nil
}

func hashedUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	return &domain.User{
		ID:           "user-1",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hash,
		Role:         domain.UserRoleCustomer,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	mockUsers := &MockUserRepository{}
	service := NewAuthService(mockUsers, staticTokenIssuer{})

	ctx := context.Background()
	user := hashedUser(t, "s3cret")
	mockUsers.On("GetByUsername", ctx, "alice").Return(user, nil).Once()

	result, err := service.Login(ctx, "alice", "s3cret")

	assert.NoError(t, err)
	assert.Equal(t, "signed-token", result.Token)
	assert.Equal(t, "alice", result.User.Username)
	assert.Equal(t, domain.UserRoleCustomer, result.User.Role)
}

// Wrong password and unknown user collapse to the same error so the
// response never reveals which one it was.
func TestAuthService_Login_GenericFailure(t *testing.T) {
	mockUsers := &MockUserRepository{}
	service := NewAuthService(mockUsers, staticTokenIssuer{})

	ctx := context.Background()
	user := hashedUser(t, "s3cret")
	mockUsers.On("GetByUsername", ctx, "alice").Return(user, nil).Once()
	mockUsers.On("GetByUsername", ctx, "nobody").Return(nil, domain.ErrUserNotFound).Once()

	_, wrongPassword := service.Login(ctx, "alice", "wrong")
	_, unknownUser := service.Login(ctx, "nobody", "s3cret")

	assert.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, domain.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestAuthService_Register_CreatesUserAndLogsIn(t *testing.T) {
	mockUsers := &MockUserRepository{}
	service := NewAuthService(mockUsers, staticTokenIssuer{})

	ctx := context.Background()
	var created *domain.User
	mockUsers.On("Create", ctx, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
		created = args.Get(1).(*domain.User)
		mockUsers.On("GetByUsername", ctx, "bob").Return(created, nil).Once()
	}).Return(nil).Once()

	result, err := service.Register(ctx, "bob", "bob@example.com", "hunter2")

	require.NoError(t, err)
	assert.Equal(t, "signed-token", result.Token)
	assert.Equal(t, "bob", result.User.Username)
	assert.Equal(t, domain.UserRoleCustomer, result.User.Role)
	assert.NotEmpty(t, created.ID)
	assert.NotEqual(t, "hunter2", created.PasswordHash)
	assert.True(t, VerifyPassword(created.PasswordHash, "hunter2"))
}

// Registration surfaces the underlying error instead of the generic
// invalid-credentials message login uses.
func TestAuthService_Register_SurfacesCreateError(t *testing.T) {
	mockUsers := &MockUserRepository{}
	service := NewAuthService(mockUsers, staticTokenIssuer{})

	ctx := context.Background()
	mockUsers.On("Create", ctx, mock.Anything).Return(domain.ErrUsernameTaken).Once()

	result, err := service.Register(ctx, "alice", "alice@example.com", "s3cret")

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domain.ErrUsernameTaken))
}
