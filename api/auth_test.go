package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/scenicairways/backend/internal/domain"
	"github.com/scenicairways/backend/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Login(ctx context.Context, username, password string) (*auth.AuthResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.AuthResult), args.Error(1)
}

func (m *MockAuthUseCase) Register(ctx context.Context, username, email, password string) (*auth.AuthResult, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.AuthResult), args.Error(1)
}

func TestAuthHandler_login(t *testing.T) {
	mockService := &MockAuthUseCase{}
	handler := NewAuthHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(loginRequest{Username: "alice", Password: "s3cret"})
	c.Request = httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	result := &auth.AuthResult{
		Token: "signed-token",
		User: domain.User{
			ID:       "user-1",
			Username: "alice",
			Email:    "alice@example.com",
			Role:     domain.UserRoleCustomer,
		},
	}
	mockService.On("Login", c.Request.Context(), "alice", "s3cret").Return(result, nil)

	handler.login(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response authResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "signed-token", response.Token)
	assert.Equal(t, "user-1", response.ID)
	assert.Equal(t, "CUSTOMER", response.Role)

	mockService.AssertExpectations(t)
}

// The login failure body is the same regardless of the cause.
func TestAuthHandler_login_genericFailure(t *testing.T) {
	mockService := &MockAuthUseCase{}
	handler := NewAuthHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(loginRequest{Username: "alice", Password: "wrong"})
	c.Request = httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Login", c.Request.Context(), "alice", "wrong").Return(nil, domain.ErrInvalidCredentials)

	handler.login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "Invalid credentials"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "user not found")

	mockService.AssertExpectations(t)
}

func TestAuthHandler_register(t *testing.T) {
	mockService := &MockAuthUseCase{}
	handler := NewAuthHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(registerRequest{Username: "bob", Email: "bob@example.com", Password: "hunter2"})
	c.Request = httptest.NewRequest("POST", "/auth/register", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	result := &auth.AuthResult{
		Token: "signed-token",
		User: domain.User{
			ID:       "user-2",
			Username: "bob",
			Email:    "bob@example.com",
			Role:     domain.UserRoleCustomer,
		},
	}
	mockService.On("Register", c.Request.Context(), "bob", "bob@example.com", "hunter2").Return(result, nil)

	handler.register(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response authResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "bob", response.Username)

	mockService.AssertExpectations(t)
}

// Registration failures surface the underlying message, unlike login.
func TestAuthHandler_register_surfacesError(t *testing.T) {
	mockService := &MockAuthUseCase{}
	handler := NewAuthHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(registerRequest{Username: "alice", Email: "alice@example.com", Password: "s3cret"})
	c.Request = httptest.NewRequest("POST", "/auth/register", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Register", c.Request.Context(), "alice", "alice@example.com", "s3cret").Return(nil, domain.ErrUsernameTaken)

	handler.register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "username already taken")

	mockService.AssertExpectations(t)
}
