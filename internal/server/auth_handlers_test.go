package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"scriptum/internal/models"
	"scriptum/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByPseudo(ctx context.Context, pseudo string) (*models.User, error) {
	args := m.Called(ctx, pseudo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newAuthTestServer(repo *MockUserRepository) (*Server, *fiber.App) {
	s := &Server{userService: service.NewUserService(repo)}
	app := fiber.New()
	app.Post("/api/auth/register", s.Register)
	app.Post("/api/auth/login", s.Login)
	return s, app
}

func TestRegister(t *testing.T) {
	t.Run("creates the account and returns the token", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByPseudo", mock.Anything, "amelia").Return(nil, nil)
		repo.On("GetByEmail", mock.Anything, "amelia@example.com").Return(nil, nil)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

		_, app := newAuthTestServer(repo)
		body, _ := json.Marshal(map[string]string{
			"pseudo":     "amelia",
			"email":      "amelia@example.com",
			"password":   "Sunrise42x",
			"birth_date": "1994-03-12",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var payload struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		assert.Len(t, payload.Token, 36)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate pseudo is a 409", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByPseudo", mock.Anything, "amelia").Return(&models.User{ID: 2, Pseudo: "amelia"}, nil)

		_, app := newAuthTestServer(repo)
		body, _ := json.Marshal(map[string]string{
			"pseudo":     "amelia",
			"email":      "amelia@example.com",
			"password":   "Sunrise42x",
			"birth_date": "1994-03-12",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("weak password is a 400", func(t *testing.T) {
		repo := new(MockUserRepository)
		_, app := newAuthTestServer(repo)
		body, _ := json.Marshal(map[string]string{
			"pseudo":     "amelia",
			"email":      "amelia@example.com",
			"password":   "short",
			"birth_date": "1994-03-12",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	t.Run("unknown pseudo is a 404", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByPseudo", mock.Anything, "ghost").Return(nil, nil)

		_, app := newAuthTestServer(repo)
		body, _ := json.Marshal(map[string]string{"pseudo": "ghost", "password": "Sunrise42x"})
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("missing credentials is a 400", func(t *testing.T) {
		repo := new(MockUserRepository)
		_, app := newAuthTestServer(repo)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
