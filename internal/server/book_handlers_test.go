package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"scriptum/internal/models"
	"scriptum/internal/repository"
	"scriptum/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBookRepository is a mock of the BookRepository interface
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, book *models.Book, slugBase string) error {
	args := m.Called(ctx, book, slugBase)
	return args.Error(0)
}

func (m *MockBookRepository) GetBySlug(ctx context.Context, slug string) (*models.Book, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepository) List(ctx context.Context, filter repository.BookFilter, limit, offset int) ([]models.Book, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Book), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookRepository) Update(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Delete(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

// MockTagRepository is a mock of the TagRepository interface
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) GetOrCreateGenres(ctx context.Context, names []string) ([]*models.Genre, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Genre), args.Error(1)
}

func (m *MockTagRepository) GetOrCreateThemes(ctx context.Context, names []string) ([]*models.Theme, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Theme), args.Error(1)
}

// fakeAuth injects an authenticated user, standing in for the token gate.
func fakeAuth(user *models.User) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", user.ID)
		c.Locals("user", user)
		return c.Next()
	}
}

func newBookTestServer(books *MockBookRepository, tags *MockTagRepository, user *models.User) *fiber.App {
	s := &Server{bookService: service.NewBookService(books, tags)}
	app := fiber.New()
	app.Get("/api/books/:slug", s.GetBook)
	protected := app.Group("", fakeAuth(user))
	protected.Post("/api/books", s.CreateBook)
	protected.Put("/api/books/:slug", s.UpdateBook)
	protected.Delete("/api/books/:slug", s.DeleteBook)
	return app
}

func postJSON(t *testing.T, app *fiber.App, method, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCreateBookHandler(t *testing.T) {
	author := &models.User{ID: 7, Pseudo: "amelia"}

	t.Run("valid book is a 201", func(t *testing.T) {
		books := new(MockBookRepository)
		tags := new(MockTagRepository)
		tags.On("GetOrCreateGenres", mock.Anything, mock.Anything).Return([]*models.Genre{}, nil)
		tags.On("GetOrCreateThemes", mock.Anything, mock.Anything).Return([]*models.Theme{}, nil)
		books.On("Create", mock.Anything, mock.AnythingOfType("*models.Book"), "Dawn").Return(nil)

		app := newBookTestServer(books, tags, author)
		resp := postJSON(t, app, http.MethodPost, "/api/books", map[string]any{
			"title":       "Dawn",
			"public_type": "general",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		books.AssertExpectations(t)
	})

	t.Run("half a saga is a 400", func(t *testing.T) {
		app := newBookTestServer(new(MockBookRepository), new(MockTagRepository), author)
		resp := postJSON(t, app, http.MethodPost, "/api/books", map[string]any{
			"title":       "Dawn",
			"public_type": "general",
			"is_saga":     true,
			"tome_name":   "Origins",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdateBookHandler(t *testing.T) {
	stranger := &models.User{ID: 8, Pseudo: "bruno"}

	t.Run("foreign book is a 403", func(t *testing.T) {
		books := new(MockBookRepository)
		books.On("GetBySlug", mock.Anything, "dawn-amelia").Return(&models.Book{ID: 3, AuthorID: 7}, nil)

		app := newBookTestServer(books, new(MockTagRepository), stranger)
		resp := postJSON(t, app, http.MethodPut, "/api/books/dawn-amelia", map[string]any{
			"title": "Hijacked",
		})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("unknown slug is a 404", func(t *testing.T) {
		books := new(MockBookRepository)
		books.On("GetBySlug", mock.Anything, "missing").Return(nil, models.NewNotFoundError("Book", "missing"))

		app := newBookTestServer(books, new(MockTagRepository), stranger)
		resp := postJSON(t, app, http.MethodPut, "/api/books/missing", map[string]any{
			"title": "Anything",
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
