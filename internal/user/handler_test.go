package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"signature-builder/internal/auth"
	"signature-builder/internal/domain"
	apiError "signature-builder/internal/errors"
	"signature-builder/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockService is a mock implementation of the Service interface
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockService) GetUserByID(ctx context.Context, id uint64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockService) IncreaseTokenVersion(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var signer = auth.NewSigner("test-secret")

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	return router
}

func postJSON(router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegister_Success(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService, signer, false)
	router := setupRouter()

	mockService.On("Register", mock.Anything, mock.MatchedBy(func(user *domain.User) bool {
		return user.Name == "John Doe" &&
			user.Email == "john@example.com" &&
			user.Password == "password123"
	})).Return(nil).Run(func(args mock.Arguments) {
		user := args.Get(1).(*domain.User)
		user.ID = 1
		user.CreatedAt = time.Now()
		user.UpdatedAt = time.Now()
	})

	router.POST("/register", handler.Register)

	w := postJSON(router, "/register", FormRegister{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var response map[string]map[string]any
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "john@example.com", response["user"]["email"])
	assert.NotContains(t, w.Body.String(), "password")
	mockService.AssertExpectations(t)
}

func TestRegister_InvalidInput(t *testing.T) {
	cases := map[string]any{
		"missing fields": struct{ Name string }{Name: "John Doe"},
		"invalid email":  FormRegister{Name: "John Doe", Email: "invalid-email", Password: "password123"},
		"short password": FormRegister{Name: "John Doe", Email: "john@example.com", Password: "123"},
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			mockService := new(MockService)
			handler := NewHandler(mockService, signer, false)
			router := setupRouter()
			router.POST("/register", handler.Register)

			w := postJSON(router, "/register", payload)

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			mockService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
		})
	}
}

func TestRegister_AlreadyRegistered(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService, signer, false)
	router := setupRouter()
	router.POST("/register", handler.Register)

	mockService.On("Register", mock.Anything, mock.Anything).
		Return(apiError.Conflict("User already registered", nil))

	w := postJSON(router, "/register", FormRegister{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin_Success(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService, signer, false)
	router := setupRouter()

	user := &domain.User{
		ID:           1,
		Name:         "John Doe",
		Email:        "john@example.com",
		TokenVersion: 4,
		IsActive:     true,
	}
	mockService.On("Login", mock.Anything, "john@example.com", "password123").Return(user, nil)

	router.POST("/login", handler.Login)

	w := postJSON(router, "/login", FormLogin{Email: "john@example.com", Password: "password123"})

	require.Equal(t, http.StatusOK, w.Code)
	var response map[string]any
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.NotNil(t, response["user"])

	claims, err := signer.VerifyAccessToken(response["access_token"].(string))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), claims.UserID)
	assert.Equal(t, uint64(4), claims.TokenVersion)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "refresh_token", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	mockService.AssertExpectations(t)
}

func TestLogin_InvalidInput(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService, signer, false)
	router := setupRouter()
	router.POST("/login", handler.Login)

	w := postJSON(router, "/login", struct{ Email string }{Email: "john@example.com"})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestLogin_WrongCredentials(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService, signer, false)
	router := setupRouter()
	router.POST("/login", handler.Login)

	mockService.On("Login", mock.Anything, "nonexistent@example.com", "password123").
		Return(nil, apiError.Unauthorized("Invalid email or password", nil))

	w := postJSON(router, "/login", FormLogin{Email: "nonexistent@example.com", Password: "password123"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertExpectations(t)
}

func TestRefreshToken(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService, signer, false)
	router := setupRouter()
	router.POST("/refresh", handler.RefreshToken)

	mockService.On("GetUserByID", mock.Anything, uint64(1)).
		Return(&domain.User{ID: 1, TokenVersion: 2, IsActive: true}, nil)

	refresh := func(version uint64) int {
		token, err := signer.GenerateRefreshToken(1, version)
		require.NoError(t, err)
		req := httptest.NewRequest("POST", "/refresh", nil)
		req.AddCookie(&http.Cookie{Name: "refresh_token", Value: token})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, refresh(2))
	assert.Equal(t, http.StatusUnauthorized, refresh(1))

	req := httptest.NewRequest("POST", "/refresh", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_Success(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService, signer, false)
	router := setupRouter()

	mockService.On("IncreaseTokenVersion", mock.Anything, uint64(1)).Return(nil)

	router.DELETE("/logout", func(c *gin.Context) {
		c.Set("user_id", uint64(1))
		handler.Logout(c)
	})

	req := httptest.NewRequest("DELETE", "/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}

func TestLogout_RevokeFailureStillLogsOut(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService, signer, false)
	router := setupRouter()

	mockService.On("IncreaseTokenVersion", mock.Anything, uint64(1)).Return(assert.AnError)

	router.DELETE("/logout", func(c *gin.Context) {
		c.Set("user_id", uint64(1))
		handler.Logout(c)
	})

	req := httptest.NewRequest("DELETE", "/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGetProfile_Success(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService, signer, false)
	router := setupRouter()

	user := &domain.User{
		ID:        1,
		Name:      "John Doe",
		Email:     "john@example.com",
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	mockService.On("GetUserByID", mock.Anything, uint64(1)).Return(user, nil)

	router.GET("/profile", func(c *gin.Context) {
		c.Set("user_id", uint64(1))
		handler.GetProfile(c)
	})

	req := httptest.NewRequest("GET", "/profile", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response domain.SafeUser
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "John Doe", response.Name)
	assert.Equal(t, "john@example.com", response.Email)
	mockService.AssertExpectations(t)
}

func TestGetProfile_NoUserID(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService, signer, false)
	router := setupRouter()
	router.GET("/profile", handler.GetProfile)

	req := httptest.NewRequest("GET", "/profile", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetProfile_UserNotFound(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService, signer, false)
	router := setupRouter()

	mockService.On("GetUserByID", mock.Anything, uint64(999)).
		Return(nil, apiError.NotFound("User not found", nil))

	router.GET("/profile", func(c *gin.Context) {
		c.Set("user_id", uint64(999))
		handler.GetProfile(c)
	})

	req := httptest.NewRequest("GET", "/profile", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
