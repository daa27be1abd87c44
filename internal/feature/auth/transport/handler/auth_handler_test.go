package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"shop_backend/internal/feature/auth/domain/entity"
	"shop_backend/internal/feature/auth/usecase"
	jwtmw "shop_backend/internal/platform/jwt"
)

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	SignupFunc         func(ctx context.Context, name, email, username, password string) (*entity.User, error)
	LoginFunc          func(ctx context.Context, identifier, password string) (string, error)
	GetProfileFunc     func(ctx context.Context, userID uint) (*entity.User, error)
	UpdateProfileFunc  func(ctx context.Context, userID uint, name string) (*entity.User, error)
	ChangePasswordFunc func(ctx context.Context, userID uint, current, newPassword string) error
	ListUsersFunc      func(ctx context.Context) ([]entity.User, error)
}

func (m *mockAuthUsecase) Signup(ctx context.Context, name, email, username, password string) (*entity.User, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, name, email, username, password)
	}
	return &entity.User{ID: 1, Name: name, Email: email, Username: username, Role: entity.RoleUser}, nil
}

func (m *mockAuthUsecase) Login(ctx context.Context, identifier, password string) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, identifier, password)
	}
	return "", errors.New("login failed") // Default: failure
}

func (m *mockAuthUsecase) GetProfile(ctx context.Context, userID uint) (*entity.User, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	return nil, usecase.ErrUserNotFound
}

func (m *mockAuthUsecase) UpdateProfile(ctx context.Context, userID uint, name string) (*entity.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, name)
	}
	return &entity.User{ID: userID, Name: name}, nil
}

func (m *mockAuthUsecase) ChangePassword(ctx context.Context, userID uint, current, newPassword string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, userID, current, newPassword)
	}
	return nil
}

func (m *mockAuthUsecase) ListUsers(ctx context.Context) ([]entity.User, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx)
	}
	return nil, nil
}

// asUser injects the authenticated identity the way AuthRequired would.
func asUser(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, userID)
		c.Next()
	}
}

func TestAuthHandler_Signup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	validBody := gin.H{
		"name": "Test User", "email": "test@example.com",
		"username": "tester", "password": "Password1",
	}

	tests := []struct {
		name           string
		requestBody    gin.H
		mockSignupFunc func(ctx context.Context, name, email, username, password string) (*entity.User, error)
		expectedStatus int
	}{
		{
			name:           "success: user registration",
			requestBody:    validBody,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "failure: invalid email address",
			requestBody:    gin.H{"name": "T", "email": "invalid-email", "username": "tester", "password": "Password1"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "failure: short password",
			requestBody:    gin.H{"name": "T", "email": "test@example.com", "username": "tester", "password": "short"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "failure: duplicate email",
			requestBody: validBody,
			mockSignupFunc: func(ctx context.Context, name, email, username, password string) (*entity.User, error) {
				return nil, usecase.ErrEmailTaken
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:        "failure: duplicate username",
			requestBody: validBody,
			mockSignupFunc: func(ctx context.Context, name, email, username, password string) (*entity.User, error) {
				return nil, usecase.ErrUsernameTaken
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:        "failure: weak password from usecase",
			requestBody: validBody,
			mockSignupFunc: func(ctx context.Context, name, email, username, password string) (*entity.User, error) {
				return nil, usecase.ErrWeakPassword
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "failure: repository error",
			requestBody: validBody,
			mockSignupFunc: func(ctx context.Context, name, email, username, password string) (*entity.User, error) {
				return nil, errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{SignupFunc: tt.mockSignupFunc}
			handler := NewAuthHandler(mockUC)

			router := gin.New()
			router.POST("/signup", handler.Signup)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/signup", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusCreated {
				var resp gin.H
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "tester", resp["username"])
				assert.NotContains(t, resp, "password", "password must never be exposed")
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    gin.H
		mockLoginFunc  func(ctx context.Context, identifier, password string) (string, error)
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name:        "success: login with identifier",
			requestBody: gin.H{"identifier": "test@example.com", "password": "Password1"},
			mockLoginFunc: func(ctx context.Context, identifier, password string) (string, error) {
				return "dummy-jwt-token", nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   gin.H{"token": "dummy-jwt-token"},
		},
		{
			name:           "failure: missing password",
			requestBody:    gin.H{"identifier": "test@example.com"},
			mockLoginFunc:  nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid request"},
		},
		{
			name:        "failure: invalid credentials",
			requestBody: gin.H{"identifier": "wrong@example.com", "password": "wrong-password"},
			mockLoginFunc: func(ctx context.Context, identifier, password string) (string, error) {
				return "", usecase.ErrInvalidCredentials
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   gin.H{"error": "invalid credentials"},
		},
		{
			name:        "failure: internal error is hidden behind generic message",
			requestBody: gin.H{"identifier": "test@example.com", "password": "Password1"},
			mockLoginFunc: func(ctx context.Context, identifier, password string) (string, error) {
				return "", errors.New("server misconfigured: JWT_SECRET missing")
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   gin.H{"error": "invalid credentials"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{LoginFunc: tt.mockLoginFunc}
			handler := NewAuthHandler(mockUC)

			router := gin.New()
			router.POST("/login", handler.Login)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var responseBody gin.H
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &responseBody))
			assert.Equal(t, tt.expectedBody, responseBody)
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("returns the authenticated profile", func(t *testing.T) {
		mockUC := &mockAuthUsecase{
			GetProfileFunc: func(ctx context.Context, userID uint) (*entity.User, error) {
				return &entity.User{ID: userID, Name: "Test User", Email: "test@example.com",
					Username: "tester", Role: entity.RoleUser, IsVerified: true}, nil
			},
		}
		handler := NewAuthHandler(mockUC)

		router := gin.New()
		router.GET("/me", asUser(42), handler.Me)

		req, _ := http.NewRequest(http.MethodGet, "/me", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp gin.H
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, float64(42), resp["id"])
		assert.Equal(t, true, resp["is_verified"])
	})

	t.Run("without auth context", func(t *testing.T) {
		handler := NewAuthHandler(&mockAuthUsecase{})

		router := gin.New()
		router.GET("/me", handler.Me)

		req, _ := http.NewRequest(http.MethodGet, "/me", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    gin.H
		mockFunc       func(ctx context.Context, userID uint, current, newPassword string) error
		expectedStatus int
	}{
		{
			name:           "success: password changed",
			requestBody:    gin.H{"current_password": "OldPass12", "new_password": "NewPass12"},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "failure: wrong current password",
			requestBody: gin.H{"current_password": "WrongPass1", "new_password": "NewPass12"},
			mockFunc: func(ctx context.Context, userID uint, current, newPassword string) error {
				return usecase.ErrInvalidCredentials
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:        "failure: weak replacement",
			requestBody: gin.H{"current_password": "OldPass12", "new_password": "alllowercase"},
			mockFunc: func(ctx context.Context, userID uint, current, newPassword string) error {
				return usecase.ErrWeakPassword
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "failure: missing fields",
			requestBody:    gin.H{"new_password": "NewPass12"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{ChangePasswordFunc: tt.mockFunc}
			handler := NewAuthHandler(mockUC)

			router := gin.New()
			router.PUT("/me/password", asUser(42), handler.ChangePassword)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPut, "/me/password", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestAuthHandler_ListUsers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockUC := &mockAuthUsecase{
		ListUsersFunc: func(ctx context.Context) ([]entity.User, error) {
			return []entity.User{
				{ID: 1, Username: "admin", Role: entity.RoleAdmin},
				{ID: 2, Username: "alice", Role: entity.RoleUser},
			}, nil
		},
	}
	handler := NewAuthHandler(mockUC)

	router := gin.New()
	router.GET("/admin/users", handler.ListUsers)

	req, _ := http.NewRequest(http.MethodGet, "/admin/users", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp gin.H
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(2), resp["count"])
}
