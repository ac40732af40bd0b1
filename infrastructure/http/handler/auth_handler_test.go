package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sweetshop/sweetshop/application/port/inbound"
	"github.com/sweetshop/sweetshop/infrastructure/http/middleware"
	"github.com/sweetshop/sweetshop/infrastructure/service/logger"
	"github.com/sweetshop/sweetshop/infrastructure/service/ratelimit"
)

// MockAuthUseCase is a mock implementation of AuthUseCase
type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, req inbound.RegisterRequest) (*inbound.TokenResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.TokenResponse), args.Error(1)
}

func (m *MockAuthUseCase) Login(ctx context.Context, req inbound.LoginRequest) (*inbound.TokenResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.TokenResponse), args.Error(1)
}

func newAuthRouter(t *testing.T, useCase *MockAuthUseCase) *mux.Router {
	t.Helper()

	limiter, err := ratelimit.NewRateLimitService(ratelimit.RateLimitConfig{Enabled: false}, logrus.New())
	if err != nil {
		t.Fatalf("Failed to create rate limit service: %v", err)
	}
	testLogger := logger.NewStructuredLogger(logger.LoggerConfig{Level: "error", Format: "text", ServiceName: "test"})
	rateLimit := middleware.NewRateLimitMiddleware(limiter, testLogger, 10, time.Minute, time.Minute)

	router := mux.NewRouter()
	NewAuthHandler(useCase, rateLimit).RegisterRoutes(router)
	return router
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    string
		mockResponse   *inbound.TokenResponse
		mockError      error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "successful registration",
			requestBody:    `{"email":"buyer@example.com","password":"secret123"}`,
			mockResponse:   &inbound.TokenResponse{Token: "token-abc"},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"token":"token-abc"}`,
		},
		{
			name:           "duplicate account",
			requestBody:    `{"email":"buyer@example.com","password":"secret123"}`,
			mockError:      inbound.ErrDuplicateAccount,
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"message":"Account already registered"}`,
		},
		{
			name:           "invalid role",
			requestBody:    `{"email":"buyer@example.com","password":"secret123","role":"SUPERUSER"}`,
			mockError:      inbound.ErrInvalidRole,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"message":"Invalid role"}`,
		},
		{
			name:           "invalid email format",
			requestBody:    `{"email":"not-an-email","password":"secret123"}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"message":"Invalid email format"}`,
		},
		{
			name:           "missing password",
			requestBody:    `{"email":"buyer@example.com"}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"message":"Password is required"}`,
		},
		{
			name:           "invalid request body",
			requestBody:    `{"email": nope}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Invalid request body"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUseCase := &MockAuthUseCase{}
			router := newAuthRouter(t, mockUseCase)

			if tt.mockResponse != nil || tt.mockError != nil {
				mockUseCase.On("Register", mock.Anything, mock.AnythingOfType("inbound.RegisterRequest")).
					Return(tt.mockResponse, tt.mockError)
			}

			req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBufferString(tt.requestBody))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    string
		mockResponse   *inbound.TokenResponse
		mockError      error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "successful login",
			requestBody:    `{"email":"buyer@example.com","password":"secret123"}`,
			mockResponse:   &inbound.TokenResponse{Token: "token-abc"},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"token":"token-abc"}`,
		},
		{
			name:           "unknown email and wrong password share one message",
			requestBody:    `{"email":"buyer@example.com","password":"wrong"}`,
			mockError:      inbound.ErrInvalidCredentials,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"message":"Invalid credentials"}`,
		},
		{
			name:           "missing fields",
			requestBody:    `{"email":"buyer@example.com"}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"message":"Email and password are required"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUseCase := &MockAuthUseCase{}
			router := newAuthRouter(t, mockUseCase)

			if tt.mockResponse != nil || tt.mockError != nil {
				mockUseCase.On("Login", mock.Anything, mock.AnythingOfType("inbound.LoginRequest")).
					Return(tt.mockResponse, tt.mockError)
			}

			req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBufferString(tt.requestBody))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
		})
	}
}
