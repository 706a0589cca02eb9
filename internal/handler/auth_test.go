package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Misscott/LocationAPI/internal/apierror"
	"github.com/Misscott/LocationAPI/internal/dto"
	"github.com/Misscott/LocationAPI/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuthService accepts a single fixed credential pair.
type stubAuthService struct {
	username string
	password string
	role     string
}

func (s *stubAuthService) pair(username string) *dto.LoginResponse {
	resp := &dto.LoginResponse{
		AccessToken:  "access-" + username,
		RefreshToken: "refresh-" + username,
		TokenType:    "bearer",
		User:         dto.UserResponse{UUID: uuid.New(), Username: username, Role: s.role},
	}
	return resp
}

func (s *stubAuthService) Login(_ context.Context, req dto.LoginRequest, _ time.Time) (*dto.LoginResponse, error) {
	if req.Username != s.username || req.Password != s.password {
		return nil, apierror.E(apierror.Unauthorized, "invalid credentials", nil)
	}
	return s.pair(req.Username), nil
}

func (s *stubAuthService) Refresh(_ context.Context, refreshToken string, _ time.Time) (*dto.LoginResponse, error) {
	if refreshToken != "refresh-"+s.username {
		return nil, apierror.E(apierror.Unauthorized, "invalid credentials", nil)
	}
	return s.pair(s.username), nil
}

func (s *stubAuthService) Register(_ context.Context, req dto.RegisterRequest, _ time.Time) (*dto.UserResponse, error) {
	if req.Username == s.username {
		return nil, apierror.E(apierror.Conflict, "username already taken", nil)
	}
	return &dto.UserResponse{UUID: uuid.New(), Username: req.Username, Role: "viewer"}, nil
}

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(&stubAuthService{username: "alice", password: "s3cretpass", role: "admin"})

	r := gin.New()
	r.Use(middleware.Snapshot(), middleware.ErrorHandler(false))
	r.POST("/login", h.Login)
	r.POST("/refresh", h.Refresh)
	r.POST("/register", h.Register)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginEndpoint(t *testing.T) {
	r := authTestRouter()

	w := postJSON(t, r, "/login", gin.H{"username": "alice", "password": "s3cretpass"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "access-alice", resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "admin", resp.User.Role)
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	r := authTestRouter()

	w := postJSON(t, r, "/login", gin.H{"username": "alice", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "invalid credentials", body["message"])
}

func TestLoginEndpointValidation(t *testing.T) {
	r := authTestRouter()

	// Missing password fails the validator, not the service.
	w := postJSON(t, r, "/login", gin.H{"username": "alice"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Malformed JSON is a plain 400.
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshEndpoint(t *testing.T) {
	r := authTestRouter()

	w := postJSON(t, r, "/refresh", gin.H{"refreshToken": "refresh-alice"})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, "/refresh", gin.H{"refreshToken": "stale"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterEndpoint(t *testing.T) {
	r := authTestRouter()

	w := postJSON(t, r, "/register", gin.H{"username": "newbie", "password": "longenough"})
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Data struct {
			User dto.UserResponse `json:"user"`
		} `json:"_data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "newbie", body.Data.User.Username)
	assert.Equal(t, "viewer", body.Data.User.Role)
}

func TestRegisterEndpointConflict(t *testing.T) {
	r := authTestRouter()

	w := postJSON(t, r, "/register", gin.H{"username": "alice", "password": "longenough"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterEndpointWeakPassword(t *testing.T) {
	r := authTestRouter()

	w := postJSON(t, r, "/register", gin.H{"username": "newbie", "password": "short"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
