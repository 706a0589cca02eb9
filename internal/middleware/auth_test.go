package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Misscott/LocationAPI/internal/apierror"
	"github.com/Misscott/LocationAPI/internal/service"
	"github.com/Misscott/LocationAPI/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPermissions accepts any bearer token and answers Authorize with a
// canned error (nil = allowed).
type stubPermissions struct {
	authorizeErr error
}

func (s *stubPermissions) Authenticate(string) (*token.Claims, error) {
	return &token.Claims{Role: "viewer", User: uuid.New()}, nil
}

func (s *stubPermissions) Authorize(_ context.Context, claims *token.Claims, _, _ string, _ time.Time) (*service.Identity, error) {
	if s.authorizeErr != nil {
		return nil, s.authorizeErr
	}
	return &service.Identity{User: claims.User, Role: claims.Role}, nil
}

func protectedRouter(perms service.PermissionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler(false), Snapshot())
	r.GET("/things", Authenticate(perms), Authorize(perms), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func getThings(r *gin.Engine) (*httptest.ResponseRecorder, apierror.Response) {
	req := httptest.NewRequest(http.MethodGet, "/things", nil)
	req.Header.Set("Authorization", "Bearer any")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body apierror.Response
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestAuthorizeAllows(t *testing.T) {
	r := protectedRouter(&stubPermissions{})
	w, _ := getThings(r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthorizeDenialMessage(t *testing.T) {
	r := protectedRouter(&stubPermissions{authorizeErr: apierror.E(apierror.Forbidden, "", nil)})
	w, body := getThings(r)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "insufficient permissions", body.Message)
}

func TestAuthorizeLookupFailureKeepsServerErrorShape(t *testing.T) {
	// A failed grant lookup is an infrastructure error, not a denial: it must
	// surface as a plain 500 envelope, never as "insufficient permissions".
	r := protectedRouter(&stubPermissions{authorizeErr: apierror.E(apierror.ServerError, "", assert.AnError)})
	w, body := getThings(r)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEqual(t, "insufficient permissions", body.Message)
	assert.Equal(t, apierror.ServerError.String(), body.Message)
}

func TestAuthenticateRejectsMissingHeader(t *testing.T) {
	r := protectedRouter(&stubPermissions{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
