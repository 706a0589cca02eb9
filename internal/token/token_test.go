package token

import (
	"testing"
	"time"

	"github.com/Misscott/LocationAPI/internal/apierror"
	"github.com/Misscott/LocationAPI/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService(accessSecs, refreshSecs int) *Service {
	return NewService(&config.Config{
		JWTSecret:      "test_jwt_secret_32_chars_minimum!",
		JWTTime:        accessSecs,
		JWTRefreshTime: refreshSecs,
	})
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	svc := testService(900, 3600)
	user := uuid.New()

	pair, err := svc.Issue("admin", user)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := svc.Verify(pair.AccessToken, TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, user, claims.User)
	assert.Equal(t, TypeAccess, claims.Type)
}

func TestVerifyRejectsWrongType(t *testing.T) {
	svc := testService(900, 3600)
	pair, err := svc.Issue("viewer", uuid.New())
	require.NoError(t, err)

	// An access token is not a refresh token, and vice versa.
	_, err = svc.Verify(pair.AccessToken, TypeRefresh)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWrongTokenType)
	assert.True(t, apierror.Is(err, apierror.Unauthorized))

	_, err = svc.Verify(pair.RefreshToken, TypeAccess)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestVerifyRejectsExpired(t *testing.T) {
	svc := testService(900, 3600)
	svc.accessTTL = -time.Minute

	pair, err := svc.Issue("viewer", uuid.New())
	require.NoError(t, err)

	_, err = svc.Verify(pair.AccessToken, TypeAccess)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExpired)
	assert.True(t, apierror.Is(err, apierror.Unauthorized))
}

func TestVerifyRejectsTampered(t *testing.T) {
	svc := testService(900, 3600)
	pair, err := svc.Issue("viewer", uuid.New())
	require.NoError(t, err)

	other := testService(900, 3600)
	other.secret = []byte("another_secret_entirely_32_chars!")

	_, err = other.Verify(pair.AccessToken, TypeAccess)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestZeroTTLNeverExpires(t *testing.T) {
	svc := testService(0, 0)
	pair, err := svc.Issue("viewer", uuid.New())
	require.NoError(t, err)

	claims, err := svc.Verify(pair.AccessToken, TypeAccess)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
}

func TestVerifyGarbage(t *testing.T) {
	svc := testService(900, 3600)
	_, err := svc.Verify("not-a-jwt", TypeAccess)
	require.Error(t, err)
	assert.True(t, apierror.Is(err, apierror.Unauthorized))
}
