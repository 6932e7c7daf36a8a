package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/intania/shop-backend/internal/apperr"
	"github.com/intania/shop-backend/internal/models"
)

var testSecret = []byte("test-secret-value")

const testKeyID = "key-1"

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := New(testSecret, testKeyID)
	require.NoError(t, err)
	return s
}

func TestNewRequiresSecretAndKeyID(t *testing.T) {
	_, err := New(nil, testKeyID)
	require.Error(t, err)

	_, err = New(testSecret, "")
	require.Error(t, err)
}

func TestIssueRoleLifetimes(t *testing.T) {
	s := newTestService(t)

	cases := []struct {
		role models.Role
		ttl  time.Duration
	}{
		{models.RoleAdmin, 30 * time.Minute},
		{models.RoleUser, 24 * time.Hour},
		{models.Role("SOMETHING_ELSE"), 24 * time.Hour},
	}

	for _, tc := range cases {
		raw, err := s.Issue("7", tc.role)
		require.NoError(t, err)

		var claims Claims
		_, _, err = jwt.NewParser().ParseUnverified(raw, &claims)
		require.NoError(t, err)
		require.EqualValues(t, tc.ttl/time.Second, claims.Exp-claims.Iat, "role %s", tc.role)
	}
}

func TestIssueSetsKeyID(t *testing.T) {
	s := newTestService(t)

	raw, err := s.Issue("7", models.RoleUser)
	require.NoError(t, err)

	tok, _, err := jwt.NewParser().ParseUnverified(raw, &Claims{})
	require.NoError(t, err)
	require.Equal(t, testKeyID, tok.Header["kid"])
	require.Equal(t, jwt.SigningMethodHS512.Alg(), tok.Header["alg"])
}

func TestValidateRoundTrip(t *testing.T) {
	s := newTestService(t)

	raw, err := s.Issue("42", models.RoleAdmin)
	require.NoError(t, err)

	claims, err := s.Validate(raw)
	require.NoError(t, err)
	require.Equal(t, "42", claims.ID)
	require.Equal(t, models.RoleAdmin, claims.Role)
}

func TestValidateTamperedSignature(t *testing.T) {
	s := newTestService(t)

	raw, err := s.Issue("42", models.RoleUser)
	require.NoError(t, err)

	// flip one byte of the signature
	b := []byte(raw)
	last := len(b) - 1
	if b[last] == 'A' {
		b[last] = 'B'
	} else {
		b[last] = 'A'
	}

	_, err = s.Validate(string(b))
	require.Error(t, err)
	require.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestValidateExpired(t *testing.T) {
	s := newTestService(t)

	now := time.Now()
	claims := &Claims{
		ID:   "42",
		Role: models.RoleUser,
		Iat:  now.Add(-2 * time.Hour).Unix(),
		Exp:  now.Add(-time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	tok.Header["kid"] = testKeyID
	raw, err := tok.SignedString(testSecret)
	require.NoError(t, err)

	_, err = s.Validate(raw)
	require.Error(t, err)
	require.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestValidateWrongAlgorithm(t *testing.T) {
	s := newTestService(t)

	claims := &Claims{
		ID:   "42",
		Role: models.RoleUser,
		Iat:  time.Now().Unix(),
		Exp:  time.Now().Add(time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := tok.SignedString(testSecret)
	require.NoError(t, err)

	_, err = s.Validate(raw)
	require.Error(t, err)
	require.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestValidateGarbage(t *testing.T) {
	s := newTestService(t)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := s.Validate(raw)
		require.Error(t, err)
		require.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	}
}
