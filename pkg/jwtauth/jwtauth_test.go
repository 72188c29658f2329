package jwtauth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_IssueAndParse(t *testing.T) {
	m, err := NewManager("secret", "slot-service", time.Hour)
	require.NoError(t, err)

	token, err := m.Issue(7, "owner@example.com", "business_admin", 3)
	require.NoError(t, err)

	claims, err := m.ParseBearer("Bearer " + token)
	require.NoError(t, err)

	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, int64(3), claims.BusinessID)
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.Equal(t, "business_admin", claims.Role)
	assert.Equal(t, "7", claims.Subject)
}

func TestManager_RejectsForeignSecret(t *testing.T) {
	issuer, err := NewManager("secret-a", "slot-service", time.Hour)
	require.NoError(t, err)
	verifier, err := NewManager("secret-b", "slot-service", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue(1, "a@example.com", "business_admin", 1)
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RejectsExpiredToken(t *testing.T) {
	m, err := NewManager("secret", "slot-service", time.Hour)
	require.NoError(t, err)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := m.Issue(1, "a@example.com", "business_admin", 1)
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RejectsOtherSigningMethod(t *testing.T) {
	m, err := NewManager("secret", "", time.Hour)
	require.NoError(t, err)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           1,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_ParseBearer_MissingPrefix(t *testing.T) {
	m, err := NewManager("secret", "", time.Hour)
	require.NoError(t, err)

	_, err = m.ParseBearer("Token abc")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = m.ParseBearer("Bearer ")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestNewManager_EmptySecret(t *testing.T) {
	_, err := NewManager("", "", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)
}
