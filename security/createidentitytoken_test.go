package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-signing-secret")

func TestIdentityTokenRoundTrip(t *testing.T) {
	token, err := CreateIdentityToken(Identity{EmployeeID: 2, UniqueName: "shein", Name: "Shein"}, secret, time.Hour)
	require.NoError(t, err)

	id, err := ParseIdentityToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, 2, id.EmployeeID)
	assert.Equal(t, "shein", id.UniqueName)
}

func TestParseIdentityTokenRejects(t *testing.T) {
	valid, err := CreateIdentityToken(Identity{EmployeeID: 1}, secret, time.Hour)
	require.NoError(t, err)
	expired, err := CreateIdentityToken(Identity{EmployeeID: 1}, secret, -time.Minute)
	require.NoError(t, err)
	noEmployee, err := CreateIdentityToken(Identity{}, secret, time.Hour)
	require.NoError(t, err)
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, IdentityClaims{
		Identity:         Identity{EmployeeID: 1},
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone-else", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(secret)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret []byte
	}{
		{name: "Wrong secret", token: valid, secret: []byte("other")},
		{name: "Expired", token: expired, secret: secret},
		{name: "No employee", token: noEmployee, secret: secret},
		{name: "Foreign issuer", token: foreign, secret: secret},
		{name: "Garbage", token: "not-a-token", secret: secret},
		{name: "Dummy token", token: "dummy-token", secret: secret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseIdentityToken(tt.token, tt.secret)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestCreateIdentityTokenRequiresSecret(t *testing.T) {
	_, err := CreateIdentityToken(Identity{EmployeeID: 1}, nil, time.Hour)
	assert.Error(t, err)
}
