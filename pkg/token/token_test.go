package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewIssuer("test-secret", "user-directory-service", 15*time.Minute)

	signed, err := issuer.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	userID, err := issuer.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestParse_WrongSecret(t *testing.T) {
	issuer := NewIssuer("test-secret", "user-directory-service", 15*time.Minute)
	other := NewIssuer("other-secret", "user-directory-service", 15*time.Minute)

	signed, err := other.Issue(42)
	require.NoError(t, err)

	_, err = issuer.Parse(signed)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParse_ExpiredToken(t *testing.T) {
	issuer := NewIssuer("test-secret", "user-directory-service", -time.Minute)

	signed, err := issuer.Issue(42)
	require.NoError(t, err)

	_, err = issuer.Parse(signed)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParse_Garbage(t *testing.T) {
	issuer := NewIssuer("test-secret", "user-directory-service", 15*time.Minute)

	_, err := issuer.Parse("not.a.token")
	require.Error(t, err)

	_, err = issuer.Parse("")
	require.Error(t, err)
}

func TestParse_RejectsUnsignedAlgorithm(t *testing.T) {
	issuer := NewIssuer("test-secret", "user-directory-service", 15*time.Minute)

	// alg=none tokens must never validate, even with a well-formed subject
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = issuer.Parse(signed)
	require.Error(t, err)
}

func TestParse_NonNumericSubject(t *testing.T) {
	issuer := NewIssuer("test-secret", "user-directory-service", 15*time.Minute)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "not-a-number",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = issuer.Parse(signed)
	require.Error(t, err)
}
