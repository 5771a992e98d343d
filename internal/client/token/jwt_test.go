package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/authsession/internal/client/models"
)

var jo = models.User{ID: "user_1", Email: "jo@test.io", Name: "Jo"}

func TestIssueAndParse_Success(t *testing.T) {
	t.Parallel()

	iss := NewIssuer([]byte("super-secret"), time.Hour)

	tok, err := iss.Issue(jo)
	require.NoError(t, err)

	claims, err := iss.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user_1", claims.Subject)
	assert.Equal(t, "jo@test.io", claims.Email)
	assert.Equal(t, "Jo", claims.Name)
	assert.Equal(t, "authsession", claims.Issuer)
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	iss := NewIssuer([]byte("secret"), time.Hour)
	tok, err := iss.Issue(jo)
	require.NoError(t, err)

	iss.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = iss.Parse(tok)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestParse_WrongKey(t *testing.T) {
	t.Parallel()

	tok, err := NewIssuer([]byte("right"), time.Hour).Issue(jo)
	require.NoError(t, err)

	_, err = NewIssuer([]byte("wrong"), time.Hour).Parse(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	t.Parallel()

	_, err := NewIssuer([]byte("k"), time.Hour).Parse("not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssue_EmptyUserID(t *testing.T) {
	t.Parallel()

	_, err := NewIssuer([]byte("k"), time.Hour).Issue(models.User{Email: "a@b"})
	require.ErrorIs(t, err, ErrInvalidToken)
}
