package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/authsession/internal/client/models"
	"github.com/dmitrijs2005/authsession/internal/client/session"
)

func TestLogin_Success(t *testing.T) {
	a := newTestApp(t, "jo@test.io", "secret1")

	require.NoError(t, a.Login(a.ctx))

	u := a.store.Snapshot().User
	require.NotNil(t, u)
	assert.Equal(t, "jo@test.io", u.Email)
	assert.Equal(t, "jo", u.Name)
	assert.Contains(t, a.buf.String(), "Welcome, jo!")
}

func TestLogin_EmptyFieldsStopBeforeStore(t *testing.T) {
	a := newTestApp(t, "", "")

	err := a.Login(a.ctx)
	require.ErrorIs(t, err, errMissingFields)
	assert.Contains(t, a.buf.String(), "Please fill in all fields")
	assert.NotContains(t, a.buf.String(), "Invalid email format")
}

func TestLogin_ShortPassword(t *testing.T) {
	a := newTestApp(t, "jo@test.io", "abc")

	err := a.Login(a.ctx)
	require.ErrorIs(t, err, session.ErrWeakPassword)
	assert.Contains(t, a.buf.String(), "Login Failed: Password must be at least 6 characters")
	assert.False(t, a.store.Snapshot().IsAuthenticated)
}

func TestLogin_BadEmailReportedFirst(t *testing.T) {
	a := newTestApp(t, "bad-email", "123")

	err := a.Login(a.ctx)
	require.ErrorIs(t, err, session.ErrInvalidEmailFormat)
	assert.Contains(t, a.buf.String(), "Login Failed: Invalid email format")
}

func TestLogin_WithoutSessionInContextPanics(t *testing.T) {
	a := newTestApp(t, "jo@test.io", "secret1")

	assert.Panics(t, func() { _ = a.Login(context.Background()) })
}

func TestRegister_Success(t *testing.T) {
	a := newTestApp(t, "Jo", "jo@test.io", "abcdef", "abcdef")

	require.NoError(t, a.Register(a.ctx))

	u := a.store.Snapshot().User
	require.NotNil(t, u)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "Jo", u.Name)
	assert.Equal(t, "jo@test.io", u.Email)

	_, ok, err := a.repo.Get(context.Background(), models.UserKey)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegister_PasswordsMustMatch(t *testing.T) {
	a := newTestApp(t, "Jo", "jo@test.io", "abcdef", "abcdeg")

	err := a.Register(a.ctx)
	require.ErrorIs(t, err, errPasswordMismatch)
	assert.Contains(t, a.buf.String(), "Passwords do not match")
	assert.False(t, a.store.Snapshot().IsAuthenticated)
}

func TestRegister_MissingName(t *testing.T) {
	a := newTestApp(t, "", "jo@test.io", "abcdef", "abcdef")

	require.ErrorIs(t, a.Register(a.ctx), errMissingFields)
}

func TestRegister_StoreRejection(t *testing.T) {
	a := newTestApp(t, "Jo", "jo-at-test.io", "abcdef", "abcdef")

	err := a.Register(a.ctx)
	require.ErrorIs(t, err, session.ErrInvalidEmailFormat)
	assert.Contains(t, a.buf.String(), "Registration Failed: Invalid email format")
}

func TestLogout_Confirmed(t *testing.T) {
	a := newTestApp(t, "jo@test.io", "secret1", "y")
	require.NoError(t, a.Login(a.ctx))

	require.NoError(t, a.Logout(a.ctx))

	assert.False(t, a.store.Snapshot().IsAuthenticated)
	assert.Contains(t, a.buf.String(), "Logged out")
	_, ok, _ := a.repo.Get(context.Background(), models.UserKey)
	assert.False(t, ok)
}

func TestLogout_Declined(t *testing.T) {
	a := newTestApp(t, "jo@test.io", "secret1", "n")
	require.NoError(t, a.Login(a.ctx))

	require.NoError(t, a.Logout(a.ctx))

	assert.True(t, a.store.Snapshot().IsAuthenticated)
	assert.NotContains(t, a.buf.String(), "Logged out")
}
