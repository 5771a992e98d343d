package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) isLoggedIn(context.Context) bool { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error {
	f.calls = append(f.calls, "register")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Login(context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Home(context.Context) error    { f.calls = append(f.calls, "home"); return nil }
func (f *fakeExec) Profile(context.Context) error { f.calls = append(f.calls, "profile"); return nil }
func (f *fakeExec) Status(context.Context) error  { f.calls = append(f.calls, "status"); return nil }
func (f *fakeExec) Token(context.Context) error   { f.calls = append(f.calls, "token"); return nil }
func (f *fakeExec) Stats(context.Context) error   { f.calls = append(f.calls, "stats"); return nil }

func TestRunREPL_SwitchesCommandSetsWithAuthState(t *testing.T) {
	var out bytes.Buffer
	exec := &fakeExec{}

	runREPL(context.Background(), exec, func() string { return "" }, readerFromLines(
		"help",
		"home",
		"stats",
		"login",
		"help",
		"login",
		"home",
		"profile",
		"token",
		"status",
		"logout",
		"profile",
		"",
		"exit",
		"home",
	), &out)

	assert.Equal(t, []string{"stats", "login", "home", "profile", "token", "status", "logout"}, exec.calls)

	s := out.String()
	assert.Contains(t, s, authHelp)
	assert.Contains(t, s, mainHelp)
	assert.Equal(t, 3, strings.Count(s, "Unknown command:"), "home before login, login while signed in, profile after logout")
	assert.Contains(t, s, "Bye!")
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	var out bytes.Buffer
	exec := &fakeExec{}

	runREPL(context.Background(), exec, func() string { return "(x) " }, readerFromLines("register"), &out)

	assert.Equal(t, []string{"register"}, exec.calls)
	assert.Contains(t, out.String(), "session (x) > ")
}
