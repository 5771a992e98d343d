package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authsession/internal/client/session"
	"github.com/dmitrijs2005/authsession/internal/common"
)

var (
	errMissingFields    = errors.New("missing fields")
	errPasswordMismatch = errors.New("passwords do not match")
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	confirm       = Confirm
)

// Login prompts for email and password and signs in. Empty fields are
// rejected before the session store is called.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if email == "" || len(password) == 0 {
		fmt.Fprintln(a.out, "Error: Please fill in all fields")
		return errMissingFields
	}

	res := session.FromContext(ctx).Login(ctx, email, string(password))
	if !res.Success {
		fmt.Fprintln(a.out, "Login Failed:", res.Message())
		return res.Err
	}

	a.greet(ctx)
	return nil
}

// Register prompts for name, email, password and its confirmation, then
// creates the account and signs it in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Full name", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirmation, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirmation)

	if name == "" || email == "" || len(password) == 0 || len(confirmation) == 0 {
		fmt.Fprintln(a.out, "Error: Please fill in all fields")
		return errMissingFields
	}
	if string(password) != string(confirmation) {
		fmt.Fprintln(a.out, "Error: Passwords do not match")
		return errPasswordMismatch
	}

	res := session.FromContext(ctx).Register(ctx, name, email, string(password))
	if !res.Success {
		fmt.Fprintln(a.out, "Registration Failed:", res.Message())
		return res.Err
	}

	a.greet(ctx)
	return nil
}

// Logout asks for confirmation and signs out.
func (a *App) Logout(ctx context.Context) error {
	ok, err := confirm(a.reader, "Are you sure you want to logout?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	session.FromContext(ctx).Logout(ctx)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) greet(ctx context.Context) {
	if u := session.FromContext(ctx).Snapshot().User; u != nil {
		fmt.Fprintf(a.out, "Welcome, %s!\n", u.Name)
	}
}
