package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/common/expfmt"

	"github.com/dmitrijs2005/authsession/internal/client/session"
)

var errNotSignedIn = errors.New("not signed in")

// Home prints the greeting shown on the home screen.
func (a *App) Home(ctx context.Context) error {
	u := session.FromContext(ctx).Snapshot().User
	if u == nil {
		return errNotSignedIn
	}
	fmt.Fprintf(a.out, "Welcome back, %s!\n", u.Name)
	return nil
}

// Profile prints the signed-in user's details.
func (a *App) Profile(ctx context.Context) error {
	u := session.FromContext(ctx).Snapshot().User
	if u == nil {
		return errNotSignedIn
	}
	fmt.Fprintf(a.out, "Name:  %s\nEmail: %s\nID:    %s\n", u.Name, u.Email, u.ID)
	return nil
}

// Status prints the session state and the settings it runs with.
func (a *App) Status(ctx context.Context) error {
	s := session.FromContext(ctx)
	snap := s.Snapshot()

	db := a.config.DatabasePath
	if db == "" {
		db = "(memory)"
	}

	fmt.Fprintf(a.out, "Status:        %s\n", s.Status())
	fmt.Fprintf(a.out, "Authenticated: %t\n", snap.IsAuthenticated)
	fmt.Fprintf(a.out, "Loading:       %t\n", snap.IsLoading)
	fmt.Fprintf(a.out, "Database:      %s\n", db)
	fmt.Fprintf(a.out, "Latency:       %s\n", a.config.LatencySimulation)
	return nil
}

// Token decodes and prints the stored session token.
func (a *App) Token(ctx context.Context) error {
	raw, ok, err := session.FromContext(ctx).Token(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "No session token stored")
		return nil
	}

	claims, err := a.tokens.Parse(raw)
	if err != nil {
		fmt.Fprintln(a.out, "Stored token is not valid:", err)
		return err
	}

	fmt.Fprintf(a.out, "Subject: %s\n", claims.Subject)
	fmt.Fprintf(a.out, "Email:   %s\n", claims.Email)
	if claims.ExpiresAt != nil {
		fmt.Fprintf(a.out, "Expires: %s\n", claims.ExpiresAt.Time.UTC().Format(time.RFC3339))
	}
	return nil
}

// Stats prints the session metrics in the Prometheus text format.
func (a *App) Stats(ctx context.Context) error {
	families, err := a.registry.Gather()
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}

	enc := expfmt.NewEncoder(a.out, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, f := range families {
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encode %s: %w", f.GetName(), err)
		}
	}
	return nil
}
