package session

import "errors"

var (
	// Validation errors, reported in the order the checks run.
	ErrNameRequired       = errors.New("name is required")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")

	// ErrStorageFailure wraps read, write and decode failures of the
	// persisted session.
	ErrStorageFailure = errors.New("storage failure")

	// Catch-all results for unexpected failures inside an action.
	ErrLoginFailed        = errors.New("login failed")
	ErrRegistrationFailed = errors.New("registration failed")
)

// messages holds the text the view layer shows for each result error.
var messages = []struct {
	err error
	msg string
}{
	{ErrNameRequired, "Name is required"},
	{ErrInvalidEmailFormat, "Invalid email format"},
	{ErrWeakPassword, "Password must be at least 6 characters"},
	{ErrLoginFailed, "Login failed. Please try again."},
	{ErrRegistrationFailed, "Registration failed. Please try again."},
}

// Result is what Login and Register hand back. Err is nil on success.
type Result struct {
	Success bool
	Err     error
}

// Message returns the user-facing text for a failed result, or "" on success.
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	for _, m := range messages {
		if errors.Is(r.Err, m.err) {
			return m.msg
		}
	}
	return r.Err.Error()
}

func succeeded() Result { return Result{Success: true} }

func failed(err error) Result { return Result{Err: err} }
