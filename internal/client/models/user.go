package models

// User is the signed-in account as the view layer sees it.
type User struct {
	// ID is an opaque identifier, stable for the life of the account.
	ID string `json:"id"`

	// Email is the sign-in key. It is not checked against any directory.
	Email string `json:"email"`

	// Name is the display name. On login it defaults to the email local-part.
	Name string `json:"name"`
}

// Snapshot is a read-only copy of the session state handed to the view layer.
type Snapshot struct {
	IsAuthenticated bool
	IsLoading       bool
	User            *User
}
