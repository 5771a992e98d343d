// Package models defines client-side data models shared by the session store,
// its storage and the terminal client.
package models

// Storage keys used by the session store. TokenKey holds the session token
// issued together with the user record.
const (
	UserKey  = "@auth_user"
	TokenKey = "@auth_token"
)
