// Package cli is the interactive terminal client for the session store.
//
// It plays the part of the app's screens: on start it restores the
// previous session (printing "Loading..." until that finishes), then
// offers either the auth commands (login, register) or the main commands
// (home, profile, token, logout) depending on whether a user is signed in.
// status and stats work in both modes.
//
// Commands reach the session through session.FromContext, so running one
// outside App.Run fails loudly. See App, runREPL and the input helpers.
package cli
