package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL drives. App satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Home(ctx context.Context) error
	Profile(ctx context.Context) error
	Status(ctx context.Context) error
	Token(ctx context.Context) error
	Stats(ctx context.Context) error
}

const (
	authHelp = "Available commands: login, register, status, stats, exit"
	mainHelp = "Available commands: home, profile, token, status, stats, logout, exit"
)

// runREPL reads commands from reader until EOF or "exit"/"quit".
//
// Which commands are accepted depends on the signed-in state, the same way
// the app swaps its auth and main navigators:
//
//	Signed out:
//	  - login          sign in with email and password
//	  - register       create an account
//
//	Signed in:
//	  - home           greeting for the current user
//	  - profile        name, email and id
//	  - token          decode the stored session token
//	  - logout         sign out (asks for confirmation)
//
//	Always:
//	  - status         session status and settings
//	  - stats          session action metrics
//	  - help           list commands
//	  - exit | quit    leave the program
//
// Errors returned by command handlers are ignored here; handlers report
// them to the user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "session %s> ", statusFn())
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		loggedIn := a.isLoggedIn(ctx)

		switch {
		case cmd == "help":
			if loggedIn {
				fmt.Fprintln(w, mainHelp)
			} else {
				fmt.Fprintln(w, authHelp)
			}

		case cmd == "exit" || cmd == "quit":
			fmt.Fprintln(w, "Bye!")
			return

		case cmd == "status":
			_ = a.Status(ctx)

		case cmd == "stats":
			_ = a.Stats(ctx)

		case !loggedIn && cmd == "login":
			_ = a.Login(ctx)

		case !loggedIn && cmd == "register":
			_ = a.Register(ctx)

		case loggedIn && cmd == "home":
			_ = a.Home(ctx)

		case loggedIn && cmd == "profile":
			_ = a.Profile(ctx)

		case loggedIn && cmd == "token":
			_ = a.Token(ctx)

		case loggedIn && cmd == "logout":
			_ = a.Logout(ctx)

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
