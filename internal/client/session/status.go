package session

// Status is the derived state of a session.
type Status int

const (
	// StatusInitializing lasts until the first Restore completes.
	StatusInitializing Status = iota
	StatusUnauthenticated
	StatusAuthenticated
	// StatusMutating means an action is in flight over a stable status.
	StatusMutating
)

func (s Status) String() string {
	switch s {
	case StatusInitializing:
		return "initializing"
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusAuthenticated:
		return "authenticated"
	case StatusMutating:
		return "mutating"
	default:
		return "unknown"
	}
}
