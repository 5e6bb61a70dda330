package domain

type SessionState int

const (
	SessionUnauthenticated SessionState = iota
	SessionLoading
	SessionReady
	SessionFailed
)

func (s SessionState) String() string {
	switch s {
	case SessionUnauthenticated:
		return "unauthenticated"
	case SessionLoading:
		return "loading"
	case SessionReady:
		return "ready"
	case SessionFailed:
		return "failed"
	default:
		return "unknown"
	}
}
