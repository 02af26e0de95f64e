package uistate

// Effect is a side effect requested by a reducer.
type Effect int

const (
	PersistSession Effect = iota + 1
	ClearSession
	NavigateHome
	NavigateLogin
	ResetForm
	RefetchOwn
	RefetchFeed
)

func (e Effect) String() string {
	switch e {
	case PersistSession:
		return "persist-session"
	case ClearSession:
		return "clear-session"
	case NavigateHome:
		return "navigate-home"
	case NavigateLogin:
		return "navigate-login"
	case ResetForm:
		return "reset-form"
	case RefetchOwn:
		return "refetch-own"
	case RefetchFeed:
		return "refetch-feed"
	default:
		return "unknown"
	}
}
