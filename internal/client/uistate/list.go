package uistate

import "github.com/dmitrijs2005/memomap/internal/client/models"

type ListPhase int

const (
	ListIdle ListPhase = iota
	ListLoading
	ListLoaded
	ListError
)

func (p ListPhase) String() string {
	switch p {
	case ListLoading:
		return "loading"
	case ListLoaded:
		return "loaded"
	case ListError:
		return "error"
	default:
		return "idle"
	}
}

type ListStatus struct {
	Phase   ListPhase
	Items   []models.MemoryPost
	Message string
}

type ListEvent interface{ listEvent() }

type (
	ListRequested struct{}
	ListLoadedEvt struct{ Items []models.MemoryPost }
	ListFailed    struct{ Message string }
)

func (ListRequested) listEvent() {}
func (ListLoadedEvt) listEvent() {}
func (ListFailed) listEvent()    {}

// ReduceList keeps the previous items visible while a reload is running.
func ReduceList(s ListStatus, e ListEvent) (ListStatus, []Effect) {
	switch e := e.(type) {
	case ListRequested:
		return ListStatus{Phase: ListLoading, Items: s.Items}, nil
	case ListLoadedEvt:
		return ListStatus{Phase: ListLoaded, Items: e.Items}, nil
	case ListFailed:
		return ListStatus{Phase: ListError, Message: e.Message}, nil
	}
	return s, nil
}
