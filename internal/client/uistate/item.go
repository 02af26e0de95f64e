package uistate

import "github.com/dmitrijs2005/memomap/internal/client/models"

type ItemPhase int

const (
	ItemIdle ItemPhase = iota
	ItemLoading
	ItemLoaded
	ItemOperationSucceeded
	ItemError
)

func (p ItemPhase) String() string {
	switch p {
	case ItemLoading:
		return "loading"
	case ItemLoaded:
		return "loaded"
	case ItemOperationSucceeded:
		return "operation-succeeded"
	case ItemError:
		return "error"
	default:
		return "idle"
	}
}

// ItemStatus is the state of the single-memory screens. FetchingLocation is
// independent of Phase.
type ItemStatus struct {
	Phase            ItemPhase
	Item             *models.MemoryPost
	Message          string
	FetchingLocation bool
}

// Mutation names the write that finished, which decides the list to refresh.
type Mutation int

const (
	Created Mutation = iota + 1
	Updated
	Deleted
)

type ItemEvent interface{ itemEvent() }

type (
	ItemRequested struct{}
	ItemLoadedEvt struct{ Item models.MemoryPost }
	ItemMutated   struct {
		Kind Mutation
		Item *models.MemoryPost
	}
	ItemFailed       struct{ Message string }
	ItemReset        struct{}
	LocationFetching struct{ On bool }
)

func (ItemRequested) itemEvent()    {}
func (ItemLoadedEvt) itemEvent()    {}
func (ItemMutated) itemEvent()      {}
func (ItemFailed) itemEvent()       {}
func (ItemReset) itemEvent()        {}
func (LocationFetching) itemEvent() {}

// ReduceItem: created and deleted posts refresh the own list, updated posts
// refresh the feed.
func ReduceItem(s ItemStatus, e ItemEvent) (ItemStatus, []Effect) {
	switch e := e.(type) {
	case ItemRequested:
		return ItemStatus{Phase: ItemLoading, Item: s.Item, FetchingLocation: s.FetchingLocation}, nil
	case ItemLoadedEvt:
		it := e.Item
		return ItemStatus{Phase: ItemLoaded, Item: &it, FetchingLocation: s.FetchingLocation}, nil
	case ItemMutated:
		next := ItemStatus{Phase: ItemOperationSucceeded, Item: e.Item, FetchingLocation: s.FetchingLocation}
		switch e.Kind {
		case Created, Deleted:
			return next, []Effect{RefetchOwn}
		case Updated:
			return next, []Effect{RefetchFeed}
		}
		return next, nil
	case ItemFailed:
		return ItemStatus{Phase: ItemError, Message: e.Message, FetchingLocation: s.FetchingLocation}, nil
	case ItemReset:
		return ItemStatus{}, nil
	case LocationFetching:
		s.FetchingLocation = e.On
		return s, nil
	}
	return s, nil
}
