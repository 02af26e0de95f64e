package controllers

import (
	"context"

	"github.com/dmitrijs2005/memomap/internal/client/models"
	"github.com/dmitrijs2005/memomap/internal/client/repositories/memories"
	"github.com/dmitrijs2005/memomap/internal/client/uistate"
	"github.com/dmitrijs2005/memomap/internal/common"
	"github.com/dmitrijs2005/memomap/internal/logging"
)

// ListSource says which list a ListSnapshot holds.
type ListSource int

const (
	SourceNone ListSource = iota
	SourceFeed
	SourceMine
)

func (s ListSource) String() string {
	switch s {
	case SourceFeed:
		return "feed"
	case SourceMine:
		return "mine"
	default:
		return "none"
	}
}

type ListSnapshot struct {
	Source ListSource
	Status uistate.ListStatus
}

// ListController loads the feed or the user's own memories. Both share one
// state: the last started fetch wins.
type ListController struct {
	repo    memories.Repository
	session SessionReader
	logger  logging.Logger
	state   *observable[ListSnapshot]
}

func NewListController(repo memories.Repository, session SessionReader, logger logging.Logger) *ListController {
	if logger == nil {
		logger = logging.Nop()
	}
	return &ListController{
		repo:    repo,
		session: session,
		logger:  logger.With("controller", "list"),
		state:   newObservable(ListSnapshot{}),
	}
}

func (c *ListController) Snapshot() ListSnapshot {
	return c.state.get()
}

func (c *ListController) Subscribe(fn func(ListSnapshot)) func() {
	return c.state.subscribe(fn)
}

func (c *ListController) FetchFeed(ctx context.Context) error {
	return c.fetch(ctx, SourceFeed, common.ErrNotAuthenticatedFeed, c.repo.ListAll)
}

func (c *ListController) FetchMine(ctx context.Context) error {
	return c.fetch(ctx, SourceMine, common.ErrNotAuthenticated, c.repo.ListOwn)
}

func (c *ListController) fetch(ctx context.Context, src ListSource, gateErr error, list func(context.Context, string) ([]models.MemoryPost, error)) error {
	st, err := c.session.Current(ctx)
	if err == nil && !st.LoggedIn() {
		err = gateErr
	}
	if err != nil {
		c.state.invalidate(func(s ListSnapshot) ListSnapshot {
			s.Source = src
			s.Status, _ = uistate.ReduceList(s.Status, uistate.ListFailed{Message: err.Error()})
			return s
		})
		return err
	}

	var prev uistate.ListStatus
	gen := c.state.begin(func(s ListSnapshot) ListSnapshot {
		if s.Source != src {
			s.Status = uistate.ListStatus{}
		}
		prev = s.Status
		s.Source = src
		s.Status, _ = uistate.ReduceList(s.Status, uistate.ListRequested{})
		return s
	})

	items, err := list(ctx, st.Token)
	if err != nil {
		if ctx.Err() != nil {
			c.state.commit(gen, func(s ListSnapshot) ListSnapshot {
				s.Status = prev
				return s
			})
			return ctx.Err()
		}
		c.logger.Warn(ctx, "fetch failed", "source", src.String(), "error", err)
		c.state.commit(gen, func(s ListSnapshot) ListSnapshot {
			s.Status, _ = uistate.ReduceList(s.Status, uistate.ListFailed{Message: err.Error()})
			return s
		})
		return err
	}

	if !c.state.commit(gen, func(s ListSnapshot) ListSnapshot {
		s.Status, _ = uistate.ReduceList(s.Status, uistate.ListLoadedEvt{Items: items})
		return s
	}) {
		c.logger.Debug(ctx, "dropping stale list", "source", src.String())
	}
	return nil
}
