package controllers

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/memomap/internal/client/media"
	"github.com/dmitrijs2005/memomap/internal/client/repositories/memories"
	"github.com/dmitrijs2005/memomap/internal/client/uistate"
	"github.com/dmitrijs2005/memomap/internal/common"
	"github.com/dmitrijs2005/memomap/internal/logging"
)

// Refresher reloads lists after a write. ListController implements it.
type Refresher interface {
	FetchFeed(ctx context.Context) error
	FetchMine(ctx context.Context) error
}

// ItemController drives the create, edit and detail screens.
type ItemController struct {
	repo     memories.Repository
	session  SessionReader
	lists    Refresher
	uploader media.Uploader
	logger   logging.Logger
	state    *observable[uistate.ItemStatus]
}

// NewItemController builds the controller. lists and uploader may be nil:
// without lists nothing is refreshed, without an uploader image arguments
// are always sent as given.
func NewItemController(repo memories.Repository, session SessionReader, lists Refresher, uploader media.Uploader, logger logging.Logger) *ItemController {
	if logger == nil {
		logger = logging.Nop()
	}
	return &ItemController{
		repo:     repo,
		session:  session,
		lists:    lists,
		uploader: uploader,
		logger:   logger.With("controller", "item"),
		state:    newObservable(uistate.ItemStatus{}),
	}
}

func (c *ItemController) Status() uistate.ItemStatus {
	return c.state.get()
}

func (c *ItemController) Subscribe(fn func(uistate.ItemStatus)) func() {
	return c.state.subscribe(fn)
}

// Reset drops any request in flight and returns to idle.
func (c *ItemController) Reset() {
	c.state.invalidate(func(s uistate.ItemStatus) uistate.ItemStatus {
		next, _ := uistate.ReduceItem(s, uistate.ItemReset{})
		return next
	})
}

func (c *ItemController) SetFetchingLocation(on bool) {
	c.state.set(func(s uistate.ItemStatus) uistate.ItemStatus {
		next, _ := uistate.ReduceItem(s, uistate.LocationFetching{On: on})
		return next
	})
}

func (c *ItemController) Get(ctx context.Context, id int) error {
	return c.run(ctx, "get", func(ctx context.Context, token string) (uistate.ItemEvent, error) {
		m, err := c.repo.GetByID(ctx, token, id)
		if err != nil {
			return nil, err
		}
		return uistate.ItemLoadedEvt{Item: *m}, nil
	})
}

// Create uploads image first when it names a local file.
func (c *ItemController) Create(ctx context.Context, caption, image string, location *string) error {
	return c.run(ctx, "create", func(ctx context.Context, token string) (uistate.ItemEvent, error) {
		url, err := c.resolveImage(ctx, image)
		if err != nil {
			return nil, err
		}
		m, err := c.repo.Create(ctx, token, caption, url, location)
		if err != nil {
			return nil, err
		}
		return uistate.ItemMutated{Kind: uistate.Created, Item: m}, nil
	})
}

// Update keeps the post's current image when image is empty.
func (c *ItemController) Update(ctx context.Context, id int, caption, image string, location *string) error {
	loaded := c.state.get().Item

	return c.run(ctx, "update", func(ctx context.Context, token string) (uistate.ItemEvent, error) {
		var url string
		switch {
		case image != "":
			var err error
			if url, err = c.resolveImage(ctx, image); err != nil {
				return nil, err
			}
		case loaded != nil && loaded.ID == id:
			url = loaded.ImageURL
		default:
			cur, err := c.repo.GetByID(ctx, token, id)
			if err != nil {
				return nil, err
			}
			url = cur.ImageURL
		}

		m, err := c.repo.Update(ctx, token, id, caption, url, location)
		if err != nil {
			return nil, err
		}
		return uistate.ItemMutated{Kind: uistate.Updated, Item: m}, nil
	})
}

func (c *ItemController) Delete(ctx context.Context, id int) error {
	return c.run(ctx, "delete", func(ctx context.Context, token string) (uistate.ItemEvent, error) {
		if _, err := c.repo.Delete(ctx, token, id); err != nil {
			return nil, err
		}
		return uistate.ItemMutated{Kind: uistate.Deleted}, nil
	})
}

// run gates op on the session, fences it and runs the refresh effects of a
// successful write.
func (c *ItemController) run(ctx context.Context, op string, do func(context.Context, string) (uistate.ItemEvent, error)) error {
	st, err := c.session.Current(ctx)
	if err == nil && !st.LoggedIn() {
		err = common.ErrNotAuthenticated
	}
	if err != nil {
		c.fail(err)
		return err
	}

	var prev uistate.ItemStatus
	gen := c.state.begin(func(s uistate.ItemStatus) uistate.ItemStatus {
		prev = s
		next, _ := uistate.ReduceItem(s, uistate.ItemRequested{})
		return next
	})

	evt, err := do(ctx, st.Token)
	if err != nil {
		if ctx.Err() != nil {
			c.state.commit(gen, func(s uistate.ItemStatus) uistate.ItemStatus {
				prev.FetchingLocation = s.FetchingLocation
				return prev
			})
			return ctx.Err()
		}
		c.logger.Warn(ctx, op+" failed", "error", err)
		c.state.commit(gen, func(s uistate.ItemStatus) uistate.ItemStatus {
			next, _ := uistate.ReduceItem(s, uistate.ItemFailed{Message: err.Error()})
			return next
		})
		return err
	}

	var effects []uistate.Effect
	if !c.state.commit(gen, func(s uistate.ItemStatus) uistate.ItemStatus {
		var next uistate.ItemStatus
		next, effects = uistate.ReduceItem(s, evt)
		return next
	}) {
		c.logger.Debug(ctx, "dropping stale "+op+" result")
		return nil
	}

	c.refresh(ctx, effects)
	return nil
}

func (c *ItemController) refresh(ctx context.Context, effects []uistate.Effect) {
	if c.lists == nil {
		return
	}
	for _, eff := range effects {
		var err error
		switch eff {
		case uistate.RefetchOwn:
			err = c.lists.FetchMine(ctx)
		case uistate.RefetchFeed:
			err = c.lists.FetchFeed(ctx)
		default:
			continue
		}
		if err != nil {
			c.logger.Warn(ctx, "refresh after write failed", "effect", eff.String(), "error", err)
		}
	}
}

func (c *ItemController) fail(err error) {
	c.state.invalidate(func(s uistate.ItemStatus) uistate.ItemStatus {
		next, _ := uistate.ReduceItem(s, uistate.ItemFailed{Message: err.Error()})
		return next
	})
}

func (c *ItemController) resolveImage(ctx context.Context, image string) (string, error) {
	if c.uploader == nil {
		return image, nil
	}
	path, ok := media.LocalPath(image)
	if !ok {
		return image, nil
	}
	url, err := c.uploader.Upload(ctx, path)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	c.logger.Debug(ctx, "image uploaded", "path", path, "url", url)
	return url, nil
}
