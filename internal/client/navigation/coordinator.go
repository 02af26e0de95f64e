package navigation

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/memomap/internal/client/models"
	"github.com/dmitrijs2005/memomap/internal/logging"
)

// SessionWatcher is the part of the session store the coordinator needs.
type SessionWatcher interface {
	Watch(ctx context.Context) <-chan models.SessionState
}

type decision struct {
	loggedIn bool
	route    string
}

// Coordinator redirects between the login screen and the rest of the app
// whenever the session or the current screen changes.
type Coordinator struct {
	nav    *Navigator
	logger logging.Logger

	mu   sync.Mutex
	last *decision
}

func NewCoordinator(nav *Navigator, logger logging.Logger) *Coordinator {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Coordinator{nav: nav, logger: logger.With("component", "navigation")}
}

// Evaluate applies the redirect rules for state and the current screen and
// reports whether it navigated. Repeating the same inputs is a no-op.
//
//   - logged in on the login screen: go home, dropping login from history;
//   - logged out anywhere else: go to login, clearing history.
func (c *Coordinator) Evaluate(state models.SessionState) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur := c.nav.Current()
	d := decision{loggedIn: state.LoggedIn(), route: cur.Route()}
	if c.last != nil && *c.last == d {
		return false
	}
	c.last = &d

	switch {
	case d.loggedIn && cur.Kind == LoginRegister:
		c.logger.Debug(context.Background(), "session active, leaving login", "from", d.route)
		c.nav.GoHome()
		return true
	case !d.loggedIn && cur.Kind != LoginRegister:
		c.logger.Debug(context.Background(), "session ended, back to login", "from", d.route)
		c.nav.GoLogin()
		return true
	}
	return false
}

// Run evaluates on every session update and every screen change until ctx
// ends or the session stream closes.
func (c *Coordinator) Run(ctx context.Context, store SessionWatcher) error {
	states := store.Watch(ctx)

	changed := make(chan struct{}, 1)
	unsubscribe := c.nav.OnChange(func(Screen) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	var (
		state models.SessionState
		seen  bool
	)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s, ok := <-states:
			if !ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				return nil
			}
			state, seen = s, true
			c.Evaluate(state)
		case <-changed:
			if seen {
				c.Evaluate(state)
			}
		}
	}
}
