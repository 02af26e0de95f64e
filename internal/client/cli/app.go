package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/memomap/internal/buildinfo"
	"github.com/dmitrijs2005/memomap/internal/client/config"
	"github.com/dmitrijs2005/memomap/internal/client/controllers"
	"github.com/dmitrijs2005/memomap/internal/client/media"
	"github.com/dmitrijs2005/memomap/internal/client/navigation"
	"github.com/dmitrijs2005/memomap/internal/client/repositories/auth"
	"github.com/dmitrijs2005/memomap/internal/client/repositories/memories"
	"github.com/dmitrijs2005/memomap/internal/client/repositories/session"
	"github.com/dmitrijs2005/memomap/internal/client/transport"
	"github.com/dmitrijs2005/memomap/internal/logging"
)

// App holds the wired client: session store, navigation and the three
// screen controllers.
type App struct {
	config *config.Config
	logger logging.Logger

	store       session.Store
	nav         *navigation.Navigator
	coordinator *navigation.Coordinator

	authCtl *controllers.AuthController
	listCtl *controllers.ListController
	itemCtl *controllers.ItemController

	scanner *bufio.Scanner
	out     io.Writer
}

// NewApp wires the client from c. With OfflineDemo set, the API is served by
// in-process repositories and the session lives in memory; otherwise the
// REST API at c.ServerBaseURL is used and the session is kept in SQLite.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	var (
		authRepo auth.Repository
		memRepo  memories.Repository
		store    session.Store
	)

	if c.OfflineDemo {
		a := auth.NewInMemoryRepository()
		authRepo = a
		memRepo = memories.NewInMemoryRepository(a.ResolveToken)
		store = session.NewMemoryStore()
		logger.Info(ctx, "running in offline demo mode")
	} else {
		caller, err := transport.NewCaller(transport.Options{
			BaseURL:           c.ServerBaseURL,
			Timeout:           c.RequestTimeout,
			RequestsPerSecond: c.RequestsPerSecond,
			UserAgent:         "memomap-cli/" + buildinfo.Version(),
			Logger:            logger,
		})
		if err != nil {
			return nil, err
		}
		authRepo = auth.NewHTTPRepository(caller)
		memRepo = memories.NewHTTPRepository(caller)

		s, err := session.Open(ctx, c.SessionDBPath)
		if err != nil {
			logger.Error(ctx, "error opening session store", "path", c.SessionDBPath, "error", err)
			return nil, err
		}
		store = s
	}

	var uploader media.Uploader
	if mc := c.Media.UploaderConfig(); mc.Enabled() {
		u, err := media.NewS3Uploader(mc, &http.Client{Timeout: c.RequestTimeout})
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		uploader = u
	}

	nav := navigation.NewNavigator(navigation.LoginScreen)
	lists := controllers.NewListController(memRepo, store, logger)

	a := &App{
		config:      c,
		logger:      logger,
		store:       store,
		nav:         nav,
		coordinator: navigation.NewCoordinator(nav, logger),
		authCtl:     controllers.NewAuthController(authRepo, store, nav, logger),
		listCtl:     lists,
		itemCtl:     controllers.NewItemController(memRepo, store, lists, uploader, logger),
		scanner:     bufio.NewScanner(os.Stdin),
		out:         os.Stdout,
	}

	// A session restored from disk skips the login screen.
	if st, err := store.Current(ctx); err == nil {
		a.coordinator.Evaluate(st)
	}

	return a, nil
}

// Run starts the navigation coordinator and the REPL, returning when the
// user exits or ctx ends.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- a.coordinator.Run(ctx, a.store)
	}()

	runREPL(ctx, a, a.getStatus, a.scanner)

	cancel()
	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Close releases the session store.
func (a *App) Close() error {
	return a.store.Close()
}

func (a *App) isLoggedIn() bool {
	st, err := a.store.Current(context.Background())
	return err == nil && st.LoggedIn()
}

func (a *App) getStatus() string {
	screen := a.nav.Current().Route()
	st, err := a.store.Current(context.Background())
	if err != nil || !st.LoggedIn() {
		return fmt.Sprintf("(%s)", screen)
	}
	return fmt.Sprintf("(%s %s)", st.Username, screen)
}

// Screen prints the current screen and the back stack.
func (a *App) Screen(ctx context.Context) error {
	printlnFn("Screen:", a.nav.Current().String())
	for i, s := range a.nav.History() {
		printlnFn(fmt.Sprintf("  %d. %s", i+1, s.Route()))
	}
	return nil
}

// Back pops the current screen.
func (a *App) Back(ctx context.Context) error {
	if !a.nav.Back() {
		printlnFn("Already at the first screen")
	}
	return nil
}
