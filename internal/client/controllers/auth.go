package controllers

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/memomap/internal/client/models"
	"github.com/dmitrijs2005/memomap/internal/client/repositories/auth"
	"github.com/dmitrijs2005/memomap/internal/client/uistate"
	"github.com/dmitrijs2005/memomap/internal/logging"
)

var errNoToken = errors.New("server returned no token")

// AuthSnapshot is everything the login/register screen renders.
type AuthSnapshot struct {
	Form          uistate.AuthForm
	Status        uistate.AuthStatus
	SubmitEnabled bool
}

type AuthController struct {
	repo    auth.Repository
	session SessionWriter
	router  Router
	logger  logging.Logger
	state   *observable[AuthSnapshot]
}

func NewAuthController(repo auth.Repository, session SessionWriter, router Router, logger logging.Logger) *AuthController {
	if logger == nil {
		logger = logging.Nop()
	}
	return &AuthController{
		repo:    repo,
		session: session,
		router:  router,
		logger:  logger.With("controller", "auth"),
		state:   newObservable(AuthSnapshot{}),
	}
}

func (c *AuthController) Snapshot() AuthSnapshot {
	return c.state.get()
}

func (c *AuthController) Subscribe(fn func(AuthSnapshot)) func() {
	return c.state.subscribe(fn)
}

func (c *AuthController) SetUsername(v string) {
	c.editForm(func(f *uistate.AuthForm) { f.Username = v })
}

func (c *AuthController) SetPassword(v string) {
	c.editForm(func(f *uistate.AuthForm) { f.Password = v })
}

func (c *AuthController) TogglePasswordVisibility() {
	c.editForm(func(f *uistate.AuthForm) { f.PasswordVisible = !f.PasswordVisible })
}

func (c *AuthController) ToggleConfirmPasswordVisibility() {
	c.editForm(func(f *uistate.AuthForm) { f.ConfirmPasswordVisible = !f.ConfirmPasswordVisible })
}

func (c *AuthController) FormValid() bool {
	return c.state.get().Form.Valid()
}

func (c *AuthController) editForm(fn func(*uistate.AuthForm)) {
	c.state.set(func(s AuthSnapshot) AuthSnapshot {
		fn(&s.Form)
		s.SubmitEnabled = s.Form.Valid()
		return s
	})
}

// ConsumeStatus returns the current status and moves a finished one back
// to idle, so a result is shown once.
func (c *AuthController) ConsumeStatus() uistate.AuthStatus {
	var consumed uistate.AuthStatus
	c.state.set(func(s AuthSnapshot) AuthSnapshot {
		consumed = s.Status
		s.Status, _ = uistate.ReduceAuth(s.Status, uistate.AuthConsumed{})
		return s
	})
	return consumed
}

func (c *AuthController) SubmitLogin(ctx context.Context) error {
	return c.submit(ctx, "login", c.repo.Login)
}

func (c *AuthController) SubmitRegister(ctx context.Context) error {
	return c.submit(ctx, "register", c.repo.Register)
}

func (c *AuthController) submit(ctx context.Context, op string, call func(context.Context, string, string) (*models.User, error)) error {
	form := c.state.get().Form
	if !form.Valid() {
		return ErrFormInvalid
	}

	gen := c.state.begin(func(s AuthSnapshot) AuthSnapshot {
		s.Status, _ = uistate.ReduceAuth(s.Status, uistate.AuthSubmit{})
		return s
	})

	user, err := call(ctx, form.Username, form.Password)
	if err == nil && (user == nil || user.Token == nil || *user.Token == "") {
		err = errNoToken
	}
	if err != nil {
		if ctx.Err() != nil {
			c.state.commit(gen, func(s AuthSnapshot) AuthSnapshot {
				s.Status = uistate.AuthStatus{}
				return s
			})
			return ctx.Err()
		}
		c.logger.Warn(ctx, op+" failed", "username", form.Username, "error", err)
		c.state.commit(gen, func(s AuthSnapshot) AuthSnapshot {
			s.Status, _ = uistate.ReduceAuth(s.Status, uistate.AuthFailedEvt{Message: err.Error()})
			return s
		})
		return err
	}

	if !c.state.current(gen) {
		c.logger.Debug(ctx, "dropping stale "+op+" result", "username", user.Username)
		return nil
	}

	next, effects := uistate.ReduceAuth(c.state.get().Status, uistate.AuthSucceededEvt{User: *user})
	resetForm := false
	for _, eff := range effects {
		switch eff {
		case uistate.PersistSession:
			if err := c.persist(ctx, user); err != nil {
				c.logger.Error(ctx, "save session failed", "error", err)
				c.state.commit(gen, func(s AuthSnapshot) AuthSnapshot {
					s.Status, _ = uistate.ReduceAuth(s.Status, uistate.AuthFailedEvt{Message: err.Error()})
					return s
				})
				return err
			}
		case uistate.NavigateHome:
			c.router.GoHome()
		case uistate.ResetForm:
			resetForm = true
		}
	}

	c.state.commit(gen, func(s AuthSnapshot) AuthSnapshot {
		s.Status = next
		if resetForm {
			s.Form = uistate.AuthForm{}
			s.SubmitEnabled = false
		}
		return s
	})
	c.logger.Info(ctx, op+" succeeded", "username", user.Username, "id", user.ID)
	return nil
}

func (c *AuthController) persist(ctx context.Context, u *models.User) error {
	err := c.session.Save(ctx, models.FullUpdate(models.SessionState{
		Token:    *u.Token,
		Username: u.Username,
		UserID:   u.ID,
	}))
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Logout tells the server when there is a session to end, ignoring its
// answer, then always clears the local session and shows the login screen.
// Only a failure to clear the local session is returned.
func (c *AuthController) Logout(ctx context.Context) error {
	// the local session is cleared even when ctx ends during the server call
	local := context.WithoutCancel(ctx)

	st, err := c.session.Current(local)
	if err != nil {
		c.logger.Warn(ctx, "read session before logout", "error", err)
	}
	if err == nil && st.LoggedIn() {
		if msg, err := c.repo.Logout(ctx, st.Token); err != nil {
			c.logger.Warn(ctx, "server logout failed", "username", st.Username, "error", err)
		} else {
			c.logger.Info(ctx, "logged out", "username", st.Username, "message", msg)
		}
	}

	next, effects := uistate.ReduceAuth(c.state.get().Status, uistate.AuthLoggedOut{})
	var clearErr error
	for _, eff := range effects {
		switch eff {
		case uistate.ClearSession:
			if err := c.session.Clear(local); err != nil {
				clearErr = fmt.Errorf("clear session: %w", err)
				c.logger.Error(ctx, "clear session failed", "error", err)
			}
		case uistate.NavigateLogin:
			c.router.GoLogin()
		}
	}

	c.state.invalidate(func(s AuthSnapshot) AuthSnapshot {
		s.Status = next
		return s
	})
	return clearErr
}
