package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/memomap/internal/client/repositories/session"
	"github.com/dmitrijs2005/memomap/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username and password and creates the account.
// A successful registration also logs the user in.
func (a *App) Register(ctx context.Context) error {
	return a.submitCredentials(ctx, a.authCtl.SubmitRegister)
}

// Login prompts for credentials and authenticates against the server.
//
// On success the session is saved and the app moves to the home screen.
// On failure the error message from the server is printed and the user
// stays on the login screen.
func (a *App) Login(ctx context.Context) error {
	return a.submitCredentials(ctx, a.authCtl.SubmitLogin)
}

func (a *App) submitCredentials(ctx context.Context, submit func(context.Context) error) error {
	userName, err := getSimpleText(a.scanner, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.scanner, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	a.authCtl.SetUsername(userName)
	a.authCtl.SetPassword(string(password))
	defer a.authCtl.SetPassword("")

	err = submit(ctx)
	status := a.authCtl.ConsumeStatus()
	if err != nil {
		return err
	}

	if status.User != nil {
		printlnFn(fmt.Sprintf("Welcome, %s!", status.User.Username))
	}
	return nil
}

// Logout ends the session. The local session is cleared even when the
// server cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authCtl.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Logged out")
	return nil
}

// WhoAmI prints the stored session.
func (a *App) WhoAmI(ctx context.Context) error {
	st, err := a.store.Current(ctx)
	if err != nil {
		return err
	}
	if !st.LoggedIn() {
		printlnFn("Not logged in")
		return nil
	}

	printlnFn(fmt.Sprintf("%s (id %d)", st.Username, st.UserID))
	if exp, ok := session.TokenExpiry(st.Token); ok {
		printlnFn("Token expires:", exp.Local().Format(time.RFC1123))
	}
	return nil
}
