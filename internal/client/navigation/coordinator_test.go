package navigation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/memomap/internal/client/models"
)

var (
	loggedIn  = models.SessionState{Token: "tok-1", Username: "alice", UserID: 1}
	loggedOut = models.DefaultSession()
)

func TestEvaluate_LoggedInOnLoginGoesHome(t *testing.T) {
	n := NewNavigator(LoginScreen)
	c := NewCoordinator(n, nil)

	assert.True(t, c.Evaluate(loggedIn))
	assert.Equal(t, []Screen{HomeScreen}, n.History())
}

func TestEvaluate_LoggedOutElsewhereGoesLogin(t *testing.T) {
	n := NewNavigator(HomeScreen)
	n.Navigate(EditScreen(4), NavOptions{})
	c := NewCoordinator(n, nil)

	assert.True(t, c.Evaluate(loggedOut))
	assert.Equal(t, []Screen{LoginScreen}, n.History())
}

func TestEvaluate_NoActionCases(t *testing.T) {
	n := NewNavigator(LoginScreen)
	c := NewCoordinator(n, nil)
	assert.False(t, c.Evaluate(loggedOut))
	assert.Equal(t, LoginScreen, n.Current())

	n = NewNavigator(HomeScreen)
	c = NewCoordinator(n, nil)
	assert.False(t, c.Evaluate(loggedIn))
	assert.Equal(t, HomeScreen, n.Current())
}

func TestEvaluate_BlankTokenIsLoggedOut(t *testing.T) {
	n := NewNavigator(HomeScreen)
	c := NewCoordinator(n, nil)

	assert.True(t, c.Evaluate(models.SessionState{Token: "  ", Username: "x", UserID: 1}))
	assert.Equal(t, LoginScreen, n.Current())
}

func TestEvaluate_IdempotentForRepeatedInputs(t *testing.T) {
	n := NewNavigator(LoginScreen)
	c := NewCoordinator(n, nil)

	var changes int
	n.OnChange(func(Screen) { changes++ })

	assert.True(t, c.Evaluate(loggedIn))
	for i := 0; i < 3; i++ {
		assert.False(t, c.Evaluate(loggedIn))
	}
	assert.Equal(t, 1, changes)
	assert.Equal(t, []Screen{HomeScreen}, n.History())
}

type fakeWatcher struct {
	ch chan models.SessionState
}

func (f *fakeWatcher) Watch(context.Context) <-chan models.SessionState {
	return f.ch
}

func TestRun_FollowsSessionAndScreenChanges(t *testing.T) {
	n := NewNavigator(LoginScreen)
	c := NewCoordinator(n, nil)
	w := &fakeWatcher{ch: make(chan models.SessionState, 1)}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx, w) }()

	w.ch <- loggedIn
	require.Eventually(t, func() bool { return n.Current() == HomeScreen }, time.Second, 5*time.Millisecond)

	w.ch <- loggedOut
	require.Eventually(t, func() bool { return n.Current() == LoginScreen }, time.Second, 5*time.Millisecond)

	// a screen change while logged out is redirected too
	n.Navigate(CreateScreen, NavOptions{})
	require.Eventually(t, func() bool { return n.Current() == LoginScreen }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
}

func TestRun_ReturnsWhenStreamCloses(t *testing.T) {
	n := NewNavigator(LoginScreen)
	c := NewCoordinator(n, nil)
	w := &fakeWatcher{ch: make(chan models.SessionState)}
	close(w.ch)

	assert.NoError(t, c.Run(context.Background(), w))
}
