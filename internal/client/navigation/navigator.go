package navigation

import (
	"slices"
	"sync"
)

// NavOptions mirror the usual back-stack operations of mobile navigators.
type NavOptions struct {
	// PopUpTo pops screens above the topmost screen of this kind first.
	PopUpTo Kind
	// Inclusive also pops the PopUpTo screen itself.
	Inclusive bool
	// ClearAll empties the stack before pushing.
	ClearAll bool
	// SingleTop does not push a screen equal to the current one.
	SingleTop bool
}

// Navigator is a goroutine-safe back stack. The stack is never empty.
type Navigator struct {
	mu        sync.Mutex
	stack     []Screen
	listeners map[int]func(Screen)
	nextID    int
}

func NewNavigator(start Screen) *Navigator {
	return &Navigator{stack: []Screen{start}, listeners: make(map[int]func(Screen))}
}

func (n *Navigator) Current() Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stack[len(n.stack)-1]
}

// History returns the stack, bottom first.
func (n *Navigator) History() []Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.stack)
}

// Navigate pushes screen according to opts. An invalid screen, such as an
// edit screen without a memory id, pops back instead.
func (n *Navigator) Navigate(screen Screen, opts NavOptions) {
	if !screen.Valid() {
		n.Back()
		return
	}

	n.mu.Lock()
	before := n.stack[len(n.stack)-1]

	switch {
	case opts.ClearAll:
		n.stack = n.stack[:0]
	case opts.PopUpTo != None:
		if i := n.lastIndexOf(opts.PopUpTo); i >= 0 {
			if opts.Inclusive {
				n.stack = n.stack[:i]
			} else {
				n.stack = n.stack[:i+1]
			}
		}
	}

	if !(opts.SingleTop && len(n.stack) > 0 && n.stack[len(n.stack)-1] == screen) {
		n.stack = append(n.stack, screen)
	}
	after := n.stack[len(n.stack)-1]
	n.mu.Unlock()

	if after != before {
		n.notify(after)
	}
}

// Back pops the current screen. It reports false, and does nothing, when
// only one screen is left.
func (n *Navigator) Back() bool {
	n.mu.Lock()
	if len(n.stack) < 2 {
		n.mu.Unlock()
		return false
	}
	n.stack = n.stack[:len(n.stack)-1]
	cur := n.stack[len(n.stack)-1]
	n.mu.Unlock()

	n.notify(cur)
	return true
}

// GoHome shows the home screen and drops the login screen from history.
func (n *Navigator) GoHome() {
	n.Navigate(HomeScreen, NavOptions{PopUpTo: LoginRegister, Inclusive: true, SingleTop: true})
}

// GoLogin shows the login screen with an empty history.
func (n *Navigator) GoLogin() {
	n.Navigate(LoginScreen, NavOptions{ClearAll: true})
}

// OnChange registers fn to be called with the new current screen after
// every change. The returned func unregisters it.
func (n *Navigator) OnChange(fn func(Screen)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.listeners[id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.listeners, id)
	}
}

func (n *Navigator) notify(s Screen) {
	n.mu.Lock()
	fns := make([]func(Screen), 0, len(n.listeners))
	for _, fn := range n.listeners {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

// lastIndexOf must be called with n.mu held.
func (n *Navigator) lastIndexOf(k Kind) int {
	for i := len(n.stack) - 1; i >= 0; i-- {
		if n.stack[i].Kind == k {
			return i
		}
	}
	return -1
}
