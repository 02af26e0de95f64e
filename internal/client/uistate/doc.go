// Package uistate holds the view-state machines of the client as pure
// reducers: func(state, event) (state, []Effect). Reducers never perform
// I/O; controllers run the returned effects.
package uistate
