package controllers

import "sync"

// observable is controller state with request fencing and ordered
// notification.
type observable[S any] struct {
	mu    sync.Mutex
	state S
	gen   uint64

	notifyMu  sync.Mutex
	observers map[int]func(S)
	nextID    int
}

func newObservable[S any](initial S) *observable[S] {
	return &observable[S]{state: initial, observers: make(map[int]func(S))}
}

func (o *observable[S]) get() S {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// begin starts a new request: it invalidates every older one, applies
// update and returns the new generation.
func (o *observable[S]) begin(update func(S) S) uint64 {
	o.mu.Lock()
	o.gen++
	gen := o.gen
	o.state = update(o.state)
	o.publishLocked()
	return gen
}

// current reports whether gen is still the latest request.
func (o *observable[S]) current(gen uint64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return gen == o.gen
}

// commit applies update only if gen is still the latest request.
func (o *observable[S]) commit(gen uint64, update func(S) S) bool {
	o.mu.Lock()
	if gen != o.gen {
		o.mu.Unlock()
		return false
	}
	o.state = update(o.state)
	o.publishLocked()
	return true
}

// set applies update without touching the request generation.
func (o *observable[S]) set(update func(S) S) {
	o.mu.Lock()
	o.state = update(o.state)
	o.publishLocked()
}

// invalidate drops every in-flight request and applies update.
func (o *observable[S]) invalidate(update func(S) S) {
	o.mu.Lock()
	o.gen++
	o.state = update(o.state)
	o.publishLocked()
}

// publishLocked must be called with o.mu held; it releases it.
func (o *observable[S]) publishLocked() {
	snap := o.state
	o.notifyMu.Lock()
	o.mu.Unlock()
	defer o.notifyMu.Unlock()

	for _, fn := range o.observers {
		fn(snap)
	}
}

func (o *observable[S]) subscribe(fn func(S)) func() {
	o.notifyMu.Lock()
	defer o.notifyMu.Unlock()

	id := o.nextID
	o.nextID++
	o.observers[id] = fn

	return func() {
		o.notifyMu.Lock()
		defer o.notifyMu.Unlock()
		delete(o.observers, id)
	}
}
