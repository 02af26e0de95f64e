package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

type outcome[R any] struct {
	value R
	err   error
}

// AwaitResult enqueues call and blocks until it completes or ctx ends.
//
// It returns exactly one outcome per call. When ctx ends before the response,
// the call is cancelled if it is executing and not already cancelled, ctx.Err()
// is returned and the response, if it arrives later, is dropped without
// running transform.
func AwaitResult[T, R any](ctx context.Context, call Call, transform func(T) R) (R, error) {
	var zero R
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	results := make(chan outcome[R], 1)
	var once sync.Once
	deliver := func(o outcome[R]) {
		once.Do(func() { results <- o })
	}

	call.Enqueue(CallbackFuncs{
		Response: func(_ Call, resp *Response) {
			if ctx.Err() != nil {
				return
			}
			deliver(handleResponse(resp, transform))
		},
		Failure: func(_ Call, err error) {
			if ctx.Err() != nil {
				return
			}
			if errors.Is(err, ErrAlreadyExecuted) {
				deliver(outcome[R]{err: err})
				return
			}
			deliver(outcome[R]{err: fmt.Errorf("%w: %w", ErrUnavailable, err)})
		},
	})

	select {
	case o := <-results:
		return o.value, o.err
	case <-ctx.Done():
		if call.IsExecuted() && !call.IsCanceled() {
			call.Cancel()
		}
		return zero, ctx.Err()
	}
}

func handleResponse[T, R any](resp *Response, transform func(T) R) (o outcome[R]) {
	if !resp.Successful() {
		o.err = &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp)}
		return o
	}

	if resp.Truncated {
		o.err = ErrBodyTooLarge
		return o
	}

	body := bytes.TrimSpace(resp.Body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		o.err = ErrEmptyBody
		return o
	}

	var payload T
	if err := json.Unmarshal(body, &payload); err != nil {
		o.err = fmt.Errorf("decode response: %w", err)
		return o
	}

	// A panicking transform still yields a single failure outcome.
	defer func() {
		if p := recover(); p != nil {
			o = outcome[R]{err: fmt.Errorf("transform response: %v", p)}
		}
	}()
	o.value = transform(payload)
	return o
}

// Identity is the transform for callers that want the decoded body as is.
func Identity[T any](v T) T {
	return v
}
