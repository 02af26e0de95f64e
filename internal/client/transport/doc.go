// Package transport bridges callback-style HTTP calls into blocking,
// cancellable operations that yield exactly one typed outcome.
//
// # Overview
//
// A Call is an unexecuted request handle. Enqueue starts it in the background
// and reports completion to a Callback, once. AwaitResult enqueues a Call,
// waits for that callback, and maps it to (R, error):
//
//   - success status, non-empty body  -> transform(decoded body), nil
//   - success status, empty body      -> ErrEmptyBody
//   - non-success status              -> *APIError carrying the server message
//   - no response (network, timeout)  -> error wrapping ErrUnavailable
//
// If the caller's context ends first, the underlying call is cancelled (at
// most once) and ctx.Err() is returned; the late callback is discarded.
//
// Caller builds Calls against the MemoMap REST API: JSON bodies, the
// X-API-TOKEN header, a per-request X-Request-ID and optional pacing through
// a token-bucket limiter.
package transport
