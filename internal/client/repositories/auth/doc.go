// Package auth provides the account operations of the MemoMap API:
// register, login and logout.
//
// Two implementations satisfy Repository:
//
//   - HTTPRepository talks to the remote service through transport.Caller.
//   - InMemoryRepository keeps accounts and tokens in process; it backs tests
//     and the CLI demo mode.
//
// Repositories pass server messages through unchanged and never retry.
// Persisting the returned session is the caller's job.
package auth
