// Package memories provides typed operations on memory posts.
//
// HTTPRepository calls the remote API; InMemoryRepository is a deterministic
// stand-in that enforces the same ownership rules and is used by tests, the
// fake API server and the CLI demo mode.
package memories
