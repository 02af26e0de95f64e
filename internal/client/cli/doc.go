// Package cli provides the interactive MemoMap command-line client.
//
// It wires configuration, the session store, the API repositories and the
// controllers, then runs a REPL. Each REPL mode mirrors a screen of the
// mobile app; a background navigation coordinator moves between the login
// screen and the rest of the app whenever the session changes.
//
// Key features:
//   - Register / Login / Logout / Whoami
//   - Feed and own memories
//   - Show, create, edit and delete memories, uploading local images when
//     media storage is configured
//   - Offline demo mode backed by in-process repositories
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
