package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Feed(ctx context.Context) error
	Mine(ctx context.Context) error
	Show(ctx context.Context, id int) error
	Create(ctx context.Context) error
	Edit(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
	Back(ctx context.Context) error
	Screen(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, whoami, screen, exit"
	helpLoggedIn  = "Available commands: feed, mine, show <id>, create, edit <id>, delete <id>, back, screen, whoami, logout, exit"
)

// runREPL starts a simple read-eval-print loop for the MemoMap CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Commands taking a memory id
// print their usage when the id is missing or not a number. The loop exits
// on scanner EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, sc *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("memomap %s> ", statusFn()))
		if !sc.Scan() {
			return
		}
		parts := strings.Fields(sc.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.WhoAmI(ctx)
		case "feed":
			err = a.Feed(ctx)
		case "mine":
			err = a.Mine(ctx)
		case "create":
			err = a.Create(ctx)
		case "back":
			err = a.Back(ctx)
		case "screen":
			err = a.Screen(ctx)
		case "show", "edit", "delete":
			id, ok := parseID(args)
			if !ok {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			switch cmd {
			case "show":
				err = a.Show(ctx, id)
			case "edit":
				err = a.Edit(ctx, id)
			case "delete":
				err = a.Delete(ctx, id)
			}
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}

func parseID(args []string) (int, bool) {
	if len(args) == 0 {
		return 0, false
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, false
	}
	return id, true
}
