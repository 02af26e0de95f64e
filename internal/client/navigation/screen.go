// Package navigation owns the screen back stack and the coordinator that
// keeps the current screen consistent with the session.
//
// Screens are typed constants; a Screen value carries the memory id for
// the edit screen. Every route has a string form used by the CLI prompt:
//
//	login_register_screen
//	home_screen
//	create_memory_screen
//	edit_memory_screen/{id}
package navigation

import (
	"fmt"
	"strconv"
	"strings"
)

type Kind int

const (
	None Kind = iota
	LoginRegister
	Home
	CreateMemory
	EditMemory
)

func (k Kind) Route() string {
	switch k {
	case LoginRegister:
		return "login_register_screen"
	case Home:
		return "home_screen"
	case CreateMemory:
		return "create_memory_screen"
	case EditMemory:
		return "edit_memory_screen"
	default:
		return ""
	}
}

type Screen struct {
	Kind     Kind
	MemoryID int
}

var (
	LoginScreen  = Screen{Kind: LoginRegister}
	HomeScreen   = Screen{Kind: Home}
	CreateScreen = Screen{Kind: CreateMemory}
)

func EditScreen(id int) Screen {
	return Screen{Kind: EditMemory, MemoryID: id}
}

func (s Screen) Route() string {
	if s.Kind == EditMemory {
		return fmt.Sprintf("%s/%d", s.Kind.Route(), s.MemoryID)
	}
	return s.Kind.Route()
}

func (s Screen) String() string {
	return s.Route()
}

// Valid reports false for the edit screen without a positive memory id.
func (s Screen) Valid() bool {
	switch s.Kind {
	case LoginRegister, Home, CreateMemory:
		return true
	case EditMemory:
		return s.MemoryID > 0
	default:
		return false
	}
}

// ParseRoute is the inverse of Screen.Route.
func ParseRoute(route string) (Screen, error) {
	for _, k := range []Kind{LoginRegister, Home, CreateMemory} {
		if route == k.Route() {
			return Screen{Kind: k}, nil
		}
	}
	if rest, ok := strings.CutPrefix(route, EditMemory.Route()+"/"); ok {
		id, err := strconv.Atoi(rest)
		if err != nil {
			return Screen{}, fmt.Errorf("route %q: invalid memory id: %w", route, err)
		}
		return EditScreen(id), nil
	}
	return Screen{}, fmt.Errorf("unknown route %q", route)
}
