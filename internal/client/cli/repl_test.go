package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	err      error
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool               { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error { return f.record("register") }
func (f *fakeExec) Login(context.Context) error    { return f.record("login") }
func (f *fakeExec) Logout(context.Context) error   { return f.record("logout") }
func (f *fakeExec) WhoAmI(context.Context) error   { return f.record("whoami") }
func (f *fakeExec) Feed(context.Context) error     { return f.record("feed") }
func (f *fakeExec) Mine(context.Context) error     { return f.record("mine") }
func (f *fakeExec) Create(context.Context) error   { return f.record("create") }
func (f *fakeExec) Back(context.Context) error     { return f.record("back") }
func (f *fakeExec) Screen(context.Context) error   { return f.record("screen") }
func (f *fakeExec) Show(_ context.Context, id int) error {
	return f.record(fmt.Sprintf("show %d", id))
}
func (f *fakeExec) Edit(_ context.Context, id int) error {
	return f.record(fmt.Sprintf("edit %d", id))
}
func (f *fakeExec) Delete(_ context.Context, id int) error {
	return f.record(fmt.Sprintf("delete %d", id))
}

// stubPrintln swaps printlnFn for the duration of the test and returns the
// printed lines.
func stubPrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	old := printlnFn
	printlnFn = func(a ...any) (int, error) {
		s := strings.TrimSuffix(fmt.Sprintln(a...), "\n")
		lines = append(lines, s)
		return len(s), nil
	}
	t.Cleanup(func() { printlnFn = old })
	return &lines
}

func runScript(t *testing.T, ex execIface, script string) []string {
	t.Helper()
	lines := stubPrintln(t)
	sc := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), ex, func() string { return "(test)" }, sc)
	return *lines
}

func TestREPL_Dispatch(t *testing.T) {
	ex := &fakeExec{loggedIn: true}
	runScript(t, ex, "register\nlogin\nfeed\nmine\nshow 3\nedit 4\ndelete 5\ncreate\nback\nscreen\nwhoami\nlogout\nexit\nfeed\n")

	assert.Equal(t, []string{
		"register", "login", "feed", "mine", "show 3", "edit 4", "delete 5",
		"create", "back", "screen", "whoami", "logout",
	}, ex.calls)
}

func TestREPL_IDUsage(t *testing.T) {
	ex := &fakeExec{}
	out := runScript(t, ex, "show\nedit abc\ndelete 7\n")

	assert.Equal(t, []string{"delete 7"}, ex.calls)
	assert.Contains(t, out, "Usage: show <id>")
	assert.Contains(t, out, "Usage: edit <id>")
}

func TestREPL_HelpDependsOnLogin(t *testing.T) {
	out := runScript(t, &fakeExec{}, "help\n")
	assert.Contains(t, out, helpLoggedOut)

	out = runScript(t, &fakeExec{loggedIn: true}, "help\n")
	assert.Contains(t, out, helpLoggedIn)
}

func TestREPL_ErrorsArePrintedAndLoopContinues(t *testing.T) {
	ex := &fakeExec{err: errors.New("Username or password wrong")}
	out := runScript(t, ex, "login\nlogin\nquit\n")

	assert.Equal(t, []string{"login", "login"}, ex.calls)
	assert.Contains(t, out, "Error: Username or password wrong")
	assert.Contains(t, out, "Bye!")
}

func TestREPL_UnknownAndBlankLines(t *testing.T) {
	ex := &fakeExec{}
	out := runScript(t, ex, "\n   \nfrobnicate\n")

	assert.Empty(t, ex.calls)
	assert.Contains(t, out, "Unknown command: frobnicate")
	assert.Contains(t, out, "memomap (test)> ")
}
