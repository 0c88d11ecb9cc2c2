package shell

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gobarber/internal/platform/navigation"
)

// fakeScreen records the lines it receives.
type fakeScreen struct {
	name  string
	nav   *navigation.Stack
	lines []string
}

func (f *fakeScreen) Render(w io.Writer) error {
	_, err := fmt.Fprintf(w, "screen:%s\n", f.name)
	return err
}

func (f *fakeScreen) HandleLine(_ context.Context, line string) {
	f.lines = append(f.lines, line)
	if line == "back" {
		f.nav.GoBack()
	}
}

func TestShell_NavigatesBetweenScreens(t *testing.T) {
	var out bytes.Buffer
	sh := New("GoBarber", navigation.RouteSignIn, &out)
	sh.Register(navigation.RouteSignIn, NewSignInScreen)

	var created []*fakeScreen
	sh.Register(navigation.RouteSignUp, func(nav *navigation.Stack, _ func()) Screen {
		s := &fakeScreen{name: "signup", nav: nav}
		created = append(created, s)
		return s
	})

	err := sh.Run(context.Background(), strings.NewReader("1\nhello\nback\n1\n"))
	require.NoError(t, err)

	// a fresh sign-up screen per visit
	require.Len(t, created, 2)
	assert.Equal(t, []string{"hello", "back"}, created[0].lines)
	assert.Empty(t, created[1].lines)
	assert.Equal(t, navigation.RouteSignUp, sh.Navigation().Current())
	assert.Contains(t, out.String(), "== GoBarber ==")
	assert.Contains(t, out.String(), "[ Criar conta ] {key=1}")
}

func TestShell_Quit(t *testing.T) {
	var out bytes.Buffer
	sh := New("GoBarber", navigation.RouteSignIn, &out)
	sh.Register(navigation.RouteSignIn, NewSignInScreen)
	sh.Register(navigation.RouteSignUp, func(nav *navigation.Stack, _ func()) Screen {
		return &fakeScreen{name: "signup", nav: nav}
	})

	err := sh.Run(context.Background(), strings.NewReader(":q\n1\n"))

	require.NoError(t, err)
	assert.Equal(t, navigation.RouteSignIn, sh.Navigation().Current())
}

func TestShell_UnregisteredRoute(t *testing.T) {
	sh := New("GoBarber", navigation.RouteSignIn, io.Discard)
	sh.Register(navigation.RouteSignIn, NewSignInScreen)

	err := sh.Run(context.Background(), strings.NewReader("1\n"))

	assert.ErrorContains(t, err, `no screen registered for route "SignUp"`)
}

func TestShell_ContextCancelled(t *testing.T) {
	sh := New("GoBarber", navigation.RouteSignIn, io.Discard)
	sh.Register(navigation.RouteSignIn, NewSignInScreen)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pr, pw := io.Pipe()
	defer pw.Close()

	err := sh.Run(ctx, pr)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestShell_LineAfterBackgroundNavigationGoesToNewScreen(t *testing.T) {
	sh := New("GoBarber", navigation.RouteSignIn, io.Discard)
	sh.Register(navigation.RouteSignIn, NewSignInScreen)

	var created []*fakeScreen
	activated := make(chan struct{}, 2)
	sh.Register(navigation.RouteSignUp, func(nav *navigation.Stack, _ func()) Screen {
		s := &fakeScreen{name: "signup", nav: nav}
		created = append(created, s)
		activated <- struct{}{}
		return s
	})

	pr, pw := io.Pipe()
	done := make(chan error, 1)
	go func() { done <- sh.Run(context.Background(), pr) }()

	_, err := io.WriteString(pw, "1\n")
	require.NoError(t, err)
	<-activated

	// a finished submit pops the screen; no refresh is delivered
	sh.Navigation().GoBack()

	_, err = io.WriteString(pw, "1\n")
	require.NoError(t, err)
	require.NoError(t, pw.Close())
	require.NoError(t, <-done)

	require.Len(t, created, 2)
	assert.Empty(t, created[0].lines, "the left screen must not receive input")
	assert.Equal(t, navigation.RouteSignUp, sh.Navigation().Current())
}

// busyScreen reports when the shell waited for its background work.
type busyScreen struct {
	fakeScreen
	waited bool
}

func (b *busyScreen) Wait() { b.waited = true }

func TestShell_WaitsForReplacedScreens(t *testing.T) {
	sh := New("GoBarber", navigation.RouteSignIn, io.Discard)
	sh.Register(navigation.RouteSignIn, NewSignInScreen)

	var created []*busyScreen
	sh.Register(navigation.RouteSignUp, func(nav *navigation.Stack, _ func()) Screen {
		s := &busyScreen{fakeScreen: fakeScreen{name: "signup", nav: nav}}
		created = append(created, s)
		return s
	})

	err := sh.Run(context.Background(), strings.NewReader("1\nback\n1\nback\n1\n"))
	require.NoError(t, err)

	require.Len(t, created, 3)
	for i, s := range created {
		assert.True(t, s.waited, "screen %d", i)
	}
}
