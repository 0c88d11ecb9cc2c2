package shell

import (
	"context"
	"fmt"
	"io"

	"gobarber/internal/platform/navigation"
	"gobarber/internal/platform/ui"
)

// CmdCreateAccount opens the sign-up screen from the landing screen.
const CmdCreateAccount = "1"

// SignInScreen is the landing screen. Sign-in itself lives outside this app;
// the screen only offers the way into account creation.
type SignInScreen struct {
	nav    *navigation.Stack
	create ui.Button
}

// NewSignInScreen is a ScreenFactory for the landing route.
func NewSignInScreen(nav *navigation.Stack, _ func()) Screen {
	return &SignInScreen{
		nav:    nav,
		create: ui.Button{Label: "Criar conta", Props: ui.Props{"key": CmdCreateAccount}},
	}
}

// Render draws the landing screen.
func (s *SignInScreen) Render(w io.Writer) error {
	if err := s.create.Render(w); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "(%s para sair)\n", CmdQuit)
	return err
}

// HandleLine opens the sign-up screen on CmdCreateAccount.
func (s *SignInScreen) HandleLine(_ context.Context, line string) {
	if line == CmdCreateAccount {
		s.nav.Push(navigation.RouteSignUp)
	}
}
