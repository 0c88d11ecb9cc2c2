// Package di provides dependency injection factories for creating application components.
package di

import (
	"io"

	"gobarber/internal/app/shell"
	"gobarber/internal/feature/signup/adapters/usersapi"
	"gobarber/internal/feature/signup/transport/terminal"
	"gobarber/internal/feature/signup/usecase"
	"gobarber/internal/platform/config"
	infrahttp "gobarber/internal/platform/http"
	"gobarber/internal/platform/navigation"
	"gobarber/internal/platform/notify"
)

// AppTitle is shown in the shell's status header.
const AppTitle = "GoBarber"

// NewUsersClient creates a users API client with a tuned HTTP client.
func NewUsersClient(cfg config.App) *usersapi.Client {
	ucfg := usersapi.Config{BaseURL: cfg.APIBaseURL, Timeout: cfg.APITimeout}
	return usersapi.NewClient(ucfg, infrahttp.NewHTTPClient(ucfg.Timeout))
}

// NewSignUpScreenFactory returns a factory that builds a fresh sign-up screen
// (form, flow and focus chain) every time the route is pushed.
func NewSignUpScreenFactory(users usecase.UserCreator, notifier usecase.Notifier, flowCfg usecase.FlowConfig) shell.ScreenFactory {
	return func(nav *navigation.Stack, refresh func()) shell.Screen {
		return terminal.NewSignUpScreen(users, nav.Scoped(), notifier, flowCfg, refresh)
	}
}

// NewShell wires the terminal application.
func NewShell(cfg config.App, users usecase.UserCreator, out io.Writer) *shell.Shell {
	sh := shell.New(AppTitle, navigation.RouteSignIn, out)
	sh.Register(navigation.RouteSignIn, shell.NewSignInScreen)
	sh.Register(navigation.RouteSignUp, NewSignUpScreenFactory(
		users,
		notify.NewTerminal(sh.Output()),
		usecase.FlowConfig{SubmitTimeout: cfg.SubmitTimeout},
	))
	return sh
}
