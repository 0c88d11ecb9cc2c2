package terminal

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gobarber/internal/feature/signup/domain"
	"gobarber/internal/feature/signup/domain/entity"
	"gobarber/internal/feature/signup/usecase"
)

type mockUserCreator struct {
	mu             sync.Mutex
	calls          int
	CreateUserFunc func(ctx context.Context, req entity.SignUpRequest) error
}

func (m *mockUserCreator) CreateUser(ctx context.Context, req entity.SignUpRequest) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, req)
	}
	return nil
}

func (m *mockUserCreator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type countingNav struct {
	mu sync.Mutex
	n  int
}

func (c *countingNav) GoBack() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
}

func (c *countingNav) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, string) {}

func TestSignUpScreen_FocusChainAndSubmit(t *testing.T) {
	users := &mockUserCreator{}
	nav := &countingNav{}
	screen := NewSignUpScreen(users, nav, nopNotifier{}, usecase.FlowConfig{}, nil)
	ctx := context.Background()

	assert.Equal(t, entity.FieldName, screen.Focused())
	screen.HandleLine(ctx, "Ana")
	assert.Equal(t, entity.FieldEmail, screen.Focused())
	screen.HandleLine(ctx, "ana@x.com")
	assert.Equal(t, entity.FieldPassword, screen.Focused())
	screen.HandleLine(ctx, "abcdef")
	screen.Wait()

	assert.Equal(t, 1, users.Calls())
	assert.Equal(t, 1, nav.Count())
	assert.Equal(t, usecase.StateSuccess, screen.Flow().State())
}

func TestSignUpScreen_InvalidSubmitRendersInlineErrors(t *testing.T) {
	users := &mockUserCreator{}
	screen := NewSignUpScreen(users, &countingNav{}, nopNotifier{}, usecase.FlowConfig{}, nil)
	ctx := context.Background()

	screen.HandleLine(ctx, "Ana")
	screen.HandleLine(ctx, "not-an-email")
	screen.HandleLine(ctx, CmdSubmit)
	screen.Wait()

	var buf bytes.Buffer
	require.NoError(t, screen.Render(&buf))
	out := buf.String()

	assert.Zero(t, users.Calls())
	assert.Contains(t, out, "Crie sua conta")
	assert.Contains(t, out, "(mail) not-an-email")
	assert.Contains(t, out, "! Digite um email válido")
	assert.Contains(t, out, "! Senha obrigatória")
	assert.NotContains(t, out, "Nome obrigatório")
	assert.Contains(t, out, "[ Enviar ]")
}

func TestSignUpScreen_FailureKeepsValues(t *testing.T) {
	users := &mockUserCreator{CreateUserFunc: func(ctx context.Context, req entity.SignUpRequest) error {
		return errors.New("connection refused")
	}}
	nav := &countingNav{}
	refreshed := 0
	screen := NewSignUpScreen(users, nav, nopNotifier{}, usecase.FlowConfig{}, func() { refreshed++ })
	ctx := context.Background()

	for _, line := range []string{"Ana", "ana@x.com", "abcdef"} {
		screen.HandleLine(ctx, line)
	}
	screen.Wait()

	assert.Equal(t, entity.SignUpRequest{Name: "Ana", Email: "ana@x.com", Password: "abcdef"}, screen.Form().Values())
	assert.Zero(t, nav.Count())
	assert.Equal(t, 1, refreshed)
	assert.Equal(t, usecase.StateIdle, screen.Flow().State())
}

func TestSignUpScreen_BackAndFocusCommands(t *testing.T) {
	nav := &countingNav{}
	screen := NewSignUpScreen(&mockUserCreator{}, nav, nopNotifier{}, usecase.FlowConfig{}, nil)
	ctx := context.Background()

	screen.HandleLine(ctx, CmdFocus+" password")
	assert.Equal(t, entity.FieldPassword, screen.Focused())
	screen.HandleLine(ctx, CmdFocus+" phone")
	assert.Equal(t, entity.FieldPassword, screen.Focused())

	screen.HandleLine(ctx, CmdBack)
	assert.Equal(t, 1, nav.Count())
}

func TestSignUpScreen_DoubleSubmitCallsAPIOnce(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	users := &mockUserCreator{CreateUserFunc: func(ctx context.Context, req entity.SignUpRequest) error {
		close(started)
		<-release
		return nil
	}}
	screen := NewSignUpScreen(users, &countingNav{}, nopNotifier{}, usecase.FlowConfig{}, nil)
	ctx := context.Background()

	for _, line := range []string{"Ana", "ana@x.com", "abcdef"} {
		screen.HandleLine(ctx, line)
	}
	<-started
	screen.HandleLine(ctx, CmdSubmit)
	screen.HandleLine(ctx, CmdSubmit)
	close(release)
	screen.Wait()

	assert.Equal(t, 1, users.Calls())
}

func TestSignUpScreen_ServerRejectionOfUnknownFieldIsShown(t *testing.T) {
	users := &mockUserCreator{CreateUserFunc: func(ctx context.Context, req entity.SignUpRequest) error {
		return &domain.ValidationError{Fields: domain.FieldErrors{
			"user": {Field: "user", Kind: domain.Rejected, Message: "Usuário não permitido"},
		}}
	}}
	nav := &countingNav{}
	screen := NewSignUpScreen(users, nav, nopNotifier{}, usecase.FlowConfig{}, nil)
	ctx := context.Background()

	for _, line := range []string{"Ana", "ana@x.com", "abcdef"} {
		screen.HandleLine(ctx, line)
	}
	screen.Wait()

	var buf bytes.Buffer
	require.NoError(t, screen.Render(&buf))
	out := buf.String()

	assert.Equal(t, 1, users.Calls())
	assert.Zero(t, nav.Count())
	assert.Contains(t, out, "  ! Usuário não permitido\n[ Enviar ]")
	assert.Contains(t, out, "(mail) ana@x.com", "values are kept")
}
