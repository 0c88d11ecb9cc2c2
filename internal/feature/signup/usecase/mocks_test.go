package usecase

import (
	"context"
	"sync"

	"gobarber/internal/feature/signup/domain"
	"gobarber/internal/feature/signup/domain/entity"
)

// mockUserCreator is a mock implementation of the UserCreator interface.
type mockUserCreator struct {
	mu    sync.Mutex
	calls []entity.SignUpRequest
	// CreateUserFunc is called when the CreateUser method is invoked.
	CreateUserFunc func(ctx context.Context, req entity.SignUpRequest) error
}

// CreateUser is the mock implementation of the CreateUser method.
func (m *mockUserCreator) CreateUser(ctx context.Context, req entity.SignUpRequest) error {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, req)
	}
	return nil // Default: success
}

func (m *mockUserCreator) Calls() []entity.SignUpRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]entity.SignUpRequest(nil), m.calls...)
}

// recordingForm records ClearErrors/SetErrors calls in order.
type recordingForm struct {
	mu       sync.Mutex
	events   []string
	setCalls []domain.FieldErrors
}

func (f *recordingForm) ClearErrors() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, "clear")
}

func (f *recordingForm) SetErrors(errs domain.FieldErrors) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, "set")
	f.setCalls = append(f.setCalls, errs)
}

func (f *recordingForm) Events() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

func (f *recordingForm) SetCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.setCalls)
}

type mockNavigator struct {
	mu      sync.Mutex
	goBacks int
}

func (n *mockNavigator) GoBack() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.goBacks++
}

func (n *mockNavigator) GoBacks() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.goBacks
}

type notification struct{ Title, Body string }

type mockNotifier struct {
	mu    sync.Mutex
	shown []notification
}

func (n *mockNotifier) Notify(title, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.shown = append(n.shown, notification{title, body})
}

func (n *mockNotifier) Shown() []notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification(nil), n.shown...)
}

type flowFixture struct {
	flow     *Flow
	users    *mockUserCreator
	form     *recordingForm
	nav      *mockNavigator
	notifier *mockNotifier
}

func newFlowFixture(createUser func(ctx context.Context, req entity.SignUpRequest) error, cfg FlowConfig) *flowFixture {
	fx := &flowFixture{
		users:    &mockUserCreator{CreateUserFunc: createUser},
		form:     &recordingForm{},
		nav:      &mockNavigator{},
		notifier: &mockNotifier{},
	}
	fx.flow = NewFlow(NewSchema(nil), fx.form, fx.users, fx.nav, fx.notifier, cfg)
	return fx
}
