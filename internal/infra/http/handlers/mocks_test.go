package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sclayai/proposal-intake/internal/entity"
	"github.com/sclayai/proposal-intake/internal/session"
	"github.com/sclayai/proposal-intake/internal/usecase"
)

// MockSubmitter
type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) SubmitOnboarding(ctx context.Context, d *usecase.Draft) (*usecase.SubmissionOutput, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SubmissionOutput), args.Error(1)
}

func (m *MockSubmitter) SubmitProspect(ctx context.Context, d *usecase.Draft) (*usecase.SubmissionOutput, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SubmissionOutput), args.Error(1)
}

// MockDashboard
type MockDashboard struct {
	mock.Mock
}

func (m *MockDashboard) View(ctx context.Context, f usecase.Filter) usecase.DashboardOutput {
	return m.Called(ctx, f).Get(0).(usecase.DashboardOutput)
}

func (m *MockDashboard) EditDraft(ctx context.Context, kind entity.Kind, id string) (*usecase.Draft, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.Draft), args.Error(1)
}

func (m *MockDashboard) Edit(ctx context.Context, kind entity.Kind, id string, d *usecase.Draft) (*usecase.MutationOutput, error) {
	args := m.Called(ctx, kind, id, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.MutationOutput), args.Error(1)
}

func (m *MockDashboard) SetStatus(ctx context.Context, kind entity.Kind, id, status string) (*usecase.MutationOutput, error) {
	args := m.Called(ctx, kind, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.MutationOutput), args.Error(1)
}

func (m *MockDashboard) Delete(ctx context.Context, kind entity.Kind, id string) (*usecase.MutationOutput, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.MutationOutput), args.Error(1)
}

func (m *MockDashboard) MutationState(kind entity.Kind, id string) usecase.MutationState {
	return m.Called(kind, id).Get(0).(usecase.MutationState)
}

// MockAuthenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) SignIn(ctx context.Context, email, password string) (*session.Tokens, session.Event, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, session.Event{}, args.Error(2)
	}
	return args.Get(0).(*session.Tokens), args.Get(1).(session.Event), args.Error(2)
}

func (m *MockAuthenticator) SignOut(ctx context.Context, accessToken string, who *session.Identity) session.Event {
	return m.Called(ctx, accessToken, who).Get(0).(session.Event)
}

func (m *MockAuthenticator) ConfigError() error {
	return m.Called().Error(0)
}
