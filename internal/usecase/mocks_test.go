package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sclayai/proposal-intake/internal/entity"
)

// MockOnboardingRepository
type MockOnboardingRepository struct {
	mock.Mock
}

func (m *MockOnboardingRepository) Insert(ctx context.Context, o *entity.Onboarding) (string, error) {
	args := m.Called(ctx, o)
	return args.String(0), args.Error(1)
}

func (m *MockOnboardingRepository) Update(ctx context.Context, id string, o *entity.Onboarding) error {
	return m.Called(ctx, id, o).Error(0)
}

func (m *MockOnboardingRepository) UpdateStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockOnboardingRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOnboardingRepository) ListAll(ctx context.Context) ([]entity.Onboarding, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Onboarding), args.Error(1)
}

// MockProspectRepository
type MockProspectRepository struct {
	mock.Mock
}

func (m *MockProspectRepository) Insert(ctx context.Context, p *entity.Prospect) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (m *MockProspectRepository) Update(ctx context.Context, id string, p *entity.Prospect) error {
	return m.Called(ctx, id, p).Error(0)
}

func (m *MockProspectRepository) UpdateStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockProspectRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProspectRepository) ListAll(ctx context.Context) ([]entity.Prospect, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Prospect), args.Error(1)
}

// MockForwarder
type MockForwarder struct {
	mock.Mock
}

func (m *MockForwarder) Forward(ctx context.Context, payload ForwardPayload) error {
	return m.Called(ctx, payload).Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendIntakeNotice(kind entity.Kind, businessName, contactName string) error {
	return m.Called(kind, businessName, contactName).Error(0)
}

// MockMetrics
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordSubmission(kind entity.Kind, outcome string) {
	m.Called(kind, outcome)
}

func (m *MockMetrics) RecordForward(kind entity.Kind, outcome string) {
	m.Called(kind, outcome)
}

func (m *MockMetrics) RecordMutation(kind entity.Kind, action, outcome string) {
	m.Called(kind, action, outcome)
}

func validOnboardingDraft() *Draft {
	d := NewDraft()
	d.Set("clientName", "Jane Doe")
	d.Set("businessName", "Acme")
	d.Set("industryNiche", "Retail")
	d.Set("location", "Austin, TX")
	d.Set("painPointsGoals", "More leads")
	d.Add("servicesOffered", "Booking system")
	d.Set("paymentTerms", "100% Upfront")
	d.Set("projectStartDate", "2024-03-01")
	d.Set("estimatedDeliveryDate", "2024-04-01")
	d.Set("yourName", "Sam")
	d.Set("sclayEmail", "sam@sclay.ai")
	return d
}

func validProspectDraft() *Draft {
	d := NewDraft()
	d.Set("prospectBusinessName", "Apex Roofing")
	d.Set("prospectFirstName", "Ann")
	d.Set("prospectLastName", "Lee")
	d.Set("prospectPhone", "555-0100")
	d.Set("prospectEmail", "ann@apex.test")
	d.Set("prospectCityState", "Denver, CO")
	d.Set("prospectBusinessType", "Roofer")
	d.Set("prospectPainPoint", "Missed calls")
	d.Add("prospectServicesInterested", "AI call agent")
	d.Set("prospectBudgetFeel", "Open")
	d.Set("prospectFollowUpType", "Just info")
	return d
}

func strPtr(s string) *string { return &s }
