package usecase

import "github.com/sclayai/proposal-intake/internal/entity"

// OnboardingInput is the validated onboarding payload, in form field names.
type OnboardingInput struct {
	ClientName            string   `json:"clientName" validate:"notblank"`
	BusinessName          string   `json:"businessName" validate:"notblank"`
	IndustryNiche         string   `json:"industryNiche" validate:"notblank"`
	Location              string   `json:"location" validate:"notblank"`
	WebsiteURL            *string  `json:"websiteUrl" validate:"omitempty,url"`
	PainPointsGoals       string   `json:"painPointsGoals" validate:"notblank"`
	ServicesOffered       []string `json:"servicesOffered" validate:"min=1"`
	OneTimeFee            *string  `json:"oneTimeFee" validate:"omitempty,decimal,money"`
	MonthlyRetainer       *string  `json:"monthlyRetainer" validate:"omitempty,decimal,money"`
	PerformanceBased      *string  `json:"performanceBased"`
	PaymentTerms          string   `json:"paymentTerms" validate:"notblank"`
	ProjectStartDate      string   `json:"projectStartDate" validate:"notblank,datetime=2006-01-02"`
	EstimatedDeliveryDate string   `json:"estimatedDeliveryDate" validate:"notblank,datetime=2006-01-02"`
	YourName              string   `json:"yourName" validate:"notblank"`
	SclayEmail            string   `json:"sclayEmail" validate:"notblank,email"`
	YourWebsite           *string  `json:"yourWebsite" validate:"omitempty,url"`
	LogoURL               *string  `json:"logoUrl" validate:"omitempty,url"`
	SocialCalendlyLink    *string  `json:"socialCalendlyLink" validate:"omitempty,url"`
}

// ProspectInput is the validated prospect payload, in form field names.
type ProspectInput struct {
	ProspectBusinessName       string   `json:"prospectBusinessName" validate:"notblank"`
	ProspectFirstName          string   `json:"prospectFirstName" validate:"notblank"`
	ProspectLastName           string   `json:"prospectLastName" validate:"notblank"`
	ProspectPhone              string   `json:"prospectPhone" validate:"notblank"`
	ProspectEmail              string   `json:"prospectEmail" validate:"notblank,email"`
	ProspectCityState          string   `json:"prospectCityState" validate:"notblank"`
	ProspectBusinessType       string   `json:"prospectBusinessType" validate:"notblank"`
	OtherBusinessType          *string  `json:"otherBusinessType"`
	ProspectPainPoint          string   `json:"prospectPainPoint" validate:"notblank"`
	ProspectServicesInterested []string `json:"prospectServicesInterested" validate:"min=1"`
	ProspectBudgetFeel         string   `json:"prospectBudgetFeel" validate:"notblank"`
	ProspectFollowUpType       string   `json:"prospectFollowUpType" validate:"notblank"`
	ProspectFollowUpCallDate   *string  `json:"prospectFollowUpCallDate" validate:"omitempty,datetime=2006-01-02"`
	ProspectCallNotes          *string  `json:"prospectCallNotes"`
}

// SubmissionOutput mirrors what a form shows after submit: a summary message
// and, on validation failure, every field error at once.
type SubmissionOutput struct {
	ID            string              `json:"id,omitempty"`
	Message       string              `json:"message"`
	Success       bool                `json:"success"`
	Errors        map[string][]string `json:"errors,omitempty"`
	SubmittedData any                 `json:"submittedData,omitempty"`
}

// MutationOutput is the result of a dashboard edit, status change or delete.
type MutationOutput struct {
	Message string              `json:"message"`
	Success bool                `json:"success"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// ForwardPayload is the body posted to the outbound webhook: the validated
// fields plus a formType discriminator.
type ForwardPayload struct {
	FormType entity.Kind `json:"formType"`
	*OnboardingInput
	*ProspectInput
}
