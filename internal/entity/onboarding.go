package entity

import (
	"context"
	"time"
)

// Onboarding is a stored row of proposals_onboarding.
type Onboarding struct {
	ID                    string     `json:"id"`
	ClientName            string     `json:"client_name"`
	BusinessName          string     `json:"business_name"`
	IndustryNiche         string     `json:"industry_niche"`
	Location              string     `json:"location"`
	WebsiteURL            *string    `json:"website_url"`
	PainPointsGoals       string     `json:"pain_points_goals"`
	ServicesOffered       []string   `json:"services_offered"`
	OneTimeFee            *float64   `json:"one_time_fee"`
	MonthlyRetainer       *float64   `json:"monthly_retainer"`
	PerformanceBased      *string    `json:"performance_based"`
	PaymentTerms          string     `json:"payment_terms"`
	ProjectStartDate      string     `json:"project_start_date"`
	EstimatedDeliveryDate string     `json:"estimated_delivery_date"`
	YourName              string     `json:"your_name"`
	SclayEmail            string     `json:"sclay_email"`
	YourWebsite           *string    `json:"your_website"`
	LogoURL               *string    `json:"logo_url"`
	SocialCalendlyLink    *string    `json:"social_calendly_link"`
	Status                string     `json:"status"`
	SubmittedAt           time.Time  `json:"submitted_at"`
	UpdatedAt             *time.Time `json:"updated_at,omitempty"`
}

type OnboardingRepository interface {
	Insert(ctx context.Context, o *Onboarding) (string, error)
	Update(ctx context.Context, id string, o *Onboarding) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]Onboarding, error)
}
