package entity

import (
	"context"
	"strings"
	"time"
)

// Prospect is a stored row of proposals_prospects.
type Prospect struct {
	ID                 string     `json:"id"`
	BusinessName       string     `json:"prospect_business_name"`
	FirstName          string     `json:"prospect_first_name"`
	LastName           string     `json:"prospect_last_name"`
	ContactName        string     `json:"prospect_contact_name"` // first + last, kept for older rows
	Phone              string     `json:"prospect_phone"`
	Email              string     `json:"prospect_email"`
	CityState          string     `json:"prospect_city_state"`
	BusinessType       string     `json:"prospect_business_type"`
	OtherBusinessType  *string    `json:"other_business_type"`
	PainPoint          string     `json:"prospect_pain_point"`
	ServicesInterested []string   `json:"prospect_services_interested"`
	BudgetFeel         string     `json:"prospect_budget_feel"`
	FollowUpType       string     `json:"prospect_follow_up_type"`
	FollowUpCallDate   *string    `json:"prospect_follow_up_call_date"`
	CallNotes          *string    `json:"prospect_call_notes"`
	Status             string     `json:"status"`
	SubmittedAt        time.Time  `json:"submitted_at"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

// SplitName returns first and last name, falling back to splitting the
// legacy contact name on its first space when both are missing.
func (p *Prospect) SplitName() (first, last string) {
	if p.FirstName != "" || p.LastName != "" {
		return p.FirstName, p.LastName
	}
	name := strings.TrimSpace(p.ContactName)
	if name == "" {
		return "", ""
	}
	first, last, _ = strings.Cut(name, " ")
	return first, strings.TrimSpace(last)
}

// DisplayName is the label shown for the prospect's contact.
func (p *Prospect) DisplayName() string {
	if p.ContactName != "" {
		return p.ContactName
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

type ProspectRepository interface {
	Insert(ctx context.Context, p *Prospect) (string, error)
	Update(ctx context.Context, id string, p *Prospect) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]Prospect, error)
}
