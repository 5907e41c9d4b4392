package entity

// Choices offered by the intake forms and the dashboard. Stored values are
// free text; these lists only feed the UI.
var (
	StatusOptions = []string{"New", "Contacted", "Proposal Sent", "Negotiating", "Closed - Won", "Closed - Lost"}

	OnboardingServices = []string{
		"Website redesign or new build",
		"AI voice agent (inbound/outbound)",
		"Automation setup (Zapier, Make, CRM workflows)",
		"Booking system",
		"Google review generation",
		"Lead scraping or database building",
		"Monthly retainer for management",
	}

	ProspectServices = []string{"Website", "AI call agent", "Booking system", "Automation", "CRM", "Review boost", "Not sure"}

	PaymentTermsOptions = []string{"100% Upfront", "50% Upfront, 50% Upon Completion", "Monthly Billing"}

	BusinessTypes = []string{"Roofer", "Towing", "Detailing", "HVAC", "Landscaping", "Consulting", BusinessTypeOther}
	BudgetFeels   = []string{"Open", "Budget-conscious", "Didn't say"}
	FollowUpTypes = []string{FollowUpTypeCall, "Proposal needed", "Wants pricing", "Just info"}
)

const (
	BusinessTypeOther = "Other"
	FollowUpTypeCall  = "Follow-up call"
)
