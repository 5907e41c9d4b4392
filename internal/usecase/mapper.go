package usecase

import (
	"strconv"
	"strings"

	"github.com/sclayai/proposal-intake/internal/entity"
)

// MapOnboarding converts a validated onboarding payload into its storage
// record. Managed fields (id, status, timestamps) are left zero.
func MapOnboarding(in OnboardingInput) entity.Onboarding {
	return entity.Onboarding{
		ClientName:            in.ClientName,
		BusinessName:          in.BusinessName,
		IndustryNiche:         in.IndustryNiche,
		Location:              in.Location,
		WebsiteURL:            blankToNil(in.WebsiteURL),
		PainPointsGoals:       in.PainPointsGoals,
		ServicesOffered:       in.ServicesOffered,
		OneTimeFee:            parseDecimal(in.OneTimeFee),
		MonthlyRetainer:       parseDecimal(in.MonthlyRetainer),
		PerformanceBased:      blankToNil(in.PerformanceBased),
		PaymentTerms:          in.PaymentTerms,
		ProjectStartDate:      in.ProjectStartDate,
		EstimatedDeliveryDate: in.EstimatedDeliveryDate,
		YourName:              in.YourName,
		SclayEmail:            in.SclayEmail,
		YourWebsite:           blankToNil(in.YourWebsite),
		LogoURL:               blankToNil(in.LogoURL),
		SocialCalendlyLink:    blankToNil(in.SocialCalendlyLink),
	}
}

// MapProspect converts a validated prospect payload into its storage record,
// deriving the combined contact name.
func MapProspect(in ProspectInput) entity.Prospect {
	return entity.Prospect{
		BusinessName:       in.ProspectBusinessName,
		FirstName:          in.ProspectFirstName,
		LastName:           in.ProspectLastName,
		ContactName:        in.ProspectFirstName + " " + in.ProspectLastName,
		Phone:              in.ProspectPhone,
		Email:              in.ProspectEmail,
		CityState:          in.ProspectCityState,
		BusinessType:       in.ProspectBusinessType,
		OtherBusinessType:  blankToNil(in.OtherBusinessType),
		PainPoint:          in.ProspectPainPoint,
		ServicesInterested: in.ProspectServicesInterested,
		BudgetFeel:         in.ProspectBudgetFeel,
		FollowUpType:       in.ProspectFollowUpType,
		FollowUpCallDate:   blankToNil(in.ProspectFollowUpCallDate),
		CallNotes:          blankToNil(in.ProspectCallNotes),
	}
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

func parseDecimal(s *string) *float64 {
	if s == nil {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(*s), 64)
	if err != nil {
		return nil
	}
	return &f
}
