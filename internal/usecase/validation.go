package usecase

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sclayai/proposal-intake/internal/entity"
)

// FieldErrors maps a form field name to every message raised for it.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

var formValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
		f, err := strconv.ParseFloat(strings.TrimSpace(fl.Field().String()), 64)
		return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
	})
	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		f, err := strconv.ParseFloat(strings.TrimSpace(fl.Field().String()), 64)
		return err == nil && fitsMoneyColumn(f)
	})
	return v
}

// maxMoneyCents is the first cent value a NUMERIC(12,2) column cannot hold.
const maxMoneyCents = 1e12

const msgMoneyRange = "Must be less than 10,000,000,000"

// fitsMoneyColumn reports whether f, rounded to cents, fits NUMERIC(12,2).
func fitsMoneyColumn(f float64) bool {
	return math.Abs(math.Round(f*100)) < maxMoneyCents
}

var requiredMessages = map[string]string{
	"clientName":            "Client name is required",
	"businessName":          "Business name is required",
	"industryNiche":         "Industry/Niche is required",
	"location":              "Location is required",
	"painPointsGoals":       "Pain points/goals are required",
	"paymentTerms":          "Payment terms are required",
	"projectStartDate":      "Project start date is required",
	"estimatedDeliveryDate": "Estimated delivery date is required",
	"yourName":              "Your name is required",
	"sclayEmail":            "Email is required",

	"prospectBusinessName": "Business name is required",
	"prospectFirstName":    "First name is required",
	"prospectLastName":     "Last name is required",
	"prospectPhone":        "Phone is required",
	"prospectEmail":        "Email is required",
	"prospectCityState":    "City/State is required",
	"prospectBusinessType": "Business type is required",
	"prospectPainPoint":    "Pain point is required",
	"prospectBudgetFeel":   "Budget feel is required",
	"prospectFollowUpType": "Follow-up type is required",
}

const (
	msgOtherBusinessType = "Specify Other Business Type is required when Business Type is 'Other'"
	msgFollowUpCallDate  = "Follow-Up Call Date is required when Follow-Up Type is 'Follow-up call'"
)

func ValidateOnboardingInput(in OnboardingInput) FieldErrors {
	return structErrors(in)
}

// ValidateProspectInput runs the per-field rules first, then the two
// conditional rules.
func ValidateProspectInput(in ProspectInput) FieldErrors {
	errs := structErrors(in)

	if in.ProspectBusinessType == entity.BusinessTypeOther && in.OtherBusinessType == nil {
		errs.Add("otherBusinessType", msgOtherBusinessType)
	}
	if in.ProspectFollowUpType == entity.FollowUpTypeCall && in.ProspectFollowUpCallDate == nil {
		errs.Add("prospectFollowUpCallDate", msgFollowUpCallDate)
	}
	return errs
}

func structErrors(in any) FieldErrors {
	errs := FieldErrors{}
	err := formValidator.Struct(in)
	if err == nil {
		return errs
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("form", "Invalid form data")
		return errs
	}
	for _, fe := range verrs {
		errs.Add(fe.Field(), fieldMessage(fe))
	}
	return errs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank":
		if msg, ok := requiredMessages[fe.Field()]; ok {
			return msg
		}
		return fe.Field() + " is required"
	case "email":
		return "Invalid email address"
	case "url":
		return "Invalid url"
	case "min":
		return "At least one service must be selected"
	case "decimal":
		return "Must be a number"
	case "money":
		return msgMoneyRange
	case "datetime":
		return "Must be a date (YYYY-MM-DD)"
	}
	return "Invalid value"
}
