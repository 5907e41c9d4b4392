package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidOnboardingHasNoErrors(t *testing.T) {
	errs := ValidateOnboardingInput(validOnboardingDraft().OnboardingInput())

	assert.Empty(t, errs)
}

func TestEmptyOnboardingReportsEveryField(t *testing.T) {
	errs := ValidateOnboardingInput(NewDraft().OnboardingInput())

	assert.Equal(t, []string{"Client name is required"}, errs["clientName"])
	assert.Equal(t, []string{"Email is required"}, errs["sclayEmail"])
	assert.Equal(t, []string{"At least one service must be selected"}, errs["servicesOffered"])
	assert.Equal(t, []string{"Project start date is required"}, errs["projectStartDate"])
	assert.Len(t, errs, 11)
	assert.NotContains(t, errs, "websiteUrl")
	assert.NotContains(t, errs, "oneTimeFee")
}

func TestWhitespaceIsBlank(t *testing.T) {
	d := validOnboardingDraft()
	d.Set("businessName", "   ")

	errs := ValidateOnboardingInput(d.OnboardingInput())

	assert.Equal(t, FieldErrors{"businessName": {"Business name is required"}}, errs)
}

func TestOnboardingFormats(t *testing.T) {
	tests := []struct {
		field string
		value string
		msg   string
	}{
		{"sclayEmail", "not-an-email", "Invalid email address"},
		{"websiteUrl", "acme dot com", "Invalid url"},
		{"logoUrl", "nope", "Invalid url"},
		{"oneTimeFee", "abc", "Must be a number"},
		{"monthlyRetainer", "Infinity", "Must be a number"},
		{"monthlyRetainer", "NaN", "Must be a number"},
		{"oneTimeFee", "1e300", msgMoneyRange},
		{"oneTimeFee", "10000000000", msgMoneyRange},
		{"monthlyRetainer", "-9999999999.999", msgMoneyRange},
		{"projectStartDate", "03/01/2024", "Must be a date (YYYY-MM-DD)"},
		{"estimatedDeliveryDate", "2024-13-01", "Must be a date (YYYY-MM-DD)"},
	}

	for _, tt := range tests {
		t.Run(tt.field+"="+tt.value, func(t *testing.T) {
			d := validOnboardingDraft()
			d.Set(tt.field, tt.value)

			errs := ValidateOnboardingInput(d.OnboardingInput())

			assert.Equal(t, FieldErrors{tt.field: {tt.msg}}, errs)
		})
	}
}

func TestOptionalFieldsAcceptValidValues(t *testing.T) {
	d := validOnboardingDraft()
	d.Set("websiteUrl", "https://acme.test")
	d.Set("monthlyRetainer", "-20")
	d.Set("performanceBased", "10% of new revenue")
	d.Set("oneTimeFee", "9999999999.99")

	assert.Empty(t, ValidateOnboardingInput(d.OnboardingInput()))
}

func TestProspectConditionalRules(t *testing.T) {
	t.Run("other business type required", func(t *testing.T) {
		d := validProspectDraft()
		d.Set("prospectBusinessType", "Other")

		errs := ValidateProspectInput(d.ProspectInput())

		assert.Equal(t, FieldErrors{"otherBusinessType": {msgOtherBusinessType}}, errs)
	})

	t.Run("other business type given", func(t *testing.T) {
		d := validProspectDraft()
		d.Set("prospectBusinessType", "Other")
		d.Set("otherBusinessType", "Pool cleaning")

		assert.Empty(t, ValidateProspectInput(d.ProspectInput()))
	})

	t.Run("follow-up call date required", func(t *testing.T) {
		d := validProspectDraft()
		d.Set("prospectFollowUpType", "Follow-up call")

		errs := ValidateProspectInput(d.ProspectInput())

		assert.Equal(t, FieldErrors{"prospectFollowUpCallDate": {msgFollowUpCallDate}}, errs)
	})

	t.Run("follow-up call date given", func(t *testing.T) {
		d := validProspectDraft()
		d.Set("prospectFollowUpType", "Follow-up call")
		d.Set("prospectFollowUpCallDate", "2024-05-02")

		assert.Empty(t, ValidateProspectInput(d.ProspectInput()))
	})

	t.Run("conditional rules run alongside field rules", func(t *testing.T) {
		d := validProspectDraft()
		d.Set("prospectEmail", "bad")
		d.Set("prospectBusinessType", "Other")
		d.Set("prospectFollowUpType", "Follow-up call")

		errs := ValidateProspectInput(d.ProspectInput())

		assert.Equal(t, []string{"Invalid email address"}, errs["prospectEmail"])
		assert.Contains(t, errs, "otherBusinessType")
		assert.Contains(t, errs, "prospectFollowUpCallDate")
	})
}

func TestEmptyProspect(t *testing.T) {
	errs := ValidateProspectInput(NewDraft().ProspectInput())

	assert.Equal(t, []string{"First name is required"}, errs["prospectFirstName"])
	assert.Equal(t, []string{"At least one service must be selected"}, errs["prospectServicesInterested"])
	assert.NotContains(t, errs, "otherBusinessType")
	assert.NotContains(t, errs, "prospectCallNotes")
}
