package usecase

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/sclayai/proposal-intake/internal/entity"
)

const (
	fieldServicesOffered    = "servicesOffered"
	fieldServicesInterested = "prospectServicesInterested"
)

// Draft accumulates form fields as they change. Nothing is validated until
// the draft is turned into an input on submit.
type Draft struct {
	values url.Values
}

func NewDraft() *Draft {
	return &Draft{values: url.Values{}}
}

// DraftFromValues copies a decoded form. Repeated keys become multi-values.
func DraftFromValues(v url.Values) *Draft {
	d := NewDraft()
	for k, vs := range v {
		for _, s := range vs {
			d.Add(k, s)
		}
	}
	return d
}

// Set replaces a single-valued field.
func (d *Draft) Set(field, value string) {
	d.values.Set(field, value)
}

// Add appends a value to a multi-valued field such as a service checkbox.
func (d *Draft) Add(field, value string) {
	d.values.Add(field, value)
}

// Remove drops one value from a multi-valued field.
func (d *Draft) Remove(field, value string) {
	kept := d.values[field][:0]
	for _, v := range d.values[field] {
		if v != value {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		d.values.Del(field)
		return
	}
	d.values[field] = kept
}

func (d *Draft) Get(field string) string {
	return d.values.Get(field)
}

// Values returns a copy of the accumulated fields.
func (d *Draft) Values() url.Values {
	out := make(url.Values, len(d.values))
	for k, vs := range d.values {
		out[k] = append([]string(nil), vs...)
	}
	return out
}

func (d *Draft) optional(field string) *string {
	v := d.values.Get(field)
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

func (d *Draft) list(field string) []string {
	var out []string
	for _, v := range d.values[field] {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func (d *Draft) OnboardingInput() OnboardingInput {
	return OnboardingInput{
		ClientName:            d.Get("clientName"),
		BusinessName:          d.Get("businessName"),
		IndustryNiche:         d.Get("industryNiche"),
		Location:              d.Get("location"),
		WebsiteURL:            d.optional("websiteUrl"),
		PainPointsGoals:       d.Get("painPointsGoals"),
		ServicesOffered:       d.list(fieldServicesOffered),
		OneTimeFee:            d.optional("oneTimeFee"),
		MonthlyRetainer:       d.optional("monthlyRetainer"),
		PerformanceBased:      d.optional("performanceBased"),
		PaymentTerms:          d.Get("paymentTerms"),
		ProjectStartDate:      d.Get("projectStartDate"),
		EstimatedDeliveryDate: d.Get("estimatedDeliveryDate"),
		YourName:              d.Get("yourName"),
		SclayEmail:            d.Get("sclayEmail"),
		YourWebsite:           d.optional("yourWebsite"),
		LogoURL:               d.optional("logoUrl"),
		SocialCalendlyLink:    d.optional("socialCalendlyLink"),
	}
}

func (d *Draft) ProspectInput() ProspectInput {
	return ProspectInput{
		ProspectBusinessName:       d.Get("prospectBusinessName"),
		ProspectFirstName:          d.Get("prospectFirstName"),
		ProspectLastName:           d.Get("prospectLastName"),
		ProspectPhone:              d.Get("prospectPhone"),
		ProspectEmail:              d.Get("prospectEmail"),
		ProspectCityState:          d.Get("prospectCityState"),
		ProspectBusinessType:       d.Get("prospectBusinessType"),
		OtherBusinessType:          d.optional("otherBusinessType"),
		ProspectPainPoint:          d.Get("prospectPainPoint"),
		ProspectServicesInterested: d.list(fieldServicesInterested),
		ProspectBudgetFeel:         d.Get("prospectBudgetFeel"),
		ProspectFollowUpType:       d.Get("prospectFollowUpType"),
		ProspectFollowUpCallDate:   d.optional("prospectFollowUpCallDate"),
		ProspectCallNotes:          d.optional("prospectCallNotes"),
	}
}

// DraftFromRecord prefills an edit form from a stored record. Prospects saved
// before first and last names were split get their contact name split.
func DraftFromRecord(r entity.Record) *Draft {
	d := NewDraft()
	switch rec := r.(type) {
	case *entity.Onboarding:
		d.Set("clientName", rec.ClientName)
		d.Set("businessName", rec.BusinessName)
		d.Set("industryNiche", rec.IndustryNiche)
		d.Set("location", rec.Location)
		setOptional(d, "websiteUrl", rec.WebsiteURL)
		d.Set("painPointsGoals", rec.PainPointsGoals)
		for _, s := range rec.ServicesOffered {
			d.Add(fieldServicesOffered, s)
		}
		setDecimal(d, "oneTimeFee", rec.OneTimeFee)
		setDecimal(d, "monthlyRetainer", rec.MonthlyRetainer)
		setOptional(d, "performanceBased", rec.PerformanceBased)
		d.Set("paymentTerms", rec.PaymentTerms)
		d.Set("projectStartDate", rec.ProjectStartDate)
		d.Set("estimatedDeliveryDate", rec.EstimatedDeliveryDate)
		d.Set("yourName", rec.YourName)
		d.Set("sclayEmail", rec.SclayEmail)
		setOptional(d, "yourWebsite", rec.YourWebsite)
		setOptional(d, "logoUrl", rec.LogoURL)
		setOptional(d, "socialCalendlyLink", rec.SocialCalendlyLink)
	case *entity.Prospect:
		first, last := rec.SplitName()
		d.Set("prospectBusinessName", rec.BusinessName)
		d.Set("prospectFirstName", first)
		d.Set("prospectLastName", last)
		d.Set("prospectPhone", rec.Phone)
		d.Set("prospectEmail", rec.Email)
		d.Set("prospectCityState", rec.CityState)
		d.Set("prospectBusinessType", rec.BusinessType)
		setOptional(d, "otherBusinessType", rec.OtherBusinessType)
		d.Set("prospectPainPoint", rec.PainPoint)
		for _, s := range rec.ServicesInterested {
			d.Add(fieldServicesInterested, s)
		}
		d.Set("prospectBudgetFeel", rec.BudgetFeel)
		d.Set("prospectFollowUpType", rec.FollowUpType)
		setOptional(d, "prospectFollowUpCallDate", rec.FollowUpCallDate)
		setOptional(d, "prospectCallNotes", rec.CallNotes)
	}
	return d
}

func setOptional(d *Draft, field string, v *string) {
	if v != nil {
		d.Set(field, *v)
	}
}

func setDecimal(d *Draft, field string, v *float64) {
	if v != nil {
		d.Set(field, strconv.FormatFloat(*v, 'f', -1, 64))
	}
}
