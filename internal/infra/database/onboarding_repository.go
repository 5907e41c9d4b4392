package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/sclayai/proposal-intake/internal/entity"
)

const onboardingTable = "proposals_onboarding"

const onboardingColumns = `
	id, client_name, business_name, industry_niche, location, website_url,
	pain_points_goals, services_offered, one_time_fee, monthly_retainer,
	performance_based, payment_terms,
	to_char(project_start_date, 'YYYY-MM-DD'),
	to_char(estimated_delivery_date, 'YYYY-MM-DD'),
	your_name, sclay_email, your_website, logo_url, social_calendly_link,
	status, submitted_at, updated_at`

type OnboardingRepository struct {
	DB *sql.DB
}

func NewOnboardingRepository(db *sql.DB) *OnboardingRepository {
	return &OnboardingRepository{DB: db}
}

// Insert stores a new onboarding record with status "New" and returns its id.
func (r *OnboardingRepository) Insert(ctx context.Context, o *entity.Onboarding) (string, error) {
	query := `
		INSERT INTO proposals_onboarding (
			id, client_name, business_name, industry_niche, location, website_url,
			pain_points_goals, services_offered, one_time_fee, monthly_retainer,
			performance_based, payment_terms, project_start_date, estimated_delivery_date,
			your_name, sclay_email, your_website, logo_url, social_calendly_link,
			status, submitted_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, NOW())
		RETURNING submitted_at
	`

	id := uuid.New().String()
	err := r.DB.QueryRowContext(ctx, query,
		id,
		o.ClientName,
		o.BusinessName,
		o.IndustryNiche,
		o.Location,
		nullString(o.WebsiteURL),
		o.PainPointsGoals,
		pq.Array(nonNil(o.ServicesOffered)),
		nullFloat(o.OneTimeFee),
		nullFloat(o.MonthlyRetainer),
		nullString(o.PerformanceBased),
		o.PaymentTerms,
		o.ProjectStartDate,
		o.EstimatedDeliveryDate,
		o.YourName,
		o.SclayEmail,
		nullString(o.YourWebsite),
		nullString(o.LogoURL),
		nullString(o.SocialCalendlyLink),
		entity.DefaultStatus,
	).Scan(&o.SubmittedAt)
	if err != nil {
		return "", storeError("insert", onboardingTable, err)
	}

	o.ID = id
	o.Status = entity.DefaultStatus
	return id, nil
}

// Update replaces every editable column in one statement.
func (r *OnboardingRepository) Update(ctx context.Context, id string, o *entity.Onboarding) error {
	query := `
		UPDATE proposals_onboarding SET
			client_name = $2,
			business_name = $3,
			industry_niche = $4,
			location = $5,
			website_url = $6,
			pain_points_goals = $7,
			services_offered = $8,
			one_time_fee = $9,
			monthly_retainer = $10,
			performance_based = $11,
			payment_terms = $12,
			project_start_date = $13,
			estimated_delivery_date = $14,
			your_name = $15,
			sclay_email = $16,
			your_website = $17,
			logo_url = $18,
			social_calendly_link = $19,
			updated_at = NOW()
		WHERE id = $1
	`

	return execByID(ctx, r.DB, "update", onboardingTable, id, query,
		id,
		o.ClientName,
		o.BusinessName,
		o.IndustryNiche,
		o.Location,
		nullString(o.WebsiteURL),
		o.PainPointsGoals,
		pq.Array(nonNil(o.ServicesOffered)),
		nullFloat(o.OneTimeFee),
		nullFloat(o.MonthlyRetainer),
		nullString(o.PerformanceBased),
		o.PaymentTerms,
		o.ProjectStartDate,
		o.EstimatedDeliveryDate,
		o.YourName,
		o.SclayEmail,
		nullString(o.YourWebsite),
		nullString(o.LogoURL),
		nullString(o.SocialCalendlyLink),
	)
}

func (r *OnboardingRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE proposals_onboarding SET status = $2, updated_at = NOW() WHERE id = $1`
	return execByID(ctx, r.DB, "update status", onboardingTable, id, query, id, status)
}

func (r *OnboardingRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM proposals_onboarding WHERE id = $1`
	return execByID(ctx, r.DB, "delete", onboardingTable, id, query, id)
}

// ListAll returns every onboarding record, newest first.
func (r *OnboardingRepository) ListAll(ctx context.Context) ([]entity.Onboarding, error) {
	query := `SELECT ` + onboardingColumns + ` FROM proposals_onboarding ORDER BY submitted_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, storeError("list", onboardingTable, err)
	}
	defer rows.Close()

	var out []entity.Onboarding
	for rows.Next() {
		var (
			o                                           entity.Onboarding
			website, performance, yourSite, logo, links sql.NullString
			oneTime, monthly                            sql.NullFloat64
			updatedAt                                   sql.NullTime
		)
		if err := rows.Scan(
			&o.ID,
			&o.ClientName,
			&o.BusinessName,
			&o.IndustryNiche,
			&o.Location,
			&website,
			&o.PainPointsGoals,
			pq.Array(&o.ServicesOffered),
			&oneTime,
			&monthly,
			&performance,
			&o.PaymentTerms,
			&o.ProjectStartDate,
			&o.EstimatedDeliveryDate,
			&o.YourName,
			&o.SclayEmail,
			&yourSite,
			&logo,
			&links,
			&o.Status,
			&o.SubmittedAt,
			&updatedAt,
		); err != nil {
			return nil, storeError("list", onboardingTable, err)
		}
		o.WebsiteURL = stringPtr(website)
		o.OneTimeFee = floatPtr(oneTime)
		o.MonthlyRetainer = floatPtr(monthly)
		o.PerformanceBased = stringPtr(performance)
		o.YourWebsite = stringPtr(yourSite)
		o.LogoURL = stringPtr(logo)
		o.SocialCalendlyLink = stringPtr(links)
		o.UpdatedAt = timePtr(updatedAt)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list", onboardingTable, err)
	}
	return out, nil
}
