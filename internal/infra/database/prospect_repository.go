package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/sclayai/proposal-intake/internal/entity"
)

const prospectTable = "proposals_prospects"

const prospectColumns = `
	id, prospect_business_name, prospect_first_name, prospect_last_name,
	prospect_contact_name, prospect_phone, prospect_email, prospect_city_state,
	prospect_business_type, other_business_type, prospect_pain_point,
	prospect_services_interested, prospect_budget_feel, prospect_follow_up_type,
	to_char(prospect_follow_up_call_date, 'YYYY-MM-DD'),
	prospect_call_notes, status, submitted_at, updated_at`

type ProspectRepository struct {
	DB *sql.DB
}

func NewProspectRepository(db *sql.DB) *ProspectRepository {
	return &ProspectRepository{DB: db}
}

func (r *ProspectRepository) Insert(ctx context.Context, p *entity.Prospect) (string, error) {
	query := `
		INSERT INTO proposals_prospects (
			id, prospect_business_name, prospect_first_name, prospect_last_name,
			prospect_contact_name, prospect_phone, prospect_email, prospect_city_state,
			prospect_business_type, other_business_type, prospect_pain_point,
			prospect_services_interested, prospect_budget_feel, prospect_follow_up_type,
			prospect_follow_up_call_date, prospect_call_notes, status, submitted_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW())
		RETURNING submitted_at
	`

	id := uuid.New().String()
	err := r.DB.QueryRowContext(ctx, query,
		id,
		p.BusinessName,
		p.FirstName,
		p.LastName,
		p.ContactName,
		p.Phone,
		p.Email,
		p.CityState,
		p.BusinessType,
		nullString(p.OtherBusinessType),
		p.PainPoint,
		pq.Array(nonNil(p.ServicesInterested)),
		p.BudgetFeel,
		p.FollowUpType,
		nullString(p.FollowUpCallDate),
		nullString(p.CallNotes),
		entity.DefaultStatus,
	).Scan(&p.SubmittedAt)
	if err != nil {
		return "", storeError("insert", prospectTable, err)
	}

	p.ID = id
	p.Status = entity.DefaultStatus
	return id, nil
}

func (r *ProspectRepository) Update(ctx context.Context, id string, p *entity.Prospect) error {
	query := `
		UPDATE proposals_prospects SET
			prospect_business_name = $2,
			prospect_first_name = $3,
			prospect_last_name = $4,
			prospect_contact_name = $5,
			prospect_phone = $6,
			prospect_email = $7,
			prospect_city_state = $8,
			prospect_business_type = $9,
			other_business_type = $10,
			prospect_pain_point = $11,
			prospect_services_interested = $12,
			prospect_budget_feel = $13,
			prospect_follow_up_type = $14,
			prospect_follow_up_call_date = $15,
			prospect_call_notes = $16,
			updated_at = NOW()
		WHERE id = $1
	`

	return execByID(ctx, r.DB, "update", prospectTable, id, query,
		id,
		p.BusinessName,
		p.FirstName,
		p.LastName,
		p.ContactName,
		p.Phone,
		p.Email,
		p.CityState,
		p.BusinessType,
		nullString(p.OtherBusinessType),
		p.PainPoint,
		pq.Array(nonNil(p.ServicesInterested)),
		p.BudgetFeel,
		p.FollowUpType,
		nullString(p.FollowUpCallDate),
		nullString(p.CallNotes),
	)
}

func (r *ProspectRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE proposals_prospects SET status = $2, updated_at = NOW() WHERE id = $1`
	return execByID(ctx, r.DB, "update status", prospectTable, id, query, id, status)
}

func (r *ProspectRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM proposals_prospects WHERE id = $1`
	return execByID(ctx, r.DB, "delete", prospectTable, id, query, id)
}

func (r *ProspectRepository) ListAll(ctx context.Context) ([]entity.Prospect, error) {
	query := `SELECT ` + prospectColumns + ` FROM proposals_prospects ORDER BY submitted_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, storeError("list", prospectTable, err)
	}
	defer rows.Close()

	var out []entity.Prospect
	for rows.Next() {
		var (
			p                          entity.Prospect
			other, callDate, callNotes sql.NullString
			updatedAt                  sql.NullTime
		)
		if err := rows.Scan(
			&p.ID,
			&p.BusinessName,
			&p.FirstName,
			&p.LastName,
			&p.ContactName,
			&p.Phone,
			&p.Email,
			&p.CityState,
			&p.BusinessType,
			&other,
			&p.PainPoint,
			pq.Array(&p.ServicesInterested),
			&p.BudgetFeel,
			&p.FollowUpType,
			&callDate,
			&callNotes,
			&p.Status,
			&p.SubmittedAt,
			&updatedAt,
		); err != nil {
			return nil, storeError("list", prospectTable, err)
		}
		p.OtherBusinessType = stringPtr(other)
		p.FollowUpCallDate = stringPtr(callDate)
		p.CallNotes = stringPtr(callNotes)
		p.UpdatedAt = timePtr(updatedAt)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list", prospectTable, err)
	}
	return out, nil
}
