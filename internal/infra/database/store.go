package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/sclayai/proposal-intake/internal/entity"
)

func storeError(op, table string, err error) error {
	return &entity.StoreError{Op: op, Table: table, Err: describe(err)}
}

// describe keeps the driver's message but adds the SQLSTATE code and detail
// from Postgres when available.
func describe(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Detail != "" {
		return &driverError{msg: pqErr.Message + ": " + pqErr.Detail, code: string(pqErr.Code), err: err}
	}
	return err
}

type driverError struct {
	msg  string
	code string
	err  error
}

func (e *driverError) Error() string { return e.msg }
func (e *driverError) Unwrap() error { return e.err }

// execByID runs a mutation keyed by id and maps zero affected rows to
// ErrNotFound. Empty ids and ids that are not UUIDs never reach the database.
func execByID(ctx context.Context, db *sql.DB, op, table, id, query string, args ...any) error {
	if id == "" {
		return entity.ErrMissingIdentifier
	}
	if _, err := uuid.Parse(id); err != nil {
		return entity.ErrNotFound
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return storeError(op, table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeError(op, table, err)
	}
	if n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func nullString(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func floatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	return &nf.Float64
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	return &nt.Time
}
