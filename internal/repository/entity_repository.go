package repository

import (
	"context"
	"database/sql"
)

// EntityRepo resolves the business identifiers carried by an inbound
// request (user id, movie/screen/seat codes) to internal primary keys.
// It performs pure lookups and never writes.
type EntityRepo struct {
	db *sql.DB
}

// NewEntityRepo returns a new EntityRepo bound to the given database.
func NewEntityRepo(db *sql.DB) *EntityRepo { return &EntityRepo{db: db} }

// resolveID runs a single-column id lookup and returns 0 when no row
// matches. Resolution failures are not errors; absence is expressed by
// the zero id so the validator can decide what is required.
func (r *EntityRepo) resolveID(ctx context.Context, query string, arg interface{}) (uint64, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ResolveUser confirms a user id exists and returns it, or 0.
func (r *EntityRepo) ResolveUser(ctx context.Context, userID uint64) (uint64, error) {
	return r.resolveID(ctx, `SELECT id FROM users WHERE id = ?`, userID)
}

// ResolveMovie returns the id for a movie code, or 0.
func (r *EntityRepo) ResolveMovie(ctx context.Context, code string) (uint64, error) {
	return r.resolveID(ctx, `SELECT id FROM movies WHERE code = ?`, code)
}

// ResolveScreen returns the id for a screen code, or 0.
func (r *EntityRepo) ResolveScreen(ctx context.Context, code string) (uint64, error) {
	return r.resolveID(ctx, `SELECT id FROM screens WHERE code = ?`, code)
}

// ResolveSeat returns the id for a seat code, or 0.
func (r *EntityRepo) ResolveSeat(ctx context.Context, code string) (uint64, error) {
	return r.resolveID(ctx, `SELECT id FROM seats WHERE code = ?`, code)
}
