package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/showzone/showzone/internal/model"
)

// CatalogRepo manages persistence for shows and their per-user
// projections (favorites and downloads).  Every method issues a
// single statement; the rules engine composes them into operations.
type CatalogRepo struct {
	db *sql.DB
}

// NewCatalogRepo constructs a CatalogRepo with the given DB handle.
func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

const showColumns = `id, genre, name, release_year, language, category, membership, grade, status, likes`

// FetchAllShows returns the full catalog snapshot ordered by id.  An
// empty catalog yields an empty slice and nil error.
func (r *CatalogRepo) FetchAllShows(ctx context.Context) ([]model.Show, error) {
	const q = `SELECT ` + showColumns + ` FROM shows ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("fetch shows: %w", err)
	}
	defer rows.Close()
	var result []model.Show
	for rows.Next() {
		var s model.Show
		if err := rows.Scan(
			&s.ID, &s.Genre, &s.Name, &s.Year, &s.Language,
			&s.Category, &s.Membership, &s.Grade, &s.Status, &s.Likes,
		); err != nil {
			return nil, fmt.Errorf("scan show: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch shows: %w", err)
	}
	return result, nil
}

// InsertShow adds a new catalog row and assigns the generated id
// back to the show struct.  Duplicate checking against the
// (name, release_year, language) triple happens in the rules engine
// before this call.
func (r *CatalogRepo) InsertShow(ctx context.Context, s *model.Show) error {
	const q = `INSERT INTO shows (genre, name, release_year, language, category, membership, grade, status, likes)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0)`
	res, err := r.db.ExecContext(ctx, q,
		s.Genre, s.Name, s.Year, s.Language, s.Category, s.Membership, s.Grade, s.Status)
	if err != nil {
		return fmt.Errorf("insert show: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert show: %w", err)
	}
	s.ID = id
	return nil
}

// DeleteShow removes a catalog row by id.  ErrShowNotFound is
// returned when no row matched.
func (r *CatalogRepo) DeleteShow(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shows WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete show: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrShowNotFound
	}
	return nil
}

// UpdateMembershipTier persists a new tier for the given show.
func (r *CatalogRepo) UpdateMembershipTier(ctx context.Context, id int64, tier string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE shows SET membership = ? WHERE id = ?`, tier, id)
	if err != nil {
		return fmt.Errorf("update membership: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish "missing row" from "tier already set".
		var one int
		err := r.db.QueryRowContext(ctx, `SELECT 1 FROM shows WHERE id = ? LIMIT 1`, id).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrShowNotFound
		}
		if err != nil {
			return fmt.Errorf("update membership: %w", err)
		}
	}
	return nil
}

// IncrementLikes adds one to a show's favorite counter.
func (r *CatalogRepo) IncrementLikes(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE shows SET likes = likes + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("increment likes: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrShowNotFound
	}
	return nil
}
