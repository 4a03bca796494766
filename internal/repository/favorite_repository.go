package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/showzone/showzone/internal/model"
)

// FetchFavorites returns the favorited shows for one user, joined
// with the current show columns.  An empty list is not an error.
func (r *CatalogRepo) FetchFavorites(ctx context.Context, userID string) ([]model.Favorite, error) {
	const q = `SELECT f.user_id, s.id, s.genre, s.name, s.release_year, s.language,
	                  s.category, s.membership, s.grade, s.status, s.likes
	           FROM favorites f
	           JOIN shows s ON s.id = f.show_id
	           WHERE f.user_id = ?
	           ORDER BY s.id ASC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch favorites: %w", err)
	}
	defer rows.Close()
	var result []model.Favorite
	for rows.Next() {
		var f model.Favorite
		if err := rows.Scan(
			&f.UserID, &f.ID, &f.Genre, &f.Name, &f.Year, &f.Language,
			&f.Category, &f.Membership, &f.Grade, &f.Status, &f.Likes,
		); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch favorites: %w", err)
	}
	return result, nil
}

// InsertFavorite records a (user, show) favorite edge.  The unique
// key on (user_id, show_id) backs the at-most-once invariant;
// a duplicate insert surfaces as ErrFavoriteExists.
func (r *CatalogRepo) InsertFavorite(ctx context.Context, userID string, showID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO favorites (user_id, show_id) VALUES (?, ?)`, userID, showID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrFavoriteExists
		}
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}
