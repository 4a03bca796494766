package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/showzone/showzone/internal/model"
)

const downloadSelect = `SELECT d.user_id, d.downloaded_on, d.expires_on,
       s.id, s.genre, s.name, s.release_year, s.language,
       s.category, s.membership, s.grade, s.status, s.likes
FROM downloads d
JOIN shows s ON s.id = d.show_id`

// FetchDownloads returns every download grant joined with its show
// columns.  The rules engine filters by user and expiry in memory.
func (r *CatalogRepo) FetchDownloads(ctx context.Context) ([]model.Download, error) {
	rows, err := r.db.QueryContext(ctx, downloadSelect+` ORDER BY d.downloaded_on ASC`)
	if err != nil {
		return nil, fmt.Errorf("fetch downloads: %w", err)
	}
	return scanDownloads(rows)
}

// FetchDownloadsByUser returns the download grants of one user.
func (r *CatalogRepo) FetchDownloadsByUser(ctx context.Context, userID string) ([]model.Download, error) {
	rows, err := r.db.QueryContext(ctx, downloadSelect+` WHERE d.user_id = ? ORDER BY d.downloaded_on ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch downloads: %w", err)
	}
	return scanDownloads(rows)
}

// InsertDownload records a time-boxed access grant.
func (r *CatalogRepo) InsertDownload(ctx context.Context, d model.Download) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO downloads (user_id, show_id, downloaded_on, expires_on) VALUES (?, ?, ?, ?)`,
		d.UserID, d.ID, d.DownloadedOn, d.ExpiresOn)
	if err != nil {
		return fmt.Errorf("insert download: %w", err)
	}
	return nil
}

func scanDownloads(rows *sql.Rows) ([]model.Download, error) {
	defer rows.Close()
	var result []model.Download
	for rows.Next() {
		var d model.Download
		if err := rows.Scan(
			&d.UserID, &d.DownloadedOn, &d.ExpiresOn,
			&d.ID, &d.Genre, &d.Name, &d.Year, &d.Language,
			&d.Category, &d.Membership, &d.Grade, &d.Status, &d.Likes,
		); err != nil {
			return nil, fmt.Errorf("scan download: %w", err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch downloads: %w", err)
	}
	return result, nil
}
