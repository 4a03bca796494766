// Package queue defines message payloads exchanged over the message broker.
package queue

// Activity kinds carried by CatalogActivityEvent.
const (
	ActivityShowAdded       = "show.added"
	ActivityShowDeleted     = "show.deleted"
	ActivityFavoriteAdded   = "favorite.added"
	ActivityDownloadGranted = "download.granted"
)

// CatalogActivityEvent is published after a catalog mutation
// succeeds.  It carries enough information for downstream consumers
// to log or feed analytics without querying the primary database.
type CatalogActivityEvent struct {
	Kind       string `json:"kind"`
	UserID     string `json:"user_id,omitempty"`
	ShowID     int64  `json:"show_id"`
	ShowName   string `json:"show_name"`
	Language   string `json:"language,omitempty"`
	Membership string `json:"membership,omitempty"`
	ExpiresOn  string `json:"expires_on,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
