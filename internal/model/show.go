package model

import "time"

// Membership tier values for a show.  The tier is a strict two-state
// field; the only transition between the states is the prime-status
// toggle exposed by the catalog service.
const (
	MembershipPrime    = "prime"
	MembershipNonPrime = "non prime"
)

// Show represents one catalog entry: a movie title together with the
// attributes the search and membership rules operate on.  The
// (Name, Year, Language) triple is unique across the catalog and is
// checked before every insert.
//
// Fields:
//  ID         – primary key assigned by the store.
//  Genre      – free-text genre (e.g. "comedy").
//  Name       – movie title, at most 20 characters.
//  Year       – release year.
//  Language   – spoken language of the title.
//  Category   – catalog shelf (e.g. "kids", "family").
//  Membership – access tier, "prime" or "non prime".
//  Grade      – content rating (U, V, A, UA).
//  Status     – row state ("active" or "inactive").
//  Likes      – favorite counter, incremented when a user favorites
//               the show.
type Show struct {
	ID         int64  // shows.id
	Genre      string // shows.genre
	Name       string // shows.name
	Year       int    // shows.release_year
	Language   string // shows.language
	Category   string // shows.category
	Membership string // shows.membership
	Grade      string // shows.grade
	Status     string // shows.status
	Likes      int64  // shows.likes
}

// Favorite is the projection of a Show onto a user's favorites list.
// A (UserID, ShowID) pair exists at most once.
type Favorite struct {
	UserID string // favorites.user_id
	Show          // joined show columns
}

// Download grants a user time-boxed access to a show.  The grant is
// created with ExpiresOn = DownloadedOn + the configured retention
// window and becomes stale once the current date passes ExpiresOn.
type Download struct {
	UserID       string    // downloads.user_id
	DownloadedOn time.Time // downloads.downloaded_on
	ExpiresOn    time.Time // downloads.expires_on
	Show                   // joined show columns
}
