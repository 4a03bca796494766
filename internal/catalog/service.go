// Package catalog implements the membership and catalog rules: which
// shows an operation may add, remove or retag, and which shows a
// search or member listing returns.  Every operation fetches a fresh
// snapshot from the store, applies its predicates in memory and
// performs at most one write; no state is held between calls.
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/showzone/showzone/internal/model"
	"github.com/showzone/showzone/internal/validator"
)

// Store is the persistence capability the rules engine needs.  It is
// implemented by repository.CatalogRepo; tests substitute an
// in-memory mock.
type Store interface {
	FetchAllShows(ctx context.Context) ([]model.Show, error)
	InsertShow(ctx context.Context, s *model.Show) error
	DeleteShow(ctx context.Context, id int64) error
	UpdateMembershipTier(ctx context.Context, id int64, tier string) error
	IncrementLikes(ctx context.Context, id int64) error
	FetchFavorites(ctx context.Context, userID string) ([]model.Favorite, error)
	InsertFavorite(ctx context.Context, userID string, showID int64) error
	FetchDownloads(ctx context.Context) ([]model.Download, error)
	FetchDownloadsByUser(ctx context.Context, userID string) ([]model.Download, error)
	InsertDownload(ctx context.Context, d model.Download) error
}

// Identity answers the user preconditions of member operations.
type Identity interface {
	// IsValidUser returns validator.ErrInvalidUserID when the id is
	// unknown, nil when the account exists.
	IsValidUser(ctx context.Context, userID string) error
	// IsSubscriptionExpired reports whether the user's subscription
	// period has lapsed.
	IsSubscriptionExpired(ctx context.Context, userID string) (bool, error)
}

// Rules holds the tunable policy values.  YearFloor is exclusive,
// YearCeiling inclusive; DownloadDays is the retention window of a
// download grant.
type Rules struct {
	YearFloor    int
	YearCeiling  int
	DownloadDays int
}

// Service is the rules engine.  The clock is injectable so expiry
// rules are testable against arbitrary dates.
type Service struct {
	store Store
	ident Identity
	rules Rules
	now   func() time.Time
}

// NewService constructs a Service.  A nil clock defaults to time.Now.
func NewService(store Store, ident Identity, rules Rules, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, ident: ident, rules: rules, now: now}
}

// matches compares two catalog fields case-insensitively, ignoring
// surrounding whitespace.
func matches(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// SearchByGenreAndLanguage returns all shows matching both fields.
// An empty result is a valid, empty list.
func (s *Service) SearchByGenreAndLanguage(ctx context.Context, genre, language string) ([]model.Show, error) {
	if err := validator.SearchDetails(genre, language); err != nil {
		return nil, err
	}
	shows, err := s.store.FetchAllShows(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.Show
	for _, sh := range shows {
		if matches(sh.Genre, genre) && matches(sh.Language, language) {
			out = append(out, sh)
		}
	}
	return out, nil
}

// SearchByMembership returns all shows in the given membership tier.
func (s *Service) SearchByMembership(ctx context.Context, membership string) ([]model.Show, error) {
	if err := validator.Membership(membership); err != nil {
		return nil, err
	}
	shows, err := s.store.FetchAllShows(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.Show
	for _, sh := range shows {
		if matches(sh.Membership, membership) {
			out = append(out, sh)
		}
	}
	return out, nil
}

// SearchByYear returns all shows released in the given year.  A year
// outside the accepted window short-circuits to an empty result
// without touching the store.
func (s *Service) SearchByYear(ctx context.Context, year int) ([]model.Show, error) {
	if !validator.YearValid(year, s.rules.YearFloor, s.rules.YearCeiling) {
		return nil, nil
	}
	shows, err := s.store.FetchAllShows(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.Show
	for _, sh := range shows {
		if sh.Year == year {
			out = append(out, sh)
		}
	}
	return out, nil
}

// SearchByLanguage returns all shows in the given language.
func (s *Service) SearchByLanguage(ctx context.Context, language string) ([]model.Show, error) {
	if err := validator.SearchDetails(language); err != nil {
		return nil, err
	}
	shows, err := s.store.FetchAllShows(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.Show
	for _, sh := range shows {
		if matches(sh.Language, language) {
			out = append(out, sh)
		}
	}
	return out, nil
}

// ListByCategory returns all shows on the given catalog shelf.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]model.Show, error) {
	if err := validator.SearchDetails(category); err != nil {
		return nil, err
	}
	shows, err := s.store.FetchAllShows(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.Show
	for _, sh := range shows {
		if matches(sh.Category, category) {
			out = append(out, sh)
		}
	}
	return out, nil
}

// SearchByName returns all shows whose name contains the given text,
// case-insensitively.  No match yields an empty list, not an error.
func (s *Service) SearchByName(ctx context.Context, text string) ([]model.Show, error) {
	if err := validator.Name(text); err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(text))
	shows, err := s.store.FetchAllShows(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.Show
	for _, sh := range shows {
		if strings.Contains(strings.ToLower(sh.Name), needle) {
			out = append(out, sh)
		}
	}
	return out, nil
}

// AddShow validates every field, rejects duplicates of the
// (name, year, language) triple and persists the new catalog row.
// The generated id is assigned back to the show.
func (s *Service) AddShow(ctx context.Context, show *model.Show) error {
	if err := validator.SearchDetails(show.Genre, show.Name, show.Language, show.Category); err != nil {
		return err
	}
	if !validator.YearValid(show.Year, s.rules.YearFloor, s.rules.YearCeiling) {
		return validator.ErrInvalidDetails
	}
	if err := validator.Membership(show.Membership); err != nil {
		return err
	}
	if err := validator.Grade(show.Grade); err != nil {
		return err
	}
	if err := validator.Status(show.Status); err != nil {
		return err
	}
	shows, err := s.store.FetchAllShows(ctx)
	if err != nil {
		return err
	}
	for _, sh := range shows {
		if matches(sh.Name, show.Name) && sh.Year == show.Year && matches(sh.Language, show.Language) {
			return ErrMovieAlreadyExists
		}
	}
	show.Genre = strings.TrimSpace(show.Genre)
	show.Name = strings.TrimSpace(show.Name)
	show.Language = strings.TrimSpace(show.Language)
	show.Category = strings.TrimSpace(show.Category)
	show.Membership = strings.ToLower(strings.TrimSpace(show.Membership))
	show.Grade = strings.ToUpper(strings.TrimSpace(show.Grade))
	show.Status = strings.ToLower(strings.TrimSpace(show.Status))
	return s.store.InsertShow(ctx, show)
}

// DeleteShow removes the catalog row with the given id.  A
// non-positive or unknown id fails with validator.ErrInvalidMovieID.
func (s *Service) DeleteShow(ctx context.Context, movieID int64) error {
	if err := validator.MovieID(movieID); err != nil {
		return err
	}
	present, err := s.IsShowPresent(ctx, movieID)
	if err != nil {
		return err
	}
	if !present {
		return validator.ErrInvalidMovieID
	}
	return s.store.DeleteShow(ctx, movieID)
}

// TogglePrimeStatus flips a show's membership tier between "prime"
// and "non prime" and persists the new value.  It returns the tier
// now in effect.
func (s *Service) TogglePrimeStatus(ctx context.Context, movieID int64) (string, error) {
	if err := validator.MovieID(movieID); err != nil {
		return "", err
	}
	shows, err := s.store.FetchAllShows(ctx)
	if err != nil {
		return "", err
	}
	for _, sh := range shows {
		if sh.ID != movieID {
			continue
		}
		tier := model.MembershipPrime
		if matches(sh.Membership, model.MembershipPrime) {
			tier = model.MembershipNonPrime
		}
		if err := s.store.UpdateMembershipTier(ctx, movieID, tier); err != nil {
			return "", err
		}
		return tier, nil
	}
	return "", validator.ErrInvalidMovieID
}

// IsShowPresent reports whether the id identifies a catalog row.
func (s *Service) IsShowPresent(ctx context.Context, movieID int64) (bool, error) {
	shows, err := s.store.FetchAllShows(ctx)
	if err != nil {
		return false, err
	}
	for _, sh := range shows {
		if sh.ID == movieID {
			return true, nil
		}
	}
	return false, nil
}

// AddFavorite records a favorite edge for an existing user and show
// and increments the show's like counter.  A repeated call for the
// same pair fails with repository.ErrFavoriteExists and leaves the
// counter untouched.
func (s *Service) AddFavorite(ctx context.Context, userID string, movieID int64) error {
	if err := validator.UserID(userID); err != nil {
		return err
	}
	if err := validator.MovieID(movieID); err != nil {
		return err
	}
	if err := s.ident.IsValidUser(ctx, userID); err != nil {
		return err
	}
	present, err := s.IsShowPresent(ctx, movieID)
	if err != nil {
		return err
	}
	if !present {
		return validator.ErrInvalidMovieID
	}
	if err := s.store.InsertFavorite(ctx, strings.TrimSpace(userID), movieID); err != nil {
		return err
	}
	return s.store.IncrementLikes(ctx, movieID)
}

// ListFavorites returns the stored favorites of a valid user.  An
// empty list is a valid result.
func (s *Service) ListFavorites(ctx context.Context, userID string) ([]model.Favorite, error) {
	if err := validator.UserID(userID); err != nil {
		return nil, err
	}
	if err := s.ident.IsValidUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.FetchFavorites(ctx, strings.TrimSpace(userID))
}

// ListTrending returns all shows favorited at least once, in store
// order.
func (s *Service) ListTrending(ctx context.Context) ([]model.Show, error) {
	shows, err := s.store.FetchAllShows(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.Show
	for _, sh := range shows {
		if sh.Likes > 0 {
			out = append(out, sh)
		}
	}
	return out, nil
}

// ListTrendingByLanguage filters the trending list by language.
// Unlike the plain searches, an empty result here surfaces as
// validator.ErrInvalidDetails rather than a silent empty list.
func (s *Service) ListTrendingByLanguage(ctx context.Context, language string) ([]model.Show, error) {
	if err := validator.SearchDetails(language); err != nil {
		return nil, err
	}
	trending, err := s.ListTrending(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.Show
	for _, sh := range trending {
		if matches(sh.Language, language) {
			out = append(out, sh)
		}
	}
	if len(out) == 0 {
		return nil, validator.ErrInvalidDetails
	}
	return out, nil
}

// Kids-zone membership: a show qualifies when its genre is one of
// the kid-friendly genres or its grade is one of the universal
// ratings.  The conditions are OR-ed, never combined.
var (
	kidsGenres = map[string]bool{"comedy": true, "adventure": true, "kids": true}
	kidsGrades = map[string]bool{"u": true, "v": true}
)

// ListKidsZone returns the kid-safe slice of the catalog.  The
// caller must be a known user with an active subscription, and the
// requested zone must be "kids".
func (s *Service) ListKidsZone(ctx context.Context, userID, zone string) ([]model.Show, error) {
	if err := validator.UserID(userID); err != nil {
		return nil, err
	}
	if err := s.ident.IsValidUser(ctx, userID); err != nil {
		return nil, err
	}
	expired, err := s.ident.IsSubscriptionExpired(ctx, userID)
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, ErrSubscriptionExpired
	}
	if !matches(zone, "kids") {
		return nil, validator.ErrInvalidDetails
	}
	shows, err := s.store.FetchAllShows(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.Show
	for _, sh := range shows {
		genre := strings.ToLower(strings.TrimSpace(sh.Genre))
		grade := strings.ToLower(strings.TrimSpace(sh.Grade))
		if kidsGenres[genre] || kidsGrades[grade] {
			out = append(out, sh)
		}
	}
	return out, nil
}

// AddDownload grants a user time-boxed access to a show.  The grant
// is refused while the same user still holds a non-expired download
// of the same show; expired grants do not block a fresh one.
func (s *Service) AddDownload(ctx context.Context, userID string, movieID int64) (model.Download, error) {
	if err := validator.UserID(userID); err != nil {
		return model.Download{}, err
	}
	if err := validator.MovieID(movieID); err != nil {
		return model.Download{}, err
	}
	if err := s.ident.IsValidUser(ctx, userID); err != nil {
		return model.Download{}, err
	}
	shows, err := s.store.FetchAllShows(ctx)
	if err != nil {
		return model.Download{}, err
	}
	var found *model.Show
	for i := range shows {
		if shows[i].ID == movieID {
			found = &shows[i]
			break
		}
	}
	if found == nil {
		return model.Download{}, validator.ErrInvalidMovieID
	}
	downloads, err := s.store.FetchDownloads(ctx)
	if err != nil {
		return model.Download{}, err
	}
	for _, d := range downloads {
		if d.ID == movieID && matches(d.UserID, userID) && !s.IsDownloadExpired(d.ExpiresOn) {
			return model.Download{}, ErrDownloadActive
		}
	}
	now := s.now()
	grant := model.Download{
		UserID:       strings.TrimSpace(userID),
		DownloadedOn: now,
		ExpiresOn:    now.AddDate(0, 0, s.rules.DownloadDays),
		Show:         *found,
	}
	if err := s.store.InsertDownload(ctx, grant); err != nil {
		return model.Download{}, err
	}
	return grant, nil
}

// ListDownloads returns the download grants of a valid user.
func (s *Service) ListDownloads(ctx context.Context, userID string) ([]model.Download, error) {
	if err := validator.UserID(userID); err != nil {
		return nil, err
	}
	if err := s.ident.IsValidUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.FetchDownloadsByUser(ctx, strings.TrimSpace(userID))
}

// IsDownloadExpired reports whether the current date is strictly
// past the grant's expiry date.  The day the grant expires still
// counts as accessible.
func (s *Service) IsDownloadExpired(expiresOn time.Time) bool {
	return dateOf(s.now()).After(dateOf(expiresOn))
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
