package catalog

import "errors"

// ErrMovieAlreadyExists is returned by AddShow when a catalog row
// with the same (name, year, language) triple is already present.
var ErrMovieAlreadyExists = errors.New("movie already exists")

// ErrDownloadActive is returned by AddDownload when the user still
// holds a non-expired download of the same show.
var ErrDownloadActive = errors.New("download still active")

// ErrSubscriptionExpired is returned when an operation requires an
// active subscription and the user's period has lapsed.
var ErrSubscriptionExpired = errors.New("subscription expired")
