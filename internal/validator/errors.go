// Package validator contains the field-level checks applied before
// any catalog or registration operation touches the store.  Each
// check is a pure function returning nil on success or one of the
// sentinel errors below.  Callers compare with errors.Is to decide
// how to report the failure.
package validator

import "errors"

// ErrEmptyField is returned when a required free-text field is blank
// after trimming.
var ErrEmptyField = errors.New("empty field")

// ErrInvalidName is returned when a name or search term contains
// characters outside letters/spaces or exceeds the length limit.
var ErrInvalidName = errors.New("invalid name")

// ErrInvalidNumber is returned when a mobile number is not a
// 10-digit number in the mobile prefix range.
var ErrInvalidNumber = errors.New("invalid mobile number")

// ErrInvalidPassword is returned when a password does not satisfy
// the length and character-class policy.
var ErrInvalidPassword = errors.New("invalid password")

// ErrPasswordMismatch is returned when the re-entered password does
// not match the first entry.
var ErrPasswordMismatch = errors.New("passwords do not match")

// ErrInvalidDetails is returned when a field must belong to a fixed
// enumerated set (membership, grade, status, zone) and does not.
var ErrInvalidDetails = errors.New("invalid details")

// ErrInvalidMovieID is returned when a movie id is not positive or
// does not identify a catalog row.
var ErrInvalidMovieID = errors.New("invalid movie id")

// ErrInvalidUserID is returned when a user id is blank or unknown.
var ErrInvalidUserID = errors.New("invalid user id")
