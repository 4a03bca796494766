package validator

import (
	"regexp"
	"strings"
)

// namePattern accepts letters and spaces with an optional trailing
// dot, matching the registration and search-term rule.
var namePattern = regexp.MustCompile(`^[a-zA-Z ]+\.?$`)

// Password character classes.  The policy requires at least one of
// each in a password of eight or more characters.
var (
	passwordLetter  = regexp.MustCompile(`[a-zA-Z]`)
	passwordDigit   = regexp.MustCompile(`[0-9]`)
	passwordSpecial = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
)

// Enumerated field values.  Lookups are done on the lowercased,
// trimmed input so stored and queried values compare equal.
var (
	memberships = map[string]bool{"prime": true, "non prime": true}
	grades      = map[string]bool{"u": true, "v": true, "a": true, "ua": true}
	statuses    = map[string]bool{"active": true, "inactive": true}
)

// Name checks a person or movie name: non-blank after trimming,
// letters and spaces only (optional trailing dot), at most 20
// characters.
func Name(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyField
	}
	if !namePattern.MatchString(name) || len(name) > 20 {
		return ErrInvalidName
	}
	return nil
}

// MobileNumber checks for a 10-digit number whose leading digit is
// in the mobile prefix range 6-9.
func MobileNumber(number int64) error {
	if number < 6_000_000_000 || number > 9_999_999_999 {
		return ErrInvalidNumber
	}
	return nil
}

// Password enforces the credential policy: at least eight characters
// containing a letter, a digit and a special character.
func Password(password string) error {
	if len(password) < 8 {
		return ErrInvalidPassword
	}
	if !passwordLetter.MatchString(password) ||
		!passwordDigit.MatchString(password) ||
		!passwordSpecial.MatchString(password) {
		return ErrInvalidPassword
	}
	return nil
}

// PasswordsMatch checks that the re-entered password equals the
// first entry after trimming.
func PasswordsMatch(password, reentered string) error {
	if strings.TrimSpace(password) != strings.TrimSpace(reentered) {
		return ErrPasswordMismatch
	}
	return nil
}

// MovieID checks that a movie id is a positive integer.  Existence
// in the catalog is a separate store-backed check.
func MovieID(id int64) error {
	if id <= 0 {
		return ErrInvalidMovieID
	}
	return nil
}

// UserID checks that a user id is non-blank.  Existence in the users
// table is a separate store-backed check.
func UserID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidUserID
	}
	return nil
}

// YearValid reports whether a release year falls inside the
// catalog's accepted window: strictly after floor, up to and
// including ceiling.
func YearValid(year, floor, ceiling int) bool {
	return year > floor && year <= ceiling
}

// Membership checks that a membership tier belongs to the fixed
// two-value set.
func Membership(value string) error {
	if !memberships[normalize(value)] {
		return ErrInvalidDetails
	}
	return nil
}

// Grade checks that a content rating belongs to the accepted set.
func Grade(value string) error {
	if !grades[normalize(value)] {
		return ErrInvalidDetails
	}
	return nil
}

// Status checks that a row status belongs to the accepted set.
func Status(value string) error {
	if !statuses[normalize(value)] {
		return ErrInvalidDetails
	}
	return nil
}

// SearchDetails validates one or more free-text search terms with
// the name rule.  The first failing term's error is returned.
func SearchDetails(terms ...string) error {
	for _, t := range terms {
		if err := Name(t); err != nil {
			return err
		}
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
