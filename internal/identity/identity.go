// Package identity answers whether a user id names a registered
// account and whether that account's subscription period is still
// running.  The catalog rules engine consumes it as a precondition
// check; handlers use it for the recharge endpoint.
package identity

import (
	"context"
	"errors"
	"time"

	"github.com/showzone/showzone/internal/repository"
	"github.com/showzone/showzone/internal/validator"
)

// Checker resolves user preconditions against the users table.
type Checker struct {
	Users *repository.UserRepo
	now   func() time.Time
}

// NewChecker constructs a Checker.  A nil clock defaults to time.Now.
func NewChecker(users *repository.UserRepo, now func() time.Time) *Checker {
	if now == nil {
		now = time.Now
	}
	return &Checker{Users: users, now: now}
}

// IsValidUser returns nil when the id names a registered account and
// validator.ErrInvalidUserID when it does not.
func (c *Checker) IsValidUser(ctx context.Context, userID string) error {
	_, err := c.Users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return validator.ErrInvalidUserID
	}
	return err
}

// IsSubscriptionExpired reports whether the user's subscription end
// date lies before the current time.
func (c *Checker) IsSubscriptionExpired(ctx context.Context, userID string) (bool, error) {
	u, err := c.Users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return false, validator.ErrInvalidUserID
	}
	if err != nil {
		return false, err
	}
	return c.now().After(u.ExpiresOn), nil
}
