package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/showzone/showzone/internal/model"
	"github.com/showzone/showzone/internal/utils"
)

// UserRepo manages rows of the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a registered account.  The password is hashed with
// bcrypt before storage; expiresOn marks the end of the initial
// subscription period.
func (r *UserRepo) Create(ctx context.Context, u model.User, password string, cost int) error {
	userID := strings.TrimSpace(u.UserID)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO users (user_id, name, phone_number, password_hash, role, joined_on, expires_on) VALUES (?,?,?,?,?,NOW(),?)",
		userID, strings.TrimSpace(u.Name), u.PhoneNumber, hash, u.Role, u.ExpiresOn)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrUserIDExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID fetches an account by its user id.  ErrUserNotFound is
// returned when the id is unknown.
func (r *UserRepo) GetByID(ctx context.Context, userID string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id,name,phone_number,password_hash,role,joined_on,expires_on FROM users WHERE user_id=? LIMIT 1",
		strings.TrimSpace(userID)).
		Scan(&u.UserID, &u.Name, &u.PhoneNumber, &u.PasswordHash, &u.Role, &u.JoinedOn, &u.ExpiresOn)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("fetch user: %w", err)
	}
	return u, nil
}

// ExtendSubscription pushes a user's subscription end date forward
// to the given time.  Used by the recharge endpoint.
func (r *UserRepo) ExtendSubscription(ctx context.Context, userID string, until time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET expires_on=? WHERE user_id=?", until, strings.TrimSpace(userID))
	if err != nil {
		return fmt.Errorf("extend subscription: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}
