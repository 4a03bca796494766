// Package repository contains the data access layer for the show
// catalog.  Each file groups the statements for one table.  Sentinel
// errors defined here let handlers and the catalog service
// distinguish "row missing" and "row duplicated" outcomes from
// genuine store failures, which propagate wrapped.
package repository

import "errors"

// ErrShowNotFound indicates that a show id did not match any catalog row.
var ErrShowNotFound = errors.New("show not found")

// ErrUserNotFound indicates that a user id did not match any account.
var ErrUserNotFound = errors.New("user not found")

// ErrUserIDExists indicates a registration attempt with a taken user id.
var ErrUserIDExists = errors.New("user id already exists")

// ErrFavoriteExists indicates the (user, show) pair is already favorited.
var ErrFavoriteExists = errors.New("favorite already exists")
