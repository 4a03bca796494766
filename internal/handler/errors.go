package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/showzone/showzone/internal/catalog"
	"github.com/showzone/showzone/internal/repository"
	"github.com/showzone/showzone/internal/validator"
)

// writeError maps the service and validator sentinels onto HTTP
// statuses.  Anything unrecognized is a store failure and reported
// as 500 without leaking the driver error.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, validator.ErrEmptyField),
		errors.Is(err, validator.ErrInvalidName),
		errors.Is(err, validator.ErrInvalidNumber),
		errors.Is(err, validator.ErrInvalidPassword),
		errors.Is(err, validator.ErrPasswordMismatch),
		errors.Is(err, validator.ErrInvalidDetails):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, validator.ErrInvalidMovieID),
		errors.Is(err, validator.ErrInvalidUserID),
		errors.Is(err, repository.ErrShowNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, catalog.ErrMovieAlreadyExists),
		errors.Is(err, catalog.ErrDownloadActive),
		errors.Is(err, repository.ErrFavoriteExists),
		errors.Is(err, repository.ErrUserIDExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, catalog.ErrSubscriptionExpired):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store failure"})
	}
}
