package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/showzone/showzone/internal/catalog"
	"github.com/showzone/showzone/internal/model"
	"github.com/showzone/showzone/internal/queue"
	queue_publisher "github.com/showzone/showzone/internal/service"
)

// AdminHandler exposes the catalog mutations reserved for the ADMIN
// role: adding shows, deleting shows and toggling the prime tier.
type AdminHandler struct {
	Catalog *catalog.Service
}

func NewAdminHandler(svc *catalog.Service) *AdminHandler {
	return &AdminHandler{Catalog: svc}
}

// AddShow handles POST /v1/admin/shows.
func (h *AdminHandler) AddShow(c echo.Context) error {
	var body struct {
		Genre      string `json:"genre"`
		Name       string `json:"name"`
		Year       int    `json:"year"`
		Language   string `json:"language"`
		Category   string `json:"category"`
		Membership string `json:"membership"`
		Grade      string `json:"grade"`
		Status     string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	show := model.Show{
		Genre: body.Genre, Name: body.Name, Year: body.Year, Language: body.Language,
		Category: body.Category, Membership: body.Membership, Grade: body.Grade, Status: body.Status,
	}
	if err := h.Catalog.AddShow(ctx, &show); err != nil {
		return writeError(c, err)
	}

	// Activity events are best-effort; a broker outage never fails the request.
	_ = queue_publisher.PublishCatalogActivity(ctx, queue.CatalogActivityEvent{
		Kind:       queue.ActivityShowAdded,
		ShowID:     show.ID,
		ShowName:   show.Name,
		Language:   show.Language,
		Membership: show.Membership,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{"show": toShowParts([]model.Show{show})[0]})
}

// DeleteShow handles DELETE /v1/admin/shows/:id.
func (h *AdminHandler) DeleteShow(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Catalog.DeleteShow(ctx, id); err != nil {
		return writeError(c, err)
	}

	_ = queue_publisher.PublishCatalogActivity(ctx, queue.CatalogActivityEvent{
		Kind:       queue.ActivityShowDeleted,
		ShowID:     id,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.NoContent(http.StatusNoContent)
}

// TogglePrime handles PATCH /v1/admin/shows/:id/prime and returns
// the tier now in effect.
func (h *AdminHandler) TogglePrime(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tier, err := h.Catalog.TogglePrimeStatus(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "membership": tier})
}
