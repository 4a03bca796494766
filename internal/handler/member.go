package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/showzone/showzone/internal/catalog"
	"github.com/showzone/showzone/internal/config"
	"github.com/showzone/showzone/internal/model"
	"github.com/showzone/showzone/internal/queue"
	"github.com/showzone/showzone/internal/repository"
	queue_publisher "github.com/showzone/showzone/internal/service"
)

// MemberHandler exposes the authenticated member surface: favorites,
// downloads, the kids zone and subscription recharge.  The acting
// user is always the token subject; no endpoint accepts a foreign
// user id.
type MemberHandler struct {
	Cfg     config.Config
	Catalog *catalog.Service
	Users   *repository.UserRepo
}

func NewMemberHandler(cfg config.Config, svc *catalog.Service, users *repository.UserRepo) *MemberHandler {
	return &MemberHandler{Cfg: cfg, Catalog: svc, Users: users}
}

// currentUser pulls the JWT subject stored by the auth middleware.
func currentUser(c echo.Context) (string, bool) {
	uid, ok := c.Get("user_id").(string)
	return uid, ok && uid != ""
}

type favoritePart struct {
	UserID string `json:"user_id"`
	showPart
}

type downloadPart struct {
	UserID       string    `json:"user_id"`
	DownloadedOn time.Time `json:"downloaded_on"`
	ExpiresOn    time.Time `json:"expires_on"`
	Expired      bool      `json:"expired"`
	showPart
}

// AddFavorite handles POST /v1/favorites/:id.
func (h *MemberHandler) AddFavorite(c echo.Context) error {
	uid, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Catalog.AddFavorite(ctx, uid, id); err != nil {
		return writeError(c, err)
	}

	_ = queue_publisher.PublishCatalogActivity(ctx, queue.CatalogActivityEvent{
		Kind:       queue.ActivityFavoriteAdded,
		UserID:     uid,
		ShowID:     id,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.NoContent(http.StatusCreated)
}

// ListFavorites handles GET /v1/favorites.
func (h *MemberHandler) ListFavorites(c echo.Context) error {
	uid, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	favorites, err := h.Catalog.ListFavorites(ctx, uid)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]favoritePart, 0, len(favorites))
	for _, f := range favorites {
		out = append(out, favoritePart{UserID: f.UserID, showPart: toShowParts([]model.Show{f.Show})[0]})
	}
	return c.JSON(http.StatusOK, echo.Map{"favorites": out})
}

// AddDownload handles POST /v1/downloads/:id and returns the grant
// with its expiry date.
func (h *MemberHandler) AddDownload(c echo.Context) error {
	uid, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	grant, err := h.Catalog.AddDownload(ctx, uid, id)
	if err != nil {
		return writeError(c, err)
	}

	_ = queue_publisher.PublishCatalogActivity(ctx, queue.CatalogActivityEvent{
		Kind:       queue.ActivityDownloadGranted,
		UserID:     uid,
		ShowID:     grant.ID,
		ShowName:   grant.Name,
		ExpiresOn:  grant.ExpiresOn.Format(time.RFC3339),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, downloadPart{
		UserID:       grant.UserID,
		DownloadedOn: grant.DownloadedOn,
		ExpiresOn:    grant.ExpiresOn,
		Expired:      false,
		showPart:     toShowParts([]model.Show{grant.Show})[0],
	})
}

// ListDownloads handles GET /v1/downloads.  Expired grants are
// included with their Expired flag set so clients can grey them out.
func (h *MemberHandler) ListDownloads(c echo.Context) error {
	uid, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	downloads, err := h.Catalog.ListDownloads(ctx, uid)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]downloadPart, 0, len(downloads))
	for _, d := range downloads {
		out = append(out, downloadPart{
			UserID:       d.UserID,
			DownloadedOn: d.DownloadedOn,
			ExpiresOn:    d.ExpiresOn,
			Expired:      h.Catalog.IsDownloadExpired(d.ExpiresOn),
			showPart:     toShowParts([]model.Show{d.Show})[0],
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"downloads": out})
}

// KidsZone handles GET /v1/zones/:zone.  Only the "kids" zone
// exists; an active subscription is required.
func (h *MemberHandler) KidsZone(c echo.Context) error {
	uid, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	shows, err := h.Catalog.ListKidsZone(ctx, uid, c.Param("zone"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"shows": toShowParts(shows)})
}

// Recharge handles POST /v1/recharge and extends the caller's
// subscription by the configured period from now.
func (h *MemberHandler) Recharge(c echo.Context) error {
	uid, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	until := time.Now().UTC().AddDate(0, 0, h.Cfg.SubscriptionDays)
	if err := h.Users.ExtendSubscription(ctx, uid, until); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user_id": uid, "expires_on": until})
}
