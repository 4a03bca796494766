package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/showzone/showzone/internal/catalog"
	"github.com/showzone/showzone/internal/model"
)

// PublicHandler exposes the unauthenticated search and browse
// endpoints over the catalog rules engine.
type PublicHandler struct {
	Catalog *catalog.Service
}

func NewPublicHandler(svc *catalog.Service) *PublicHandler {
	return &PublicHandler{Catalog: svc}
}

type showPart struct {
	ID         int64  `json:"id"`
	Genre      string `json:"genre"`
	Name       string `json:"name"`
	Year       int    `json:"year"`
	Language   string `json:"language"`
	Category   string `json:"category"`
	Membership string `json:"membership"`
	Grade      string `json:"grade"`
	Status     string `json:"status"`
	Likes      int64  `json:"likes"`
}

func toShowParts(shows []model.Show) []showPart {
	out := make([]showPart, 0, len(shows))
	for _, s := range shows {
		out = append(out, showPart{
			ID: s.ID, Genre: s.Genre, Name: s.Name, Year: s.Year,
			Language: s.Language, Category: s.Category, Membership: s.Membership,
			Grade: s.Grade, Status: s.Status, Likes: s.Likes,
		})
	}
	return out
}

// SearchShows handles GET /v1/shows and dispatches on the supplied
// query parameters: genre+language, membership, year, language,
// category or name.  Exactly one filter mode applies per request,
// picked in that order.
func (h *PublicHandler) SearchShows(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var (
		shows []model.Show
		err   error
	)
	switch {
	case c.QueryParam("genre") != "" && c.QueryParam("language") != "":
		shows, err = h.Catalog.SearchByGenreAndLanguage(ctx, c.QueryParam("genre"), c.QueryParam("language"))
	case c.QueryParam("membership") != "":
		shows, err = h.Catalog.SearchByMembership(ctx, c.QueryParam("membership"))
	case c.QueryParam("year") != "":
		var year int
		year, err = strconv.Atoi(c.QueryParam("year"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid year"})
		}
		shows, err = h.Catalog.SearchByYear(ctx, year)
	case c.QueryParam("language") != "":
		shows, err = h.Catalog.SearchByLanguage(ctx, c.QueryParam("language"))
	case c.QueryParam("category") != "":
		shows, err = h.Catalog.ListByCategory(ctx, c.QueryParam("category"))
	case c.QueryParam("name") != "":
		shows, err = h.Catalog.SearchByName(ctx, c.QueryParam("name"))
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no search filter supplied"})
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"shows": toShowParts(shows)})
}

// Trending handles GET /v1/shows/trending, optionally narrowed by a
// preferred language.  With a language filter an empty result is an
// error rather than an empty list.
func (h *PublicHandler) Trending(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var (
		shows []model.Show
		err   error
	)
	if lang := c.QueryParam("language"); lang != "" {
		shows, err = h.Catalog.ListTrendingByLanguage(ctx, lang)
	} else {
		shows, err = h.Catalog.ListTrending(ctx)
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"shows": toShowParts(shows)})
}
