package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/showzone/showzone/internal/config"
	"github.com/showzone/showzone/internal/handler"
	"github.com/showzone/showzone/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes and the protected
// identity endpoint.  Unauthenticated operations live under
// /v1/auth, the identity endpoint under /v1 behind JWTAuth.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated catalog search
// endpoints, rate limited through the Redis token bucket.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, rl config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group("/v1")
	g.Use(middleware.NewTokenBucket(rl, rdb))
	g.GET("/shows", p.SearchShows)
	g.GET("/shows/trending", p.Trending)
}

// RegisterMember registers the member surface (favorites, downloads,
// kids zone, recharge) behind JWT authentication.  Both roles may
// use these endpoints.
func RegisterMember(e *echo.Echo, m *handler.MemberHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("MEMBER", "ADMIN"))
	g.POST("/favorites/:id", m.AddFavorite)
	g.GET("/favorites", m.ListFavorites)
	g.POST("/downloads/:id", m.AddDownload)
	g.GET("/downloads", m.ListDownloads)
	g.GET("/zones/:zone", m.KidsZone)
	g.POST("/recharge", m.Recharge)
}

// RegisterAdmin registers the catalog mutations behind the ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN"))
	g.POST("/shows", a.AddShow)
	g.DELETE("/shows/:id", a.DeleteShow)
	g.PATCH("/shows/:id/prime", a.TogglePrime)
}
