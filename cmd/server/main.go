package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/showzone/showzone/internal/catalog"
	"github.com/showzone/showzone/internal/config"
	"github.com/showzone/showzone/internal/database"
	"github.com/showzone/showzone/internal/handler"
	"github.com/showzone/showzone/internal/identity"
	"github.com/showzone/showzone/internal/queue"
	"github.com/showzone/showzone/internal/repository"
	"github.com/showzone/showzone/internal/router"
)

func main() {
	// Load .env when present; real environments set the variables directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open failed: %v", err)
	}
	defer db.Close()

	catalogRepo := repository.NewCatalogRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	checker := identity.NewChecker(userRepo, nil)
	rules := catalog.Rules{
		YearFloor:    cfg.YearFloor,
		YearCeiling:  cfg.YearCeiling,
		DownloadDays: cfg.DownloadDays,
	}
	svc := catalog.NewService(catalogRepo, checker, rules, nil)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting disabled")
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, userRepo, tokenRepo), cfg.JWTSecret)
	router.RegisterPublic(e, handler.NewPublicHandler(svc), config.LoadRateLimitConfig(), rdb)
	router.RegisterMember(e, handler.NewMemberHandler(cfg, svc, userRepo), cfg.JWTSecret)
	router.RegisterAdmin(e, handler.NewAdminHandler(svc), cfg.JWTSecret)

	// Consume catalog activity events in the background for the audit log.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
