package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/goliatone/go-folio/adapters/httpapi"
	"github.com/goliatone/go-folio/adapters/pdf"
	"github.com/goliatone/go-folio/adapters/repobun"
	"github.com/goliatone/go-folio/adapters/sessionredis"
	"github.com/goliatone/go-folio/adapters/storefs"
	"github.com/goliatone/go-folio/adapters/template"
	"github.com/goliatone/go-folio/config"
	"github.com/goliatone/go-folio/folio"
)

func main() {
	ctx := context.Background()
	log := newLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Errorf("config load failed: %v", err)
		os.Exit(1)
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Errorf("server error: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log folio.Logger) error {
	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	defer db.Close()

	if err := repobun.CreateTables(ctx, db); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		return fmt.Errorf("create uploads directory: %w", err)
	}

	sessionStore, closeStore, err := newSessionStore(cfg.Session)
	if err != nil {
		return err
	}
	defer closeStore()

	accounts := folio.NewAccounts(repobun.NewAccountRepository(db))
	accounts.Logger = log

	sessions := folio.NewSessions(sessionStore)
	sessions.TTL = cfg.Session.TTL

	photos := storefs.NewStore(cfg.Uploads.Dir)

	portfolios := folio.NewPortfolios(repobun.NewPortfolioRepository(db))
	portfolios.Logger = log
	portfolios.Renderer = template.NewRenderer()
	portfolios.Photos = photos
	portfolios.Engine = &pdf.ChromiumEngine{
		BrowserPath: cfg.PDF.BrowserPath,
		Headless:    cfg.PDF.Headless,
		Timeout:     cfg.PDF.Timeout,
		Args:        cfg.PDF.Args,
	}

	handler := &httpapi.Handler{
		Accounts:   accounts,
		Portfolios: portfolios,
		Sessions:   sessions,
		Photos:     photos,
		Logger:     log,
		StaticDir:  cfg.Server.StaticDir,
		UploadsDir: cfg.Uploads.Dir,
	}

	app := fiber.New(fiber.Config{
		AppName:   "go-folio",
		BodyLimit: int(folio.MaxPhotoBytes) + 1024*1024,
	})
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:8080",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Content-Type",
		AllowCredentials: true,
	}))
	handler.RegisterRoutes(app)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on http://%s", addr)
		errCh <- app.Listen(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Infof("shutting down")
	return app.ShutdownWithContext(ctx)
}

func newSessionStore(cfg config.SessionConfig) (folio.SessionStore, func(), error) {
	if cfg.RedisAddr == "" {
		return folio.NewMemorySessionStore(), func() {}, nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	return sessionredis.NewStore(client), func() { _ = client.Close() }, nil
}
