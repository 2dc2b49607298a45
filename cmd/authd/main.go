package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	auth "github.com/harborlight/go-auth"
)

func main() {
	cfg, err := auth.LoadConfig()
	if err != nil {
		log.Fatalf("authd: config: %v", err)
	}

	if cfg.SigningKey == "" {
		// Development only; Validate rejects an empty key in production.
		// Every restart invalidates outstanding tokens.
		cfg.SigningKey = ephemeralKey()
		log.Println("authd: AUTH_SIGNING_KEY not set, using an ephemeral development key")
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	db, err := openDatabase(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("authd: database: %v", err)
	}
	defer db.Close()

	store := auth.NewUsersRepository(db)
	auther := auth.NewAuthenticator(store, cfg)
	guard := auth.ProtectedRoute(cfg, auther.TokenService())

	controller := auth.NewAuthController(
		auth.WithControllerAuther(auther),
		auth.WithControllerStore(store),
		auth.WithControllerGuard(guard),
		auth.WithControllerContextKey(cfg.ContextKey),
		auth.WithControllerBcryptCost(cfg.BcryptCost),
	)

	app := fiber.New(fiber.Config{
		AppName:      "authd",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	auth.RegisterAuthRoutes(app, controller)

	go func() {
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			log.Fatalf("authd: http server: %v", err)
		}
	}()

	<-ctx.Done()

	log.Println("authd: shutting down")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("authd: shutdown: %v", err)
	}
}

func openDatabase(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if _, err := db.NewCreateTable().
		Model((*auth.User)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return nil, err
	}

	// Uniqueness is scoped to live rows so a deleted account frees its email.
	if _, err := db.NewCreateIndex().
		Model((*auth.User)(nil)).
		Index("users_email_live_idx").
		Unique().
		IfNotExists().
		Column("email").
		Where("deleted_at IS NULL").
		Exec(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

func ephemeralKey() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("authd: generate ephemeral key: %v", err)
	}
	return hex.EncodeToString(buf)
}
