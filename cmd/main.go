package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	_ "travro/docs"
	"travro/internal/blob"
	"travro/internal/config"
	"travro/internal/geo"
	"travro/internal/handlers"
	"travro/internal/logger"
	"travro/internal/ratelimit"
	"travro/internal/repository"
	"travro/internal/repository/db"
	"travro/internal/server"
	"travro/internal/service"
)

const shutdownGrace = 10 * time.Second

// @title                       Travro API
// @version                     1.0
// @description                 Find travelers heading within reach of your destination.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// load config.yml, .env and TRAVRO_* overrides
	cfg, err := config.Load("configs")
	if err != nil {
		logger.Init(logger.Options{}).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Errorw("travro stopped with error", "err", err)
		_ = log.Sync()
		os.Exit(1)
	}
	log.Infow("travro stopped")
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	// open DB; the store is required, so exhausting retries is fatal
	conn, dialect, err := db.ConnectWithRetry(ctx, db.Options{Driver: cfg.DB.Driver, DSN: cfg.DB.DSN},
		cfg.DB.ConnectAttempts, cfg.DB.ConnectBackoff, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Warnw("failed to close db", "err", cerr)
		}
	}()

	cities, err := geo.LoadTable(cfg.Geo.CitiesPath)
	if err != nil {
		return err
	}
	log.Infow("city table loaded", "cities", cities.Len())

	blobs, uploadsDir, err := newBlobStore(ctx, cfg.Blob)
	if err != nil {
		return err
	}

	limiter := newLoginLimiter(ctx, cfg.RateLimit, log)

	// wire dependencies
	repos := repository.NewRepository(conn, dialect)
	services := service.NewService(service.Deps{
		Repos:        repos,
		Geo:          cities,
		Blobs:        blobs,
		Tokens:       service.NewTokenService(cfg.Auth.Secret, cfg.Auth.TokenTTL),
		Hasher:       service.NewBcryptHasher(cfg.Auth.BcryptCost),
		RadiusMeters: cfg.RadiusMeters(),
		Log:          log,
	})
	apiHandler := handlers.NewHandler(services, log,
		handlers.WithLoginLimiter(limiter),
		handlers.WithUploads(uploadsDir),
		handlers.WithCORS(cfg.CORS.AllowedOrigin),
	)

	srv := server.New(cfg.Port, apiHandler.InitRoutes())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infow("http server listening", "addr", srv.Addr(), "db", dialect.String(), "blob", cfg.Blob.Driver)
		return srv.Run()
	})
	g.Go(func() error {
		services.Health.Run(gctx, cfg.Health.Interval)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Infow("shutting down server...")

		// allow in-flight requests to complete
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// newBlobStore returns the configured photo store and, for the local driver,
// the directory to serve under /uploads.
func newBlobStore(ctx context.Context, cfg config.Blob) (blob.Store, string, error) {
	switch cfg.Driver {
	case "s3":
		store, err := blob.NewS3Store(ctx, blob.S3Options{
			Bucket:        cfg.S3.Bucket,
			Region:        cfg.S3.Region,
			Endpoint:      cfg.S3.Endpoint,
			AccessKey:     cfg.S3.AccessKey,
			SecretKey:     cfg.S3.SecretKey,
			PublicBaseURL: cfg.PublicBaseURL,
			Folder:        cfg.Folder,
		})
		return store, "", err
	default:
		store, err := blob.NewLocalStore(cfg.LocalDir, cfg.PublicBaseURL, cfg.Folder)
		if err != nil {
			return nil, "", err
		}
		return store, store.Dir(), nil
	}
}

// newLoginLimiter prefers a shared redis window and falls back to a
// per-process token bucket when redis is not configured or unreachable.
func newLoginLimiter(ctx context.Context, cfg config.RateLimit, log *logger.Logger) ratelimit.Limiter {
	if cfg.RedisAddr == "" {
		return ratelimit.NewMemoryLimiter(cfg.LoginPerMinute)
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warnw("redis unreachable, using in-process login limiter", "addr", cfg.RedisAddr, "err", err)
		_ = rdb.Close()
		return ratelimit.NewMemoryLimiter(cfg.LoginPerMinute)
	}
	return ratelimit.NewRedisLimiter(rdb, cfg.LoginPerMinute)
}
