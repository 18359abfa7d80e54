package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/lotego/lotego/internal/config"
	"github.com/lotego/lotego/internal/db"
	"github.com/lotego/lotego/internal/db/memcached"
	"github.com/lotego/lotego/internal/db/memory"
	dbRedis "github.com/lotego/lotego/internal/db/redis"
	domlisting "github.com/lotego/lotego/internal/domain/listing"
	logpkg "github.com/lotego/lotego/internal/logger"
	"github.com/lotego/lotego/internal/metrics"
	cityrepo "github.com/lotego/lotego/internal/repository/city"
	listingrepo "github.com/lotego/lotego/internal/repository/listing"
	"github.com/lotego/lotego/internal/repository/pagecache"
	chiTransport "github.com/lotego/lotego/internal/transport/chi"
	cityuc "github.com/lotego/lotego/internal/usecase/city"
	healthuc "github.com/lotego/lotego/internal/usecase/health"
	listinguc "github.com/lotego/lotego/internal/usecase/listing"
	"github.com/lotego/lotego/internal/version"
)

// listingSource is what the composition root needs from a listing backend.
type listingSource interface {
	listinguc.Source
	healthuc.SourcePinger
	Close() error
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Println(version.String())
			return
		case "seed-sqlite":
			if err := seedSQLite(os.Args[2:]); err != nil {
				fmt.Fprintln(os.Stderr, "seed-sqlite:", err)
				os.Exit(1)
			}
			return
		case "seed-postgres":
			if err := seedPostgres(os.Args[2:]); err != nil {
				fmt.Fprintln(os.Stderr, "seed-postgres:", err)
				os.Exit(1)
			}
			return
		}
	}

	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting lotego API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("source_driver", cfg.Source.Driver),
		zap.String("cache_driver", cfg.Cache.Driver),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterSearchMetrics()

	ctx := context.Background()

	listings, err := buildListingSource(cfg.Source, logger)
	if err != nil {
		logger.Fatal("Failed to open listing source", zap.Error(err))
	}
	defer func() { _ = listings.Close() }()

	cities, err := buildCitySource(cfg.Source)
	if err != nil {
		logger.Fatal("Failed to load cities", zap.Error(err))
	}

	store, err := buildCacheStore(cfg.Cache)
	if err != nil {
		logger.Fatal("Failed to create cache store", zap.Error(err))
	}

	listingSvc := listinguc.New(listings, logger)

	// Pass nil interface (not typed nil pointer!) when caching is off.
	var cachePinger healthuc.CachePinger
	if store != nil {
		defer store.Close()

		readiness := time.Duration(cfg.Cache.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(ctx, readiness); err != nil {
			// Searches still work uncached; health reports degraded until the cache is back.
			logger.Warn("Cache not ready", zap.Error(err))
		} else {
			logger.Info("Connected to cache")
		}

		cache := pagecache.New(store, cfg.Cache.KeyPrefix, metrics.SearchCacheTotal, logger)
		listingSvc.WithCache(cache, time.Duration(cfg.Cache.TTLSec)*time.Second)
		cachePinger = store
	}

	citySvc := cityuc.New(cities).WithMaxLimit(cfg.Search.MaxCitySuggest)
	healthSvc := healthuc.New(listings, cachePinger)

	server := chiTransport.NewServer(listingSvc, citySvc, healthSvc, logger).
		WithMaxPageSize(cfg.Search.MaxPageSize)
	r := chiTransport.NewRouter(server, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

func buildListingSource(cfg config.SourceConfig, logger *zap.Logger) (listingSource, error) {
	switch cfg.Driver {
	case config.SourceEmbedded:
		return listingrepo.Embedded()
	case config.SourceFile:
		return listingrepo.LoadFile(cfg.Path)
	case config.SourceSQLite:
		return listingrepo.OpenSQLite(cfg.Path, logger)
	case config.SourcePostgres:
		return listingrepo.OpenPostgres(cfg.DSN, logger)
	default:
		return nil, fmt.Errorf("unknown source driver %q", cfg.Driver)
	}
}

func buildCitySource(cfg config.SourceConfig) (*cityrepo.Snapshot, error) {
	if cfg.CitiesPath != "" {
		return cityrepo.LoadFile(cfg.CitiesPath)
	}
	return cityrepo.Embedded()
}

// buildCacheStore returns a nil store when caching is disabled.
func buildCacheStore(cfg config.CacheConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.CacheNone:
		return nil, nil
	case config.CacheMemory:
		return memory.NewStore(memory.Config{MaxSize: cfg.MaxEntries}), nil
	case config.CacheValkey, config.CacheRedis:
		return dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
			Timeout:  time.Duration(cfg.TimeoutMs) * time.Millisecond,
		})
	case config.CacheMemcached:
		return memcached.NewStore(memcached.Config{
			Addrs:   cfg.Addrs,
			Timeout: time.Duration(cfg.TimeoutMs) * time.Millisecond,
		})
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}

// seedSQLite writes the embedded listings into a new sqlite database file.
func seedSQLite(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: lotego seed-sqlite <path>")
	}

	src, err := listingrepo.OpenSQLite(args[0], zap.NewNop())
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	n, err := seedSQL(src, listingrepo.SQLiteSchema, listingrepo.InsertSQLite)
	if err != nil {
		return err
	}
	fmt.Printf("seeded %d listings into %s\n", n, args[0])
	return nil
}

// seedPostgres creates the listings table if needed and inserts the embedded
// listings. Existing ids are kept, so it can be rerun.
func seedPostgres(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: lotego seed-postgres <dsn>")
	}

	src, err := listingrepo.OpenPostgres(args[0], zap.NewNop())
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	n, err := seedSQL(src, listingrepo.PostgresSchema, listingrepo.InsertPostgres)
	if err != nil {
		return err
	}
	fmt.Printf("seeded %d listings into postgres\n", n)
	return nil
}

func seedSQL(
	src *listingrepo.SQLSource,
	schema string,
	insert func(context.Context, *sqlx.DB, []domlisting.Listing) error,
) (int, error) {
	ctx := context.Background()
	if _, err := src.DB().ExecContext(ctx, schema); err != nil {
		return 0, fmt.Errorf("create schema: %w", err)
	}

	seed, err := listingrepo.Embedded()
	if err != nil {
		return 0, err
	}
	listings, err := seed.List(ctx)
	if err != nil {
		return 0, err
	}
	if err := insert(ctx, src.DB(), listings); err != nil {
		return 0, err
	}
	return len(listings), nil
}
