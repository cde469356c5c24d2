package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/americanadages/adages-society/internal/command"
	"github.com/americanadages/adages-society/internal/datasources"
	"github.com/americanadages/adages-society/internal/datasources/memory"
	"github.com/americanadages/adages-society/internal/datasources/sqlstore"
	"github.com/americanadages/adages-society/internal/domain"
	"github.com/americanadages/adages-society/internal/transport/web/router"
	"github.com/americanadages/adages-society/internal/transport/web/server"
)

type Component interface {
	Run(ctx context.Context) error
}

func Setup(ctx context.Context) ([]Component, error) {
	store, err := setupContentStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("setting up content store: %w", err)
	}

	authMiddleware, err := setupAuthMiddleware(ctx)
	if err != nil {
		return nil, fmt.Errorf("setting up auth middleware: %w", err)
	}

	commendationStatsCmd := command.NewComputeCommendationStats(
		store,
		store,
		store,
		store,
		DefaultCommendationStatsConfig(),
	)

	getProfileCmd := command.NewGetCurrentUserProfile(
		store,
		store,
		commendationStatsCmd,
	)

	httpRouter, err := router.MakeRouter(
		store,
		getProfileCmd,
		MustGetEnvAsString(ctx, "RSS_FEED_BASE_URL"),
		MustGetEnvAsDuration(ctx, "RSS_FEED_CACHE_MAX_AGE"),
		authMiddleware,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create HTTP router: %w", err)
	}

	tlsDisabled := MustGetEnvAsBoolean(ctx, "HTTP_TLS_DISABLED")
	var autocertHostnames []string
	if !tlsDisabled {
		autocertHostnames = MustGetEnvAsStrings(ctx, "HTTP_AUTOCERT_HOSTNAMES")
	}

	return []Component{
		&server.Server{
			TLSDisabled:       tlsDisabled,
			TLSDisabledPort:   MustGetEnvAsInt(ctx, "PORT"),
			AutocertHostnames: autocertHostnames,
			Router:            httpRouter,
		},
	}, nil
}

func setupContentStore(ctx context.Context) (datasources.ContentStore, error) {
	switch driver := MustGetEnvAsString(ctx, "CONTENT_STORE_DRIVER"); driver {
	case "memory":
		path := GetEnvAsString("MEMORY_SEED_PATH", "")
		if path == "" {
			logger := domain.LoggerFromContext(ctx)
			logger.WarnContext(ctx, "using built-in demo seed for memory content store")
			return memory.New(memory.DefaultSeed()), nil
		}

		seed, err := memory.LoadSeedFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading memory seed: %w", err)
		}
		return memory.New(seed), nil
	case string(sqlstore.DriverPostgres), string(sqlstore.DriverMySQL):
		return setupSQLStore(ctx, sqlstore.Driver(driver))
	default:
		return nil, fmt.Errorf("unknown content store driver [%s]", driver)
	}
}

func setupSQLStore(ctx context.Context, driver sqlstore.Driver) (datasources.ContentStore, error) {
	flavor, err := driver.Flavor()
	if err != nil {
		return nil, err
	}

	cfg := DefaultCommendationStatsConfig()
	db, err := sqlstore.Connect(ctx, driver, MustGetEnvAsString(ctx, "DATABASE_URI"), cfg.MaxConcurrentQueries*2)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", driver, err)
	}

	if MustGetEnvAsBoolean(ctx, "DATABASE_RUN_MIGRATIONS") {
		version, err := sqlstore.MigrateUp(db, driver)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrating %s schema: %w", driver, err)
		}

		logger := domain.LoggerFromContext(ctx)
		logger.InfoContext(ctx, "database schema up to date", "driver", driver, "version", version)
	}

	return sqlstore.New(db, flavor), nil
}

func setupAuthMiddleware(ctx context.Context) (func(http.Handler) http.Handler, error) {
	var validators []router.AuthValidator

	for _, driver := range MustGetEnvAsStrings(ctx, "AUTH_DRIVERS") {
		switch driver {
		case "":
			// Skip empty strings (e.g., from splitting an empty AUTH_DRIVERS)
		case "auth0":
			v, err := router.NewAuth0Validator(
				MustGetEnvAsString(ctx, "AUTH0_DOMAIN"),
				MustGetEnvAsString(ctx, "AUTH0_AUDIENCE"),
			)
			if err != nil {
				return nil, fmt.Errorf("creating Auth0 validator: %w", err)
			}
			validators = append(validators, v)
		case "supabase":
			v, err := router.NewSupabaseValidator(
				MustGetEnvAsString(ctx, "SUPABASE_URL"),
				MustGetEnvAsString(ctx, "SUPABASE_JWT_SECRET"),
			)
			if err != nil {
				return nil, fmt.Errorf("creating Supabase validator: %w", err)
			}
			validators = append(validators, v)
		default:
			return nil, fmt.Errorf("unknown auth driver [%s]", driver)
		}
	}

	return router.NewAuthMiddleware(validators), nil
}
