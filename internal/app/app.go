package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/exaring/otelpgx"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orosun/leadpay/api"
	"github.com/orosun/leadpay/internal/domain"
	"github.com/orosun/leadpay/internal/payment"
	"github.com/orosun/leadpay/internal/repository"
	appvalidator "github.com/orosun/leadpay/internal/validator"
	"github.com/orosun/leadpay/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const serviceName = "leadpay-api"

var (
	version = vcs.Version()
)

type Application struct {
	config    Config
	logger    *slog.Logger
	validator *validator.Validate
	spec      *openapi3.T
	metrics   *metrics

	leadRepo domain.LeadRepository
	tierRepo domain.TierRepository

	paymentProvider domain.PaymentProvider
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	validator *validator.Validate,
	spec *openapi3.T,
	leadRepo domain.LeadRepository,
	tierRepo domain.TierRepository,
	paymentProvider domain.PaymentProvider) *Application {

	m, err := newMetrics()
	if err != nil {
		logger.Warn("failed to create metric instruments", "error", err)
	}

	return &Application{
		config:          cfg,
		logger:          logger,
		validator:       validator,
		spec:            spec,
		metrics:         m,
		leadRepo:        leadRepo,
		tierRepo:        tierRepo,
		paymentProvider: paymentProvider,
	}
}

func Run() error {
	cfg, versionOnly, err := parseConfig(os.Args[1:])
	if err != nil {
		return err
	}

	if versionOnly {
		fmt.Printf("Version:\t%s\n", version)
		return nil
	}

	stdoutHandler := slog.NewTextHandler(os.Stdout, nil)
	logger := slog.New(stdoutHandler)

	shutdownTelemetry, err := InitTelemetry(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize telemetry", "error", err)
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.OtelCollectorUrl != "" {
		logger = slog.New(NewMultiHandler(stdoutHandler, otelslog.NewHandler(serviceName)))
	}

	spec, err := api.LoadSpec(context.Background())
	if err != nil {
		return err
	}

	var (
		leadRepo   domain.LeadRepository
		storeTiers domain.TierRepository
	)

	switch cfg.Store {
	case StoreFirestore:
		client, err := NewFirestoreClient(cfg)
		if err != nil {
			logger.Error("failed to connect to firestore", "error", err)
			return err
		}
		defer client.Close()

		leadRepo = repository.NewFirestoreLeadRepository(client)
		storeTiers = repository.NewFirestoreTierRepository(client)
	default:
		db, err := NewDatabasePool(cfg)
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			return err
		}
		defer db.Close()

		leadRepo = repository.NewPostgresLeadRepository(db)
		storeTiers = repository.NewPostgresTierRepository(db)
	}

	tierRepo := storeTiers

	switch {
	case len(cfg.TierPrices) > 0:
		tierRepo = repository.NewStaticTierRepository(cfg.TierPrices)
	case cfg.Redis.URL != "":
		redisClient, err := NewRedisClient(cfg)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			return err
		}
		defer redisClient.Close()

		tierRepo = repository.NewCachedTierRepository(storeTiers, redisClient, cfg.TierCacheTTL, logger)
	}

	stripeClient := payment.NewStripeClient(cfg.Stripe.SecretKey, nil)
	stripeProvider := payment.NewStripePaymentProvider(stripeClient, cfg.Stripe.WebhookSecret, cfg.Stripe.RedirectDomain)

	app := NewApp(
		cfg,
		logger,
		appvalidator.NewValidator(),
		spec,
		leadRepo,
		tierRepo,
		stripeProvider,
	)

	return app.run()
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := errors.Join(redisotel.InstrumentTracing(rdb), redisotel.InstrumentMetrics(rdb))
	if err != nil {
		rdb.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// NewFirestoreClient connects to the project's default database. FIRESTORE_EMULATOR_HOST
// redirects the client to a local emulator.
func NewFirestoreClient(cfg Config) (*firestore.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return firestore.NewClient(ctx, cfg.Firestore.ProjectID)
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "store", app.config.Store)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}
