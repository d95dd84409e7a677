package app

import (
	"errors"
	"flag"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

const (
	StorePostgres  = "postgres"
	StoreFirestore = "firestore"
)

type Config struct {
	Port             int
	Env              string
	Store            string
	DB               DBConfig
	Redis            RedisConfig
	Firestore        FirestoreConfig
	Stripe           StripeConfig
	TierPrices       TierPrices
	TierCacheTTL     time.Duration
	OtelCollectorUrl string
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type FirestoreConfig struct {
	ProjectID string
}

type StripeConfig struct {
	SecretKey      string
	WebhookSecret  string
	RedirectDomain string
}

// TierPrices maps a tier name to a payment provider price id. As a flag it is written
// as a comma separated list of tier=price pairs.
type TierPrices map[string]string

func (t *TierPrices) String() string {
	if t == nil || len(*t) == 0 {
		return ""
	}

	pairs := make([]string, 0, len(*t))
	for _, tier := range slices.Sorted(maps.Keys(*t)) {
		pairs = append(pairs, tier+"="+(*t)[tier])
	}

	return strings.Join(pairs, ",")
}

func (t *TierPrices) Set(value string) error {
	prices := make(TierPrices)

	for pair := range strings.SplitSeq(value, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		tier, price, ok := strings.Cut(pair, "=")
		tier, price = strings.TrimSpace(tier), strings.TrimSpace(price)
		if !ok || tier == "" || price == "" {
			return fmt.Errorf("invalid tier price %q, expected tier=price", pair)
		}

		prices[tier] = price
	}

	*t = prices
	return nil
}

// parseConfig reads the configuration from command line arguments. The returned bool reports
// whether only the version was requested.
func parseConfig(args []string) (Config, bool, error) {
	var cfg Config

	fs := flag.NewFlagSet("leadpay", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "port", 3000, "server port")
	fs.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")
	fs.StringVar(&cfg.Store, "store", StorePostgres, "Lead store (postgres|firestore)")

	fs.StringVar(&cfg.DB.DSN, "db-dsn", "", "PostgreSQL DSN")
	fs.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	fs.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	fs.StringVar(&cfg.Firestore.ProjectID, "firestore-project", "", "Google Cloud project of the Firestore database")

	fs.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL, enables the tier price cache")
	fs.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	fs.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	fs.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")
	fs.DurationVar(&cfg.TierCacheTTL, "tier-cache-ttl", 5*time.Minute, "How long a cached tier price is served")

	fs.StringVar(&cfg.Stripe.SecretKey, "stripe-key", "", "Stripe secret key")
	fs.StringVar(&cfg.Stripe.WebhookSecret, "stripe-webhook-secret", "", "Stripe webhook signing secret")
	fs.StringVar(&cfg.Stripe.RedirectDomain, "redirect-domain", "", "Base URL of the success and cancel pages")

	fs.Var(&cfg.TierPrices, "tier-prices", "Tier prices as tier=price pairs; when empty prices are read from the store")

	fs.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector gRPC endpoint")

	displayVersion := fs.Bool("version", false, "Display version and exit")

	err := fs.Parse(args)
	if err != nil {
		return Config{}, false, err
	}

	if *displayVersion {
		return cfg, true, nil
	}

	return cfg, false, cfg.validate()
}

func (c Config) validate() error {
	var errs []error

	switch c.Store {
	case StorePostgres:
		if c.DB.DSN == "" {
			errs = append(errs, errors.New("db-dsn must be set for the postgres store"))
		}
	case StoreFirestore:
		if c.Firestore.ProjectID == "" {
			errs = append(errs, errors.New("firestore-project must be set for the firestore store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store %q", c.Store))
	}

	if c.Stripe.SecretKey == "" {
		errs = append(errs, errors.New("stripe-key must be set"))
	}

	// an empty signing secret would accept events signed by anyone
	if c.Stripe.WebhookSecret == "" {
		errs = append(errs, errors.New("stripe-webhook-secret must be set"))
	}

	if c.Stripe.RedirectDomain == "" {
		errs = append(errs, errors.New("redirect-domain must be set"))
	}

	return errors.Join(errs...)
}
