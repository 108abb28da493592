// Package application wires configuration, storage and the catalog into the
// processes started by the poolpower commands.
package application

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"poolpower/internal/config"
	"poolpower/internal/domain/service/catalog"
	"poolpower/internal/domain/service/pool"
	"poolpower/internal/domain/value"
	"poolpower/internal/infrastructure/cache"
	"poolpower/internal/infrastructure/persistence"
	"poolpower/internal/infrastructure/sheet"
	"poolpower/internal/site"
	"poolpower/pkg/application/connectors"
	"poolpower/pkg/contextx"
	"poolpower/pkg/httpx"
	"poolpower/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// reportsBuffer keeps a few sync reports while the notifier is sending.
const reportsBuffer = 8

type Application struct {
	cfg     config.Config
	contact value.ContactNumber

	db    *sqlx.DB
	redis *redis.Client

	pools   *pool.Handler
	catalog *catalog.Service
	reports chan catalog.SyncReport

	closers []func(context.Context)
}

// New opens storage, applies migrations and builds the catalog. Postgres is
// used when PG_DSN is set, an sqlite file otherwise.
func New(ctx context.Context, cfg config.Config) (*Application, error) {
	// The number goes into links as configured.
	contact := value.ContactNumber(cfg.Site.WhatsAppNumber)

	a := &Application{
		cfg:     cfg,
		contact: contact,
	}

	if err := a.openStorage(ctx); err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("application.openStorage: %w", err)
	}

	if err := persistence.Migrate(ctx, a.db); err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("persistence.Migrate: %w", err)
	}

	a.pools = pool.NewHandler().
		WithBrand(cfg.Site.Brand).
		WithMessagingBaseURL(cfg.Site.MessagingBaseURL)

	source := sheet.NewSource(cfg.Catalog.SheetCSVURL, &http.Client{
		Timeout: cfg.Catalog.FetchTimeout,
		Transport: httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithLogFieldMaxLen(cfg.HTTP.LogFieldMaxLen),
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
			httpx.WithClientName("sheet"),
		),
	})

	a.catalog = catalog.NewService(
		source,
		persistence.NewDealRepository(a.db),
		a.pools,
		contact,
	).WithLocalTTL(cfg.Catalog.CacheTTL)

	if a.redis != nil {
		a.catalog.WithSharedCache(cache.NewDealCache(a.redis, cfg.Catalog.CacheTTL))
	}

	if cfg.Bot.Enabled() && cfg.Bot.ChatID != 0 {
		a.reports = make(chan catalog.SyncReport, reportsBuffer)
		a.catalog.WithReports(a.reports)
	}

	return a, nil
}

func (a *Application) openStorage(ctx context.Context) error {
	var err error

	if a.cfg.Postgres.Enabled() {
		pg := &connectors.Postgres{
			DSN:             a.cfg.Postgres.DSN,
			MaxOpenConns:    a.cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    a.cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: a.cfg.Postgres.ConnMaxLifetime,
		}
		a.closers = append(a.closers, pg.Close)
		a.db, err = pg.Client(ctx)
	} else {
		lite := &connectors.SQLite{Path: a.cfg.Postgres.SQLitePath}
		a.closers = append(a.closers, lite.Close)
		a.db, err = lite.Client(ctx)
	}

	if err != nil {
		return err
	}

	if !a.cfg.Redis.Enabled() {
		return nil
	}

	rd := &connectors.Redis{
		Username:           a.cfg.Redis.Username,
		Password:           a.cfg.Redis.Password,
		Address:            a.cfg.Redis.Address,
		DatabaseNumber:     a.cfg.Redis.DatabaseNumber,
		PoolSize:           a.cfg.Redis.PoolSize,
		MinIdleConnections: a.cfg.Redis.MinIdleConnections,
		MaxIdleConnections: a.cfg.Redis.MaxIdleConnections,
	}
	a.closers = append(a.closers, rd.Close)
	a.redis, err = rd.Client(ctx)

	return err
}

// Close releases connections in reverse order of opening.
func (a *Application) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i](ctx)
	}

	a.closers = nil
}

func (a *Application) Catalog() *catalog.Service {
	return a.catalog
}

// Page is the deals page without deals; callers fill them in.
func (a *Application) Page() site.Page {
	return site.Page{
		Brand:            a.cfg.Site.Brand,
		ContactNumber:    a.contact,
		MessagingBaseURL: a.cfg.Site.MessagingBaseURL,
	}
}
