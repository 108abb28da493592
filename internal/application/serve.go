package application

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"poolpower/internal/infrastructure/notifier"
	"poolpower/internal/server"
	"poolpower/internal/site"
	"poolpower/internal/transport/bot"
	"poolpower/internal/transport/bot/handler"
	"poolpower/internal/worker"
	"poolpower/pkg/application/modules"
	"poolpower/pkg/logx"
	"poolpower/pkg/probe"
)

const asynqConcurrency = 2

type syncRequester interface {
	RequestSync(ctx context.Context, reason string) (string, error)
}

// Serve runs the page server, probes, metrics, catalog syncs and, when
// configured, the Telegram bots until ctx is done or one of them fails.
func (a *Application) Serve(ctx context.Context) error {
	if err := a.bindAtStart(ctx); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	if err := a.runHTTP(ctx, g); err != nil {
		return err
	}

	modules.ProbeServer{
		Name:          a.cfg.App.Name,
		Version:       a.cfg.App.Version,
		ListenAddress: a.cfg.Probe.ListenAddress,
		Checks:        a.readinessChecks(),
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: a.cfg.Metrics.ListenAddress,
		Path:          a.cfg.Metrics.Path,
	}.Run(ctx, g)

	syncer, err := a.runSyncs(ctx, g)
	if err != nil {
		return err
	}

	if err := a.runBots(ctx, g, syncer); err != nil {
		return err
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("errgroup.Wait: %w", err)
	}

	return nil
}

// bindAtStart binds the handler to the stored deals. An empty store is
// filled from the sheet first; a failed import leaves the page empty.
func (a *Application) bindAtStart(ctx context.Context) error {
	bound, err := a.catalog.Bind(ctx)
	if err != nil {
		return fmt.Errorf("catalog.Bind: %w", err)
	}

	if bound == 0 && a.cfg.Catalog.SheetCSVURL != "" {
		report, err := a.catalog.Sync(ctx)
		if err != nil {
			logger(ctx).Warn("initial catalog sync failed", slog.String("failure", report.Failure))
		}

		bound = report.Active
	}

	logger(ctx).Info("deals bound", slog.Int("count", bound))

	return nil
}

func (a *Application) runHTTP(ctx context.Context, g *errgroup.Group) error {
	renderer, err := site.NewRenderer()
	if err != nil {
		return fmt.Errorf("site.NewRenderer: %w", err)
	}

	srv := server.NewServer(
		server.NewPageServer(a.catalog, a.pools, renderer, a.Page()),
		server.NewDealServer(a.catalog),
		server.NewPoolServer(a.pools),
	)

	router := server.NewRouter(srv, server.RouterOptions{
		RequestTimeout:      a.cfg.HTTP.RequestTimeout,
		LogFieldMaxLen:      a.cfg.HTTP.LogFieldMaxLen,
		SensitiveDataMasker: logx.NewSensitiveDataMasker(),
	})

	modules.HTTPServer{
		ListenAddress:   a.cfg.HTTP.ListenAddress,
		ShutdownTimeout: a.cfg.HTTP.ShutdownTimeout,
	}.Run(ctx, g, router)

	return nil
}

func (a *Application) readinessChecks() []probe.ReadinessCheck {
	checks := []probe.ReadinessCheck{{
		Name:  "database",
		Check: a.db.PingContext,
	}}

	if a.redis != nil {
		checks = append(checks, probe.ReadinessCheck{
			Name: "redis",
			Check: func(ctx context.Context) error {
				return a.redis.Ping(ctx).Err()
			},
		})
	}

	return checks
}

// runSyncs starts the catalog sync machinery and returns what the bot uses
// to request a sync: asynq with Redis, an in-process ticker without.
func (a *Application) runSyncs(ctx context.Context, g *errgroup.Group) (syncRequester, error) {
	if a.redis == nil {
		refresher := worker.NewRefresher(a.catalog, a.cfg.Catalog.SyncInterval)
		g.Go(func() error {
			return refresher.Run(ctx)
		})

		return refresher, nil
	}

	zapLogger, err := logx.NewZapSugared(a.cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	asynqServer := a.asynqServer()
	asynqServer.Logger = zapLogger
	asynqServer.Concurrency = asynqConcurrency

	asynqServer.Run(ctx, g,
		modules.AsynqQueues{worker.QueueDefault: 1},
		worker.NewCatalogSyncHandler(a.catalog).Handler(),
	)

	task, err := worker.NewCatalogSyncTask(worker.ReasonSchedule)
	if err != nil {
		return nil, err
	}

	err = modules.AsynqScheduler{AsynqServer: asynqServer}.Run(ctx, g, modules.AsynqSchedule{
		Cronspec: a.cfg.Catalog.SyncCron,
		Task:     task,
	})
	if err != nil {
		return nil, err
	}

	client := asynqServer.NewClient()
	a.closers = append(a.closers, func(ctx context.Context) {
		if err := client.Close(); err != nil {
			logger(ctx).Error("asynqClient.Close", logx.Error(err))
		}

		_ = zapLogger.Sync()
	})

	return worker.NewEnqueuer(client), nil
}

func (a *Application) asynqServer() modules.AsynqServer {
	return modules.AsynqServer{
		RedisUsername: a.cfg.Redis.Username,
		RedisPassword: a.cfg.Redis.Password,
		RedisAddress:  a.cfg.Redis.Address,
		RedisDB:       a.cfg.Redis.DatabaseNumber,
	}
}

func (a *Application) runBots(ctx context.Context, g *errgroup.Group, syncer syncRequester) error {
	if !a.cfg.Bot.Enabled() {
		logger(ctx).Info("telegram bot disabled")
		return nil
	}

	if a.reports != nil {
		alerts, err := notifier.NewTelegramBot(a.cfg.Bot.Token, a.cfg.Bot.ChatID)
		if err != nil {
			return fmt.Errorf("notifier.NewTelegramBot: %w", err)
		}

		g.Go(func() error {
			if err := alerts.Run(ctx, a.reports); err != nil && ctx.Err() == nil {
				return fmt.Errorf("notifier.Run: %w", err)
			}

			return nil
		})
	}

	if a.cfg.Bot.AdminID == 0 {
		logger(ctx).Warn("ops bot disabled: BOT_ADMIN_ID is not set")
		return nil
	}

	opsBot, err := bot.New(a.cfg.Bot.Token, a.cfg.Bot.AdminID, handler.New(a.catalog, a.pools, syncer))
	if err != nil {
		return fmt.Errorf("bot.New: %w", err)
	}

	g.Go(func() error {
		return opsBot.Run(ctx)
	})

	return nil
}
