package application

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"deal_hunter/internal/config"
	"deal_hunter/internal/infrastructure/delivery"
	"deal_hunter/internal/infrastructure/persistence"
	"deal_hunter/internal/infrastructure/scraper"
	"deal_hunter/internal/server"
	"deal_hunter/internal/worker"
	"deal_hunter/pkg/application/connectors"
	"deal_hunter/pkg/application/modules"
	"deal_hunter/pkg/contextx"
	"deal_hunter/pkg/logx"
	"deal_hunter/pkg/middlewarex"

	service "deal_hunter/internal/domain/service/deal"
)

const (
	appName = "deal-hunter"

	httpShutdownTimeout   = 10 * time.Second
	httpReadHeaderTimeout = 5 * time.Second
	outboundTimeout       = 30 * time.Second
	logFieldMaxLen        = 4096
)

// Version is set at build time.
var Version = "dev" //nolint:gochecknoglobals

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	if err := persistence.Migrate(ctx, db); err != nil {
		return fmt.Errorf("persistence.Migrate: %w", err)
	}

	rds := &connectors.Redis{
		Address:            cfg.Redis.Address,
		Username:           cfg.Redis.Username,
		Password:           cfg.Redis.Password,
		DatabaseNumber:     cfg.Redis.DatabaseNumber,
		PoolSize:           cfg.Redis.PoolSize,
		MinIdleConnections: cfg.Redis.MinIdleConnections,
		MaxIdleConnections: cfg.Redis.MaxIdleConnections,
	}
	redisClient := rds.Client(ctx)
	defer rds.Close(ctx)

	sentDeals := persistence.NewSentDealRepository(db)

	outboundClient := &http.Client{Timeout: outboundTimeout}

	resolver := buildResolver(ctx, cfg.Affiliate, outboundClient).
		WithRedisCache(redisClient)

	sinks, err := buildSinks(cfg.Notifier)
	if err != nil {
		return fmt.Errorf("buildSinks: %w", err)
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DatabaseNumber,
	}

	enqueuer := delivery.NewEnqueuer(redisOpt)
	defer func() {
		if err := enqueuer.Close(); err != nil {
			logger(ctx).Error("enqueuer.Close", logx.Error(err))
		}
	}()

	mercadoLivre := scraper.NewMercadoLivre(outboundClient, scraper.NewThrottle(2*time.Second, time.Second))
	coupons := scraper.NewMercadoLivreCoupon(outboundClient, scraper.NewThrottle(2*time.Second, time.Second))
	amazon := scraper.NewAmazon(outboundClient, scraper.NewThrottle(3*time.Second, time.Second))

	chain := service.DefaultChain(
		cfg.Pipeline.Keywords,
		cfg.Pipeline.NegativeKeywords,
		cfg.Pipeline.MinRating,
		cfg.Pipeline.MinDiscount,
	)

	pipeline := worker.NewPipeline(sentDeals, resolver, enqueuer, chain, service.NewSampler(cfg.Pipeline.SamplerSeed)).
		WithSweeps(
			worker.Sweep{Adapter: mercadoLivre, Selector: scraper.SelectorLightningDeals},
			worker.Sweep{Adapter: coupons, Selector: scraper.SelectorCoupons},
		).
		WithSearchAdapters(mercadoLivre, amazon).
		WithKeywords(cfg.Pipeline.Keywords, cfg.Pipeline.QueriesPerCycle).
		WithBrandTokens(cfg.Pipeline.BrandTokens).
		WithQuota(cfg.Pipeline.MaxDailyDeals).
		WithSchedule(cfg.Pipeline.CycleInterval, cfg.Pipeline.CycleTimeout).
		WithFetchConcurrency(cfg.Pipeline.MaxConcurrentFetches)

	g, gctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: httpShutdownTimeout}.Run(gctx, g, &http.Server{ //nolint:exhaustruct
		Addr:              cfg.Server.ListenAddress,
		Handler:           newRouter(cfg, sentDeals),
		ReadHeaderTimeout: httpReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return gctx },
	})

	modules.MetricServer{ListenAddress: cfg.Server.MetricsListenAddress}.Run(gctx, g)

	modules.ProbeServer{
		Name:          appName,
		Version:       Version,
		ListenAddress: cfg.Server.ProbeListenAddress,
	}.Run(gctx, g)

	modules.AsynqServer{
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisAddress:  cfg.Redis.Address,
		RedisDB:       cfg.Redis.DatabaseNumber,
	}.Run(gctx, g,
		modules.AsynqQueues{delivery.QueueDelivery: 1},
		modules.AsynqHandler{
			Pattern: delivery.TypeDeliverDeal,
			Handle:  delivery.NewHandler(sinks...).HandleDeliverDeal,
		},
	)

	g.Go(func() error {
		if err := pipeline.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("pipeline.Run: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}

func newRouter(cfg config.Config, sentDeals *persistence.SentDealRepository) chi.Router {
	router := chi.NewRouter()

	masker := logx.NewSensitiveDataMasker()

	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.RequestLogging(masker, logFieldMaxLen),
		middlewarex.ResponseLogging(masker, logFieldMaxLen),
	)

	server.NewServer(
		server.NewDealServer(sentDeals, cfg.Pipeline.MaxDailyDeals),
		server.NewWebhookServer(cfg.Server.WebhookVerifyToken),
	).RegisterRoutes(router)

	return router
}
