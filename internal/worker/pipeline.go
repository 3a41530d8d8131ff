package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/rs/xid"
	"golang.org/x/sync/errgroup"

	"deal_hunter/internal/domain/entity"
	service "deal_hunter/internal/domain/service/deal"
	"deal_hunter/internal/infrastructure/scraper"
	"deal_hunter/pkg/contextx"
	"deal_hunter/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// errQuotaReached aborts the rest of a cycle once the daily cap is hit.
var errQuotaReached = errors.New("daily deal quota reached")

type SentDealStore interface {
	WasSentToday(ctx context.Context, id string) (bool, error)
	CountSentToday(ctx context.Context) (int, error)
	CommitSent(ctx context.Context, deal entity.Deal) error
}

type LinkResolver interface {
	Resolve(ctx context.Context, link string, source entity.Source) string
}

type DealEnqueuer interface {
	Enqueue(ctx context.Context, deal entity.Deal) error
}

// Sweep binds an adapter to one of its fixed promotional pages.
type Sweep struct {
	Adapter  scraper.Adapter
	Selector string
}

// Pipeline is the discovery orchestrator: every cycle it sweeps the fixed
// promotional pages, fans a sampled keyword subset out across the search
// adapters, and pushes each surviving deal through resolve, dedup and
// delivery.
//
// Fetches run concurrently; everything that touches the quota or the dedup
// store runs under one mutex so the day's sent set grows linearizably.
type Pipeline struct {
	sweeps         []Sweep
	searchAdapters []scraper.Adapter

	normalizer service.Normalizer
	chain      service.Chain
	sampler    service.Sampler

	store    SentDealStore
	resolver LinkResolver
	enqueuer DealEnqueuer

	keywords        []string
	brandTokens     []string
	queriesPerCycle int
	maxDailyDeals   int

	interval         time.Duration
	cycleTimeout     time.Duration
	fetchConcurrency int

	processMu sync.Mutex

	// Control fields
	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

func NewPipeline(
	store SentDealStore,
	resolver LinkResolver,
	enqueuer DealEnqueuer,
	chain service.Chain,
	sampler service.Sampler,
) *Pipeline {
	return &Pipeline{
		normalizer:       service.NewNormalizer(),
		chain:            chain,
		sampler:          sampler,
		store:            store,
		resolver:         resolver,
		enqueuer:         enqueuer,
		queriesPerCycle:  3,
		maxDailyDeals:    15,
		interval:         30 * time.Minute,
		cycleTimeout:     10 * time.Minute,
		fetchConcurrency: 2,
	}
}

func (p *Pipeline) WithSweeps(sweeps ...Sweep) *Pipeline {
	p.sweeps = sweeps
	return p
}

func (p *Pipeline) WithSearchAdapters(adapters ...scraper.Adapter) *Pipeline {
	p.searchAdapters = adapters
	return p
}

func (p *Pipeline) WithKeywords(keywords []string, perCycle int) *Pipeline {
	p.keywords = keywords
	if perCycle > 0 {
		p.queriesPerCycle = perCycle
	}
	return p
}

func (p *Pipeline) WithBrandTokens(tokens []string) *Pipeline {
	p.brandTokens = tokens
	return p
}

func (p *Pipeline) WithQuota(maxDailyDeals int) *Pipeline {
	if maxDailyDeals > 0 {
		p.maxDailyDeals = maxDailyDeals
	}
	return p
}

func (p *Pipeline) WithSchedule(interval, cycleTimeout time.Duration) *Pipeline {
	if interval > 0 {
		p.interval = interval
	}
	if cycleTimeout > 0 {
		p.cycleTimeout = cycleTimeout
	}
	return p
}

func (p *Pipeline) WithFetchConcurrency(n int) *Pipeline {
	if n > 0 {
		p.fetchConcurrency = n
	}
	return p
}

func (p *Pipeline) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isRunning {
		return errors.New("pipeline is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancelFunc = cancel
	p.isRunning = true

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			p.mu.Lock()
			p.isRunning = false
			p.cancelFunc = nil
			p.mu.Unlock()
		}()

		if err := p.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger(ctx).Error("pipeline stopped", logx.Error(err))
		}
	}()

	return nil
}

func (p *Pipeline) Stop() {
	p.mu.Lock()

	if !p.isRunning {
		p.mu.Unlock()
		return
	}

	if p.cancelFunc != nil {
		p.cancelFunc()
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Pipeline) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isRunning
}

// Run executes cycles until the context is cancelled. The first cycle fires
// immediately, then the interval ticker takes over.
func (p *Pipeline) Run(ctx context.Context) error {
	logger(ctx).Info("pipeline started", slog.Duration("interval", p.interval))

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.RunCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			logger(ctx).Info("pipeline stopped")
			return ctx.Err()
		case <-ticker.C:
			p.RunCycle(ctx)
		}
	}
}

// RunCycle executes a single discovery cycle.
func (p *Pipeline) RunCycle(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, p.cycleTimeout)
	defer cancel()

	runID := xid.New().String()
	ctx = contextx.WithLogger(ctx, logger(ctx).With(slog.String("run-id", runID)))

	start := time.Now()

	// Fail closed: if the quota cannot be read, nothing is sent this cycle.
	sentToday, err := p.store.CountSentToday(ctx)
	if err != nil {
		logger(ctx).Error("store.CountSentToday", logx.Error(err))
		return
	}
	if sentToday >= p.maxDailyDeals {
		logger(ctx).Info("daily quota already reached, skipping cycle",
			slog.Int("sent-today", sentToday),
			slog.Int("max", p.maxDailyDeals),
		)
		return
	}

	queries := p.sampler.Sample(p.keywords, p.queriesPerCycle)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.fetchConcurrency)

	for _, sweep := range p.sweeps {
		g.Go(func() error {
			return p.fetchAndProcess(gctx, sweep.Adapter, sweep.Selector, service.FilterContext{Sweep: true})
		})
	}

	for _, adapter := range p.searchAdapters {
		for _, query := range queries {
			g.Go(func() error {
				fctx := service.FilterContext{Query: query, BrandTokens: p.brandTokens}
				return p.fetchAndProcess(gctx, adapter, query, fctx)
			})
		}
	}

	if err := g.Wait(); err != nil && !errors.Is(err, errQuotaReached) {
		logger(ctx).Error("cycle aborted", logx.Error(err))
		return
	}

	cyclesTotal.Inc()
	logger(ctx).Info("cycle completed", slog.Duration("duration", time.Since(start)))
}

// fetchAndProcess fetches one selector from one adapter and runs every
// surviving deal through the serialized commit path. A fetch failure is
// soft: logged, counted, and the rest of the cycle continues.
func (p *Pipeline) fetchAndProcess(
	ctx context.Context,
	adapter scraper.Adapter,
	selector string,
	fctx service.FilterContext,
) error {
	source := adapter.Source()

	listings, err := adapter.Fetch(ctx, selector)
	if err != nil {
		fetchFailures.WithLabelValues(string(source)).Inc()
		logger(ctx).Error("fetch failed",
			slog.String("source", string(source)),
			slog.String("selector", selector),
			logx.Error(err),
		)
		return nil
	}

	listingsFetched.WithLabelValues(string(source)).Add(float64(len(listings)))

	for _, raw := range listings {
		deal, err := p.normalizer.Normalize(raw, source)
		if err != nil {
			logger(ctx).Debug("listing dropped",
				slog.String("source", string(source)),
				logx.Error(err),
			)
			continue
		}

		if allowed, rejectedBy := p.chain.Verdict(deal, fctx); !allowed {
			dealsRejected.WithLabelValues(rejectedBy).Inc()
			continue
		}

		if err := p.process(ctx, deal); err != nil {
			if errors.Is(err, errQuotaReached) {
				return err
			}
			logger(ctx).Error("deal processing failed",
				slog.String("deal-id", deal.ID),
				logx.Error(err),
			)
		}
	}

	return nil
}

// process runs the quota gate, dedup check, link rewrite, delivery handoff
// and commit for one deal. The mutex makes the read-check-commit sequence
// atomic across concurrent fetches.
func (p *Pipeline) process(ctx context.Context, deal entity.Deal) error {
	p.processMu.Lock()
	defer p.processMu.Unlock()

	sentToday, err := p.store.CountSentToday(ctx)
	if err != nil {
		return err //nolint:wrapcheck
	}
	if sentToday >= p.maxDailyDeals {
		return errQuotaReached
	}

	sent, err := p.store.WasSentToday(ctx, deal.ID)
	if err != nil {
		return err //nolint:wrapcheck
	}
	if sent {
		dealsDeduplicated.Inc()
		return nil
	}

	deal.Link = p.resolver.Resolve(ctx, deal.Link, deal.Source)

	// Delivery is best effort and never blocks the commit.
	if err := p.enqueuer.Enqueue(ctx, deal); err != nil {
		logger(ctx).Error("delivery handoff failed",
			slog.String("deal-id", deal.ID),
			logx.Error(err),
		)
	}

	if err := p.store.CommitSent(ctx, deal); err != nil {
		return err //nolint:wrapcheck
	}

	dealsSent.WithLabelValues(string(deal.Source)).Inc()
	logger(ctx).Info("deal sent",
		slog.String("deal-id", deal.ID),
		slog.String("source", string(deal.Source)),
		slog.String("title", deal.Title),
		slog.Int("discount-pct", deal.DiscountPct),
	)

	return nil
}
