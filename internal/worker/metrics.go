package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	cyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "deal_hunter_cycles_total",
		Help: "Completed discovery cycles.",
	})

	listingsFetched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deal_hunter_listings_fetched_total",
		Help: "Raw listings fetched per source.",
	}, []string{"source"})

	dealsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deal_hunter_deals_rejected_total",
		Help: "Deals rejected per filter predicate.",
	}, []string{"predicate"})

	dealsDeduplicated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "deal_hunter_deals_deduplicated_total",
		Help: "Deals dropped because they were already sent today.",
	})

	dealsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deal_hunter_deals_sent_total",
		Help: "Deals committed as sent per source.",
	}, []string{"source"})

	fetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deal_hunter_fetch_failures_total",
		Help: "Whole-page fetch failures per source.",
	}, []string{"source"})
)
