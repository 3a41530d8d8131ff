package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"git.appkode.ru/pub/go/failure"

	"deal_hunter/internal/domain/entity"
	"deal_hunter/pkg/errcodes"
	"deal_hunter/pkg/httpx/reply"
	"deal_hunter/pkg/rest"
)

const (
	defaultRecentLimit = 50
	maxRecentLimit     = 200
)

type sentDealReader interface {
	Recent(ctx context.Context, limit int) ([]entity.SentRecord, error)
	CountSentToday(ctx context.Context) (int, error)
}

type DealServer struct {
	sentDeals     sentDealReader
	maxDailyDeals int
}

func NewDealServer(sentDeals sentDealReader, maxDailyDeals int) DealServer {
	return DealServer{
		sentDeals:     sentDeals,
		maxDailyDeals: maxDailyDeals,
	}
}

func (s DealServer) getV1DealsRecent(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		return fmt.Errorf("parseLimit: %w", err)
	}

	records, err := s.sentDeals.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("sentDeals.Recent: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTDealsResponse(records))

	return nil
}

func (s DealServer) getV1DealsStats(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	sentToday, err := s.sentDeals.CountSentToday(ctx)
	if err != nil {
		return fmt.Errorf("sentDeals.CountSentToday: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.StatsResponse{
		SentToday:     sentToday,
		MaxDailyDeals: s.maxDailyDeals,
	})

	return nil
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultRecentLimit, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, failure.NewInvalidArgumentError(
			"invalid limit",
			failure.WithCode(errcodes.InvalidPaging),
			failure.WithDescription("limit must be a positive integer"),
		)
	}

	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	return limit, nil
}
