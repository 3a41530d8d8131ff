package service

import (
	"strings"

	"deal_hunter/internal/domain/entity"
)

// FilterContext parameterizes predicates that depend on how the deal was
// found. It is supplied by the caller per fetch, never inferred from global
// state.
type FilterContext struct {
	// Query is the search term that produced the deal, empty for sweeps.
	Query string
	// Sweep marks deals from fixed promotional pages without a query context.
	Sweep bool
	// BrandTokens activates the brand gate for query-scoped searches.
	BrandTokens []string
}

// Predicate accepts or rejects a Deal. Implementations are pure.
type Predicate interface {
	Name() string
	Allow(deal entity.Deal, fctx FilterContext) bool
}

// Chain evaluates predicates in order, short-circuiting on the first reject.
type Chain struct {
	predicates []Predicate
}

func NewChain(predicates ...Predicate) Chain {
	return Chain{predicates: predicates}
}

// DefaultChain is the production ordering. The negative-keyword block comes
// first: it is a safety filter and must dominate all inclusion logic.
func DefaultChain(keywords, negativeKeywords []string, minRating float64, minDiscount int) Chain {
	return NewChain(
		NegativeKeywords(negativeKeywords),
		KeywordAllowList(keywords),
		BrandGate{},
		RatingFloor{Min: minRating},
		DiscountFloor{Min: minDiscount},
	)
}

// Verdict returns whether the deal is accepted and, when rejected, the name
// of the predicate that rejected it.
func (c Chain) Verdict(deal entity.Deal, fctx FilterContext) (allowed bool, rejectedBy string) {
	for _, p := range c.predicates {
		if !p.Allow(deal, fctx) {
			return false, p.Name()
		}
	}
	return true, ""
}

func (c Chain) Allow(deal entity.Deal, fctx FilterContext) bool {
	allowed, _ := c.Verdict(deal, fctx)
	return allowed
}

// NegativeKeywords rejects any deal whose title contains one of the
// configured exclusion terms, case-insensitively.
type NegativeKeywords []string

func (NegativeKeywords) Name() string { return "negative-keywords" }

func (n NegativeKeywords) Allow(deal entity.Deal, _ FilterContext) bool {
	title := strings.ToLower(deal.Title)
	for _, term := range n {
		if term != "" && strings.Contains(title, strings.ToLower(term)) {
			return false
		}
	}
	return true
}

// KeywordAllowList accepts sweep deals only when the title matches at least
// one configured keyword. Query-scoped deals already carry their relevance
// in the query itself and pass through.
type KeywordAllowList []string

func (KeywordAllowList) Name() string { return "keyword-allow-list" }

func (k KeywordAllowList) Allow(deal entity.Deal, fctx FilterContext) bool {
	if !fctx.Sweep {
		return true
	}

	title := strings.ToLower(deal.Title)
	for _, keyword := range k {
		if keyword != "" && strings.Contains(title, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// BrandGate accepts only titles containing a preferred-brand token. Inactive
// unless the caller supplies tokens in the filter context.
type BrandGate struct{}

func (BrandGate) Name() string { return "brand-gate" }

func (BrandGate) Allow(deal entity.Deal, fctx FilterContext) bool {
	if len(fctx.BrandTokens) == 0 {
		return true
	}

	title := strings.ToLower(deal.Title)
	for _, brand := range fctx.BrandTokens {
		if brand != "" && strings.Contains(title, strings.ToLower(brand)) {
			return true
		}
	}
	return false
}

// RatingFloor rejects deals rated below Min. A rating of exactly zero is the
// "no reviews yet" sentinel and is rejected as a proxy for unverified
// sellers; a source that exposes no rating field at all passes.
type RatingFloor struct {
	Min float64
}

func (RatingFloor) Name() string { return "rating-floor" }

func (r RatingFloor) Allow(deal entity.Deal, _ FilterContext) bool {
	if !deal.HasRating() {
		return true
	}

	rating := deal.RatingValue()
	if rating == 0 {
		return false
	}
	return rating >= r.Min
}

// DiscountFloor rejects deals discounted below Min percent.
type DiscountFloor struct {
	Min int
}

func (DiscountFloor) Name() string { return "discount-floor" }

func (d DiscountFloor) Allow(deal entity.Deal, _ FilterContext) bool {
	return deal.DiscountPct >= d.Min
}
