package scraper

import (
	"context"
	"fmt"
	"net/http"

	"deal_hunter/internal/domain/entity"
)

// Adapter fetches raw candidate listings from one marketplace. The selector
// is either a fixed page identifier (promotional sweeps, see the Selector*
// constants) or a free-text search query.
//
// Adapters degrade gracefully: a malformed card is skipped, a whole-page
// failure returns an error the orchestrator treats as soft. All site
// knowledge (URLs, CSS selectors, id formats) stays inside the adapter.
type Adapter interface {
	Source() entity.Source
	Fetch(ctx context.Context, selector string) ([]entity.RawListing, error)
}

// Fixed page identifiers for sweep-style fetches.
const (
	SelectorLightningDeals = "page:ofertas-relampago"
	SelectorCoupons        = "page:cupons"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// get issues a browser-shaped GET request. All marketplaces here are
// unauthenticated scrapes, so the headers matter more than usual.
func get(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en-US;q=0.8,en;q=0.7")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client.Do: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	return resp, nil
}
