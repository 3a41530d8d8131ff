package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"deal_hunter/internal/domain/entity"
)

// Amazon scrapes the amazon.com.br keyword search results. There is no sweep
// page here; the adapter is only used in the per-query fanout.
type Amazon struct {
	baseURL  string
	client   *http.Client
	throttle *Throttle
}

func NewAmazon(client *http.Client, throttle *Throttle) *Amazon {
	return &Amazon{
		baseURL:  "https://www.amazon.com.br",
		client:   client,
		throttle: throttle,
	}
}

func (a *Amazon) WithBaseURL(baseURL string) *Amazon {
	a.baseURL = strings.TrimSuffix(baseURL, "/")
	return a
}

func (a *Amazon) Source() entity.Source {
	return entity.SourceAmazon
}

func (a *Amazon) Fetch(ctx context.Context, selector string) ([]entity.RawListing, error) {
	if err := a.throttle.Wait(ctx); err != nil {
		return nil, err
	}

	started := time.Now()

	resp, err := get(ctx, a.client, a.baseURL+"/s?k="+url.QueryEscape(selector))
	if err != nil {
		return nil, fmt.Errorf("fetch amazon search: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("goquery.NewDocumentFromReader: %w", err)
	}

	var listings []entity.RawListing

	doc.Find(`div.s-result-item[data-component-type="s-search-result"]`).Each(func(_ int, item *goquery.Selection) {
		raw, ok := a.parseResult(item)
		if ok {
			listings = append(listings, raw)
		}
	})

	logger(ctx).Debug("amazon fetch done",
		"query", selector,
		"listings", len(listings),
		"took", time.Since(started).Round(time.Millisecond),
	)

	return listings, nil
}

func (a *Amazon) parseResult(item *goquery.Selection) (entity.RawListing, bool) {
	asin, _ := item.Attr("data-asin")

	title := strings.TrimSpace(item.Find("h2 span.a-text-normal").First().Text())
	if title == "" {
		title = strings.TrimSpace(item.Find("span.a-text-normal").First().Text())
	}

	href, _ := item.Find("a.a-link-normal").First().Attr("href")

	whole := strings.TrimSpace(item.Find("span.a-price-whole").First().Text())
	if asin == "" || title == "" || href == "" || whole == "" {
		return nil, false
	}

	price := strings.TrimSuffix(whole, ",")
	if fraction := strings.TrimSpace(item.Find("span.a-price-fraction").First().Text()); fraction != "" {
		price = price + "," + fraction
	}

	raw := entity.RawListing{
		"id":    asin,
		"title": title,
		"price": price,
		"link":  a.baseURL + href,
	}

	// Struck-through list price hides in the offscreen span.
	if original := strings.TrimSpace(
		item.Find("span.a-text-price span.a-offscreen").First().Text(),
	); original != "" {
		raw["original_price"] = original
	}

	// "4,5 de 5 estrelas"; zero reviews means no star icon at all, which on
	// this marketplace is the zero-reviews sentinel.
	raw["rating"] = "0"
	if alt := strings.TrimSpace(item.Find("span.a-icon-alt").First().Text()); alt != "" {
		raw["rating"] = strings.SplitN(alt, " ", 2)[0]
	}

	if src, ok := item.Find("img.s-image").First().Attr("src"); ok {
		raw["image"] = src
	}

	return raw, true
}
