package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"deal_hunter/internal/domain/entity"
	"deal_hunter/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// mlbIDPattern matches product ids like MLB12345 and MLB-12345 inside links.
var mlbIDPattern = regexp.MustCompile(`(MLB-?\d+)`)

// MercadoLivre scrapes the Mercado Livre offers page (lightning-deal sweep)
// and the keyword search results.
type MercadoLivre struct {
	baseURL  string
	client   *http.Client
	throttle *Throttle
}

func NewMercadoLivre(client *http.Client, throttle *Throttle) *MercadoLivre {
	return &MercadoLivre{
		baseURL:  "https://www.mercadolivre.com.br",
		client:   client,
		throttle: throttle,
	}
}

// WithBaseURL points the adapter at a different host. Used by tests.
func (a *MercadoLivre) WithBaseURL(baseURL string) *MercadoLivre {
	a.baseURL = strings.TrimSuffix(baseURL, "/")
	return a
}

func (a *MercadoLivre) Source() entity.Source {
	return entity.SourceMercadoLivre
}

func (a *MercadoLivre) Fetch(ctx context.Context, selector string) ([]entity.RawListing, error) {
	if err := a.throttle.Wait(ctx); err != nil {
		return nil, err
	}

	var pageURL string
	switch selector {
	case SelectorLightningDeals:
		pageURL = a.baseURL + "/ofertas?container_id=MLB779362-1&promotion_type=lightning"
	default:
		pageURL = a.baseURL + "/jm/search?as_word=" + url.QueryEscape(selector)
	}

	started := time.Now()

	resp, err := get(ctx, a.client, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch mercadolivre page: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("goquery.NewDocumentFromReader: %w", err)
	}

	listings := parsePolyCards(doc)

	logger(ctx).Debug("mercadolivre fetch done",
		"selector", selector,
		"listings", len(listings),
		"took", time.Since(started).Round(time.Millisecond),
	)

	return listings, nil
}

// parsePolyCards extracts listing bags from the "poly" card components used
// on both the offers page and the search layout. Cards missing a title or a
// price are skipped, not fatal.
func parsePolyCards(doc *goquery.Document) []entity.RawListing {
	var listings []entity.RawListing

	doc.Find("div.andes-card, li.ui-search-layout__item").Each(func(_ int, card *goquery.Selection) {
		raw, ok := parsePolyCard(card)
		if ok {
			listings = append(listings, raw)
		}
	})

	return listings
}

func parsePolyCard(card *goquery.Selection) (entity.RawListing, bool) {
	titleEl := card.Find("a.poly-component__title, h2.ui-search-item__title").First()
	title := strings.TrimSpace(titleEl.Text())

	link, _ := card.Find("a.poly-component__title, a.ui-search-link").First().Attr("href")

	price := strings.TrimSpace(card.Find(
		"div.poly-price__current span.andes-money-amount__fraction, span.andes-money-amount__fraction",
	).First().Text())

	if title == "" || price == "" {
		return nil, false
	}

	raw := entity.RawListing{
		"id":    extractMLBID(link),
		"title": title,
		"price": price,
		"link":  link,
	}

	if cents := strings.TrimSpace(card.Find(
		"div.poly-price__current span.andes-money-amount__cents",
	).First().Text()); cents != "" {
		raw["price"] = price + "," + cents
	}

	if badge := strings.TrimSpace(card.Find(
		"span.poly-price__disc_label, span.ui-search-price__discount",
	).First().Text()); badge != "" {
		raw["discount_pct"] = strings.TrimSuffix(strings.TrimSpace(badge), " OFF")
	}

	// A card without a reviews element has zero reviews on this marketplace;
	// that is the sentinel, not an absent field.
	raw["rating"] = "0"
	if rating := strings.TrimSpace(card.Find(
		"span.poly-reviews__rating, span.ui-search-reviews__rating-number",
	).First().Text()); rating != "" {
		raw["rating"] = rating
	}

	if seller := strings.TrimSpace(card.Find(
		"span.poly-component__seller, span.ui-search-official-store-label",
	).First().Text()); seller != "" {
		raw["seller"] = seller
	}

	if img := card.Find("img.poly-component__picture, img.ui-search-result-image__element").First(); img.Length() > 0 {
		if src, ok := img.Attr("data-src"); ok && src != "" {
			raw["image"] = src
		} else if src, ok := img.Attr("src"); ok {
			raw["image"] = src
		}
	}

	return raw, true
}

// extractMLBID normalizes MLB-12345 style ids to MLB12345, falling back to
// the link itself when no id is recognizable.
func extractMLBID(link string) string {
	match := mlbIDPattern.FindString(link)
	if match == "" {
		return link
	}
	return strings.ReplaceAll(match, "-", "")
}
