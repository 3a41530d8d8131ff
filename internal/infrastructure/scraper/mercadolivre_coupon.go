package scraper

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"deal_hunter/internal/domain/entity"
)

var couponPctPattern = regexp.MustCompile(`(\d+)%`)

// MercadoLivreCoupon sweeps the Mercado Livre coupon listings: items carrying
// a coupon badge whose percentage stacks on top of the listed discount. It is
// a sub-channel of the same marketplace and reports its own source so the
// dedup namespace stays per-channel.
type MercadoLivreCoupon struct {
	baseURL  string
	client   *http.Client
	throttle *Throttle
}

func NewMercadoLivreCoupon(client *http.Client, throttle *Throttle) *MercadoLivreCoupon {
	return &MercadoLivreCoupon{
		baseURL:  "https://www.mercadolivre.com.br",
		client:   client,
		throttle: throttle,
	}
}

func (a *MercadoLivreCoupon) WithBaseURL(baseURL string) *MercadoLivreCoupon {
	a.baseURL = strings.TrimSuffix(baseURL, "/")
	return a
}

func (a *MercadoLivreCoupon) Source() entity.Source {
	return entity.SourceMercadoLivreCoupon
}

func (a *MercadoLivreCoupon) Fetch(ctx context.Context, _ string) ([]entity.RawListing, error) {
	if err := a.throttle.Wait(ctx); err != nil {
		return nil, err
	}

	pageURL := a.baseURL + "/ofertas?container_id=MLB779362-1&promotion_type=coupon"

	resp, err := get(ctx, a.client, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch coupon page: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("goquery.NewDocumentFromReader: %w", err)
	}

	var listings []entity.RawListing

	doc.Find("div.andes-card, li.ui-search-layout__item").Each(func(_ int, card *goquery.Selection) {
		raw, ok := parsePolyCard(card)
		if !ok {
			return
		}

		badge := strings.TrimSpace(card.Find(
			`span.poly-component__coupon, span[class*="coupon"]`,
		).First().Text())
		if match := couponPctPattern.FindStringSubmatch(badge); match != nil {
			raw["coupon_pct"] = match[1]
		}

		listings = append(listings, raw)
	})

	logger(ctx).Debug("mercadolivre coupon fetch done", "listings", len(listings))

	return listings, nil
}
