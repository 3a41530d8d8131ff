package service

import (
	"math"
	"strconv"
	"strings"

	"deal_hunter/internal/domain"
	"deal_hunter/internal/domain/entity"
	"deal_hunter/pkg/errcodes"
)

// Normalizer turns a RawListing bag into a canonical Deal. One bad record
// produces an error the caller logs and skips, never an aborted run.
type Normalizer struct{}

func NewNormalizer() Normalizer {
	return Normalizer{}
}

// Normalize builds a Deal from a raw listing. Required fields are id, title
// and a usable price; anything else is best effort.
func (n Normalizer) Normalize(raw entity.RawListing, source entity.Source) (entity.Deal, error) {
	id := strings.TrimSpace(raw["id"])
	if id == "" {
		return entity.Deal{}, domain.NewError(errcodes.ListingMissingID, "listing has no id")
	}

	title := strings.TrimSpace(raw["title"])
	if title == "" {
		return entity.Deal{}, domain.NewError(errcodes.ListingMissingTitle, "listing has no title")
	}

	rawPrice := strings.TrimSpace(raw["price"])
	if rawPrice == "" {
		return entity.Deal{}, domain.NewError(errcodes.ListingMissingPrice, "listing has no price")
	}

	price, err := ParsePrice(rawPrice)
	if err != nil {
		return entity.Deal{}, domain.WrapError(err, errcodes.InvalidListingPrice, "unparsable price")
	}
	if price <= 0 {
		return entity.Deal{}, domain.NewError(errcodes.InvalidListingPrice, "price must be positive")
	}

	deal := entity.Deal{
		ID:     id,
		Source: source,
		Title:  title,
		Price:  price,
		Seller: strings.TrimSpace(raw["seller"]),
		Link:   strings.TrimSpace(raw["link"]),
		Image:  strings.TrimSpace(raw["image"]),
	}

	deal.OriginalPrice, deal.DiscountPct = n.resolvePricing(price, raw)

	if rawRating, ok := raw["rating"]; ok {
		if rating, err := ParsePrice(rawRating); err == nil && rating >= 0 && rating <= 5 {
			deal.Rating = &rating
		}
	}

	return deal, nil
}

// resolvePricing reconciles price, original price and discount so that
// original >= price and discount is consistent within rounding tolerance.
// Sources expose any subset: a struck-through original price, a "% OFF"
// badge, or both.
func (n Normalizer) resolvePricing(price float64, raw entity.RawListing) (originalPrice float64, discountPct int) {
	originalPrice = price

	if rawOriginal, ok := raw["original_price"]; ok {
		if parsed, err := ParsePrice(rawOriginal); err == nil && parsed > price {
			originalPrice = parsed
		}
	}

	badge := parsePct(raw["discount_pct"])

	switch {
	case originalPrice > price:
		discountPct = DiscountPercent(price, originalPrice)
	case badge > 0 && badge < 100:
		// Only the badge is known; derive the original price from it.
		discountPct = badge
		originalPrice = math.Round(price/(1-float64(badge)/100)*100) / 100
	}

	// Coupon sources stack a coupon percentage on top of the listed discount.
	if coupon := parsePct(raw["coupon_pct"]); coupon > 0 {
		discountPct = min(discountPct+coupon, 100)
	}

	return originalPrice, discountPct
}

// DiscountPercent computes round(100 * (1 - price/originalPrice)).
func DiscountPercent(price, originalPrice float64) int {
	if originalPrice <= 0 || price >= originalPrice {
		return 0
	}
	return int(math.Round(100 * (1 - price/originalPrice)))
}

// ParsePrice parses a decimal that may use pt-BR locale separators:
// "1.234,56" as well as "1234.56" and "1234".
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)

	if strings.Contains(s, ",") {
		// Comma is the decimal separator, dots are thousands separators.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	return strconv.ParseFloat(s, 64)
}

func parsePct(s string) int {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0
	}

	pct, err := strconv.Atoi(s)
	if err != nil || pct < 0 || pct > 100 {
		return 0
	}
	return pct
}
