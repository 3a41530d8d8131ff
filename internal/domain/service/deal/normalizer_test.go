package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"deal_hunter/internal/domain"
	"deal_hunter/internal/domain/entity"
	service "deal_hunter/internal/domain/service/deal"
)

func TestNormalize(t *testing.T) {
	rq := require.New(t)
	normalizer := service.NewNormalizer()

	raw := entity.RawListing{
		"id":             "MLB123456789",
		"title":          "Furadeira Impacto Bosch",
		"price":          "180,00",
		"original_price": "300,00",
		"rating":         "4,5",
		"link":           "https://www.mercadolivre.com.br/p/MLB123456789",
	}

	deal, err := normalizer.Normalize(raw, entity.SourceMercadoLivre)
	rq.NoError(err)

	rq.Equal("MLB123456789", deal.ID)
	rq.Equal(entity.SourceMercadoLivre, deal.Source)
	rq.InDelta(180.0, deal.Price, 0.001)
	rq.InDelta(300.0, deal.OriginalPrice, 0.001)
	rq.Equal(40, deal.DiscountPct)
	rq.True(deal.HasRating())
	rq.InDelta(4.5, deal.RatingValue(), 0.001)
}

func TestNormalizeRequiredFields(t *testing.T) {
	rq := require.New(t)
	normalizer := service.NewNormalizer()

	testCases := []struct {
		name string
		raw  entity.RawListing
		code string
	}{
		{
			name: "missing id",
			raw:  entity.RawListing{"title": "Trena Laser", "price": "99,90"},
			code: "ListingMissingID",
		},
		{
			name: "missing title",
			raw:  entity.RawListing{"id": "B0TEST", "price": "99,90"},
			code: "ListingMissingTitle",
		},
		{
			name: "missing price",
			raw:  entity.RawListing{"id": "B0TEST", "title": "Trena Laser"},
			code: "ListingMissingPrice",
		},
		{
			name: "garbage price",
			raw:  entity.RawListing{"id": "B0TEST", "title": "Trena Laser", "price": "gr??tis"},
			code: "InvalidListingPrice",
		},
		{
			name: "zero price",
			raw:  entity.RawListing{"id": "B0TEST", "title": "Trena Laser", "price": "0"},
			code: "InvalidListingPrice",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := normalizer.Normalize(tc.raw, entity.SourceAmazon)
			rq.Error(err)

			code, ok := domain.GetCode(err)
			rq.True(ok)
			rq.Equal(tc.code, code.String())
		})
	}
}

func TestNormalizePricingInvariants(t *testing.T) {
	rq := require.New(t)
	normalizer := service.NewNormalizer()

	testCases := []struct {
		name          string
		raw           entity.RawListing
		price         float64
		originalPrice float64
		discountPct   int
	}{
		{
			name: "discount derived from struck price",
			raw: entity.RawListing{
				"id": "a", "title": "t",
				"price":          "180,00",
				"original_price": "300,00",
			},
			price:         180,
			originalPrice: 300,
			discountPct:   40,
		},
		{
			name: "original price derived from badge",
			raw: entity.RawListing{
				"id": "a", "title": "t",
				"price":        "150,00",
				"discount_pct": "25% OFF",
			},
			price:         150,
			originalPrice: 200,
			discountPct:   25,
		},
		{
			name: "struck price wins over badge",
			raw: entity.RawListing{
				"id": "a", "title": "t",
				"price":          "50,00",
				"original_price": "100,00",
				"discount_pct":   "10",
			},
			price:         50,
			originalPrice: 100,
			discountPct:   50,
		},
		{
			name: "coupon stacks on top of badge",
			raw: entity.RawListing{
				"id": "a", "title": "t",
				"price":        "90,00",
				"discount_pct": "10",
				"coupon_pct":   "15",
			},
			price:         90,
			originalPrice: 100,
			discountPct:   25,
		},
		{
			name: "original below price is ignored",
			raw: entity.RawListing{
				"id": "a", "title": "t",
				"price":          "100,00",
				"original_price": "80,00",
			},
			price:         100,
			originalPrice: 100,
			discountPct:   0,
		},
		{
			name: "locale thousands separator",
			raw: entity.RawListing{
				"id": "a", "title": "t",
				"price":          "1.234,56",
				"original_price": "2.469,12",
			},
			price:         1234.56,
			originalPrice: 2469.12,
			discountPct:   50,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			deal, err := normalizer.Normalize(tc.raw, entity.SourceMercadoLivre)
			rq.NoError(err)

			rq.InDelta(tc.price, deal.Price, 0.001)
			rq.InDelta(tc.originalPrice, deal.OriginalPrice, 0.01)
			rq.Equal(tc.discountPct, deal.DiscountPct)

			// Invariants that hold for every normalized deal.
			rq.GreaterOrEqual(deal.OriginalPrice, deal.Price)
			rq.GreaterOrEqual(deal.DiscountPct, 0)
			rq.LessOrEqual(deal.DiscountPct, 100)

			if _, stacked := tc.raw["coupon_pct"]; !stacked && deal.OriginalPrice > deal.Price {
				derived := service.DiscountPercent(deal.Price, deal.OriginalPrice)
				rq.InDelta(float64(deal.DiscountPct), float64(derived), 1)
			}
		})
	}
}

func TestNormalizeRatingStates(t *testing.T) {
	rq := require.New(t)
	normalizer := service.NewNormalizer()

	// Rating field absent: the source exposes no ratings at all.
	deal, err := normalizer.Normalize(entity.RawListing{
		"id": "a", "title": "t", "price": "10",
	}, entity.SourceMock)
	rq.NoError(err)
	rq.False(deal.HasRating())

	// Rating observed as zero: the no-reviews sentinel, distinct from absent.
	deal, err = normalizer.Normalize(entity.RawListing{
		"id": "a", "title": "t", "price": "10", "rating": "0",
	}, entity.SourceMock)
	rq.NoError(err)
	rq.True(deal.HasRating())
	rq.Zero(deal.RatingValue())
}

func TestParsePrice(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		in   string
		want float64
	}{
		{"1.234,56", 1234.56},
		{"1234.56", 1234.56},
		{"180,00", 180},
		{"180", 180},
		{"R$ 99,90", 99.9},
		{"4,5", 4.5},
	}

	for _, tc := range testCases {
		got, err := service.ParsePrice(tc.in)
		rq.NoError(err, tc.in)
		rq.InDelta(tc.want, got, 0.001, tc.in)
	}

	_, err := service.ParsePrice("abc")
	rq.Error(err)
}
