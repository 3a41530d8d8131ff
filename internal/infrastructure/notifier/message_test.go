package notifier_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"deal_hunter/internal/domain/entity"
	"deal_hunter/internal/infrastructure/notifier"
)

func ratingOf(v float64) *float64 {
	return &v
}

func TestFormatDeal(t *testing.T) {
	rq := require.New(t)

	deal := entity.Deal{
		ID:            "MLB123456",
		Source:        entity.SourceMercadoLivre,
		Title:         "Furadeira de Impacto Bosch",
		Price:         180,
		OriginalPrice: 300,
		DiscountPct:   40,
		Rating:        ratingOf(4.5),
		Link:          "https://mercadolivre.com/sec/abc",
	}

	msg := notifier.FormatDeal(deal)

	rq.Contains(msg, "*OFERTA ENCONTRADA!*")
	rq.Contains(msg, "*Furadeira de Impacto Bosch*")
	rq.Contains(msg, "De: ~R$ 300,00~")
	rq.Contains(msg, "*Por: R$ 180,00*")
	rq.Contains(msg, "Desconto: 40%")
	rq.Contains(msg, "⭐ 4.5")
	rq.Contains(msg, "🔗 *Link:* https://mercadolivre.com/sec/abc")
}

func TestFormatDealWithoutRating(t *testing.T) {
	rq := require.New(t)

	deal := entity.Deal{
		ID:            "X1",
		Title:         "Echo Dot",
		Price:         249.9,
		OriginalPrice: 399.9,
		DiscountPct:   38,
		Link:          "https://amzn.to/x",
	}

	msg := notifier.FormatDeal(deal)
	rq.NotContains(msg, "⭐")
}

func TestFormatPrice(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		value float64
		want  string
	}{
		{value: 180, want: "180,00"},
		{value: 249.9, want: "249,90"},
		{value: 1234.56, want: "1.234,56"},
		{value: 1234567.8, want: "1.234.567,80"},
		{value: 0, want: "0,00"},
	}

	for _, tc := range testCases {
		rq.Equal(tc.want, notifier.FormatPrice(tc.value))
	}
}
