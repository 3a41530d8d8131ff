package notifier

import (
	"fmt"
	"strconv"
	"strings"

	"deal_hunter/internal/domain/entity"
)

// FormatDeal renders the pt-BR broadcast message for a deal. The rating
// line is omitted when the source never exposed one.
func FormatDeal(deal entity.Deal) string {
	var sb strings.Builder

	sb.WriteString("*OFERTA ENCONTRADA!* 🚀\n\n")
	fmt.Fprintf(&sb, "*%s*\n", deal.Title)
	fmt.Fprintf(&sb, "💰 De: ~R$ %s~\n", FormatPrice(deal.OriginalPrice))
	fmt.Fprintf(&sb, "🔥 *Por: R$ %s*\n", FormatPrice(deal.Price))
	fmt.Fprintf(&sb, "📉 Desconto: %d%%\n", deal.DiscountPct)

	if deal.HasRating() {
		fmt.Fprintf(&sb, "⭐ %s\n", strconv.FormatFloat(deal.RatingValue(), 'f', -1, 64))
	}

	fmt.Fprintf(&sb, "\n🔗 *Link:* %s", deal.Link)

	return sb.String()
}

// FormatPrice renders a price the Brazilian way: dot thousand separators
// and a comma decimal mark.
func FormatPrice(value float64) string {
	formatted := strconv.FormatFloat(value, 'f', 2, 64)

	intPart, fracPart, _ := strings.Cut(formatted, ".")

	negative := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var sb strings.Builder
	if negative {
		sb.WriteByte('-')
	}

	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(digit)
	}

	sb.WriteByte(',')
	sb.WriteString(fracPart)

	return sb.String()
}
