package scraper

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"deal_hunter/internal/domain/entity"
)

// Mock fabricates listings for development and smoke tests so the pipeline
// can run without touching any marketplace.
type Mock struct {
	random *rand.Rand
}

func NewMock(seed int64) *Mock {
	return &Mock{random: rand.New(rand.NewSource(seed))} //nolint:gosec // test data
}

func (m *Mock) Source() entity.Source {
	return entity.SourceMock
}

func (m *Mock) Fetch(_ context.Context, selector string) ([]entity.RawListing, error) {
	models := []string{"Pro", "Ultra", "Max"}

	count := 2 + m.random.Intn(3)
	listings := make([]entity.RawListing, 0, count)

	for i := 0; i < count; i++ {
		price := 50 + m.random.Float64()*450
		discount := 20 + m.random.Intn(31)
		original := price / (1 - float64(discount)/100)

		listings = append(listings, entity.RawListing{
			"id":             fmt.Sprintf("mock-%d", m.random.Intn(9000)+1000),
			"title":          fmt.Sprintf("[MOCK] %s Modelo %s", strings.Title(selector), models[m.random.Intn(len(models))]), //nolint:staticcheck
			"price":          fmt.Sprintf("%.2f", price),
			"original_price": fmt.Sprintf("%.2f", original),
			"link":           fmt.Sprintf("https://example.com/deal?q=%s&id=%d", selector, i),
			"image":          "https://via.placeholder.com/300",
		})
	}

	return listings, nil
}
