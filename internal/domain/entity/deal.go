package entity

// Deal is the canonical normalized representation of a discounted listing.
// It flows read-mostly through the pipeline; only Link is rewritten by the
// affiliate resolver before delivery.
type Deal struct {
	ID            string  `json:"id"`
	Source        Source  `json:"source"`
	Title         string  `json:"title"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price"`
	DiscountPct   int     `json:"discount_pct"`

	// Rating is nil when the source never exposes ratings. A value of 0 is
	// the "zero reviews" sentinel and is treated differently from nil by the
	// rating filter.
	Rating *float64 `json:"rating,omitempty"`

	Seller string `json:"seller,omitempty"`
	Link   string `json:"link"`
	Image  string `json:"image,omitempty"`
}

// HasRating reports whether the source exposed any rating signal at all.
func (d Deal) HasRating() bool {
	return d.Rating != nil
}

// RatingValue returns the observed rating, 0 when absent.
func (d Deal) RatingValue() float64 {
	if d.Rating == nil {
		return 0
	}
	return *d.Rating
}
