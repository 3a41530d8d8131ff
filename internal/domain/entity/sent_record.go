package entity

import "time"

// SentRecord is the persisted ledger row for a delivered deal. Display fields
// are denormalized so the recent-activity view needs no other storage.
//
// At most one record exists per id; a re-send on a later day advances
// SentDate instead of inserting a second row.
type SentRecord struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Source        Source    `json:"source"`
	Price         float64   `json:"price"`
	OriginalPrice float64   `json:"original_price"`
	DiscountPct   int       `json:"discount_pct"`
	Rating        *float64  `json:"rating,omitempty"`
	Link          string    `json:"link"`
	Image         string    `json:"image,omitempty"`
	SentDate      time.Time `json:"sent_date"`
}
