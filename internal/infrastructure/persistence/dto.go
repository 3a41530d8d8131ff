package persistence

import (
	"time"

	"deal_hunter/internal/domain/entity"
)

// sentDealSchema maps a sent_deals row.
type sentDealSchema struct {
	ID            string    `db:"id"`
	Title         string    `db:"title"`
	Source        string    `db:"source"`
	Price         float64   `db:"price"`
	OriginalPrice float64   `db:"original_price"`
	DiscountPct   int       `db:"discount_pct"`
	Rating        *float64  `db:"rating"`
	Link          string    `db:"link"`
	Image         string    `db:"image"`
	SentDate      time.Time `db:"sent_date"`
}

func (s sentDealSchema) toDomain() entity.SentRecord {
	return entity.SentRecord{
		ID:            s.ID,
		Title:         s.Title,
		Source:        entity.Source(s.Source),
		Price:         s.Price,
		OriginalPrice: s.OriginalPrice,
		DiscountPct:   s.DiscountPct,
		Rating:        s.Rating,
		Link:          s.Link,
		Image:         s.Image,
		SentDate:      s.SentDate,
	}
}

func fromDeal(deal entity.Deal) sentDealSchema {
	return sentDealSchema{
		ID:            deal.ID,
		Title:         deal.Title,
		Source:        deal.Source.String(),
		Price:         deal.Price,
		OriginalPrice: deal.OriginalPrice,
		DiscountPct:   deal.DiscountPct,
		Rating:        deal.Rating,
		Link:          deal.Link,
		Image:         deal.Image,
	}
}
