package server

import (
	"time"

	"deal_hunter/internal/domain/entity"
	"deal_hunter/pkg/lox"
	"deal_hunter/pkg/rest"
)

func newRESTDealsResponse(records []entity.SentRecord) rest.DealsResponse {
	return rest.DealsResponse{Deals: lox.Map(records, newRESTDeal)}
}

func newRESTDeal(record entity.SentRecord) rest.Deal {
	return rest.Deal{
		ID:            record.ID,
		Source:        string(record.Source),
		Title:         record.Title,
		Price:         record.Price,
		OriginalPrice: record.OriginalPrice,
		DiscountPct:   record.DiscountPct,
		Rating:        record.Rating,
		Link:          record.Link,
		Image:         record.Image,
		SentDate:      record.SentDate.Format(time.DateOnly),
	}
}
