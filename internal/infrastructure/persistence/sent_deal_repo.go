package persistence

import (
	"context"

	"github.com/jmoiron/sqlx"

	"deal_hunter/internal/domain"
	"deal_hunter/internal/domain/entity"
	"deal_hunter/pkg/errcodes"
)

// SentDealRepository is the dedup and quota ledger. The daily quota is never
// stored as its own counter: it is always a filtered count over this table,
// so it cannot drift from the records themselves.
type SentDealRepository struct {
	db *sqlx.DB
}

func NewSentDealRepository(db *sqlx.DB) *SentDealRepository {
	return &SentDealRepository{db: db}
}

// WasSentToday reports whether a record for (id, today) exists.
func (r *SentDealRepository) WasSentToday(ctx context.Context, id string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM sent_deals
			WHERE id = $1 AND sent_date = CURRENT_DATE
		)`

	var sent bool
	if err := r.db.GetContext(ctx, &sent, query, id); err != nil {
		return false, domain.WrapError(err, errcodes.StoreUnavailable, "failed to check sent state")
	}

	return sent, nil
}

// CountSentToday returns the number of deals delivered today.
func (r *SentDealRepository) CountSentToday(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM sent_deals WHERE sent_date = CURRENT_DATE`

	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, domain.WrapError(err, errcodes.StoreUnavailable, "failed to count sent deals")
	}

	return count, nil
}

// CommitSent upserts the sent record for today. A record left over from a
// prior day is advanced to today instead of inserting a duplicate row, so
// the same item can be re-surfaced on a later date but at most once per day.
func (r *SentDealRepository) CommitSent(ctx context.Context, deal entity.Deal) error {
	const query = `
		INSERT INTO sent_deals (
			id, title, source, price, original_price, discount_pct,
			rating, link, image, sent_date
		) VALUES (
			:id, :title, :source, :price, :original_price, :discount_pct,
			:rating, :link, :image, CURRENT_DATE
		)
		ON CONFLICT (id) DO UPDATE SET
			title          = EXCLUDED.title,
			source         = EXCLUDED.source,
			price          = EXCLUDED.price,
			original_price = EXCLUDED.original_price,
			discount_pct   = EXCLUDED.discount_pct,
			rating         = EXCLUDED.rating,
			link           = EXCLUDED.link,
			image          = EXCLUDED.image,
			sent_date      = EXCLUDED.sent_date`

	if _, err := r.db.NamedExecContext(ctx, query, fromDeal(deal)); err != nil {
		return domain.WrapError(err, errcodes.StoreUnavailable, "failed to commit sent deal")
	}

	return nil
}

// Recent returns the most recently delivered records for the read-side view.
func (r *SentDealRepository) Recent(ctx context.Context, limit int) ([]entity.SentRecord, error) {
	const query = `
		SELECT id, title, source, price, original_price, discount_pct,
		       rating, link, image, sent_date
		FROM sent_deals
		ORDER BY sent_date DESC, id
		LIMIT $1`

	var schemas []sentDealSchema
	if err := r.db.SelectContext(ctx, &schemas, query, limit); err != nil {
		return nil, domain.WrapError(err, errcodes.StoreUnavailable, "failed to read recent deals")
	}

	records := make([]entity.SentRecord, 0, len(schemas))
	for _, s := range schemas {
		records = append(records, s.toDomain())
	}

	return records, nil
}
