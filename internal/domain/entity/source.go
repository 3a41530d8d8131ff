package entity

// Source identifies a marketplace or a sub-channel of one. The set is open:
// adapters register whatever source they report.
type Source string

const (
	SourceMercadoLivre       Source = "mercadolivre"
	SourceMercadoLivreCoupon Source = "mercadolivre-cupom"
	SourceAmazon             Source = "amazon"
	SourceShopee             Source = "shopee"
	SourceMock               Source = "mock"
)

func (s Source) String() string {
	return string(s)
}

// RawListing is the untyped key/value bag an adapter extracts from a
// marketplace page. The normalizer owns all interpretation of its values.
//
// Well-known keys: id, title, price, original_price, discount_pct,
// coupon_pct, rating, seller, link, image.
type RawListing map[string]string
