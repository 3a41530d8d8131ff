package rest

// Deal Отправленная сделка
type Deal struct {
	ID            string   `json:"id"`
	Source        string   `json:"source"`
	Title         string   `json:"title"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"originalPrice"`
	DiscountPct   int      `json:"discountPct"`
	Rating        *float64 `json:"rating,omitempty"`
	Link          string   `json:"link"`
	Image         string   `json:"image,omitempty"`
	SentDate      string   `json:"sentDate"`
}

type DealsResponse struct {
	Deals []Deal `json:"deals"`
}

type StatsResponse struct {
	SentToday     int `json:"sentToday"`
	MaxDailyDeals int `json:"maxDailyDeals"`
}

// WebhookEvent Уведомление платформы о статусе доставки
type WebhookEvent struct {
	Object string         `json:"object" validate:"required"`
	Entry  []WebhookEntry `json:"entry"`
}

type WebhookEntry struct {
	ID      string          `json:"id"`
	Changes []WebhookChange `json:"changes"`
}

type WebhookChange struct {
	Field string `json:"field"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`
}

// ErrorCode Код ошибки
type ErrorCode string
