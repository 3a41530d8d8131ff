package notifier

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"deal_hunter/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// StaticToken satisfies the bearer authenticator contract for bridges with
// a pre-shared token that never expires or refreshes.
type StaticToken string

func (StaticToken) Authenticate(context.Context) error { return nil }

func (t StaticToken) BearerToken() string { return string(t) }

// WhatsAppBridge posts deals to the external bridge service that owns the
// actual WhatsApp session. The bridge exposes a single POST /send-deal
// endpoint and formats nothing itself, so the rendered message travels
// alongside the structured deal.
type WhatsAppBridge struct {
	client  *http.Client
	baseURL string
}

func NewWhatsAppBridge(client *http.Client, baseURL string) *WhatsAppBridge {
	return &WhatsAppBridge{
		client:  client,
		baseURL: baseURL,
	}
}

func (b *WhatsAppBridge) Name() string {
	return "whatsapp"
}

type sendDealRequest struct {
	Deal    entity.Deal `json:"deal"`
	Message string      `json:"message"`
}

func (b *WhatsAppBridge) SendDeal(ctx context.Context, deal entity.Deal) error {
	body, err := json.Marshal(sendDealRequest{
		Deal:    deal,
		Message: FormatDeal(deal),
	})
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/send-deal", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("client.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("bridge returned status %d: %s", resp.StatusCode, detail)
	}

	return nil
}
