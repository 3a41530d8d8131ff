package affiliate

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"deal_hunter/internal/domain"
	"deal_hunter/pkg/errcodes"
)

// ShopeeLinker generates short links through the Shopee affiliate GraphQL
// API. Unlike the session-based strategy this is a contracted API with
// credential-based auth: each request is signed with
// HMAC-SHA256(secret, timestamp+appID).
type ShopeeLinker struct {
	client   *http.Client
	endpoint string
	appID    string
	secret   string

	now func() time.Time
}

const defaultShopeeEndpoint = "https://open-api.affiliate.shopee.com.br/graphql"

func NewShopeeLinker(client *http.Client, appID, secret string) *ShopeeLinker {
	return &ShopeeLinker{
		client:   client,
		endpoint: defaultShopeeEndpoint,
		appID:    appID,
		secret:   secret,
		now:      time.Now,
	}
}

// WithEndpoint overrides the GraphQL endpoint. Used by tests.
func (l *ShopeeLinker) WithEndpoint(endpoint string) *ShopeeLinker {
	l.endpoint = endpoint
	return l
}

const generateShortLinkQuery = `
mutation($originUrl: String!, $subIds: [String]) {
  generateShortLink(input: {originUrl: $originUrl, subIds: $subIds}) {
    shortLink
  }
}`

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type shortLinkResponse struct {
	Data struct {
		GenerateShortLink struct {
			ShortLink string `json:"shortLink"`
		} `json:"generateShortLink"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (l *ShopeeLinker) Resolve(ctx context.Context, link string) (string, error) {
	payload, err := json.Marshal(graphqlRequest{
		Query: generateShortLinkQuery,
		Variables: map[string]any{
			"originUrl": link,
			"subIds":    []string{},
		},
	})
	if err != nil {
		return "", fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", l.authHeader(l.now().Unix()))

	resp, err := l.client.Do(req)
	if err != nil {
		return "", domain.WrapError(err, errcodes.LinkNotCaptured, "shopee graphql call failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", domain.NewError(errcodes.LinkNotCaptured,
			fmt.Sprintf("shopee graphql returned status %d", resp.StatusCode))
	}

	var decoded shortLinkResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", domain.WrapError(err, errcodes.LinkNotCaptured, "shopee response not parsable")
	}

	if len(decoded.Errors) > 0 {
		return "", domain.NewError(errcodes.LinkNotCaptured, "shopee graphql error: "+decoded.Errors[0].Message)
	}

	if decoded.Data.GenerateShortLink.ShortLink == "" {
		return "", domain.NewError(errcodes.LinkNotCaptured, "no short link in shopee response")
	}

	return decoded.Data.GenerateShortLink.ShortLink, nil
}

// authHeader builds "SHA256 Credential=…, Signature=…, Timestamp=…" where the
// signature covers timestamp+appID.
func (l *ShopeeLinker) authHeader(timestamp int64) string {
	mac := hmac.New(sha256.New, []byte(l.secret))
	fmt.Fprintf(mac, "%d%s", timestamp, l.appID)

	return fmt.Sprintf("SHA256 Credential=%s, Signature=%s, Timestamp=%d",
		l.appID, hex.EncodeToString(mac.Sum(nil)), timestamp)
}
