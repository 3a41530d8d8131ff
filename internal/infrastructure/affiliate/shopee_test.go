package affiliate_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"deal_hunter/internal/domain"
	"deal_hunter/internal/infrastructure/affiliate"
	"deal_hunter/pkg/errcodes"
)

func TestShopeeLinkerSignsAndResolves(t *testing.T) {
	rq := require.New(t)

	const (
		appID  = "18123456789"
		secret = "shhh"
	)

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		rq.Equal("application/json", r.Header.Get("Content-Type"))

		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		rq.NoError(json.NewDecoder(r.Body).Decode(&req))
		rq.Contains(req.Query, "generateShortLink")
		rq.Equal("https://shopee.com.br/product/123/456", req.Variables["originUrl"])

		_, _ = w.Write([]byte(`{"data":{"generateShortLink":{"shortLink":"https://s.shopee.com.br/AbCd"}}}`))
	}))
	defer server.Close()

	linker := affiliate.NewShopeeLinker(server.Client(), appID, secret).
		WithEndpoint(server.URL)

	resolved, err := linker.Resolve(context.Background(), "https://shopee.com.br/product/123/456")
	rq.NoError(err)
	rq.Equal("https://s.shopee.com.br/AbCd", resolved)

	// Header shape: SHA256 Credential=<appID>, Signature=<hex>, Timestamp=<unix>.
	fields := map[string]string{}
	for _, part := range strings.Split(strings.TrimPrefix(gotAuth, "SHA256 "), ", ") {
		key, value, found := strings.Cut(part, "=")
		rq.True(found)
		fields[key] = value
	}
	rq.Equal(appID, fields["Credential"])

	timestamp, err := strconv.ParseInt(fields["Timestamp"], 10, 64)
	rq.NoError(err)
	rq.NotZero(timestamp)

	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d%s", timestamp, appID)
	rq.Equal(hex.EncodeToString(mac.Sum(nil)), fields["Signature"])
}

func TestShopeeLinkerErrors(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	testCases := []struct {
		name string
		body string
		code int
	}{
		{
			name: "graphql error payload",
			body: `{"errors":[{"message":"invalid signature"}]}`,
			code: http.StatusOK,
		},
		{
			name: "empty short link",
			body: `{"data":{"generateShortLink":{"shortLink":""}}}`,
			code: http.StatusOK,
		},
		{
			name: "http failure",
			body: `{}`,
			code: http.StatusTooManyRequests,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.code)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			linker := affiliate.NewShopeeLinker(server.Client(), "app", "secret").
				WithEndpoint(server.URL)

			_, err := linker.Resolve(ctx, "https://shopee.com.br/product/1/2")
			rq.True(domain.HasCode(err, errcodes.LinkNotCaptured))
		})
	}
}
