package affiliate_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"deal_hunter/internal/domain"
	"deal_hunter/internal/infrastructure/affiliate"
	"deal_hunter/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

func writeCookieBundle(t *testing.T, cookies []affiliate.SessionCookie) string {
	t.Helper()

	data, err := json.Marshal(cookies)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func TestMLSessionLinkerCapturesShortLink(t *testing.T) {
	rq := require.New(t)

	var gotCookie, gotLink string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie("ssid"); err == nil {
			gotCookie = cookie.Value
		}

		var req struct {
			URLs []string `json:"urls"`
		}
		rq.NoError(json.NewDecoder(r.Body).Decode(&req))
		rq.Len(req.URLs, 1)
		gotLink = req.URLs[0]

		_, _ = w.Write([]byte(`{"urls":[{"short_url":"https://mercadolivre.com/sec/abc123"}]}`))
	}))
	defer server.Close()

	bundle := writeCookieBundle(t, []affiliate.SessionCookie{
		{Name: "ssid", Value: "secret", Domain: ".mercadolivre.com.br"},
	})

	linker := affiliate.NewMLSessionLinker(server.Client(), bundle, time.Second).
		WithEndpoint(server.URL)
	rq.NoError(linker.RefreshSession())
	rq.True(linker.IsAvailable())

	resolved, err := linker.Resolve(context.Background(), "https://www.mercadolivre.com.br/p/MLB123456")
	rq.NoError(err)
	rq.Equal("https://mercadolivre.com/sec/abc123", resolved)
	rq.Equal("https://www.mercadolivre.com.br/p/MLB123456", gotLink)

	// httptest serves on 127.0.0.1, which never matches the cookie domain.
	rq.Empty(gotCookie)
}

func TestMLSessionLinkerErrors(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	t.Run("no session bundle loaded", func(t *testing.T) {
		linker := affiliate.NewMLSessionLinker(http.DefaultClient, "missing.json", time.Second)

		_, err := linker.Resolve(ctx, "https://www.mercadolivre.com.br/p/MLB123")
		rq.True(domain.HasCode(err, errcodes.SessionUnavailable))
	})

	t.Run("link without product id", func(t *testing.T) {
		bundle := writeCookieBundle(t, []affiliate.SessionCookie{{Name: "ssid", Value: "v"}})

		linker := affiliate.NewMLSessionLinker(http.DefaultClient, bundle, time.Second)
		rq.NoError(linker.RefreshSession())

		_, err := linker.Resolve(ctx, "https://www.mercadolivre.com.br/ofertas")
		rq.True(domain.HasCode(err, errcodes.InvalidURL))
	})

	t.Run("empty response body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"urls":[]}`))
		}))
		defer server.Close()

		bundle := writeCookieBundle(t, []affiliate.SessionCookie{{Name: "ssid", Value: "v"}})

		linker := affiliate.NewMLSessionLinker(server.Client(), bundle, time.Second).
			WithEndpoint(server.URL)
		rq.NoError(linker.RefreshSession())

		_, err := linker.Resolve(ctx, "https://www.mercadolivre.com.br/p/MLB123")
		rq.True(domain.HasCode(err, errcodes.LinkNotCaptured))
	})

	t.Run("upstream rejects session", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		bundle := writeCookieBundle(t, []affiliate.SessionCookie{{Name: "ssid", Value: "v"}})

		linker := affiliate.NewMLSessionLinker(server.Client(), bundle, time.Second).
			WithEndpoint(server.URL)
		rq.NoError(linker.RefreshSession())

		_, err := linker.Resolve(ctx, "https://www.mercadolivre.com.br/p/MLB123")
		rq.True(domain.HasCode(err, errcodes.LinkNotCaptured))
	})
}

func TestMLSessionLinkerSerializesCalls(t *testing.T) {
	rq := require.New(t)

	var inFlight, maxInFlight int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		current := atomic.AddInt32(&inFlight, 1)
		for {
			observed := atomic.LoadInt32(&maxInFlight)
			if current <= observed || atomic.CompareAndSwapInt32(&maxInFlight, observed, current) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)

		_, _ = w.Write([]byte(`{"urls":[{"short_url":"https://mercadolivre.com/sec/x"}]}`))
	}))
	defer server.Close()

	bundle := writeCookieBundle(t, []affiliate.SessionCookie{{Name: "ssid", Value: "v"}})

	linker := affiliate.NewMLSessionLinker(server.Client(), bundle, 5*time.Second).
		WithEndpoint(server.URL)
	rq.NoError(linker.RefreshSession())

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := linker.Resolve(context.Background(), "https://www.mercadolivre.com.br/p/MLB123")
			rq.NoError(err)
		}()
	}
	wg.Wait()

	rq.Equal(int32(1), atomic.LoadInt32(&maxInFlight))
}
