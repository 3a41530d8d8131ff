package affiliate

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"deal_hunter/internal/domain"
	"deal_hunter/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

var productIDPattern = regexp.MustCompile(`(MLB-?\d+)`)

// SessionCookie is one cookie of the externally provisioned session bundle.
// How the bundle is captured (manual login) is out of scope; we only load
// and attach it.
type SessionCookie struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Domain string `json:"domain"`
	Path   string `json:"path"`
}

// MLSessionLinker generates Mercado Livre short links through the affiliate
// program's link-creation endpoint using an authenticated session. The short
// link is taken from the response body of that call, not from rendered page
// state.
//
// Only one resolution runs at a time: the session is an exclusive automated
// identity and parallel calls look like bot traffic to the partner.
type MLSessionLinker struct {
	client     *http.Client
	endpoint   string
	cookieFile string
	timeout    time.Duration

	slot chan struct{}

	mu      sync.RWMutex
	cookies []SessionCookie
}

const defaultCreateLinkEndpoint = "https://www.mercadolivre.com.br/affiliate-program/api/affiliates/v1/createLink"

func NewMLSessionLinker(client *http.Client, cookieFile string, timeout time.Duration) *MLSessionLinker {
	slot := make(chan struct{}, 1)
	slot <- struct{}{}

	return &MLSessionLinker{
		client:     client,
		endpoint:   defaultCreateLinkEndpoint,
		cookieFile: cookieFile,
		timeout:    timeout,
		slot:       slot,
	}
}

// WithEndpoint overrides the link-creation endpoint. Used by tests.
func (l *MLSessionLinker) WithEndpoint(endpoint string) *MLSessionLinker {
	l.endpoint = endpoint
	return l
}

// RefreshSession (re)loads the cookie bundle from disk. Called once at
// startup and again whenever the operator replaces the bundle.
func (l *MLSessionLinker) RefreshSession() error {
	data, err := os.ReadFile(l.cookieFile)
	if err != nil {
		return domain.WrapError(err, errcodes.SessionUnavailable, "session bundle not readable")
	}

	var cookies []SessionCookie
	if err := json.Unmarshal(data, &cookies); err != nil {
		return domain.WrapError(err, errcodes.SessionUnavailable, "session bundle not parsable")
	}

	l.mu.Lock()
	l.cookies = cookies
	l.mu.Unlock()

	return nil
}

// IsAvailable reports whether a session bundle is loaded.
func (l *MLSessionLinker) IsAvailable() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.cookies) > 0
}

type createLinkRequest struct {
	URLs []string `json:"urls"`
}

type createLinkResponse struct {
	URLs []struct {
		ShortURL string `json:"short_url"`
	} `json:"urls"`
}

func (l *MLSessionLinker) Resolve(ctx context.Context, link string) (string, error) {
	if !l.IsAvailable() {
		return "", domain.NewError(errcodes.SessionUnavailable, "no session bundle loaded")
	}

	if productIDPattern.FindString(link) == "" {
		return "", domain.NewError(errcodes.InvalidURL, "no product id in link")
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	// Serialize: at most one session-based resolution at a time.
	select {
	case <-l.slot:
		defer func() { l.slot <- struct{}{} }()
	case <-ctx.Done():
		return "", domain.WrapError(ctx.Err(), errcodes.TimeoutExceeded, "waiting for session slot")
	}

	shortLink, err := l.createLink(ctx, link)
	if err != nil {
		return "", err
	}

	return shortLink, nil
}

func (l *MLSessionLinker) createLink(ctx context.Context, link string) (string, error) {
	body, err := json.Marshal(createLinkRequest{URLs: []string{link}})
	if err != nil {
		return "", fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	l.attachSession(req)

	resp, err := l.client.Do(req)
	if err != nil {
		return "", domain.WrapError(err, errcodes.LinkNotCaptured, "createLink call failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", domain.NewError(errcodes.LinkNotCaptured,
			fmt.Sprintf("createLink returned status %d", resp.StatusCode))
	}

	var decoded createLinkResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", domain.WrapError(err, errcodes.LinkNotCaptured, "createLink response not parsable")
	}

	if len(decoded.URLs) == 0 || decoded.URLs[0].ShortURL == "" {
		return "", domain.NewError(errcodes.LinkNotCaptured, "no short link in createLink response")
	}

	return decoded.URLs[0].ShortURL, nil
}

func (l *MLSessionLinker) attachSession(req *http.Request) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	host := req.URL.Hostname()
	for _, cookie := range l.cookies {
		if cookie.Domain != "" && !matchesDomain(host, cookie.Domain) {
			continue
		}
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}
}

func matchesDomain(host, cookieDomain string) bool {
	cookieDomain = strings.TrimPrefix(cookieDomain, ".")
	return host == cookieDomain || strings.HasSuffix(host, "."+cookieDomain)
}

// FallbackTagger chains the session strategy with a deterministic tagger so
// a failed session resolution still produces a tagged link instead of a
// bare one.
type FallbackTagger struct {
	Primary  Strategy
	Fallback Strategy
}

func (f FallbackTagger) Resolve(ctx context.Context, link string) (string, error) {
	resolved, err := f.Primary.Resolve(ctx, link)
	if err == nil && resolved != "" {
		return resolved, nil
	}

	return f.Fallback.Resolve(ctx, link)
}
