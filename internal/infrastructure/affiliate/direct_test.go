package affiliate_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"deal_hunter/internal/infrastructure/affiliate"
)

func TestDirectTagger(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	tagger := affiliate.DirectTagger{Param: "tag", Tag: "promo-20"}

	testCases := []struct {
		name string
		link string
	}{
		{
			name: "no query string",
			link: "https://www.amazon.com.br/dp/B0ABCD1234",
		},
		{
			name: "existing query string",
			link: "https://www.amazon.com.br/dp/B0ABCD1234?ref=sr_1_3",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tagged, err := tagger.Resolve(ctx, tc.link)
			rq.NoError(err)

			parsed, err := url.Parse(tagged)
			rq.NoError(err)
			rq.Equal("promo-20", parsed.Query().Get("tag"))

			// Pre-existing params survive.
			original, err := url.Parse(tc.link)
			rq.NoError(err)
			for key, values := range original.Query() {
				rq.Equal(values, parsed.Query()[key])
			}

			// Idempotent: tagging a tagged URL is a no-op.
			again, err := tagger.Resolve(ctx, tagged)
			rq.NoError(err)
			rq.Equal(tagged, again)
		})
	}
}

func TestDirectTaggerInvalidURL(t *testing.T) {
	rq := require.New(t)

	tagger := affiliate.DirectTagger{Param: "p", Tag: "ml-id"}

	_, err := tagger.Resolve(context.Background(), "http://[::1]:bad")
	rq.Error(err)
}
