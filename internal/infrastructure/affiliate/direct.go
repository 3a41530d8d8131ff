package affiliate

import (
	"context"
	"net/url"

	"deal_hunter/internal/domain"
	"deal_hunter/pkg/errcodes"
)

// DirectTagger appends a partner tag as a query parameter. It is
// deterministic and idempotent: tagging an already-tagged URL is a no-op,
// and the separator follows from whether a query string already exists.
type DirectTagger struct {
	Param string
	Tag   string
}

func (t DirectTagger) Resolve(_ context.Context, link string) (string, error) {
	parsed, err := url.Parse(link)
	if err != nil {
		return "", domain.WrapError(err, errcodes.InvalidURL, "unparsable deal link")
	}

	query := parsed.Query()
	if query.Get(t.Param) == t.Tag {
		return link, nil
	}

	query.Set(t.Param, t.Tag)
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}
