package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	service "deal_hunter/internal/domain/service/deal"
)

func TestSampler(t *testing.T) {
	rq := require.New(t)

	keywords := []string{"furadeira impacto", "trena laser", "smartwatch", "power bank", "dashcam"}

	sampler := service.NewSampler(42)
	picked := sampler.Sample(keywords, 3)
	rq.Len(picked, 3)

	seen := map[string]bool{}
	for _, keyword := range picked {
		rq.Contains(keywords, keyword)
		rq.False(seen[keyword], "duplicate draw")
		seen[keyword] = true
	}

	// Same seed, same draw.
	again := service.NewSampler(42).Sample(keywords, 3)
	rq.Equal(picked, again)

	// n capped at the keyword count, input untouched.
	all := sampler.Sample(keywords, 10)
	rq.Len(all, 5)
	rq.Equal("furadeira impacto", keywords[0])

	rq.Nil(sampler.Sample(keywords, 0))
	rq.Nil(sampler.Sample(nil, 3))
}
