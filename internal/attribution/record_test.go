package attribution_test

import (
	"net/url"
	"testing"

	"go-attribution/internal/attribution"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	q, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return q
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  attribution.Record
	}{
		{
			name:  "no parameters",
			query: "",
			want:  attribution.Record{},
		},
		{
			name:  "only unknown parameters",
			query: "ref=twitter&gclid=abc&utm_id=7",
			want:  attribution.Record{},
		},
		{
			name:  "newsletter campaign",
			query: "utm_source=newsletter&utm_campaign=spring&utm_medium=email",
			want: attribution.Record{
				attribution.Source:   "newsletter",
				attribution.Campaign: "spring",
				attribution.Medium:   "email",
			},
		},
		{
			name:  "all five keys",
			query: "utm_source=g&utm_medium=cpc&utm_campaign=c&utm_content=ad1&utm_term=go+dev",
			want: attribution.Record{
				attribution.Source:   "g",
				attribution.Medium:   "cpc",
				attribution.Campaign: "c",
				attribution.Content:  "ad1",
				attribution.Term:     "go dev",
			},
		},
		{
			name:  "empty values are absent",
			query: "utm_source=&utm_medium=social&utm_term",
			want:  attribution.Record{attribution.Medium: "social"},
		},
		{
			name:  "unknown mixed with known",
			query: "utm_content=hero&page=2",
			want:  attribution.Record{attribution.Content: "hero"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := attribution.Extract(mustQuery(t, tt.query))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_EverySubsetMapsExactly(t *testing.T) {
	for mask := 0; mask < 1<<len(attribution.Keys); mask++ {
		q := url.Values{}
		want := attribution.Record{}
		for i, k := range attribution.Keys {
			if mask&(1<<i) != 0 {
				q.Set(k.Param(), "v-"+string(k))
				want[k] = "v-" + string(k)
			}
		}
		q.Set("utm_unknown", "ignored")

		assert.Equal(t, want, attribution.Extract(q), "mask %05b", mask)
	}
}

func TestExtract_NilParams_ReturnsEmpty(t *testing.T) {
	got := attribution.Extract(nil)

	assert.NotNil(t, got)
	assert.True(t, got.Empty())
}

func TestRecord_Clone_IsIndependent(t *testing.T) {
	r := attribution.Record{attribution.Source: "a"}

	c := r.Clone()
	c[attribution.Source] = "b"

	assert.Equal(t, "a", r.Get(attribution.Source))
	assert.Equal(t, "b", c.Get(attribution.Source))
}

func TestRecord_Known_DropsUnknownKeysAndEmptyValues(t *testing.T) {
	r := attribution.Record{
		attribution.Source: "newsletter",
		attribution.Medium: "",
		"gclid":            "abc",
	}

	assert.Equal(t, attribution.Record{attribution.Source: "newsletter"}, r.Known())
}
