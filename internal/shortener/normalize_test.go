package shortener_test

import (
	"testing"

	"github.com/serroba/shortlink-go/internal/shortener"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases scheme and host", "HTTPS://Example.COM/Path", "https://example.com/Path"},
		{"strips default http port", "http://example.com:80/a", "http://example.com/a"},
		{"strips default https port", "https://example.com:443/a", "https://example.com/a"},
		{"keeps explicit port", "https://example.com:8443/a", "https://example.com:8443/a"},
		{"strips trailing slash", "https://example.com/a/b/", "https://example.com/a/b"},
		{"keeps root slash", "https://example.com/", "https://example.com/"},
		{"drops fragment", "https://example.com/a#section", "https://example.com/a"},
		{"keeps query", "https://example.com/a?x=1", "https://example.com/a?x=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := shortener.Normalize(tt.in)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects non-absolute and non-http urls", func(t *testing.T) {
		for _, in := range []string{"", "example.com/path", "/relative", "ftp://example.com", "http://", "ht tp://x"} {
			_, err := shortener.Normalize(in)

			assert.ErrorIs(t, err, shortener.ErrInvalidURL, "input %q", in)
		}
	})
}

func TestKeyFor(t *testing.T) {
	t.Run("equal urls share a key", func(t *testing.T) {
		a := shortener.KeyFor("https://example.com/a")
		b := shortener.KeyFor("https://example.com/a")

		assert.Equal(t, a, b)
		assert.Len(t, string(a), 64)
	})

	t.Run("distinct urls get distinct keys", func(t *testing.T) {
		a := shortener.KeyFor("https://example.com/a")
		b := shortener.KeyFor("https://example.com/b")

		assert.NotEqual(t, a, b)
	})
}
