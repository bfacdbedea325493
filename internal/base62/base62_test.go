package base62_test

import (
	"testing"

	"github.com/serroba/shortlink-go/internal/base62"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		id   int64
		want string
	}{
		{"zero", 0, "0"},
		{"one", 1, "1"},
		{"nine", 9, "9"},
		{"ten", 10, "A"},
		{"sixty one", 61, "z"},
		{"sixty two", 62, "10"},
		{"large", 123456789, "8M0kX"},
		{"max id", base62.MaxID, "zzzzzzzzzz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := base62.Encode(tt.id)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), base62.MaxLen)
		})
	}

	t.Run("rejects negative id", func(t *testing.T) {
		_, err := base62.Encode(-1)

		assert.ErrorIs(t, err, base62.ErrCapacityExceeded)
	})

	t.Run("rejects id beyond capacity", func(t *testing.T) {
		_, err := base62.Encode(base62.MaxID + 1)

		assert.ErrorIs(t, err, base62.ErrCapacityExceeded)
	})
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want int64
	}{
		{"zero", "0", 0},
		{"ten", "A", 10},
		{"sixty two", "10", 62},
		{"large", "8M0kX", 123456789},
		{"max", "zzzzzzzzzz", base62.MaxID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := base62.Decode(tt.code)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects invalid input", func(t *testing.T) {
		for _, code := range []string{"", "abc!", "has space", "_", "zzzzzzzzzzz"} {
			_, err := base62.Decode(code)

			assert.ErrorIs(t, err, base62.ErrInvalidCode, "code %q", code)
		}
	})
}

func TestRoundTrip(t *testing.T) {
	ids := []int64{0, 1, 61, 62, 3843, 123456, 1 << 32, 1 << 40, base62.MaxID - 1, base62.MaxID}

	for _, id := range ids {
		code, err := base62.Encode(id)
		require.NoError(t, err)

		decoded, err := base62.Decode(code)
		require.NoError(t, err)

		assert.Equal(t, id, decoded, "round trip for %d via %q", id, code)
	}
}

func TestEncodeInjective(t *testing.T) {
	seen := make(map[string]int64)

	for id := int64(0); id < 5000; id++ {
		code, err := base62.Encode(id)
		require.NoError(t, err)

		prev, dup := seen[code]
		require.False(t, dup, "code %q produced by both %d and %d", code, prev, id)

		seen[code] = id
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, base62.IsValid("mylink"))
	assert.True(t, base62.IsValid("0"))
	assert.True(t, base62.IsValid("zzzzzzzzzz"))
	assert.False(t, base62.IsValid(""))
	assert.False(t, base62.IsValid("too-long-alias"))
	assert.False(t, base62.IsValid("my_link"))
	assert.False(t, base62.IsValid("my link"))
}
