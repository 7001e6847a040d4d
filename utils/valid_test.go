package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims surrounding whitespace", "  hello  ", "hello"},
		{"escapes html", "<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{"strips control characters", "ab\x00c\x1bd", "abcd"},
		{"leaves plain text untouched", "Lagos", "Lagos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeInput(tt.input))
		})
	}
}

func TestSanitizeEmail(t *testing.T) {
	t.Run("lowercases and trims", func(t *testing.T) {
		got, err := SanitizeEmail("  User@Example.COM ")
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", got)
	})

	t.Run("rejects malformed addresses", func(t *testing.T) {
		for _, input := range []string{"", "plainaddress", "no@tld", "@example.com", "a b@example.com"} {
			_, err := SanitizeEmail(input)
			assert.Error(t, err, "input %q should be rejected", input)
		}
	})
}

func TestSanitizePhone(t *testing.T) {
	t.Run("strips formatting and keeps the plus prefix", func(t *testing.T) {
		got, err := SanitizePhone("+234 (801) 234-5678")
		require.NoError(t, err)
		assert.Equal(t, "+2348012345678", got)
	})

	t.Run("prepends a plus when missing", func(t *testing.T) {
		got, err := SanitizePhone("2348012345678")
		require.NoError(t, err)
		assert.Equal(t, "+2348012345678", got)
	})

	t.Run("rejects out-of-range lengths", func(t *testing.T) {
		_, err := SanitizePhone("123")
		assert.Error(t, err)

		_, err = SanitizePhone("1234567890123456789")
		assert.Error(t, err)
	})
}
