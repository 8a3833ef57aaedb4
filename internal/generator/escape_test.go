package generator

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEscapeLiteral(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text", "hello world", "hello world"},
		{"double quote", `say "hi"`, `say \"hi\"`},
		{"backslash", `C:\path`, `C:\\path`},
		{"newline", "line1\nline2", `line1\nline2`},
		{"carriage return", "line1\r\nline2", `line1\r\nline2`},
		{"backslash before quote", `\"`, `\\\"`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeLiteral(tt.input))
		})
	}
}

func TestEscapeLiteral_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		original := rapid.String().Draw(t, "original")

		unquoted, err := strconv.Unquote(`"` + EscapeLiteral(original) + `"`)
		require.NoError(t, err)
		require.Equal(t, original, unquoted)
	})
}
