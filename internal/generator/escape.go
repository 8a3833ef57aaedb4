package generator

import "strings"

var literalEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"\"", "\\\"",
	"\n", "\\n",
	"\r", "\\r",
)

// EscapeLiteral escapes a value for embedding inside a double-quoted
// string literal: backslash, double quote, newline and carriage return.
func EscapeLiteral(s string) string {
	return literalEscaper.Replace(s)
}
