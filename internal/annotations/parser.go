package annotations

import (
	"strings"
	"unicode"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Prefix is the marker that distinguishes plugen annotations from
// ordinary comments.
const Prefix = "plugen::"

// body is the participle grammar for everything after the "plugen::"
// marker: the annotation keyword followed by an optional declared name.
type body struct {
	Kind string `parser:"@Ident"`
	Name string `parser:"( @String | @Ident )?"`
}

// Parser parses plugen annotation comments.
type Parser struct {
	parser *participle.Parser[body]
}

// NewParser builds the annotation parser.
func NewParser() *Parser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "String", Pattern: `"(\\"|[^"])*"`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_.\-]*`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	return &Parser{
		parser: participle.MustBuild[body](
			participle.Lexer(lex),
			participle.Elide("Whitespace"),
		),
	}
}

// IsAnnotation reports whether a comment line carries the plugen marker.
// It does not validate the annotation body.
func IsAnnotation(comment string) bool {
	trimmed := strings.TrimSpace(comment)
	trimmed = strings.TrimPrefix(trimmed, "//")
	trimmed = strings.TrimLeftFunc(trimmed, unicode.IsSpace)
	return strings.HasPrefix(trimmed, Prefix)
}

// ParseAnnotation parses a single annotation comment. The comment must
// start with "//" and contain the "plugen::" marker.
func (p *Parser) ParseAnnotation(comment string, location SourceLocation) (*ParsedAnnotation, error) {
	content, err := p.normalize(comment, location)
	if err != nil {
		return nil, err
	}

	parsed, err := p.parser.ParseString(location.File, content)
	if err != nil {
		return nil, ParseError{
			Message:    "malformed annotation body",
			Location:   location,
			Suggestion: "Use format: //plugen::entrypoint name or //plugen::method name",
		}
	}

	kind, err := ParseAnnotationKind(parsed.Kind)
	if err != nil {
		return nil, ParseError{
			Message:    err.Error(),
			Location:   location,
			Suggestion: "Use one of: entrypoint, method",
		}
	}

	name := stripQuotes(parsed.Name)
	if name == "" {
		return nil, ParseError{
			Message:    "annotation requires a declared name",
			Location:   location,
			Suggestion: "Provide the external name after the keyword, e.g. //plugen::" + kind.String() + " myName",
		}
	}

	return &ParsedAnnotation{
		Kind:     kind,
		Name:     name,
		Location: location,
		Raw:      comment,
	}, nil
}

// normalize strips the comment and plugen:: prefixes
func (p *Parser) normalize(comment string, location SourceLocation) (string, error) {
	input := strings.TrimSpace(comment)

	if !strings.HasPrefix(input, "//") {
		return "", ParseError{
			Message:    "annotation must start with '//'",
			Location:   location,
			Suggestion: "Use format: //plugen::kind name",
		}
	}

	withoutSlashes := strings.TrimLeftFunc(input[2:], unicode.IsSpace)
	if !strings.HasPrefix(withoutSlashes, Prefix) {
		return "", ParseError{
			Message:    "annotation must contain 'plugen::' prefix",
			Location:   location,
			Suggestion: "Use format: //plugen::kind name",
		}
	}

	return strings.TrimSpace(withoutSlashes[len(Prefix):]), nil
}

func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
