package annotations

import "fmt"

// AnnotationKind identifies what a plugen annotation marks.
type AnnotationKind int

const (
	// EntryPointAnnotation marks a struct type as a plugin entry point
	EntryPointAnnotation AnnotationKind = iota

	// MethodAnnotation marks a method as externally invocable
	MethodAnnotation
)

// String returns the annotation keyword for the kind
func (k AnnotationKind) String() string {
	switch k {
	case EntryPointAnnotation:
		return "entrypoint"
	case MethodAnnotation:
		return "method"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// ParseAnnotationKind converts an annotation keyword to its kind
func ParseAnnotationKind(s string) (AnnotationKind, error) {
	switch s {
	case "entrypoint":
		return EntryPointAnnotation, nil
	case "method":
		return MethodAnnotation, nil
	default:
		return EntryPointAnnotation, fmt.Errorf("unknown annotation kind: %s", s)
	}
}

// SourceLocation identifies where an annotation was found
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

// ParsedAnnotation is one successfully parsed plugen annotation
type ParsedAnnotation struct {
	Kind     AnnotationKind
	Name     string // declared external name, the single positional parameter
	Location SourceLocation
	Raw      string // original comment text
}

// ParseError is an annotation syntax error with location and a hint
type ParseError struct {
	Message    string
	Location   SourceLocation
	Suggestion string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s. %s",
		e.Location.File, e.Location.Line, e.Location.Column,
		e.Message, e.Suggestion)
}
