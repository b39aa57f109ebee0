package parse

import "strings"

// Kind identifies the lexical rule a Token was produced by
type Kind int

const (
	Word          Kind = iota // Word is a bare identifier such as "docker" or "Usage"
	Line                      // Line is a full line of text with surrounding whitespace removed
	Option                    // Option is an identifier preceded by one or two dashes
	Placeholder               // Placeholder is <name> or an all-uppercase word
	Group                     // Group is a Placeholder followed by an ellipsis
	Spacing                   // Spacing is a run of non-newline whitespace
	Colon                     // Colon is ':'
	Comma                     // Comma is ','
	EmptyLine                 // EmptyLine is a run of blank lines
	ChoicesStart              // ChoicesStart is '('
	ChoicesEnd                // ChoicesEnd is ')'
	Separator                 // Separator is '|'
	OptionalStart             // OptionalStart is '['
	OptionalEnd               // OptionalEnd is ']'
)

// String returns the string representation of a Kind
func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case Line:
		return "line"
	case Option:
		return "option"
	case Placeholder:
		return "placeholder"
	case Group:
		return "group"
	case Spacing:
		return "spacing"
	case Colon:
		return "colon"
	case Comma:
		return "comma"
	case EmptyLine:
		return "empty-line"
	case ChoicesStart:
		return "choices-start"
	case ChoicesEnd:
		return "choices-end"
	case Separator:
		return "separator"
	case OptionalStart:
		return "optional-start"
	case OptionalEnd:
		return "optional-end"
	}
	return "unknown"
}

// Token is a single lexical atom. Text holds the matched identifier or line for
// Word, Line, Option, Placeholder and Group (where it is the placeholder name).
// Count holds the number of whitespace characters for Spacing and the number of
// leading dashes for Option.
type Token struct {
	Kind  Kind
	Text  string
	Count int
}

// IsWord reports whether t is a Word token whose text case-folds to word
func (t Token) IsWord(word string) bool {
	return t.Kind == Word && Fold(t.Text) == Fold(word)
}

// Dashes returns the number of dashes an Option is written with. Tokens built
// without a count follow the usual convention: one dash for single letters,
// two otherwise.
func (t Token) Dashes() int {
	if t.Count > 0 {
		return t.Count
	}
	if len(t.Text) == 1 {
		return 1
	}
	return 2
}

// IsSingleDashLong reports whether t is a multi-letter option written with a
// single dash, as in "find -name"
func (t Token) IsSingleDashLong() bool {
	return t.Kind == Option && len(t.Text) > 1 && t.Dashes() == 1
}

func (t Token) String() string {
	switch t.Kind {
	case Word, Line:
		return t.Text
	case Option:
		return strings.Repeat("-", t.Dashes()) + t.Text
	case Placeholder:
		return "<" + t.Text + ">"
	case Group:
		return "<" + t.Text + ">..."
	case Spacing:
		return strings.Repeat(" ", t.Count)
	case Colon:
		return ":"
	case Comma:
		return ","
	case EmptyLine:
		return "\n"
	case ChoicesStart:
		return "("
	case ChoicesEnd:
		return ")"
	case Separator:
		return "|"
	case OptionalStart:
		return "["
	case OptionalEnd:
		return "]"
	}
	return ""
}
