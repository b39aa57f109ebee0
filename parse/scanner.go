package parse

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

var (
	wordRegex          = regexp.MustCompile(`^[^\S\r\n]*([a-zA-Z][a-zA-Z0-9_-]*)\b`)
	lineRegex          = regexp.MustCompile(`^[^\S\r\n]*(\S.*)(?:\n|$)`)
	titleLineRegex     = regexp.MustCompile(`^[^\S\r\n]*([A-Za-z][A-Za-z0-9 _-]*?)[^\S\r\n]*:[^\S\r\n]*(?:\n|$)`)
	optionRegex        = regexp.MustCompile(`^[^\S\r\n]*(-{1,2})([a-zA-Z0-9][a-zA-Z0-9_-]*)\b=?`)
	placeholderRegex   = regexp.MustCompile(`^[^\S\r\n]*(?:<([a-zA-Z][a-zA-Z0-9_.-]*)>|([A-Z][A-Z0-9_-]*)\b)`)
	leaveEmptyRegex    = regexp.MustCompile(`^[^\S\r\n]*-{1,2}(?:[\s|)\]]|$)`)
	ellipsisRegex      = regexp.MustCompile(`^[^\S\r\n]*\.{3}`)
	spacingRegex       = regexp.MustCompile(`^([^\S\r\n]+)`)
	colonRegex         = regexp.MustCompile(`^[^\S\r\n]*:`)
	commaRegex         = regexp.MustCompile(`^[^\S\r\n]*,`)
	emptyLineRegex     = regexp.MustCompile(`^([^\S\r\n]*\r?\n)+`)
	choicesStartRegex  = regexp.MustCompile(`^[^\S\r\n]*\(`)
	choicesEndRegex    = regexp.MustCompile(`^[^\S\r\n]*\)`)
	separatorRegex     = regexp.MustCompile(`^[^\S\r\n]*\|`)
	optionalStartRegex = regexp.MustCompile(`^[^\S\r\n]*\[=?`)
	optionalEndRegex   = regexp.MustCompile(`^[^\S\r\n]*]`)
)

// Scanner is a cursor over immutable text. Take methods either match at the
// current position and advance, or leave the cursor untouched.
type Scanner struct {
	text string
	pos  int
}

// NewScanner creates a Scanner positioned at the start of text
func NewScanner(text string) *Scanner {
	return &Scanner{text: text}
}

// Remaining returns the text that has not been consumed yet
func (s *Scanner) Remaining() string {
	return s.text[s.pos:]
}

// Consumed returns the text consumed so far
func (s *Scanner) Consumed() string {
	return s.text[:s.pos]
}

// HasFinished reports whether only whitespace remains
func (s *Scanner) HasFinished() bool {
	return strings.TrimSpace(s.Remaining()) == ""
}

func (s *Scanner) fork() *Scanner {
	return &Scanner{text: s.text, pos: s.pos}
}

// TryLookahead runs f against a copy of s. The copy's position is committed to
// s only when f succeeds.
func TryLookahead[T any](s *Scanner, f func(*Scanner) (T, bool)) (T, bool) {
	fork := s.fork()
	v, ok := f(fork)
	if ok {
		s.pos = fork.pos
	}
	return v, ok
}

// Collect calls f until it reports no match and returns the matches in order
func Collect[T any](f func() (T, bool)) []T {
	var out []T
	for {
		v, ok := f()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// SkipLines discards whole lines until until matches. The skipped lines are
// returned in order, blank lines as empty Line tokens. When until never
// matches, nothing is consumed.
func SkipLines[T any](s *Scanner, until func(*Scanner) (T, bool)) ([]Token, T, bool) {
	type skipped struct {
		lines []Token
		value T
	}
	r, ok := TryLookahead(s, func(f *Scanner) (skipped, bool) {
		var lines []Token
		for {
			if v, ok := TryLookahead(f, until); ok {
				return skipped{lines: lines, value: v}, true
			}
			if f.HasFinished() {
				return skipped{}, false
			}
			if l, ok := f.TakeLine(); ok {
				lines = append(lines, l)
				continue
			}
			if _, ok := f.TakeEmptyLine(); ok {
				lines = append(lines, Token{Kind: Line})
				continue
			}
			return skipped{}, false
		}
	})
	return r.lines, r.value, ok
}

func (s *Scanner) take(re *regexp.Regexp) ([]string, bool) {
	m := re.FindStringSubmatch(s.Remaining())
	if m == nil {
		return nil, false
	}
	s.pos += len(m[0])
	return m, true
}

// TakeWord matches a bare identifier
func (s *Scanner) TakeWord() (Token, bool) {
	m, ok := s.take(wordRegex)
	if !ok {
		return Token{}, false
	}
	return Token{Kind: Word, Text: m[1]}, true
}

// TakeLine matches the rest of a non-blank line including its newline
func (s *Scanner) TakeLine() (Token, bool) {
	m, ok := s.take(lineRegex)
	if !ok {
		return Token{}, false
	}
	return Token{Kind: Line, Text: strings.TrimRight(m[1], " \t\r")}, true
}

// TakeTitleLine matches a line made of words ending in a colon, such as
// "Management Commands:". The title is returned as a Line token.
func (s *Scanner) TakeTitleLine() (Token, bool) {
	m, ok := s.take(titleLineRegex)
	if !ok {
		return Token{}, false
	}
	return Token{Kind: Line, Text: m[1]}, true
}

// TakeOption matches -name or --name. A directly attached '=' is consumed too.
// Count holds the number of dashes.
func (s *Scanner) TakeOption() (Token, bool) {
	m, ok := s.take(optionRegex)
	if !ok {
		return Token{}, false
	}
	return Token{Kind: Option, Text: m[2], Count: len(m[1])}, true
}

// TakePlaceholder matches <name> or an all-uppercase word
func (s *Scanner) TakePlaceholder() (Token, bool) {
	m, ok := s.take(placeholderRegex)
	if !ok {
		return Token{}, false
	}
	name := m[1]
	if name == "" {
		name = m[2]
	}
	return Token{Kind: Placeholder, Text: name}, true
}

// TakeGroup matches a placeholder directly followed by "..."
func (s *Scanner) TakeGroup() (Token, bool) {
	return TryLookahead(s, func(f *Scanner) (Token, bool) {
		p, ok := f.TakePlaceholder()
		if !ok {
			return Token{}, false
		}
		if _, ok := f.take(ellipsisRegex); !ok {
			return Token{}, false
		}
		return Token{Kind: Group, Text: p.Text}, true
	})
}

// TakeEllipsis matches "..."
func (s *Scanner) TakeEllipsis() bool {
	_, ok := s.take(ellipsisRegex)
	return ok
}

// TakeLeaveEmpty matches a lone "-" or "--" used as an explicit empty slot.
// The delimiter that ends the marker is not consumed.
func (s *Scanner) TakeLeaveEmpty() bool {
	loc := leaveEmptyRegex.FindStringIndex(s.Remaining())
	if loc == nil {
		return false
	}
	rest := s.Remaining()[:loc[1]]
	s.pos += len(strings.TrimRight(rest, " \t\r\n|)]"))
	return true
}

// TakeSpacing matches a run of non-newline whitespace
func (s *Scanner) TakeSpacing() (Token, bool) {
	m, ok := s.take(spacingRegex)
	if !ok {
		return Token{}, false
	}
	return Token{Kind: Spacing, Count: len(m[1])}, true
}

func (s *Scanner) takeSymbol(re *regexp.Regexp, kind Kind) (Token, bool) {
	if _, ok := s.take(re); !ok {
		return Token{}, false
	}
	return Token{Kind: kind}, true
}

func (s *Scanner) TakeColon() (Token, bool)     { return s.takeSymbol(colonRegex, Colon) }
func (s *Scanner) TakeComma() (Token, bool)     { return s.takeSymbol(commaRegex, Comma) }
func (s *Scanner) TakeEmptyLine() (Token, bool) { return s.takeSymbol(emptyLineRegex, EmptyLine) }
func (s *Scanner) TakeSeparator() (Token, bool) { return s.takeSymbol(separatorRegex, Separator) }

func (s *Scanner) TakeChoicesStart() (Token, bool) {
	return s.takeSymbol(choicesStartRegex, ChoicesStart)
}

func (s *Scanner) TakeChoicesEnd() (Token, bool) {
	return s.takeSymbol(choicesEndRegex, ChoicesEnd)
}

func (s *Scanner) TakeOptionalStart() (Token, bool) {
	return s.takeSymbol(optionalStartRegex, OptionalStart)
}

func (s *Scanner) TakeOptionalEnd() (Token, bool) {
	return s.takeSymbol(optionalEndRegex, OptionalEnd)
}

// Fold returns the case-folded form of s used for all title and keyword comparisons
func Fold(s string) string {
	return cases.Fold().String(s)
}
