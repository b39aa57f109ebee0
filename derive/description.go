package derive

import (
	"regexp"
	"strings"

	"github.com/napalu/helpscan/parse"
	"github.com/napalu/helpscan/types"
)

var (
	choicesRegex = regexp.MustCompile(`\(("[^"]*"(?:\|"[^"]*")+)\)`)
	defaultRegex = regexp.MustCompile(`\(default (?:"([^"]*)"|([^)]*))\)`)
)

// FromDescriptionLine reads an option description such as
//
//	-H, --host list          Daemon socket(s) to connect to
//
// An alias list followed by a value yields a Value, a bare alias list yields a
// Flag. Both are optional. Lines that do not start with an alias report false.
func FromDescriptionLine(line string) (types.Option, bool) {
	s := parse.NewScanner(line)

	aliases, attached, ok := takeAliases(s)
	if !ok {
		return types.Option{}, false
	}

	o := types.NewFlag(false, optionTexts(aliases)...)
	o.SingleDash = singleDash(aliases...)
	arg, repeated, valued := takeDescribedValue(s, attached)
	if valued {
		o.Kind = types.Value
		o.Argument = arg
		o.Repeatable = repeated
	} else if attached {
		return types.Option{}, false
	}

	if !s.HasFinished() {
		if _, ok := s.TakeSpacing(); !ok && !valued {
			return types.Option{}, false
		}
		o.Description = strings.TrimSpace(s.Remaining())
	}
	if o.Kind == types.Value {
		o.Choices = choicesIn(o.Description)
		o.Default = defaultIn(o.Description)
	}

	return o, true
}

// takeAliases reads "-x, --long". attached reports an '=' directly after the
// last alias.
func takeAliases(s *parse.Scanner) ([]parse.Token, bool, bool) {
	first, ok := s.TakeOption()
	if !ok {
		return nil, false, false
	}

	aliases := []parse.Token{first}
	aliases = append(aliases, parse.Collect(func() (parse.Token, bool) {
		return parse.TryLookahead(s, func(f *parse.Scanner) (parse.Token, bool) {
			if _, ok := f.TakeComma(); !ok {
				return parse.Token{}, false
			}
			return f.TakeOption()
		})
	})...)

	return aliases, strings.HasSuffix(s.Consumed(), "="), true
}

// singleDash reports whether a multi-letter alias is written with one dash
func singleDash(aliases ...parse.Token) bool {
	for _, t := range aliases {
		if t.IsSingleDashLong() {
			return true
		}
	}
	return false
}

func optionTexts(tokens []parse.Token) []string {
	texts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		texts = append(texts, t.Text)
	}
	return texts
}

type describedValue struct {
	argument string
	repeated bool
}

// takeDescribedValue reads the value named after the aliases. Without '=' it
// must be separated by a single space and followed by the end of the line or
// by the column gap before the description, which is consumed.
func takeDescribedValue(s *parse.Scanner, attached bool) (string, bool, bool) {
	v, ok := parse.TryLookahead(s, func(f *parse.Scanner) (describedValue, bool) {
		if !attached {
			if _, ok := f.TakeOptionalStart(); ok {
				arg, ok := takeValueName(f)
				if !ok {
					return describedValue{}, false
				}
				if _, ok := f.TakeOptionalEnd(); !ok {
					return describedValue{}, false
				}
				return arg, true
			}
			sp, ok := f.TakeSpacing()
			if !ok || sp.Count != 1 {
				return describedValue{}, false
			}
		}

		arg, ok := takeValueName(f)
		if !ok {
			return describedValue{}, false
		}
		if f.HasFinished() {
			return arg, true
		}
		if sp, ok := parse.TryLookahead(f, (*parse.Scanner).TakeSpacing); !ok || sp.Count < 2 {
			return describedValue{}, false
		}
		return arg, true
	})
	return v.argument, v.repeated, ok
}

func takeValueName(s *parse.Scanner) (describedValue, bool) {
	if g, ok := s.TakeGroup(); ok {
		return describedValue{argument: g.Text, repeated: true}, true
	}
	if p, ok := s.TakePlaceholder(); ok {
		return describedValue{argument: p.Text}, true
	}
	if w, ok := s.TakeWord(); ok && w.Text == strings.ToLower(w.Text) {
		return describedValue{argument: w.Text, repeated: s.TakeEllipsis()}, true
	}
	return describedValue{}, false
}

func choicesIn(description string) []string {
	m := choicesRegex.FindStringSubmatch(description)
	if m == nil {
		return nil
	}
	parts := strings.Split(m[1], "|")
	choices := make([]string, 0, len(parts))
	for _, p := range parts {
		choices = append(choices, strings.Trim(p, `"`))
	}
	return choices
}

func defaultIn(description string) string {
	m := defaultRegex.FindStringSubmatch(description)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return m[1]
	}
	return strings.TrimSpace(m[2])
}
