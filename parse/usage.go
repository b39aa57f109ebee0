package parse

import (
	"fmt"
	"strings"
)

// ComponentKind identifies the variant held by a Component
type ComponentKind int

const (
	WordComponent        ComponentKind = iota // WordComponent is a literal word such as a command name
	PlaceholderComponent                      // PlaceholderComponent is an argument placeholder
	GroupComponent                            // GroupComponent is a repeatable placeholder
	OptionComponent                           // OptionComponent is a dashed option
	OptionalComponent                         // OptionalComponent is a [...] block
	ChoicesComponent                          // ChoicesComponent is a set of alternatives
	LeaveEmptyComponent                       // LeaveEmptyComponent is an explicit empty slot
)

// String returns the string representation of a ComponentKind
func (k ComponentKind) String() string {
	switch k {
	case WordComponent:
		return "word"
	case PlaceholderComponent:
		return "placeholder"
	case GroupComponent:
		return "group"
	case OptionComponent:
		return "option"
	case OptionalComponent:
		return "optional"
	case ChoicesComponent:
		return "choices"
	case LeaveEmptyComponent:
		return "leave-empty"
	}
	return "unknown"
}

// Component is one element of a usage pattern.
// Token is set for Word, Placeholder, Group and Option components, Inner for
// Optional and Alternatives for Choices. Repeated marks a component followed
// by an ellipsis.
type Component struct {
	Kind         ComponentKind
	Token        Token
	Inner        Usage
	Alternatives []Usage
	Repeated     bool
}

// Usage is one invocation pattern
type Usage []Component

// UsageSection holds every usage pattern found in a usage section
type UsageSection struct {
	Section Section
	Usages  []Usage
}

func (c Component) String() string {
	var s string
	switch c.Kind {
	case WordComponent, PlaceholderComponent, GroupComponent, OptionComponent:
		s = c.Token.String()
	case LeaveEmptyComponent:
		s = "-"
	case OptionalComponent:
		s = "[" + c.Inner.String() + "]"
	case ChoicesComponent:
		alts := make([]string, 0, len(c.Alternatives))
		for _, a := range c.Alternatives {
			alts = append(alts, a.String())
		}
		s = "(" + strings.Join(alts, "|") + ")"
	}
	if c.Repeated {
		s += "..."
	}
	return s
}

func (u Usage) String() string {
	parts := make([]string, 0, len(u))
	for _, c := range u {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " ")
}

// LeadingWords returns the words that start the usage, up to the first
// component of another kind
func (u Usage) LeadingWords() []string {
	var words []string
	for _, c := range u {
		if c.Kind != WordComponent {
			break
		}
		words = append(words, c.Token.Text)
	}
	return words
}

// ParseUsageSection parses every line of a usage section. A line with text left
// over after its last component fails the whole section. Lines that do not
// start with a word continue the previous usage.
//
// ParseUsageSection panics when section is not titled "usage".
func ParseUsageSection(section Section) (*UsageSection, bool) {
	if !IsUsageTitle(section.Title) {
		panic(fmt.Sprintf("parse: section %q is not a usage section", section.TitleText()))
	}

	var usages []Usage
	for _, line := range section.Lines {
		s := NewScanner(line.Text)
		usage := Usage(Collect(func() (Component, bool) { return takeComponent(s) }))
		if len(usage) == 0 || !s.HasFinished() {
			return nil, false
		}

		if len(usages) > 0 && usage[0].Kind != WordComponent {
			last := len(usages) - 1
			usages[last] = append(usages[last], usage...)
			continue
		}
		usages = append(usages, usage)
	}

	return &UsageSection{Section: section, Usages: usages}, true
}

// takeComponent accepts bare a|b|c alternatives on top of a single component
func takeComponent(s *Scanner) (Component, bool) {
	if c, ok := TryLookahead(s, func(f *Scanner) (Component, bool) {
		leading := Collect(func() (Component, bool) {
			return TryLookahead(f, func(g *Scanner) (Component, bool) {
				c, ok := takeSingleComponent(g)
				if !ok {
					return Component{}, false
				}
				if _, ok := g.TakeSeparator(); !ok {
					return Component{}, false
				}
				return c, true
			})
		})
		if len(leading) == 0 {
			return Component{}, false
		}
		last, ok := takeSingleComponent(f)
		if !ok {
			return Component{}, false
		}
		alternatives := make([]Usage, 0, len(leading)+1)
		for _, c := range append(leading, last) {
			alternatives = append(alternatives, Usage{c})
		}
		return Component{Kind: ChoicesComponent, Alternatives: alternatives}, true
	}); ok {
		return c, true
	}

	return takeSingleComponent(s)
}

func takeSingleComponent(s *Scanner) (Component, bool) {
	c, ok := takeAtom(s)
	if !ok {
		return Component{}, false
	}
	if c.Kind != GroupComponent && s.TakeEllipsis() {
		c.Repeated = true
	}
	return c, true
}

func takeAtom(s *Scanner) (Component, bool) {
	if t, ok := s.TakeGroup(); ok {
		return Component{Kind: GroupComponent, Token: t}, true
	}
	if t, ok := s.TakePlaceholder(); ok {
		return Component{Kind: PlaceholderComponent, Token: t}, true
	}
	if t, ok := s.TakeWord(); ok {
		return Component{Kind: WordComponent, Token: t}, true
	}
	if t, ok := s.TakeOption(); ok {
		return Component{Kind: OptionComponent, Token: t}, true
	}
	if s.TakeLeaveEmpty() {
		return Component{Kind: LeaveEmptyComponent}, true
	}

	if inner, ok := TryLookahead(s, func(f *Scanner) (Usage, bool) {
		if _, ok := f.TakeOptionalStart(); !ok {
			return nil, false
		}
		alternatives, ok := takeAlternatives(f)
		if !ok {
			return nil, false
		}
		if _, ok := f.TakeOptionalEnd(); !ok {
			return nil, false
		}
		if len(alternatives) == 1 {
			return alternatives[0], true
		}
		return Usage{{Kind: ChoicesComponent, Alternatives: alternatives}}, true
	}); ok {
		return Component{Kind: OptionalComponent, Inner: inner}, true
	}

	if alternatives, ok := TryLookahead(s, func(f *Scanner) ([]Usage, bool) {
		if _, ok := f.TakeChoicesStart(); !ok {
			return nil, false
		}
		alternatives, ok := takeAlternatives(f)
		if !ok {
			return nil, false
		}
		if _, ok := f.TakeChoicesEnd(); !ok {
			return nil, false
		}
		return alternatives, true
	}); ok {
		return Component{Kind: ChoicesComponent, Alternatives: alternatives}, true
	}

	return Component{}, false
}

// takeAlternatives reads '|'-separated sequences inside brackets or parentheses.
// An empty alternative stands for LeaveEmpty.
func takeAlternatives(s *Scanner) ([]Usage, bool) {
	var alternatives []Usage
	for {
		usage := Usage(Collect(func() (Component, bool) { return takeSingleComponent(s) }))
		_, separated := s.TakeSeparator()
		if len(usage) == 0 {
			if !separated && len(alternatives) == 0 {
				return nil, false
			}
			usage = Usage{{Kind: LeaveEmptyComponent}}
		}
		alternatives = append(alternatives, usage)
		if !separated {
			return alternatives, true
		}
	}
}
