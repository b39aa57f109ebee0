package parse

// Section is a titled block of help text. Title is a Word for "Name:" headers
// and a Line for multi-word headers such as "Management Commands:".
type Section struct {
	Title Token
	Lines []Token
}

// OverviewDescription is a help text split into titled sections. FreeLines
// holds the prose found between and after sections, in source order.
type OverviewDescription struct {
	FreeLines []Token
	Sections  []Section
}

// IsUsageTitle reports whether t is the title of a usage section
func IsUsageTitle(t Token) bool {
	return t.IsWord("usage")
}

// TitleText returns the title as plain text regardless of its token kind
func (s Section) TitleText() string {
	return s.Title.Text
}

// UsageSection returns the first section titled "usage"
func (o *OverviewDescription) UsageSection() (Section, bool) {
	for _, section := range o.Sections {
		if IsUsageTitle(section.Title) {
			return section, true
		}
	}
	return Section{}, false
}

// ParseOverview splits text into sections and free lines. It reports false
// when no section could be found.
func ParseOverview(text string) (*OverviewDescription, bool) {
	return TryLookahead(NewScanner(text), takeOverview)
}

func takeOverview(s *Scanner) (*OverviewDescription, bool) {
	type item struct {
		skipped []Token
		section Section
	}

	items := Collect(func() (item, bool) {
		skipped, section, ok := SkipLines(s, takeSection)
		return item{skipped: skipped, section: section}, ok
	})
	if len(items) == 0 {
		return nil, false
	}

	overview := &OverviewDescription{}
	for _, it := range items {
		overview.FreeLines = append(overview.FreeLines, it.skipped...)
		overview.Sections = append(overview.Sections, it.section)
	}
	overview.FreeLines = append(overview.FreeLines, takeLines(s)...)

	return overview, true
}

func takeLines(s *Scanner) []Token {
	return Collect(func() (Token, bool) {
		if l, ok := s.TakeLine(); ok {
			return l, true
		}
		if _, ok := s.TakeEmptyLine(); ok {
			return Token{Kind: Line}, true
		}
		return Token{}, false
	})
}

func takeTitle(s *Scanner) (Token, bool) {
	if title, ok := TryLookahead(s, func(f *Scanner) (Token, bool) {
		w, ok := f.TakeWord()
		if !ok {
			return Token{}, false
		}
		if _, ok := f.TakeColon(); !ok {
			return Token{}, false
		}
		return w, true
	}); ok {
		return title, true
	}
	return s.TakeTitleLine()
}

func takeSection(s *Scanner) (Section, bool) {
	title, ok := takeTitle(s)
	if !ok {
		return Section{}, false
	}

	s.TakeEmptyLine()

	lines := Collect(s.TakeLine)
	if len(lines) == 0 {
		return Section{}, false
	}

	if _, ok := s.TakeEmptyLine(); !ok && !s.HasFinished() {
		return Section{}, false
	}

	return Section{Title: title, Lines: lines}, true
}
