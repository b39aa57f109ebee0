package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usageSection(lines ...string) Section {
	tokens := make([]Token, 0, len(lines))
	for _, l := range lines {
		tokens = append(tokens, Token{Kind: Line, Text: l})
	}
	return Section{Title: Token{Kind: Word, Text: "Usage"}, Lines: tokens}
}

func word(text string) Component {
	return Component{Kind: WordComponent, Token: Token{Kind: Word, Text: text}}
}

func placeholder(name string) Component {
	return Component{Kind: PlaceholderComponent, Token: Token{Kind: Placeholder, Text: name}}
}

func group(name string) Component {
	return Component{Kind: GroupComponent, Token: Token{Kind: Group, Text: name}}
}

func option(name string) Component {
	tok := Token{Kind: Option, Text: name}
	tok.Count = tok.Dashes()
	return Component{Kind: OptionComponent, Token: tok}
}

func optional(inner ...Component) Component {
	return Component{Kind: OptionalComponent, Inner: Usage(inner)}
}

func choices(alternatives ...Usage) Component {
	return Component{Kind: ChoicesComponent, Alternatives: alternatives}
}

func TestParseUsageSection(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []Usage
	}{
		{
			name:  "docker root usage",
			lines: []string{"docker [OPTIONS] COMMAND"},
			want: []Usage{
				{word("docker"), optional(placeholder("OPTIONS")), placeholder("COMMAND")},
			},
		},
		{
			name:  "repeatable group",
			lines: []string{"docker image rm [OPTIONS] IMAGE [IMAGE...]"},
			want: []Usage{
				{word("docker"), word("image"), word("rm"), optional(placeholder("OPTIONS")), placeholder("IMAGE"), optional(group("IMAGE"))},
			},
		},
		{
			name:  "continuation lines join the previous usage",
			lines: []string{"git commit [-a]", "    [--amend] <msg>", "git status"},
			want: []Usage{
				{word("git"), word("commit"), optional(option("a")), optional(option("amend")), placeholder("msg")},
				{word("git"), word("status")},
			},
		},
		{
			name:  "optional choices and bare choices",
			lines: []string{"tool [-v | --verbose] (start|stop)"},
			want: []Usage{
				{
					word("tool"),
					optional(choices(Usage{option("v")}, Usage{option("verbose")})),
					choices(Usage{word("start")}, Usage{word("stop")}),
				},
			},
		},
		{
			name:  "alternatives are whole sequences",
			lines: []string{"tool (-f FILE | -u URL)"},
			want: []Usage{
				{word("tool"), choices(Usage{option("f"), placeholder("FILE")}, Usage{option("u"), placeholder("URL")})},
			},
		},
		{
			name:  "bare alternatives outside brackets",
			lines: []string{"tool start|stop|status"},
			want: []Usage{
				{word("tool"), choices(Usage{word("start")}, Usage{word("stop")}, Usage{word("status")})},
			},
		},
		{
			name:  "empty alternative",
			lines: []string{"tool [fast|]"},
			want: []Usage{
				{word("tool"), optional(choices(Usage{word("fast")}, Usage{{Kind: LeaveEmptyComponent}}))},
			},
		},
		{
			name:  "end of options marker",
			lines: []string{"git add [--] [<pathspec>...]"},
			want: []Usage{
				{word("git"), word("add"), optional(Component{Kind: LeaveEmptyComponent}), optional(group("pathspec"))},
			},
		},
		{
			name:  "repeated optional block",
			lines: []string{"tool [-e NAME]..."},
			want: []Usage{
				{word("tool"), {Kind: OptionalComponent, Inner: Usage{option("e"), placeholder("NAME")}, Repeated: true}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			section := usageSection(tt.lines...)
			got, ok := ParseUsageSection(section)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Usages)
			assert.Equal(t, section, got.Section)
		})
	}
}

func TestParseUsageSection_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{name: "trailing garbage", lines: []string{"docker [OPTIONS] COMMAND", "docker run IMAGE @@"}},
		{name: "unbalanced bracket", lines: []string{"docker [OPTIONS COMMAND"}},
		{name: "unbalanced parenthesis", lines: []string{"tool (a|b"}},
		{name: "prose", lines: []string{"see the manual, for details"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseUsageSection(usageSection(tt.lines...))
			assert.False(t, ok)
			assert.Nil(t, got)
		})
	}
}

func TestParseUsageSection_RequiresUsageTitle(t *testing.T) {
	assert.Panics(t, func() {
		ParseUsageSection(Section{Title: Token{Kind: Word, Text: "Options"}})
	})
	assert.NotPanics(t, func() {
		ParseUsageSection(Section{Title: Token{Kind: Word, Text: "USAGE"}, Lines: []Token{{Kind: Line, Text: "x"}}})
	})
}

func TestUsage_String(t *testing.T) {
	section := usageSection("docker image rm [OPTIONS] IMAGE [IMAGE...]", "tool (-f FILE | -u) [a|b]...")
	got, ok := ParseUsageSection(section)
	require.True(t, ok)

	assert.Equal(t, "docker image rm [<OPTIONS>] <IMAGE> [<IMAGE>...]", got.Usages[0].String())
	assert.Equal(t, "tool (-f <FILE>|-u) [(a|b)]...", got.Usages[1].String())
	assert.Equal(t, []string{"docker", "image", "rm"}, got.Usages[0].LeadingWords())

	got, ok = ParseUsageSection(usageSection("find [-name PATTERN] [--force] [-x]"))
	require.True(t, ok)
	assert.Equal(t, "find [-name <PATTERN>] [--force] [-x]", got.Usages[0].String())
}
