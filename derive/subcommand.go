package derive

import (
	"strings"

	"github.com/napalu/helpscan/parse"
	"github.com/napalu/helpscan/types"
)

// SubcommandName reports the command listed by a line such as
//
//	builder     Manage builds
//
// The name must be followed by at least two spaces and further text.
func SubcommandName(line string) (string, bool) {
	s := parse.NewScanner(line)
	w, ok := s.TakeWord()
	if !ok {
		return "", false
	}
	sp, ok := s.TakeSpacing()
	if !ok || sp.Count < 2 || s.HasFinished() {
		return "", false
	}
	return w.Text, true
}

// ListsSubcommands reports whether a section may list subcommands. Usage
// sections and sections about options or flags do not.
func ListsSubcommands(section parse.Section) bool {
	if parse.IsUsageTitle(section.Title) {
		return false
	}
	title := parse.Fold(section.TitleText())
	return !strings.Contains(title, "option") && !strings.Contains(title, "flag")
}

// Subcommands returns the subcommand names listed across sections, in order of
// first appearance
func Subcommands(sections []parse.Section) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, section := range sections {
		if !ListsSubcommands(section) {
			continue
		}
		for _, line := range section.Lines {
			name, ok := SubcommandName(line.Text)
			if !ok {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// Described returns the options described by the lines of every non-usage
// section, in order of appearance
func Described(sections []parse.Section) []types.Option {
	var options []types.Option
	for _, section := range sections {
		if parse.IsUsageTitle(section.Title) {
			continue
		}
		for _, line := range section.Lines {
			if o, ok := FromDescriptionLine(line.Text); ok {
				options = append(options, o)
			}
		}
	}
	return options
}
