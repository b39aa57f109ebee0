package types

import "strings"

// ShellCommand is the grammar inferred for one command path. SubCommands keep
// the order in which they were listed in the help text.
type ShellCommand struct {
	Name        []string        `json:"name" yaml:"name"`
	SubCommands []*ShellCommand `json:"subCommands,omitempty" yaml:"subCommands,omitempty"`
	Options     []Option        `json:"options,omitempty" yaml:"options,omitempty"`
}

// Path returns the space separated command path
func (c *ShellCommand) Path() string {
	return strings.Join(c.Name, " ")
}

// BaseName returns the last word of the command path
func (c *ShellCommand) BaseName() string {
	if len(c.Name) == 0 {
		return ""
	}
	return c.Name[len(c.Name)-1]
}

// SubCommand returns the direct subcommand whose last path word is name
func (c *ShellCommand) SubCommand(name string) (*ShellCommand, bool) {
	for _, sub := range c.SubCommands {
		if sub.BaseName() == name {
			return sub, true
		}
	}
	return nil, false
}

// Option returns the option with alias name
func (c *ShellCommand) Option(name string) (Option, bool) {
	for _, o := range c.Options {
		if o.HasName(name) {
			return o, true
		}
	}
	return Option{}, false
}

// InlineValues returns the positional values in declaration order
func (c *ShellCommand) InlineValues() []Option {
	var values []Option
	for _, o := range c.Options {
		if o.Inline {
			values = append(values, o)
		}
	}
	return values
}
