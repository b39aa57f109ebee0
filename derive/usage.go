// Package derive turns parsed help text into option descriptors.
package derive

import (
	"github.com/napalu/helpscan/parse"
	"github.com/napalu/helpscan/types"
)

// DefaultReservedPlaceholders name placeholders that stand for whole groups of
// arguments rather than a single value
var DefaultReservedPlaceholders = []string{"options", "option", "arguments", "command", "subcommand"}

// FromUsage derives the options a single usage pattern accepts. Placeholders
// named in DefaultReservedPlaceholders or extra are not reported.
func FromUsage(usage parse.Usage, extra ...string) []types.Option {
	reserved := make(map[string]struct{}, len(DefaultReservedPlaceholders)+len(extra))
	for _, names := range [][]string{DefaultReservedPlaceholders, extra} {
		for _, name := range names {
			reserved[parse.Fold(name)] = struct{}{}
		}
	}

	d := usageDeriver{reserved: reserved}
	return d.derive(usage, true)
}

type usageDeriver struct {
	reserved map[string]struct{}
}

func (d usageDeriver) isReserved(name string) bool {
	_, ok := d.reserved[parse.Fold(name)]
	return ok
}

func (d usageDeriver) derive(usage parse.Usage, mandatory bool) []types.Option {
	var options []types.Option
	for i := 0; i < len(usage); i++ {
		c := usage[i]
		switch c.Kind {
		case parse.OptionComponent:
			o := types.NewFlag(mandatory, c.Token.Text)
			o.SingleDash = c.Token.IsSingleDashLong()
			o.Repeatable = c.Repeated
			if i+1 < len(usage) {
				if arg, repeated, ok := d.valueOf(usage[i+1]); ok {
					o.Kind = types.Value
					o.Argument = arg
					o.Repeatable = o.Repeatable || repeated
					i++
				}
			}
			options = append(options, o)
		case parse.PlaceholderComponent, parse.GroupComponent:
			if d.isReserved(c.Token.Text) {
				continue
			}
			o := types.NewInlineValue(c.Token.Text, mandatory)
			o.Repeatable = c.Kind == parse.GroupComponent || c.Repeated
			options = append(options, o)
		case parse.OptionalComponent:
			options = append(options, d.derive(c.Inner, false)...)
		case parse.ChoicesComponent:
			alternatives := make([][]types.Option, 0, len(c.Alternatives))
			for _, alt := range c.Alternatives {
				alternatives = append(alternatives, d.derive(alt, mandatory))
			}
			options = append(options, Merge(alternatives...)...)
		case parse.WordComponent, parse.LeaveEmptyComponent:
		}
	}
	return options
}

// valueOf reports whether c supplies the value of a preceding option: a
// placeholder, a repeatable group, or [PLACEHOLDER] for an optional value
func (d usageDeriver) valueOf(c parse.Component) (string, bool, bool) {
	switch c.Kind {
	case parse.PlaceholderComponent:
		return c.Token.Text, c.Repeated, true
	case parse.GroupComponent:
		return c.Token.Text, true, true
	case parse.OptionalComponent:
		if len(c.Inner) == 1 && !d.isReserved(c.Inner[0].Token.Text) {
			if arg, repeated, ok := d.valueOf(c.Inner[0]); ok {
				return arg, repeated || c.Repeated, true
			}
		}
	}
	return "", false, false
}
