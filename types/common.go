package types

import (
	"errors"
	"fmt"
	"strings"
)

// OptionKind distinguishes options that take a value from plain switches
type OptionKind int

const (
	Flag  OptionKind = iota // Flag denotes an option which does not accept a value
	Value OptionKind = 1    // Value denotes an option followed by a value, or an inline value when Option.Inline is set
)

// ErrUnknownOptionKind is returned when decoding an unrecognized OptionKind
var ErrUnknownOptionKind = errors.New("unknown option kind")

// String returns the string representation of an OptionKind
func (k OptionKind) String() string {
	switch k {
	case Value:
		return "value"
	case Flag:
		fallthrough
	default:
		return "flag"
	}
}

// MarshalText encodes the kind by name
func (k OptionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind previously encoded by MarshalText
func (k *OptionKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "flag":
		*k = Flag
	case "value":
		*k = Value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOptionKind, text)
	}
	return nil
}

// Option describes a single flag or value accepted by a command. Names holds
// the aliases without their leading dashes; it is empty for inline values.
// SingleDash marks options whose long names take one dash, as in "find -name".
type Option struct {
	Kind        OptionKind `json:"kind" yaml:"kind"`
	Names       []string   `json:"names,omitempty" yaml:"names,omitempty"`
	Mandatory   bool       `json:"mandatory" yaml:"mandatory"`
	Inline      bool       `json:"inline,omitempty" yaml:"inline,omitempty"`
	Repeatable  bool       `json:"repeatable,omitempty" yaml:"repeatable,omitempty"`
	Argument    string     `json:"argument,omitempty" yaml:"argument,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Default     string     `json:"default,omitempty" yaml:"default,omitempty"`
	Choices     []string   `json:"choices,omitempty" yaml:"choices,omitempty"`
	SingleDash  bool       `json:"singleDash,omitempty" yaml:"singleDash,omitempty"`
}

// NewFlag creates a Flag option
func NewFlag(mandatory bool, names ...string) Option {
	return Option{Kind: Flag, Names: names, Mandatory: mandatory}
}

// NewValue creates a Value option introduced by one of names
func NewValue(mandatory bool, names ...string) Option {
	return Option{Kind: Value, Names: names, Mandatory: mandatory}
}

// NewInlineValue creates a positional Value named after its placeholder
func NewInlineValue(argument string, mandatory bool) Option {
	return Option{Kind: Value, Mandatory: mandatory, Inline: true, Argument: argument}
}

// Key identifies an option by its full alias list
func (o Option) Key() string {
	return strings.Join(o.Names, ",")
}

// HasName reports whether name is one of the option's aliases
func (o Option) HasName(name string) bool {
	for _, n := range o.Names {
		if n == name {
			return true
		}
	}
	return false
}

// Overlaps reports whether o and other share at least one alias
func (o Option) Overlaps(other Option) bool {
	for _, n := range other.Names {
		if o.HasName(n) {
			return true
		}
	}
	return false
}

// Flags returns the aliases as they are written on a command line, using a
// single dash for one-letter names and for every name when SingleDash is set
func (o Option) Flags() []string {
	flags := make([]string, 0, len(o.Names))
	for _, n := range o.Names {
		if len(n) == 1 || o.SingleDash {
			flags = append(flags, "-"+n)
		} else {
			flags = append(flags, "--"+n)
		}
	}
	return flags
}

func (o Option) String() string {
	var sb strings.Builder
	if o.Inline {
		sb.WriteString("<" + o.Argument + ">")
	} else {
		sb.WriteString(strings.Join(o.Flags(), ", "))
		if o.Kind == Value {
			arg := o.Argument
			if arg == "" {
				arg = "value"
			}
			sb.WriteString(" " + arg)
		}
	}
	if o.Repeatable {
		sb.WriteString("...")
	}
	if !o.Mandatory {
		return "[" + sb.String() + "]"
	}
	return sb.String()
}
