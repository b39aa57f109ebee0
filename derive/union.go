package derive

import "github.com/napalu/helpscan/types"

// Union combines usage-derived options with described ones. A described option
// sharing an alias with a known option is folded into it: aliases are joined
// with the described ones first, the known entry keeps its kind, mandatory and
// inline settings, and only missing metadata is taken from the description.
// Described options matching nothing are appended. Inline values never match.
func Union(usage, described []types.Option) []types.Option {
	result := make([]types.Option, 0, len(usage)+len(described))
	for _, o := range usage {
		if i := indexOverlapping(result, o); i >= 0 {
			result[i] = fold(result[i], o, false)
			continue
		}
		result = append(result, o)
	}

	for _, o := range described {
		if i := indexOverlapping(result, o); i >= 0 {
			result[i] = fold(result[i], o, true)
			result = absorb(result, i)
			continue
		}
		result = append(result, o)
	}
	return result
}

func indexOverlapping(options []types.Option, o types.Option) int {
	if o.Inline {
		return -1
	}
	for i, existing := range options {
		if !existing.Inline && existing.Overlaps(o) {
			return i
		}
	}
	return -1
}

// absorb folds every entry after i that now shares an alias with entry i
func absorb(options []types.Option, i int) []types.Option {
	for j := i + 1; j < len(options); {
		if options[j].Inline || !options[i].Overlaps(options[j]) {
			j++
			continue
		}
		options[i] = fold(options[i], options[j], false)
		options = append(options[:j], options[j+1:]...)
	}
	return options
}

// fold merges other into base. When described is set, other's aliases lead.
func fold(base, other types.Option, described bool) types.Option {
	if described {
		base.Names = unionNames(other.Names, base.Names)
	} else {
		base.Names = unionNames(base.Names, other.Names)
	}
	if base.Kind == types.Value {
		if base.Argument == "" {
			base.Argument = other.Argument
		}
		if len(base.Choices) == 0 {
			base.Choices = other.Choices
		}
	}
	if base.Description == "" {
		base.Description = other.Description
	}
	if base.Default == "" {
		base.Default = other.Default
	}
	base.Repeatable = base.Repeatable || other.Repeatable
	base.SingleDash = base.SingleDash || other.SingleDash
	return base
}

func unionNames(first, second []string) []string {
	names := make([]string, 0, len(first)+len(second))
	seen := make(map[string]struct{}, len(first)+len(second))
	for _, list := range [][]string{first, second} {
		for _, n := range list {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			names = append(names, n)
		}
	}
	return names
}
