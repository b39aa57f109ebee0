package derive

import (
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map"

	"github.com/napalu/helpscan/types"
)

type mergeEntry struct {
	option      types.Option
	mandatoryIn map[int]struct{}
}

// Merge combines the option lists of alternative usages. Options are grouped by
// alias list and inline values by their position among inline values. A
// grouped option stays mandatory only when every list holds it as mandatory;
// otherwise the first occurrence is kept and made optional.
func Merge(alternatives ...[]types.Option) []types.Option {
	if len(alternatives) == 0 {
		return nil
	}

	groups := orderedmap.New()
	for i, list := range alternatives {
		inline := 0
		for _, o := range list {
			key := o.Key()
			if o.Inline {
				key = "\x00inline:" + strconv.Itoa(inline)
				inline++
			}

			var entry *mergeEntry
			if v, ok := groups.Get(key); ok {
				entry = v.(*mergeEntry)
			} else {
				entry = &mergeEntry{option: o, mandatoryIn: make(map[int]struct{})}
				groups.Set(key, entry)
			}
			if o.Mandatory {
				entry.mandatoryIn[i] = struct{}{}
			}
		}
	}

	merged := make([]types.Option, 0, groups.Len())
	for pair := groups.Oldest(); pair != nil; pair = pair.Next() {
		entry := pair.Value.(*mergeEntry)
		o := entry.option
		o.Mandatory = len(entry.mandatoryIn) == len(alternatives)
		merged = append(merged, o)
	}
	return merged
}
