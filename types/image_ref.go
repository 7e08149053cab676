package types

import (
	"sort"
)

// ImageRef identifies one photo in the media index. It is a value type and is never
// mutated after enumeration.
type ImageRef struct {
	Id       string
	Location string
	AddedTs  int64 // milliseconds
}

// String is the key the thumbnail cache stores the ref under.
func (r ImageRef) String() string {
	return r.Location
}

// SortNewestFirst orders refs by descending AddedTs, breaking ties by location.
func SortNewestFirst(refs []ImageRef) {
	sort.SliceStable(refs, func(i, j int) bool {
		if refs[i].AddedTs != refs[j].AddedTs {
			return refs[i].AddedTs > refs[j].AddedTs
		}
		return refs[i].Location < refs[j].Location
	})
}
