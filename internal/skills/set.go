package skills

// Set is a canonical skill set built by Normalizer.Set.
//
// Besides the deduplicated members it keeps the number of non-blank skills the
// candidate declared before deduplication. The eligibility breadth bonus is
// computed from that raw count, so listing "js" and "javascript" counts twice.
type Set struct {
	members  map[string]struct{}
	order    []string
	declared int
}

// Has reports whether the canonical skill is a member of the set.
func (s Set) Has(skill string) bool {
	_, ok := s.members[skill]
	return ok
}

// Len returns the number of distinct canonical skills.
func (s Set) Len() int {
	return len(s.order)
}

// Declared returns the raw count of non-blank declared skills.
func (s Set) Declared() int {
	return s.declared
}

// Skills returns the distinct canonical skills in first-seen order.
func (s Set) Skills() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
