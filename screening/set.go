package screening

// entryKey is the lookup key: alias-resolved upper-case chain tag plus the
// canonical address form.
type entryKey struct {
	chain   string
	address string
}

// SanctionedSet holds the normalized (chain, address) pairs of one list
// snapshot. Build it once with Add, then share it read-only across any number
// of concurrent Screen calls; it is never mutated after loading. A refresh is
// a swap of the whole set reference, not an in-place update.
type SanctionedSet struct {
	entries map[entryKey]struct{}
}

func NewSanctionedSet() *SanctionedSet {
	return &SanctionedSet{entries: make(map[entryKey]struct{})}
}

// Add canonicalizes the entry with the same rules applied at screening time
// and inserts it. Duplicates collapse; insertion order is irrelevant.
func (s *SanctionedSet) Add(chain, address string) {
	key := entryKey{
		chain:   ResolveChain(chain),
		address: Canonicalize(chain, address),
	}
	s.entries[key] = struct{}{}
}

// Contains reports membership of an already canonicalized address.
func (s *SanctionedSet) Contains(chain, canonicalAddress string) bool {
	_, ok := s.entries[entryKey{chain: ResolveChain(chain), address: canonicalAddress}]
	return ok
}

func (s *SanctionedSet) Len() int {
	return len(s.entries)
}
