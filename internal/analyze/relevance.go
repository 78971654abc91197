package analyze

// Relevant reports whether accesses to the address form a genuine data
// race: either more than one distinct writer thread, or exactly one writer
// with at least one reader that is a different thread. A thread reading
// only its own writes is not a race; a read-only address never is.
//
// The check is address-scoped, not role-scoped: every transition on a racy
// address gets flagged, the reads as well as the writes.
func (s *AccessSets) Relevant(address string) bool {
	writers := s.Writers[address]
	if len(writers) > 1 {
		return true
	}
	if len(writers) == 1 {
		for thread := range s.Readers[address] {
			if _, isWriter := writers[thread]; !isWriter {
				return true
			}
		}
	}
	return false
}
