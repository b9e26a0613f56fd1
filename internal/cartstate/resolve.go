package cartstate

import "jewelcart/internal/domain"

// findLine locates an existing line matching the candidate, in priority
// order: server-assigned id when both sides carry one, then the canonical
// (product, option) key, then the guest-local id. Returns -1 when nothing
// matches. A candidate without an option and a line whose option was never
// set compare equal; a present-but-different option never matches.
func findLine(lines []domain.Line, candidate domain.Line) int {
	if candidate.RemoteID != 0 {
		for i, l := range lines {
			if l.RemoteID == candidate.RemoteID {
				return i
			}
		}
	}
	if candidate.ProductID != 0 {
		key := candidate.Key()
		for i, l := range lines {
			if l.Key() == key {
				return i
			}
		}
	}
	if candidate.LocalID != "" {
		for i, l := range lines {
			if l.LocalID == candidate.LocalID {
				return i
			}
		}
	}
	return -1
}

func findEntry(entries []domain.WishlistEntry, candidate domain.WishlistEntry) int {
	if candidate.RemoteID != 0 {
		for i, e := range entries {
			if e.RemoteID == candidate.RemoteID {
				return i
			}
		}
	}
	if candidate.ProductID != 0 {
		key := candidate.Key()
		for i, e := range entries {
			if e.Key() == key {
				return i
			}
		}
	}
	if candidate.LocalID != "" {
		for i, e := range entries {
			if e.LocalID == candidate.LocalID {
				return i
			}
		}
	}
	return -1
}

// matchRef reports whether a removal/update ref designates the line. Any
// populated identifier is a candidate; callers do not reliably know which
// kind of id they hold, so matching is deliberately identifier-agnostic.
func matchRef(l domain.Line, ref domain.LineRef) bool {
	if ref.LocalID != "" && l.LocalID == ref.LocalID {
		return true
	}
	if ref.RemoteID != 0 && l.RemoteID == ref.RemoteID {
		return true
	}
	if ref.ProductID != 0 && l.ProductID == ref.ProductID {
		if ref.OptionID == "" || ref.OptionID == l.OptionID {
			return true
		}
	}
	return false
}

func matchEntryRef(e domain.WishlistEntry, ref domain.LineRef) bool {
	if ref.LocalID != "" && e.LocalID == ref.LocalID {
		return true
	}
	if ref.RemoteID != 0 && e.RemoteID == ref.RemoteID {
		return true
	}
	if ref.ProductID != 0 && e.ProductID == ref.ProductID {
		if ref.OptionID == "" || ref.OptionID == e.OptionID {
			return true
		}
	}
	return false
}
