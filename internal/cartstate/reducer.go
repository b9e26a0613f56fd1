// Package cartstate holds the pure state transitions for the three client
// collections (cart, wishlist, video cart). Nothing here performs I/O; the
// sync engine layers persistence and remote calls on top.
package cartstate

import "jewelcart/internal/domain"

// State is the full client-side collection set.
type State struct {
	Cart      []domain.Line
	Wishlist  []domain.WishlistEntry
	VideoCart []domain.Line
}

// Clone returns a deep copy safe to hand to callers.
func (s State) Clone() State {
	out := State{}
	if s.Cart != nil {
		out.Cart = append([]domain.Line(nil), s.Cart...)
	}
	if s.Wishlist != nil {
		out.Wishlist = append([]domain.WishlistEntry(nil), s.Wishlist...)
	}
	if s.VideoCart != nil {
		out.VideoCart = append([]domain.Line(nil), s.VideoCart...)
	}
	return out
}

// AddLine merges the item into the collection. A line with the same identity
// has its quantity incremented by qty; otherwise the item is appended with
// quantity qty. Non-positive qty counts as 1. The (product, option)
// uniqueness invariant holds on every return value.
func AddLine(lines []domain.Line, item domain.Line, qty int) []domain.Line {
	if qty <= 0 {
		qty = 1
	}
	if i := findLine(lines, item); i >= 0 {
		out := append([]domain.Line(nil), lines...)
		out[i].Quantity += qty
		if out[i].RemoteID == 0 && item.RemoteID != 0 {
			out[i].RemoteID = item.RemoteID
		}
		return out
	}
	item.Quantity = qty
	return append(append([]domain.Line(nil), lines...), item)
}

// RemoveLine drops every line the ref designates.
func RemoveLine(lines []domain.Line, ref domain.LineRef) []domain.Line {
	out := make([]domain.Line, 0, len(lines))
	for _, l := range lines {
		if !matchRef(l, ref) {
			out = append(out, l)
		}
	}
	return out
}

// SetQuantity replaces the quantity of the designated line. A quantity of
// zero or less removes the line instead.
func SetQuantity(lines []domain.Line, ref domain.LineRef, qty int) []domain.Line {
	if qty <= 0 {
		return RemoveLine(lines, ref)
	}
	out := append([]domain.Line(nil), lines...)
	for i := range out {
		if matchRef(out[i], ref) {
			out[i].Quantity = qty
		}
	}
	return out
}

// OverrideLines replaces a collection with the incoming list, deduplicated
// by the same identity rules the resolver uses. The list's encounter order
// is authoritative: the first line seen for a key survives, later
// duplicates are dropped. Used when hydrating from the server or from guest
// storage.
func OverrideLines(incoming []domain.Line) []domain.Line {
	out := make([]domain.Line, 0, len(incoming))
	for _, l := range incoming {
		if findLine(out, l) >= 0 {
			continue
		}
		out = append(out, l)
	}
	return out
}

// AddEntry inserts a wishlist entry unless one with the same identity
// already exists; re-adding is a no-op, never a duplicate.
func AddEntry(entries []domain.WishlistEntry, item domain.WishlistEntry) []domain.WishlistEntry {
	if findEntry(entries, item) >= 0 {
		return entries
	}
	return append(append([]domain.WishlistEntry(nil), entries...), item)
}

// RemoveEntry drops every entry the ref designates.
func RemoveEntry(entries []domain.WishlistEntry, ref domain.LineRef) []domain.WishlistEntry {
	out := make([]domain.WishlistEntry, 0, len(entries))
	for _, e := range entries {
		if !matchEntryRef(e, ref) {
			out = append(out, e)
		}
	}
	return out
}

// OverrideEntries deduplicates and replaces the wishlist, first occurrence
// winning.
func OverrideEntries(incoming []domain.WishlistEntry) []domain.WishlistEntry {
	out := make([]domain.WishlistEntry, 0, len(incoming))
	for _, e := range incoming {
		if findEntry(out, e) >= 0 {
			continue
		}
		out = append(out, e)
	}
	return out
}
