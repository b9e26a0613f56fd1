package domain

// LineKey is the canonical identity of a line within a collection: the
// catalog product plus the selected variant. An empty OptionID means the
// product was added without a variant selection; two lines with the same
// product and no variant share a key.
type LineKey struct {
	ProductID int64
	OptionID  string
}

// Line is one cart or video-cart entry as held by the client. RemoteID is
// the server-assigned line id (cart line id or video-cart line id depending
// on the collection) and stays zero for guest lines that were never synced.
// LocalID identifies guest lines that have no server identity at all.
type Line struct {
	LocalID        string `json:"localId,omitempty"`
	RemoteID       int64  `json:"remoteId,omitempty"`
	ProductID      int64  `json:"productId"`
	OptionID       string `json:"optionId,omitempty"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Name           string `json:"name,omitempty"`
	Image          string `json:"image,omitempty"`
	Slug           string `json:"slug,omitempty"`
}

// Key returns the canonical identity used for all local matching.
func (l Line) Key() LineKey {
	return LineKey{ProductID: l.ProductID, OptionID: l.OptionID}
}

// WishlistEntry is a saved-for-later product. It has no quantity; re-adding
// an entry with the same key is a no-op.
type WishlistEntry struct {
	LocalID   string `json:"localId,omitempty"`
	RemoteID  int64  `json:"remoteId,omitempty"`
	ProductID int64  `json:"productId"`
	OptionID  string `json:"optionId,omitempty"`
	Name      string `json:"name,omitempty"`
	Image     string `json:"image,omitempty"`
	Slug      string `json:"slug,omitempty"`
}

// Key returns the canonical identity used for all local matching.
func (e WishlistEntry) Key() LineKey {
	return LineKey{ProductID: e.ProductID, OptionID: e.OptionID}
}

// LineRef identifies a line for removal or quantity updates. Callers rarely
// know which identifier they hold, so any populated field is a candidate:
// a non-empty LocalID, a non-zero RemoteID, or a non-zero ProductID matches.
type LineRef struct {
	LocalID   string
	RemoteID  int64
	ProductID int64
	OptionID  string
}

// Empty reports whether the ref carries no usable identifier.
func (r LineRef) Empty() bool {
	return r.LocalID == "" && r.RemoteID == 0 && r.ProductID == 0
}
