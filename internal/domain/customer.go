package domain

import "time"

// Customer represents a registered storefront user.
type Customer struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Session is the identity signal the sync engine consumes. A session is
// authenticated only when both the customer record and the bearer token are
// present; anything less is guest mode.
type Session struct {
	Customer *Customer
	Token    string
}

// Authenticated reports whether the session selects the remote backend.
func (s Session) Authenticated() bool {
	return s.Customer != nil && s.Token != ""
}
