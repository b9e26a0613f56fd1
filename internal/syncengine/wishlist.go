package syncengine

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"jewelcart/internal/cartstate"
	"jewelcart/internal/domain"
)

// AddToWishlist saves a product for later. Re-adding an existing entry is a
// no-op on both backends (the server enforces the same uniqueness rule).
func (e *Engine) AddToWishlist(ctx context.Context, entry domain.WishlistEntry) error {
	if entry.ProductID == 0 {
		return ErrMissingProduct
	}
	token, authed := e.currentToken()
	if !authed {
		if entry.LocalID == "" {
			entry.LocalID = uuid.NewString()
		}
		return e.mutateGuestWishlist(func(entries []domain.WishlistEntry) []domain.WishlistEntry {
			return cartstate.AddEntry(entries, entry)
		})
	}

	addErr := e.api.AddWishlistEntry(ctx, token, entry.ProductID, entry.OptionID)
	if refreshErr := e.refreshWishlist(ctx); refreshErr != nil && addErr == nil {
		addErr = refreshErr
	}
	if addErr != nil {
		e.logf("add to wishlist product=%d: %v", entry.ProductID, addErr)
		e.notify.Notify(msgSyncFailed)
		return fmt.Errorf("add to wishlist: %w", addErr)
	}
	return nil
}

// RemoveFromWishlist deletes the designated entry.
func (e *Engine) RemoveFromWishlist(ctx context.Context, ref domain.LineRef) error {
	if ref.Empty() {
		return ErrMissingProduct
	}
	token, authed := e.currentToken()
	if !authed {
		return e.mutateGuestWishlist(func(entries []domain.WishlistEntry) []domain.WishlistEntry {
			return cartstate.RemoveEntry(entries, ref)
		})
	}

	entry, found := e.findWishlistEntry(ref)
	if !found || entry.RemoteID == 0 {
		if err := e.refreshWishlist(ctx); err != nil {
			e.notify.Notify(msgSyncFailed)
			return fmt.Errorf("remove from wishlist: %w", err)
		}
		entry, found = e.findWishlistEntry(ref)
	}
	if !found || entry.RemoteID == 0 {
		e.notify.Notify(msgLineVanished)
		return ErrLineVanished
	}

	e.mu.Lock()
	e.state.Wishlist = cartstate.RemoveEntry(e.state.Wishlist, ref)
	e.mu.Unlock()

	deleteErr := e.api.RemoveWishlistEntry(ctx, token, entry.RemoteID)
	if errors.Is(deleteErr, domain.ErrNotFound) {
		deleteErr = nil
	}
	if refreshErr := e.refreshWishlist(ctx); refreshErr != nil && deleteErr == nil {
		deleteErr = refreshErr
	}
	if deleteErr != nil {
		e.logf("remove wishlist entry=%d: %v", entry.RemoteID, deleteErr)
		e.notify.Notify(msgSyncFailed)
		return fmt.Errorf("remove from wishlist: %w", deleteErr)
	}
	return nil
}

// MoveWishlistEntryToCart adds the saved product to the cart. The wishlist
// entry stays; shoppers remove it themselves if they want it gone.
func (e *Engine) MoveWishlistEntryToCart(ctx context.Context, ref domain.LineRef) error {
	entry, found := e.findWishlistEntry(ref)
	if !found {
		return ErrLineVanished
	}
	return e.AddToCart(ctx, domain.Line{
		ProductID: entry.ProductID,
		OptionID:  entry.OptionID,
		Name:      entry.Name,
		Image:     entry.Image,
		Slug:      entry.Slug,
	}, 1)
}

func (e *Engine) findWishlistEntry(ref domain.LineRef) (domain.WishlistEntry, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, entry := range e.state.Wishlist {
		if entryMatchesRef(entry, ref) {
			return entry, true
		}
	}
	return domain.WishlistEntry{}, false
}

func (e *Engine) mutateGuestWishlist(fn func([]domain.WishlistEntry) []domain.WishlistEntry) error {
	e.mu.Lock()
	e.state.Wishlist = fn(e.state.Wishlist)
	snapshot := append([]domain.WishlistEntry(nil), e.state.Wishlist...)
	e.mu.Unlock()
	if err := e.store.SaveWishlist(snapshot); err != nil {
		return fmt.Errorf("persist guest wishlist: %w", err)
	}
	return nil
}

func entryMatchesRef(entry domain.WishlistEntry, ref domain.LineRef) bool {
	if ref.LocalID != "" && entry.LocalID == ref.LocalID {
		return true
	}
	if ref.RemoteID != 0 && entry.RemoteID == ref.RemoteID {
		return true
	}
	if ref.ProductID != 0 && entry.ProductID == ref.ProductID {
		return ref.OptionID == "" || ref.OptionID == entry.OptionID
	}
	return false
}
