package syncengine

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"jewelcart/internal/cartstate"
	"jewelcart/internal/domain"
)

// AddToVideoCart selects a product for a scheduled video consultation. The
// collection behaves like the cart but persists to the consultation-booking
// endpoint, whose line ids are unrelated to cart line ids.
func (e *Engine) AddToVideoCart(ctx context.Context, item domain.Line, quantity int) error {
	if item.ProductID == 0 {
		return ErrMissingProduct
	}
	token, authed := e.currentToken()
	if !authed {
		if item.LocalID == "" {
			item.LocalID = uuid.NewString()
		}
		return e.mutateGuestVideoCart(func(lines []domain.Line) []domain.Line {
			return cartstate.AddLine(lines, item, quantity)
		})
	}

	addErr := e.api.AddVideoCartLine(ctx, token, item.ProductID, item.OptionID, normalizeQty(quantity))
	if refreshErr := e.refreshVideoCart(ctx); refreshErr != nil && addErr == nil {
		addErr = refreshErr
	}
	if addErr != nil {
		e.logf("add to video cart product=%d: %v", item.ProductID, addErr)
		e.notify.Notify(msgSyncFailed)
		return fmt.Errorf("add to video cart: %w", addErr)
	}
	return nil
}

// RemoveFromVideoCart deletes the designated consultation line. Callers may
// hold the catalog product id or the consultation line id; both resolve.
func (e *Engine) RemoveFromVideoCart(ctx context.Context, ref domain.LineRef) error {
	if ref.Empty() {
		return ErrMissingProduct
	}
	token, authed := e.currentToken()
	if !authed {
		return e.mutateGuestVideoCart(func(lines []domain.Line) []domain.Line {
			return cartstate.RemoveLine(lines, ref)
		})
	}

	line, found := e.findVideoCartLine(ref)
	if !found || line.RemoteID == 0 {
		if err := e.refreshVideoCart(ctx); err != nil {
			e.notify.Notify(msgSyncFailed)
			return fmt.Errorf("remove from video cart: %w", err)
		}
		line, found = e.findVideoCartLine(ref)
	}
	if !found || line.RemoteID == 0 {
		e.notify.Notify(msgLineVanished)
		return ErrLineVanished
	}

	e.mu.Lock()
	e.state.VideoCart = cartstate.RemoveLine(e.state.VideoCart, ref)
	e.mu.Unlock()

	deleteErr := e.api.RemoveVideoCartLine(ctx, token, line.RemoteID)
	if errors.Is(deleteErr, domain.ErrNotFound) {
		deleteErr = nil
	}
	if refreshErr := e.refreshVideoCart(ctx); refreshErr != nil && deleteErr == nil {
		deleteErr = refreshErr
	}
	if deleteErr != nil {
		e.logf("remove video cart line=%d: %v", line.RemoteID, deleteErr)
		e.notify.Notify(msgSyncFailed)
		return fmt.Errorf("remove from video cart: %w", deleteErr)
	}
	return nil
}

// UpdateVideoCartQuantity mirrors UpdateCartQuantity for the consultation
// collection, including the at-most-one-in-flight-per-line guard.
func (e *Engine) UpdateVideoCartQuantity(ctx context.Context, ref domain.LineRef, quantity int) error {
	if quantity <= 0 {
		return e.RemoveFromVideoCart(ctx, ref)
	}
	token, authed := e.currentToken()
	if !authed {
		return e.mutateGuestVideoCart(func(lines []domain.Line) []domain.Line {
			return cartstate.SetQuantity(lines, ref, quantity)
		})
	}

	line, found := e.findVideoCartLine(ref)
	if !found {
		if err := e.refreshVideoCart(ctx); err != nil {
			e.notify.Notify(msgSyncFailed)
			return fmt.Errorf("update video cart quantity: %w", err)
		}
		line, found = e.findVideoCartLine(ref)
	}
	if !found {
		e.notify.Notify(msgLineVanished)
		return ErrLineVanished
	}

	if !e.acquire(collVideoCart, line.Key()) {
		return ErrUpdateInFlight
	}
	defer e.release(collVideoCart, line.Key())

	e.mu.Lock()
	prev := append([]domain.Line(nil), e.state.VideoCart...)
	e.state.VideoCart = cartstate.SetQuantity(e.state.VideoCart, ref, quantity)
	e.mu.Unlock()

	remoteID := line.RemoteID
	if remoteID == 0 {
		if err := e.refreshVideoCart(ctx); err == nil {
			if resolved, ok := e.findVideoCartLine(ref); ok {
				remoteID = resolved.RemoteID
			}
		}
	}
	if remoteID == 0 {
		e.mu.Lock()
		e.state.VideoCart = prev
		e.mu.Unlock()
		e.notify.Notify(msgLineVanished)
		return ErrLineVanished
	}

	putErr := e.api.UpdateVideoCartLine(ctx, token, remoteID, quantity, line.OptionID)
	if refreshErr := e.refreshVideoCart(ctx); refreshErr != nil && putErr == nil {
		putErr = refreshErr
	}
	if errors.Is(putErr, domain.ErrNotFound) {
		e.notify.Notify(msgLineVanished)
		return ErrLineVanished
	}
	if putErr != nil {
		e.logf("update video cart line=%d qty=%d: %v", remoteID, quantity, putErr)
		e.notify.Notify(msgSyncFailed)
		return fmt.Errorf("update video cart quantity: %w", putErr)
	}
	return nil
}

func (e *Engine) findVideoCartLine(ref domain.LineRef) (domain.Line, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, l := range e.state.VideoCart {
		if lineMatchesRef(l, ref) {
			return l, true
		}
	}
	return domain.Line{}, false
}

func (e *Engine) mutateGuestVideoCart(fn func([]domain.Line) []domain.Line) error {
	e.mu.Lock()
	e.state.VideoCart = fn(e.state.VideoCart)
	snapshot := append([]domain.Line(nil), e.state.VideoCart...)
	e.mu.Unlock()
	if err := e.store.SaveVideoCart(snapshot); err != nil {
		return fmt.Errorf("persist guest video cart: %w", err)
	}
	return nil
}
