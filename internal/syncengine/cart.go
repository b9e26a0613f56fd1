package syncengine

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"jewelcart/internal/cartstate"
	"jewelcart/internal/domain"
)

// AddToCart merges the item into the cart. Guest mode mutates and persists
// locally; authenticated mode POSTs and then unconditionally refetches, so
// the server's merge result is what the client ends up holding.
func (e *Engine) AddToCart(ctx context.Context, item domain.Line, quantity int) error {
	if item.ProductID == 0 {
		return ErrMissingProduct
	}
	token, authed := e.currentToken()
	if !authed {
		if item.LocalID == "" {
			item.LocalID = uuid.NewString()
		}
		return e.mutateGuestCart(func(lines []domain.Line) []domain.Line {
			return cartstate.AddLine(lines, item, quantity)
		})
	}

	addErr := e.api.AddCartLine(ctx, token, item.ProductID, item.OptionID, normalizeQty(quantity))
	if refreshErr := e.refreshCart(ctx); refreshErr != nil && addErr == nil {
		addErr = refreshErr
	}
	if addErr != nil {
		e.logf("add to cart product=%d: %v", item.ProductID, addErr)
		e.notify.Notify(msgSyncFailed)
		return fmt.Errorf("add to cart: %w", addErr)
	}
	return nil
}

// RemoveFromCart deletes the designated line. In authenticated mode the
// caller's identifier may not be the server's, so the remote line id is
// resolved from local state, refetching once if necessary.
func (e *Engine) RemoveFromCart(ctx context.Context, ref domain.LineRef) error {
	if ref.Empty() {
		return ErrMissingProduct
	}
	token, authed := e.currentToken()
	if !authed {
		return e.mutateGuestCart(func(lines []domain.Line) []domain.Line {
			return cartstate.RemoveLine(lines, ref)
		})
	}

	line, found := e.findCartLine(ref)
	if !found || line.RemoteID == 0 {
		if err := e.refreshCart(ctx); err != nil {
			e.notify.Notify(msgSyncFailed)
			return fmt.Errorf("remove from cart: %w", err)
		}
		line, found = e.findCartLine(ref)
	}
	if !found || line.RemoteID == 0 {
		e.notify.Notify(msgLineVanished)
		return ErrLineVanished
	}

	// Optimistic removal; the refetch below confirms it or rolls it back.
	e.mu.Lock()
	e.state.Cart = cartstate.RemoveLine(e.state.Cart, ref)
	e.mu.Unlock()

	deleteErr := e.api.RemoveCartLine(ctx, token, line.RemoteID)
	if errors.Is(deleteErr, domain.ErrNotFound) {
		// Already gone server-side; the refetch confirms the removal.
		deleteErr = nil
	}
	if refreshErr := e.refreshCart(ctx); refreshErr != nil && deleteErr == nil {
		deleteErr = refreshErr
	}
	if deleteErr != nil {
		e.logf("remove cart line=%d: %v", line.RemoteID, deleteErr)
		e.notify.Notify(msgSyncFailed)
		return fmt.Errorf("remove from cart: %w", deleteErr)
	}
	return nil
}

// UpdateCartQuantity sets the line's quantity, removing it at zero. The
// optimistic update lands first; at most one update per line may be in
// flight, and a line that has vanished server-side reverts the optimistic
// change rather than being retried.
func (e *Engine) UpdateCartQuantity(ctx context.Context, ref domain.LineRef, quantity int) error {
	if quantity <= 0 {
		return e.RemoveFromCart(ctx, ref)
	}
	token, authed := e.currentToken()
	if !authed {
		return e.mutateGuestCart(func(lines []domain.Line) []domain.Line {
			return cartstate.SetQuantity(lines, ref, quantity)
		})
	}

	line, found := e.findCartLine(ref)
	if !found {
		if err := e.refreshCart(ctx); err != nil {
			e.notify.Notify(msgSyncFailed)
			return fmt.Errorf("update quantity: %w", err)
		}
		line, found = e.findCartLine(ref)
	}
	if !found {
		e.notify.Notify(msgLineVanished)
		return ErrLineVanished
	}

	if !e.acquire(collCart, line.Key()) {
		return ErrUpdateInFlight
	}
	defer e.release(collCart, line.Key())

	e.mu.Lock()
	prev := append([]domain.Line(nil), e.state.Cart...)
	e.state.Cart = cartstate.SetQuantity(e.state.Cart, ref, quantity)
	e.mu.Unlock()

	remoteID := line.RemoteID
	if remoteID == 0 {
		if err := e.refreshCart(ctx); err == nil {
			if resolved, ok := e.findCartLine(ref); ok {
				remoteID = resolved.RemoteID
			}
		}
	}
	if remoteID == 0 {
		e.mu.Lock()
		e.state.Cart = prev
		e.mu.Unlock()
		e.notify.Notify(msgLineVanished)
		return ErrLineVanished
	}

	putErr := e.api.UpdateCartLine(ctx, token, remoteID, quantity)
	if refreshErr := e.refreshCart(ctx); refreshErr != nil && putErr == nil {
		putErr = refreshErr
	}
	if errors.Is(putErr, domain.ErrNotFound) {
		// Deleted concurrently, e.g. from another device. The refetch above
		// already rolled the optimistic change back to server truth.
		e.notify.Notify(msgLineVanished)
		return ErrLineVanished
	}
	if putErr != nil {
		e.logf("update cart line=%d qty=%d: %v", remoteID, quantity, putErr)
		e.notify.Notify(msgSyncFailed)
		return fmt.Errorf("update quantity: %w", putErr)
	}
	return nil
}

func (e *Engine) findCartLine(ref domain.LineRef) (domain.Line, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, l := range e.state.Cart {
		if lineMatchesRef(l, ref) {
			return l, true
		}
	}
	return domain.Line{}, false
}

func (e *Engine) mutateGuestCart(fn func([]domain.Line) []domain.Line) error {
	e.mu.Lock()
	e.state.Cart = fn(e.state.Cart)
	snapshot := append([]domain.Line(nil), e.state.Cart...)
	e.mu.Unlock()
	if err := e.store.SaveCart(snapshot); err != nil {
		return fmt.Errorf("persist guest cart: %w", err)
	}
	return nil
}

func normalizeQty(quantity int) int {
	if quantity <= 0 {
		return 1
	}
	return quantity
}

func lineMatchesRef(l domain.Line, ref domain.LineRef) bool {
	if ref.LocalID != "" && l.LocalID == ref.LocalID {
		return true
	}
	if ref.RemoteID != 0 && l.RemoteID == ref.RemoteID {
		return true
	}
	if ref.ProductID != 0 && l.ProductID == ref.ProductID {
		return ref.OptionID == "" || ref.OptionID == l.OptionID
	}
	return false
}
