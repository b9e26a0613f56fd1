// Package syncengine reconciles the three sources of cart/wishlist truth:
// in-memory state, durable guest storage, and the remote storefront API.
// Guest mode is purely local; authenticated mode is write-through with a
// refetch-and-override after every mutation, so the server stays
// authoritative and failed optimistic updates roll back on the next fetch.
package syncengine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"jewelcart/internal/cartstate"
	"jewelcart/internal/domain"
)

var (
	// ErrMissingProduct is returned when an add carries no resolvable
	// product identifier; the operation aborts before any network call.
	ErrMissingProduct = errors.New("product identifier required")
	// ErrUpdateInFlight is returned when a quantity update for the same
	// line is still outstanding. The second request is dropped, not queued.
	ErrUpdateInFlight = errors.New("quantity update already in flight")
	// ErrLineVanished means the line no longer exists on the server, e.g.
	// it was removed from another device. Distinct from transport errors:
	// the optimistic change is reverted and retrying will not help.
	ErrLineVanished = errors.New("line no longer exists on the server")
)

// RemoteAPI is the authenticated backend, implemented by apiclient.Client.
type RemoteAPI interface {
	FetchCart(ctx context.Context, token string) ([]domain.Line, error)
	AddCartLine(ctx context.Context, token string, productID int64, optionID string, quantity int) error
	UpdateCartLine(ctx context.Context, token string, lineID int64, quantity int) error
	RemoveCartLine(ctx context.Context, token string, lineID int64) error

	FetchWishlist(ctx context.Context, token string) ([]domain.WishlistEntry, error)
	AddWishlistEntry(ctx context.Context, token string, productID int64, optionID string) error
	RemoveWishlistEntry(ctx context.Context, token string, entryID int64) error

	FetchVideoCart(ctx context.Context, token string) ([]domain.Line, error)
	AddVideoCartLine(ctx context.Context, token string, productID int64, optionID string, quantity int) error
	UpdateVideoCartLine(ctx context.Context, token string, lineID int64, quantity int, optionID string) error
	RemoveVideoCartLine(ctx context.Context, token string, lineID int64) error
}

// GuestStore is the guest backend, implemented by localstore.Store.
type GuestStore interface {
	LoadCart() ([]domain.Line, error)
	SaveCart([]domain.Line) error
	LoadWishlist() ([]domain.WishlistEntry, error)
	SaveWishlist([]domain.WishlistEntry) error
	LoadVideoCart() ([]domain.Line, error)
	SaveVideoCart([]domain.Line) error
	Clear() error
}

// Notifier receives user-visible messages. Remote failures never propagate
// to the UI as panics or unhandled errors; the UI learns about them through
// reverted state plus this side channel.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(string)

func (f NotifierFunc) Notify(message string) { f(message) }

type nopNotifier struct{}

func (nopNotifier) Notify(string) {}

const (
	msgSyncFailed    = "we couldn't sync your changes, please try again"
	msgLineVanished  = "an item in your cart changed elsewhere, please refresh"
	msgLoginSyncFail = "we couldn't load your saved items, please refresh"
)

type collection string

const (
	collCart      collection = "cart"
	collVideoCart collection = "video_cart"
)

type inFlightKey struct {
	coll collection
	key  domain.LineKey
}

// Engine owns the client-side collections and coordinates every mutation
// against the backend the current session selects.
type Engine struct {
	api    RemoteAPI
	store  GuestStore
	notify Notifier
	logger *log.Logger

	mu       sync.Mutex
	state    cartstate.State
	session  domain.Session
	inFlight map[inFlightKey]struct{}
}

// New builds an engine in guest mode, hydrating state from guest storage.
func New(api RemoteAPI, store GuestStore, notify Notifier, logger *log.Logger) (*Engine, error) {
	if notify == nil {
		notify = nopNotifier{}
	}
	e := &Engine{
		api:      api,
		store:    store,
		notify:   notify,
		logger:   logger,
		inFlight: make(map[inFlightKey]struct{}),
	}
	if err := e.restoreFromStore(); err != nil {
		return nil, err
	}
	return e, nil
}

// Snapshot returns a copy of the current collections for rendering.
func (e *Engine) Snapshot() cartstate.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Session returns the current session identity.
func (e *Engine) Session() domain.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// Login switches the engine to the authenticated backend. Guest state is
// discarded, not merged: local collections reset, guest storage is cleared
// before the first fetch so an in-flight guest write cannot re-populate it,
// and the server's collections are fetched and adopted wholesale.
func (e *Engine) Login(ctx context.Context, session domain.Session) error {
	if !session.Authenticated() {
		return errors.New("login requires customer and token")
	}

	e.mu.Lock()
	e.session = session
	e.state = cartstate.State{}
	e.mu.Unlock()

	if err := e.store.Clear(); err != nil {
		return fmt.Errorf("clear guest storage: %w", err)
	}

	var errs []error
	if err := e.refreshCart(ctx); err != nil {
		errs = append(errs, fmt.Errorf("fetch cart: %w", err))
	}
	if err := e.refreshWishlist(ctx); err != nil {
		errs = append(errs, fmt.Errorf("fetch wishlist: %w", err))
	}
	// The video cart lives behind its own endpoint with its own line ids.
	if err := e.refreshVideoCart(ctx); err != nil {
		errs = append(errs, fmt.Errorf("fetch video cart: %w", err))
	}
	if len(errs) > 0 {
		e.notify.Notify(msgLoginSyncFail)
		return errors.Join(errs...)
	}
	return nil
}

// Logout drops the authenticated state and restores whatever guest storage
// held before login. The just-abandoned server cart is not carried over.
func (e *Engine) Logout(ctx context.Context) error {
	e.mu.Lock()
	e.session = domain.Session{}
	e.state = cartstate.State{}
	e.mu.Unlock()

	return e.restoreFromStore()
}

func (e *Engine) restoreFromStore() error {
	cart, err := e.store.LoadCart()
	if err != nil {
		return fmt.Errorf("load guest cart: %w", err)
	}
	wishlist, err := e.store.LoadWishlist()
	if err != nil {
		return fmt.Errorf("load guest wishlist: %w", err)
	}
	videoCart, err := e.store.LoadVideoCart()
	if err != nil {
		return fmt.Errorf("load guest video cart: %w", err)
	}

	e.mu.Lock()
	e.state.Cart = cartstate.OverrideLines(cart)
	e.state.Wishlist = cartstate.OverrideEntries(wishlist)
	e.state.VideoCart = cartstate.OverrideLines(videoCart)
	e.mu.Unlock()
	return nil
}

func (e *Engine) currentToken() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Token, e.session.Authenticated()
}

// refreshCart discards local assumptions and adopts the server's cart. A
// cancelled context leaves state untouched so a disposed caller cannot
// clobber a newer session's state.
func (e *Engine) refreshCart(ctx context.Context) error {
	token, ok := e.currentToken()
	if !ok {
		return nil
	}
	lines, err := e.api.FetchCart(ctx, token)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	e.state.Cart = cartstate.OverrideLines(lines)
	e.mu.Unlock()
	return nil
}

func (e *Engine) refreshWishlist(ctx context.Context) error {
	token, ok := e.currentToken()
	if !ok {
		return nil
	}
	entries, err := e.api.FetchWishlist(ctx, token)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	e.state.Wishlist = cartstate.OverrideEntries(entries)
	e.mu.Unlock()
	return nil
}

func (e *Engine) refreshVideoCart(ctx context.Context) error {
	token, ok := e.currentToken()
	if !ok {
		return nil
	}
	lines, err := e.api.FetchVideoCart(ctx, token)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	e.state.VideoCart = cartstate.OverrideLines(lines)
	e.mu.Unlock()
	return nil
}

// acquire marks a per-line quantity update as in flight. Exactly one update
// per line identifier may be outstanding; callers losing the race get
// ErrUpdateInFlight instead of a queued slot.
func (e *Engine) acquire(coll collection, key domain.LineKey) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	k := inFlightKey{coll: coll, key: key}
	if _, busy := e.inFlight[k]; busy {
		return false
	}
	e.inFlight[k] = struct{}{}
	return true
}

func (e *Engine) release(coll collection, key domain.LineKey) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.inFlight, inFlightKey{coll: coll, key: key})
}

func (e *Engine) logf(format string, args ...interface{}) {
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}
