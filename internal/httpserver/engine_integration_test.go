package httpserver

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"jewelcart/internal/apiclient"
	"jewelcart/internal/domain"
	"jewelcart/internal/localstore"
	cartsvc "jewelcart/internal/service/cart"
	videocartsvc "jewelcart/internal/service/videocart"
	"jewelcart/internal/syncengine"
)

// memoryLineStore backs the cart and video-cart services with the same
// merge-on-add semantics the Postgres repositories have, so the sync engine
// can run against the real router without a database.
type memoryLineStore struct {
	mu     sync.Mutex
	nextID int64
	lines  []domain.CartLine
}

func newMemoryLineStore() *memoryLineStore {
	return &memoryLineStore{nextID: 1}
}

func (m *memoryLineStore) list() []domain.CartLine {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.CartLine(nil), m.lines...)
}

func (m *memoryLineStore) add(productID int64, optionID *string, quantity int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, l := range m.lines {
		if l.ProductID == productID && optionEq(l.OptionID, optionID) {
			m.lines[i].Quantity += quantity
			return
		}
	}
	m.lines = append(m.lines, domain.CartLine{
		ID:        m.nextID,
		ProductID: productID,
		OptionID:  optionID,
		Quantity:  quantity,
	})
	m.nextID++
}

func (m *memoryLineStore) update(lineID int64, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, l := range m.lines {
		if l.ID == lineID {
			if quantity <= 0 {
				m.lines = append(m.lines[:i], m.lines[i+1:]...)
			} else {
				m.lines[i].Quantity = quantity
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memoryLineStore) remove(lineID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, l := range m.lines {
		if l.ID == lineID {
			m.lines = append(m.lines[:i], m.lines[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func optionEq(a *string, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

type memoryCartService struct{ store *memoryLineStore }

func (s *memoryCartService) List(_ context.Context, _ int64) ([]domain.CartLine, error) {
	return s.store.list(), nil
}

func (s *memoryCartService) Add(_ context.Context, _ int64, in cartsvc.AddInput) error {
	s.store.add(in.ProductID, in.OptionID, in.Quantity)
	return nil
}

func (s *memoryCartService) UpdateQuantity(_ context.Context, _, lineID int64, quantity int) error {
	return s.store.update(lineID, quantity)
}

func (s *memoryCartService) Remove(_ context.Context, _, lineID int64) error {
	return s.store.remove(lineID)
}

type memoryVideoCartService struct{ store *memoryLineStore }

func (s *memoryVideoCartService) List(_ context.Context, _ int64) ([]domain.CartLine, error) {
	return s.store.list(), nil
}

func (s *memoryVideoCartService) Add(_ context.Context, _ int64, in videocartsvc.AddInput) error {
	quantity := in.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	s.store.add(in.ProductID, in.OptionID, quantity)
	return nil
}

func (s *memoryVideoCartService) Update(_ context.Context, _, lineID int64, in videocartsvc.UpdateInput) error {
	return s.store.update(lineID, in.Quantity)
}

func (s *memoryVideoCartService) Remove(_ context.Context, _, lineID int64) error {
	return s.store.remove(lineID)
}

func TestEngineAgainstRealRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serverCart := newMemoryLineStore()
	serverVideo := newMemoryLineStore()
	customers := &stubCustomerService{
		customer: &domain.Customer{ID: 7, Email: "user@example.com"},
		token:    "tok-1",
	}
	router, err := buildRouter(logDiscard(), nil, Deps{
		CartSvc:      &memoryCartService{store: serverCart},
		WishlistSvc:  &stubWishlistService{},
		VideoCartSvc: &memoryVideoCartService{store: serverVideo},
		CustomerSvc:  customers,
	})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	ts := httptest.NewServer(router)
	defer ts.Close()

	store, err := localstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open guest store: %v", err)
	}
	engine, err := syncengine.New(apiclient.New(ts.URL, nil), store, nil, nil)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	ctx := context.Background()

	// Guest adds stay local.
	if err := engine.AddToCart(ctx, domain.Line{ProductID: 42}, 2); err != nil {
		t.Fatalf("guest AddToCart: %v", err)
	}
	if got := len(serverCart.list()); got != 0 {
		t.Fatalf("server cart has %d lines before login, want 0", got)
	}

	// Login adopts the (empty) server cart; the guest line is discarded.
	session := domain.Session{Customer: customers.customer, Token: "tok-1"}
	if err := engine.Login(ctx, session); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got := len(engine.Snapshot().Cart); got != 0 {
		t.Fatalf("cart has %d lines after login, want 0", got)
	}
	stored, err := store.LoadCart()
	if err != nil {
		t.Fatalf("LoadCart: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("guest storage has %d lines after login, want 0", len(stored))
	}

	// Two authenticated adds of the same identity merge server-side; the
	// refetch hands the merged line (with its server id) back to the engine.
	if err := engine.AddToCart(ctx, domain.Line{ProductID: 42}, 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if err := engine.AddToCart(ctx, domain.Line{ProductID: 42}, 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	cart := engine.Snapshot().Cart
	if len(cart) != 1 {
		t.Fatalf("cart has %d lines, want 1 merged line", len(cart))
	}
	if cart[0].Quantity != 2 {
		t.Fatalf("quantity = %d, want 2", cart[0].Quantity)
	}
	if cart[0].RemoteID == 0 {
		t.Fatal("merged line has no server id")
	}

	// Quantity update round-trips through PUT and the refetch.
	ref := domain.LineRef{ProductID: 42}
	if err := engine.UpdateCartQuantity(ctx, ref, 5); err != nil {
		t.Fatalf("UpdateCartQuantity: %v", err)
	}
	if got := engine.Snapshot().Cart[0].Quantity; got != 5 {
		t.Fatalf("quantity = %d, want 5", got)
	}

	// The video cart is a separate collection with its own server ids.
	if err := engine.AddToVideoCart(ctx, domain.Line{ProductID: 42}, 1); err != nil {
		t.Fatalf("AddToVideoCart: %v", err)
	}
	if got := len(engine.Snapshot().VideoCart); got != 1 {
		t.Fatalf("video cart has %d lines, want 1", got)
	}
	if got := len(serverVideo.list()); got != 1 {
		t.Fatalf("server video cart has %d lines, want 1", got)
	}

	if err := engine.RemoveFromCart(ctx, ref); err != nil {
		t.Fatalf("RemoveFromCart: %v", err)
	}
	if got := len(engine.Snapshot().Cart); got != 0 {
		t.Fatalf("cart has %d lines after remove, want 0", got)
	}
	if got := len(engine.Snapshot().VideoCart); got != 1 {
		t.Fatalf("video cart shrank with the shopping cart, has %d lines", got)
	}
}
