package cart

import (
	"context"
	"errors"
	"testing"

	"jewelcart/internal/cache"
	"jewelcart/internal/domain"
)

type stubLineRepo struct {
	lines     []domain.CartLine
	added     []addedLine
	updated   bool
	deleted   bool
	listCalls int
}

type addedLine struct {
	productID int64
	optionID  *string
	quantity  int
	unitPrice int64
}

func (s *stubLineRepo) ListByCustomer(_ context.Context, _ int64) ([]domain.CartLine, error) {
	s.listCalls++
	return s.lines, nil
}

func (s *stubLineRepo) Get(_ context.Context, _, _ int64) (*domain.CartLine, error) {
	return nil, domain.ErrNotFound
}

func (s *stubLineRepo) Add(_ context.Context, _, productID int64, optionID *string, quantity int, unitPriceCents int64) error {
	s.added = append(s.added, addedLine{productID, optionID, quantity, unitPriceCents})
	return nil
}

func (s *stubLineRepo) Update(_ context.Context, _, _ int64, _ int, _ *string) error {
	s.updated = true
	return nil
}

func (s *stubLineRepo) Delete(_ context.Context, _, _ int64) error {
	s.deleted = true
	return nil
}

type stubProductRepo struct {
	products map[int64]*domain.Product
	options  map[string]*domain.ProductOption
}

func (s *stubProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubProductRepo) GetOption(_ context.Context, optionID string) (*domain.ProductOption, error) {
	if o, ok := s.options[optionID]; ok {
		return o, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubProductRepo) List(_ context.Context) ([]domain.Product, error) {
	return nil, nil
}

type memoryCache struct {
	entries map[int64][]domain.CartLine
	deletes int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[int64][]domain.CartLine)}
}

func (m *memoryCache) Get(_ context.Context, customerID int64) ([]domain.CartLine, error) {
	if lines, ok := m.entries[customerID]; ok {
		return lines, nil
	}
	return nil, cache.ErrCacheMiss
}

func (m *memoryCache) Set(_ context.Context, customerID int64, lines []domain.CartLine) error {
	m.entries[customerID] = lines
	return nil
}

func (m *memoryCache) Delete(_ context.Context, customerID int64) error {
	m.deletes++
	delete(m.entries, customerID)
	return nil
}

func catalog() *stubProductRepo {
	return &stubProductRepo{
		products: map[int64]*domain.Product{
			42: {ID: 42, Name: "Solitaire Ring", PriceCents: 129900},
		},
		options: map[string]*domain.ProductOption{
			"opt-wg":    {ID: "opt-wg", ProductID: 42, Label: "White Gold", PriceCents: 134900},
			"opt-other": {ID: "opt-other", ProductID: 7, Label: "Stray", PriceCents: 100},
		},
	}
}

func TestAddValidation(t *testing.T) {
	svc := New(&stubLineRepo{}, catalog(), nil, nil)
	ctx := context.Background()

	cases := []struct {
		name string
		in   AddInput
		want string
	}{
		{"missing product", AddInput{Quantity: 1}, "product_id required"},
		{"zero quantity", AddInput{ProductID: 42}, "quantity must be positive"},
		{"unknown product", AddInput{ProductID: 99, Quantity: 1}, "product not found"},
		{"unknown option", AddInput{ProductID: 42, Quantity: 1, OptionID: strPtr("nope")}, "product option not found"},
		{"foreign option", AddInput{ProductID: 42, Quantity: 1, OptionID: strPtr("opt-other")}, "option does not belong to product"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Add(ctx, 1, tc.in)
			if err == nil || err.Error() != tc.want {
				t.Fatalf("Add() error = %v, want %q", err, tc.want)
			}
		})
	}
}

func TestAddUsesOptionPrice(t *testing.T) {
	lines := &stubLineRepo{}
	svc := New(lines, catalog(), nil, nil)

	err := svc.Add(context.Background(), 1, AddInput{ProductID: 42, Quantity: 2, OptionID: strPtr("opt-wg")})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if len(lines.added) != 1 {
		t.Fatalf("added %d lines, want 1", len(lines.added))
	}
	if got := lines.added[0].unitPrice; got != 134900 {
		t.Fatalf("unit price = %d, want option price 134900", got)
	}
}

func TestAddFallsBackToProductPrice(t *testing.T) {
	lines := &stubLineRepo{}
	svc := New(lines, catalog(), nil, nil)

	if err := svc.Add(context.Background(), 1, AddInput{ProductID: 42, Quantity: 1}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if got := lines.added[0].unitPrice; got != 129900 {
		t.Fatalf("unit price = %d, want product price 129900", got)
	}
}

func TestListPrefersCache(t *testing.T) {
	lines := &stubLineRepo{lines: []domain.CartLine{{ID: 1, ProductID: 42, Quantity: 1}}}
	c := newMemoryCache()
	svc := New(lines, catalog(), c, nil)
	ctx := context.Background()

	first, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(first) != 1 || lines.listCalls != 1 {
		t.Fatalf("first read: lines=%d dbCalls=%d", len(first), lines.listCalls)
	}

	if _, err := svc.List(ctx, 1); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if lines.listCalls != 1 {
		t.Fatalf("second read hit the database, dbCalls=%d", lines.listCalls)
	}
}

func TestWritesInvalidateCache(t *testing.T) {
	lines := &stubLineRepo{}
	c := newMemoryCache()
	svc := New(lines, catalog(), c, nil)
	ctx := context.Background()

	c.entries[1] = []domain.CartLine{{ID: 9}}

	if err := svc.Add(ctx, 1, AddInput{ProductID: 42, Quantity: 1}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, ok := c.entries[1]; ok {
		t.Fatal("cache entry survived Add")
	}

	c.entries[1] = []domain.CartLine{{ID: 9}}
	if err := svc.UpdateQuantity(ctx, 1, 9, 3); err != nil {
		t.Fatalf("UpdateQuantity() error = %v", err)
	}
	if _, ok := c.entries[1]; ok {
		t.Fatal("cache entry survived UpdateQuantity")
	}

	c.entries[1] = []domain.CartLine{{ID: 9}}
	if err := svc.Remove(ctx, 1, 9); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, ok := c.entries[1]; ok {
		t.Fatal("cache entry survived Remove")
	}
}

func TestNilCacheIsOptional(t *testing.T) {
	lines := &stubLineRepo{lines: []domain.CartLine{{ID: 1}}}
	svc := New(lines, catalog(), nil, nil)

	got, err := svc.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("lines = %d, want 1", len(got))
	}
	if errors.Is(err, cache.ErrCacheMiss) {
		t.Fatal("cache miss leaked to caller")
	}
}

func strPtr(s string) *string { return &s }
