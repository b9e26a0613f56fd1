package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jewelcart/internal/domain"
)

func TestFetchCartDecodesItemsEnvelope(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"items":[
			{"id":11,"product_id":42,"quantity":2,"unit_price_cents":129900,"name":"Emerald Pendant","slug":"emerald-pendant"},
			{"id":12,"product_id":7,"product_option_id":"opt-9","quantity":1,"unit_price_cents":49900}
		]}}`))
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	lines, err := client.FetchCart(context.Background(), "tok-1")
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-1", gotAuth)
	require.Len(t, lines, 2)
	assert.Equal(t, int64(11), lines[0].RemoteID)
	assert.Equal(t, int64(42), lines[0].ProductID)
	assert.Equal(t, "", lines[0].OptionID)
	assert.Equal(t, "opt-9", lines[1].OptionID)
}

func TestFetchVideoCartDecodesBareListEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/video-consultation/video-cart", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":31,"product_id":9,"quantity":1,"unit_price_cents":250000}]}`))
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	lines, err := client.FetchVideoCart(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(31), lines[0].RemoteID)
}

func TestAddCartLineOmitsAbsentOption(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		body = string(buf)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	require.NoError(t, client.AddCartLine(context.Background(), "tok", 42, "", 1))
	assert.NotContains(t, body, "product_option_id")
	assert.Contains(t, body, `"product_id":42`)
}

func TestStatusMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/cart/404":
			w.WriteHeader(http.StatusNotFound)
		case "/api/cart/401":
			w.WriteHeader(http.StatusUnauthorized)
		default:
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"quantity must be positive"}`))
		}
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	ctx := context.Background()

	err := client.RemoveCartLine(ctx, "tok", 404)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	err = client.RemoveCartLine(ctx, "tok", 401)
	assert.True(t, errors.Is(err, ErrUnauthorized))

	err = client.RemoveCartLine(ctx, "tok", 400)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantity must be positive")
}

func TestLoginBuildsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"token":"tok-abc","customer":{"id":5,"email":"a@b.c"}}}`))
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	session, err := client.Login(context.Background(), "a@b.c", "secretpw")
	require.NoError(t, err)
	assert.True(t, session.Authenticated())
	assert.Equal(t, int64(5), session.Customer.ID)
}
