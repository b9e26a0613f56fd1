// Package apiclient is the authenticated persistence backend: a typed HTTP
// client for the storefront API. Every call carries the session's bearer
// token; the engine owns the token's lifecycle.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"jewelcart/internal/domain"
)

// ErrUnauthorized indicates the bearer token was missing, expired or revoked.
var ErrUnauthorized = errors.New("unauthorized")

type Client struct {
	baseURL string
	httpc   *http.Client
}

// New builds a client for the API at baseURL. Pass nil to use a default
// http.Client with a request timeout.
func New(baseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
	}
}

func (c *Client) FetchCart(ctx context.Context, token string) ([]domain.Line, error) {
	var env itemsEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/cart", token, nil, &env); err != nil {
		return nil, err
	}
	return toDomainLines(env.Data.Items), nil
}

func (c *Client) AddCartLine(ctx context.Context, token string, productID int64, optionID string, quantity int) error {
	body := addLineRequest{ProductID: productID, Quantity: quantity, ProductOptionID: optionPtr(optionID)}
	return c.do(ctx, http.MethodPost, "/api/cart", token, body, nil)
}

func (c *Client) UpdateCartLine(ctx context.Context, token string, lineID int64, quantity int) error {
	body := updateLineRequest{Quantity: quantity}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/cart/%d", lineID), token, body, nil)
}

func (c *Client) RemoveCartLine(ctx context.Context, token string, lineID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/cart/%d", lineID), token, nil, nil)
}

func (c *Client) FetchWishlist(ctx context.Context, token string) ([]domain.WishlistEntry, error) {
	var env itemsEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/wishlist", token, nil, &env); err != nil {
		return nil, err
	}
	return toDomainEntries(env.Data.Items), nil
}

func (c *Client) AddWishlistEntry(ctx context.Context, token string, productID int64, optionID string) error {
	body := addLineRequest{ProductID: productID, ProductOptionID: optionPtr(optionID)}
	return c.do(ctx, http.MethodPost, "/api/wishlist", token, body, nil)
}

func (c *Client) RemoveWishlistEntry(ctx context.Context, token string, entryID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/wishlist/%d", entryID), token, nil, nil)
}

// FetchVideoCart decodes the consultation-cart envelope, which carries the
// line array directly under data with no items wrapper.
func (c *Client) FetchVideoCart(ctx context.Context, token string) ([]domain.Line, error) {
	var env listEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/video-consultation/video-cart", token, nil, &env); err != nil {
		return nil, err
	}
	return toDomainLines(env.Data), nil
}

func (c *Client) AddVideoCartLine(ctx context.Context, token string, productID int64, optionID string, quantity int) error {
	body := addLineRequest{ProductID: productID, Quantity: quantity, ProductOptionID: optionPtr(optionID)}
	return c.do(ctx, http.MethodPost, "/api/video-consultation/video-cart", token, body, nil)
}

func (c *Client) UpdateVideoCartLine(ctx context.Context, token string, lineID int64, quantity int, optionID string) error {
	body := updateLineRequest{Quantity: quantity, ProductOptionID: optionPtr(optionID)}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/video-consultation/video-cart/%d", lineID), token, body, nil)
}

func (c *Client) RemoveVideoCartLine(ctx context.Context, token string, lineID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/video-consultation/video-cart/%d", lineID), token, nil, nil)
}

// Login exchanges credentials for an authenticated session.
func (c *Client) Login(ctx context.Context, email, password string) (domain.Session, error) {
	body := map[string]string{"email": email, "password": password}
	var env authEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body, &env); err != nil {
		return domain.Session{}, err
	}
	customer := env.Data.Customer
	return domain.Session{Customer: &customer, Token: env.Data.Token}, nil
}

// Signup registers a customer and returns the resulting session.
func (c *Client) Signup(ctx context.Context, email, password, firstName, lastName string) (domain.Session, error) {
	body := map[string]string{
		"email":     email,
		"password":  password,
		"firstName": firstName,
		"lastName":  lastName,
	}
	var env authEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", "", body, &env); err != nil {
		return domain.Session{}, err
	}
	customer := env.Data.Customer
	return domain.Session{Customer: &customer, Token: env.Data.Token}, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode >= 400:
		return fmt.Errorf("%s %s: %s", method, path, errorMessage(resp.Body, resp.StatusCode))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

func errorMessage(body io.Reader, status int) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return http.StatusText(status)
}

func optionPtr(optionID string) *string {
	if optionID == "" {
		return nil
	}
	return &optionID
}
