// Package api talks to the DealPulse backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"dealpulse/internal/domain"
)

const maxErrorBody = 4 << 10

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	client  httpClient
	baseURL url.URL
}

func NewClient(client httpClient, baseURL string) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse api base: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("api base %q must be an absolute http(s) url", baseURL)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{client: client, baseURL: *u}, nil
}

func (c *Client) BaseURL() string { return c.baseURL.String() }

type checkoutRequest struct {
	ProductID string `json:"productId"`
}

type checkoutResponse struct {
	URL string `json:"url"`
}

type authResponse struct {
	User *domain.Session `json:"user"`
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var out *[]domain.Product
	if err := c.do(ctx, "list products", http.MethodGet, "products", "", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("list products: %w", ErrMalformed)
	}
	return *out, nil
}

// CreateCheckoutSession returns the opaque payment URL to redirect to.
func (c *Client) CreateCheckoutSession(ctx context.Context, productID string) (string, error) {
	var out checkoutResponse
	if err := c.do(ctx, "create checkout session", http.MethodPost, "create-checkout-session", "",
		checkoutRequest{ProductID: productID}, &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", ErrNoCheckoutURL
	}
	return out.URL, nil
}

func (c *Client) Login(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	return c.auth(ctx, "login", "login", creds)
}

func (c *Client) Signup(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	return c.auth(ctx, "signup", "signup", creds)
}

func (c *Client) auth(ctx context.Context, op, path string, creds domain.Credentials) (domain.Session, error) {
	var out authResponse
	if err := c.do(ctx, op, http.MethodPost, path, "", creds, &out); err != nil {
		return domain.Session{}, err
	}
	if out.User == nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, ErrNoUser)
	}
	return *out.User, nil
}

// CreateProduct submits a draft on behalf of the bearer of token.
func (c *Client) CreateProduct(ctx context.Context, token string, draft domain.ProductDraft) error {
	return c.do(ctx, "create product", http.MethodPost, "products", token, draft, nil)
}

func (c *Client) do(ctx context.Context, op, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Op: op, Code: resp.StatusCode, Body: string(b)}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrMalformed, err)
	}
	return nil
}
