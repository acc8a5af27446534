// internal/shopify/client.go
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client is a minimal Shopify Admin REST client covering the calls the sync
// pipeline needs: orders, products, inventory levels and shop info.
type Client struct {
	shopURL    string
	token      string
	apiVersion string
	httpClient *http.Client
}

func NewClient(shopURL, accessToken, apiVersion string) *Client {
	return &Client{
		shopURL:    shopURL,
		token:      accessToken,
		apiVersion: apiVersion,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a non-2xx response from Shopify.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("shopify: unexpected status %d: %s", e.StatusCode, e.Body)
}

type ListOrdersOptions struct {
	Status       string
	Limit        int
	CreatedAtMin time.Time
}

func (c *Client) ListOrders(ctx context.Context, opts ListOrdersOptions) ([]Order, error) {
	q := url.Values{}
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if !opts.CreatedAtMin.IsZero() {
		q.Set("created_at_min", opts.CreatedAtMin.Format(time.RFC3339))
	}

	var out struct {
		Orders []Order `json:"orders"`
	}
	if err := c.get(ctx, "orders.json", q, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

func (c *Client) ListProducts(ctx context.Context, limit int) ([]Product, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var out struct {
		Products []Product `json:"products"`
	}
	if err := c.get(ctx, "products.json", q, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var out struct {
		Product Product `json:"product"`
	}
	if err := c.get(ctx, fmt.Sprintf("products/%d.json", id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

func (c *Client) GetShop(ctx context.Context) (*Shop, error) {
	var out struct {
		Shop Shop `json:"shop"`
	}
	if err := c.get(ctx, "shop.json", nil, &out); err != nil {
		return nil, err
	}
	return &out.Shop, nil
}

func (c *Client) ListInventoryLevels(ctx context.Context, inventoryItemID int64) ([]InventoryLevel, error) {
	q := url.Values{}
	q.Set("inventory_item_ids", strconv.FormatInt(inventoryItemID, 10))

	var out struct {
		InventoryLevels []InventoryLevel `json:"inventory_levels"`
	}
	if err := c.get(ctx, "inventory_levels.json", q, &out); err != nil {
		return nil, err
	}
	return out.InventoryLevels, nil
}

func (c *Client) SetInventoryLevel(ctx context.Context, inventoryItemID, locationID int64, available int) error {
	body := map[string]interface{}{
		"inventory_item_id": inventoryItemID,
		"location_id":       locationID,
		"available":         available,
	}
	return c.post(ctx, "inventory_levels/set.json", body, nil)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := fmt.Sprintf("https://%s/admin/api/%s/%s", c.shopURL, c.apiVersion, path)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	u := fmt.Sprintf("https://%s/admin/api/%s/%s", c.shopURL, c.apiVersion, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("X-Shopify-Access-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("shopify: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// ExchangeOAuthCode trades an OAuth authorization code for a permanent access
// token during the app-install callback.
func ExchangeOAuthCode(ctx context.Context, shopURL, clientID, clientSecret, code string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"client_id":     clientID,
		"client_secret": clientSecret,
		"code":          code,
	})
	if err != nil {
		return "", err
	}

	u := fmt.Sprintf("https://%s/admin/oauth/access_token", shopURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := (&http.Client{Timeout: 30 * time.Second}).Do(req)
	if err != nil {
		return "", fmt.Errorf("shopify: token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("shopify: token exchange returned no access token")
	}
	return out.AccessToken, nil
}
