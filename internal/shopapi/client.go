// Package shopapi is the HTTP client for the remote shop API: catalog
// list, single product and order submission. Transport failures are
// wrapped and handed back untranslated; the orchestration layer decides
// what to do with them.
package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"storefront/configs"
	"storefront/internal/domain"
)

type Client struct {
	baseURL string
	cdn     string
	client  *http.Client
	log     *slog.Logger
}

// listResponse mirrors the API's paged list envelope.
type listResponse struct {
	Total int              `json:"total"`
	Items []domain.Product `json:"items"`
}

func NewClient(cfg *configs.Config, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.API.BaseURL, "/"),
		cdn:     strings.TrimRight(cfg.API.CDNURL, "/"),
		client:  &http.Client{Timeout: cfg.API.Timeout},
		log:     log,
	}
}

// ProductList fetches the whole catalog. Image paths come back relative
// and are prefixed with the CDN base here, so the rest of the app never
// sees a bare path.
func (c *Client) ProductList(ctx context.Context) ([]domain.Product, error) {
	var list listResponse
	if err := c.get(ctx, "/product", &list); err != nil {
		return nil, fmt.Errorf("shopapi: product list: %w", err)
	}
	items := make([]domain.Product, len(list.Items))
	for i, item := range list.Items {
		item.Image = c.cdn + item.Image
		items[i] = item
	}
	return items, nil
}

func (c *Client) Product(ctx context.Context, id string) (domain.Product, error) {
	var item domain.Product
	if err := c.get(ctx, "/product/"+id, &item); err != nil {
		return domain.Product{}, fmt.Errorf("shopapi: product %s: %w", id, err)
	}
	item.Image = c.cdn + item.Image
	return item, nil
}

// SubmitOrder posts the order wholesale and returns the API's receipt.
func (c *Client) SubmitOrder(ctx context.Context, order domain.Order) (domain.OrderResult, error) {
	var result domain.OrderResult
	if err := c.post(ctx, "/order", order, &result); err != nil {
		return domain.OrderResult{}, fmt.Errorf("shopapi: submit order: %w", err)
	}
	return result, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Debug("shop api error response",
			"status", resp.StatusCode,
			"path", req.URL.Path,
			"body", string(data),
		)
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
