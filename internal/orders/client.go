// Package orders relays checkouts to the remote ordering backend.
package orders

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

	"github.com/01moynul/foodie-cart/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrRejected is returned when the backend answers with status false.
var ErrRejected = errors.New("order rejected by backend")

const placeOrderPath = "/Cart/addToCart"

// Client talks to the ordering backend's REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client for baseURL, e.g. "http://host/api".
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// PlaceOrder posts lines on behalf of the caller identified by token.
func (c *Client) PlaceOrder(ctx context.Context, token string, lines []models.OrderLine) (models.OrderResult, error) {
	body, err := json.Marshal(lines)
	if err != nil {
		return models.OrderResult{}, fmt.Errorf("encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+placeOrderPath, bytes.NewReader(body))
	if err != nil {
		return models.OrderResult{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return models.OrderResult{}, fmt.Errorf("place order: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return models.OrderResult{}, fmt.Errorf("read response: %w", err)
	}

	var result models.OrderResult
	decodeErr := json.Unmarshal(raw, &result)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := result.Message
		if decodeErr != nil || msg == "" {
			msg = "Server Error"
		}
		return result, fmt.Errorf("backend returned %d: %s", resp.StatusCode, msg)
	}
	if decodeErr != nil {
		return models.OrderResult{}, fmt.Errorf("decode response: %w", decodeErr)
	}
	if !result.Status {
		return result, ErrRejected
	}
	return result, nil
}
