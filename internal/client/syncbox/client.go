// Package syncbox talks to the remote backup row: a key-value endpoint that
// stores one JSON blob per sync identifier. The identifier doubles as the
// row key and the lookup secret, so it travels in the request path while
// the access key goes in the Authorization header.
package syncbox

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tradejournal/internal/models"
)

type Client struct {
	BaseURL   string
	AccessKey string

	HTTP *http.Client
}

func NewClient(httpClient *http.Client, baseURL, accessKey string) *Client {
	return &Client{
		BaseURL:   baseURL,
		AccessKey: accessKey,
		HTTP:      httpClient,
	}
}

// Upsert replaces the remote row for syncID with the given state. The
// remote applies the write atomically per row; there is no partial state.
func (c *Client) Upsert(ctx context.Context, syncID string, snap models.Snapshot) error {
	base, err := c.base()
	if err != nil {
		return err
	}
	if strings.TrimSpace(syncID) == "" {
		return errors.New("sync id is empty")
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, base+"/v1/rows/"+url.PathEscape(syncID), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(c.AccessKey))

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return fmt.Errorf("syncbox upsert http %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return nil
}

// Fetch loads the remote row for syncID. A 404 means the row does not exist
// yet and yields (nil, nil), not an error.
func (c *Client) Fetch(ctx context.Context, syncID string) (*models.Snapshot, error) {
	base, err := c.base()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(syncID) == "" {
		return nil, errors.New("sync id is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/v1/rows/"+url.PathEscape(syncID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(c.AccessKey))

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("syncbox fetch http %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var snap models.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Client) base() (string, error) {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		return "", errors.New("syncbox base url is empty")
	}
	return base, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: 10 * time.Second}
}
