package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jaidar2003/Mockachino/internal/logging"

	"github.com/google/uuid"
)

// Collection names one of the backend's record collections.
type Collection string

const (
	CollectionUsers    Collection = "users"
	CollectionPersons  Collection = "persons"
	CollectionContacts Collection = "contacts"
)

// Collections lists every collection the backend serves.
var Collections = []Collection{CollectionUsers, CollectionPersons, CollectionContacts}

// ParseCollection maps a name to a Collection.
func ParseCollection(name string) (Collection, error) {
	for _, c := range Collections {
		if string(c) == strings.ToLower(strings.TrimSpace(name)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid: %v)", ErrUnknownCollection, name, Collections)
}

// Fetcher loads one collection.
type Fetcher interface {
	Fetch(ctx context.Context, collection Collection) ([]Record, error)
}

// maxErrorBody caps how much of a failed response body ends up in an error.
const maxErrorBody = 512

// Client fetches collections from the mock backend.
// It holds no per-request state and is safe to share between pages.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets a client-wide timeout. Zero means none.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// NewClient creates a client for baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL returns the endpoint for a collection.
func (c *Client) URL(collection Collection) string {
	return c.baseURL + "/" + string(collection)
}

// Fetch issues one GET for the collection and normalizes the body.
// Every call is a fresh request: nothing is retried, cached or shared with
// calls already in flight.
func (c *Client) Fetch(ctx context.Context, collection Collection) ([]Record, error) {
	url := c.URL(collection)
	requestID := uuid.NewString()

	fail := func(status int, err error) error {
		logging.APIError("fetch %s failed (request %s): %v", collection, requestID, err)
		return &TransportError{
			Collection: collection,
			URL:        url,
			StatusCode: status,
			RequestID:  requestID,
			Err:        err,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fail(0, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	logging.APIDebug("GET %s (request %s)", url, requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fail(0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fail(resp.StatusCode, fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(body))))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fail(resp.StatusCode, fmt.Errorf("failed to read response: %w", err))
	}

	result := Normalize(body)
	if result.Kind == KindEmpty {
		logging.APIDebug("fetch %s: no record array in %d byte response", collection, len(body))
	}
	logging.API("fetch %s: %d records in %s", collection, len(result.Records), time.Since(start))

	return result.Records, nil
}

// Users fetches the users collection.
func (c *Client) Users(ctx context.Context) ([]Record, error) {
	return c.Fetch(ctx, CollectionUsers)
}

// Persons fetches the persons collection.
func (c *Client) Persons(ctx context.Context) ([]Record, error) {
	return c.Fetch(ctx, CollectionPersons)
}

// Contacts fetches the contacts collection.
func (c *Client) Contacts(ctx context.Context) ([]Record, error) {
	return c.Fetch(ctx, CollectionContacts)
}
