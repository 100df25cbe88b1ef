// Package remote talks to the hosted catalog service over its GraphQL API.  It
// implements the repository interfaces declared in the domain package; nothing
// outside this package knows the wire format.
package remote

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/machinebox/graphql"

	"github.com/PizzaHomicide/hotaru/internal/log"
)

// Client is the generic GraphQL client for the catalog service.  A single
// client is shared by all repositories; the auth token is attached to every
// request once sign in succeeds.
type Client struct {
	client *graphql.Client
	apiKey string

	mu    sync.RWMutex
	token string
}

// NewClient creates a client for the service at the given endpoint
func NewClient(endpoint, apiKey string) (*Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("service endpoint is empty")
	}

	return &Client{
		client: graphql.NewClient(endpoint),
		apiKey: apiKey,
	}, nil
}

// SetToken replaces the auth token attached to subsequent requests.  Pass the
// empty string to clear it on sign out.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current auth token, or "" when signed out
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Query runs a GraphQL query or mutation and decodes the response into result
func (c *Client) Query(ctx context.Context, query string, variables map[string]interface{}, result interface{}) error {
	req := graphql.NewRequest(query)

	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	for key, value := range variables {
		req.Var(key, value)
	}

	if err := c.client.Run(ctx, req, result); err != nil {
		return classifyError(err)
	}
	return nil
}

// NetworkError wraps failures to reach the service at all, as opposed to the
// service rejecting a request.  The UI offers a retry for these.
type NetworkError struct {
	Err error
}

func (e NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e NetworkError) Unwrap() error {
	return e.Err
}

func classifyError(err error) error {
	var netErr *url.Error
	if errors.As(err, &netErr) && (netErr.Timeout() || netErr.Temporary() ||
		strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "no such host") ||
		strings.Contains(err.Error(), "i/o timeout")) {
		log.Warn("Request failed with network error", "error", err)
		return NetworkError{Err: err}
	}
	return err
}
