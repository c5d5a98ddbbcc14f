package api

import (
	"net/http"
	"time"

	"github.com/viant/crmsession/storage"
)

type Option func(*Client)

// WithHTTPClient sets http client, its transport is responsible for authorization
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithStorage authorizes requests with credential read from durable storage
func WithStorage(store storage.Storage) Option {
	return func(c *Client) {
		c.storage = store
	}
}
