package transport

import (
	"net/http"

	"github.com/viant/crmsession/storage"
)

type Option func(*RoundTripper)

// WithTokenSource sets token source
func WithTokenSource(source TokenSource) Option {
	return func(r *RoundTripper) {
		r.source = source
	}
}

// WithStorage sets token source reading durable credential slots
func WithStorage(store storage.Storage) Option {
	return func(r *RoundTripper) {
		r.source = &StorageSource{Storage: store}
	}
}

// WithTransport sets underlying transport
func WithTransport(transport http.RoundTripper) Option {
	return func(r *RoundTripper) {
		r.transport = transport
	}
}
