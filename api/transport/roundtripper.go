package transport

import (
	"context"
	"net/http"

	"github.com/viant/crmsession/credential"
	"golang.org/x/oauth2"
)

type contextKey string

// skipAuthKey marks request that must not carry stored credential
const skipAuthKey contextKey = "skipAuth"

// credentialKey carries credential that takes precedence over token source
const credentialKey contextKey = "credential"

// SkipAuth returns context for request that must leave without stored credential
func SkipAuth(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipAuthKey, true)
}

// WithCredential returns context authorizing requests with credential instead of stored one
func WithCredential(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, credentialKey, token)
}

// Credential returns credential set with WithCredential
func Credential(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(credentialKey).(string)
	return value, ok
}

type RoundTripper struct {
	source    TokenSource
	transport http.RoundTripper
}

func New(options ...Option) *RoundTripper {
	ret := &RoundTripper{
		transport: http.DefaultTransport,
		source:    nopSource{},
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

func (r *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Authorization") != "" || req.Context().Value(skipAuthKey) != nil {
		return r.transport.RoundTrip(req)
	}
	token, err := r.token(req.Context())
	if err != nil {
		return nil, err
	}
	if token == nil || token.AccessToken == "" {
		return r.transport.RoundTrip(req)
	}
	authorized := req.Clone(req.Context())
	token.SetAuthHeader(authorized)
	return r.transport.RoundTrip(authorized)
}

func (r *RoundTripper) token(ctx context.Context) (*oauth2.Token, error) {
	if value, ok := Credential(ctx); ok {
		pair := &credential.Pair{Access: value}
		return pair.Token(), nil
	}
	return r.source.Token(ctx)
}
