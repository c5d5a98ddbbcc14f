package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/viant/afs/url"
	"github.com/viant/crmsession/api/transport"
	"github.com/viant/crmsession/credential"
	"github.com/viant/crmsession/identity"
	"github.com/viant/crmsession/storage"
	"golang.org/x/oauth2"
)

const (
	// DefaultTimeout applies to every API call
	DefaultTimeout = 30 * time.Second

	loginURI    = "auth/login"
	registerURI = "auth/register"
	meURI       = "auth/me"

	maxBodySize = 1 << 20
)

// Client represents CRM authentication REST client
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	storage    storage.Storage
}

// Login exchanges email and password for credential pair
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	ret := &TokenResponse{}
	if err := c.post(transport.SkipAuth(ctx), loginURI, &LoginRequest{Email: email, Password: password}, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// Register creates account and returns its credential pair
func (c *Client) Register(ctx context.Context, email, password, fullName string) (*TokenResponse, error) {
	ret := &TokenResponse{}
	request := &RegisterRequest{Email: email, Password: password, FullName: fullName}
	if err := c.post(transport.SkipAuth(ctx), registerURI, request, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// Me returns identity authorized by context credential (transport.WithCredential),
// otherwise by credential attached by client transport
func (c *Client) Me(ctx context.Context) (*identity.Identity, error) {
	if held, ok := transport.Credential(ctx); ok {
		pair := &credential.Pair{Access: held}
		return c.me(ctx, pair.Token())
	}
	return c.me(ctx, nil)
}

// MeWithToken returns identity authorized by explicit token
func (c *Client) MeWithToken(ctx context.Context, token *oauth2.Token) (*identity.Identity, error) {
	return c.me(ctx, token)
}

func (c *Client) me(ctx context.Context, token *oauth2.Token) (*identity.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url.Join(c.baseURL, meURI), nil)
	if err != nil {
		return nil, err
	}
	if token != nil {
		token.SetAuthHeader(req)
	}
	ret := &identity.Identity{}
	if err = c.do(req, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (c *Client) post(ctx context.Context, URI string, body interface{}, output interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url.Join(c.baseURL, URI), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, output)
}

func (c *Client) do(req *http.Request, output interface{}) error {
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %v %v: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("failed to read %v response: %w", req.URL.Path, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newError(resp.StatusCode, data)
	}
	if err = json.Unmarshal(data, output); err != nil {
		return fmt.Errorf("failed to decode %v response: %w", req.URL.Path, err)
	}
	return nil
}

// New creates a client for API base URL, e.g. http://localhost:8000/api
func New(baseURL string, options ...Option) *Client {
	ret := &Client{baseURL: baseURL, timeout: DefaultTimeout}
	for _, opt := range options {
		opt(ret)
	}
	if ret.httpClient == nil {
		var transportOptions []transport.Option
		if ret.storage != nil {
			transportOptions = append(transportOptions, transport.WithStorage(ret.storage))
		}
		ret.httpClient = &http.Client{Transport: transport.New(transportOptions...), Timeout: ret.timeout}
	}
	return ret
}
