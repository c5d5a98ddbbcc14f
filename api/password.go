package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/viant/crmsession/api/transport"
	"github.com/viant/crmsession/identity"
	"github.com/viant/scy/auth/authorizer"
	"golang.org/x/oauth2"
)

// PasswordGrant obtains credential with OAuth2 resource owner password grant,
// registration and identity lookup are delegated to the REST client.
type PasswordGrant struct {
	config *oauth2.Config
	client *Client
}

func (p *PasswordGrant) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	tokenCtx := context.WithValue(transport.SkipAuth(ctx), oauth2.HTTPClient, p.client.httpClient)
	token, err := p.config.PasswordCredentialsToken(tokenCtx, email, password)
	if err != nil {
		return nil, retrieveError(err)
	}
	if token.AccessToken == "" {
		return nil, errors.New("password grant returned empty access token")
	}
	user, err := p.client.MeWithToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		User:         user,
	}, nil
}

func (p *PasswordGrant) Register(ctx context.Context, email, password, fullName string) (*TokenResponse, error) {
	return p.client.Register(ctx, email, password, fullName)
}

func (p *PasswordGrant) Me(ctx context.Context) (*identity.Identity, error) {
	return p.client.Me(ctx)
}

func retrieveError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		ret := newError(retrieveErr.Response.StatusCode, retrieveErr.Body)
		if retrieveErr.ErrorDescription != "" {
			ret.Detail = retrieveErr.ErrorDescription
		}
		if ret.StatusCode == http.StatusBadRequest && retrieveErr.ErrorCode == "invalid_grant" {
			ret.StatusCode = http.StatusUnauthorized
		}
		return ret
	}
	return fmt.Errorf("password grant failed: %w", err)
}

// LoadOAuth2Config loads client config with scy, configURL may carry "|key" blowfish suffix
func LoadOAuth2Config(ctx context.Context, configURL string) (*oauth2.Config, error) {
	auth := authorizer.New()
	oauthConfig := &authorizer.OAuthConfig{ConfigURL: configURL}
	if err := auth.EnsureConfig(ctx, oauthConfig); err != nil {
		return nil, fmt.Errorf("failed to load oauth2 config %v: %w", configURL, err)
	}
	if oauthConfig.Config == nil {
		return nil, fmt.Errorf("oauth2 config %v was empty", configURL)
	}
	return oauthConfig.Config, nil
}

// NewPasswordGrant creates password grant authenticator
func NewPasswordGrant(config *oauth2.Config, client *Client) *PasswordGrant {
	return &PasswordGrant{config: config, client: client}
}
