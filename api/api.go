package api

import (
	"context"

	"github.com/viant/crmsession/credential"
	"github.com/viant/crmsession/identity"
)

// Authenticator represents authentication API consumed by the session store
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*TokenResponse, error)
	Register(ctx context.Context, email, password, fullName string) (*TokenResponse, error)
	// Me returns identity authorized by currently held credential
	Me(ctx context.Context) (*identity.Identity, error)
}

// TokenResponse represents login and registration payload
type TokenResponse struct {
	AccessToken  string             `json:"access_token"`
	RefreshToken string             `json:"refresh_token"`
	TokenType    string             `json:"token_type,omitempty"`
	User         *identity.Identity `json:"user"`
}

// Pair returns credential pair
func (r *TokenResponse) Pair() *credential.Pair {
	return &credential.Pair{Access: r.AccessToken, Refresh: r.RefreshToken}
}

// LoginRequest represents login body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents registration body
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}
