package credential

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

const (
	// AccessTokenKey durable slot holding raw access credential
	AccessTokenKey = "access_token"
	// RefreshTokenKey durable slot holding companion refresh credential
	RefreshTokenKey = "refresh_token"
	// SnapshotKey durable slot holding aggregate session snapshot
	SnapshotKey = "auth-storage"

	BearerType = "Bearer"
)

// Pair represents access and refresh credential
type Pair struct {
	Access  string
	Refresh string
}

// IsEmpty returns true if access credential is not set
func (p *Pair) IsEmpty() bool {
	return p == nil || p.Access == ""
}

// Token returns oauth2 token, expiry is taken from unverified access claims when available
func (p *Pair) Token() *oauth2.Token {
	if p.IsEmpty() {
		return nil
	}
	ret := &oauth2.Token{AccessToken: p.Access, RefreshToken: p.Refresh, TokenType: BearerType}
	if claims, err := ParseClaims(p.Access); err == nil {
		ret.Expiry = claims.Expiry
	}
	return ret
}

// Claims represents informational access credential claims
type Claims struct {
	Subject string
	Type    string
	Expiry  time.Time
}

// Expired returns true if expiry is set and passed
func (c *Claims) Expired(now time.Time) bool {
	return !c.Expiry.IsZero() && now.After(c.Expiry)
}

// ParseClaims decodes JWT claims without verifying signature
func ParseClaims(token string) (*Claims, error) {
	if token == "" {
		return nil, errors.New("credential was empty")
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to parse credential claims: %w", err)
	}
	ret := &Claims{}
	ret.Subject, _ = claims.GetSubject()
	if expiry, _ := claims.GetExpirationTime(); expiry != nil {
		ret.Expiry = expiry.Time
	}
	if typ, ok := claims["type"].(string); ok {
		ret.Type = typ
	}
	return ret, nil
}
