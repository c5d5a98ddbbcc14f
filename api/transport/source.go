package transport

import (
	"context"
	"fmt"

	"github.com/viant/crmsession/credential"
	"github.com/viant/crmsession/storage"
	"golang.org/x/oauth2"
)

// TokenSource returns token for outgoing request, nil token means no credential
type TokenSource interface {
	Token(ctx context.Context) (*oauth2.Token, error)
}

// StorageSource reads credential pair from durable storage slots
type StorageSource struct {
	Storage storage.Storage
}

func (s *StorageSource) Token(ctx context.Context) (*oauth2.Token, error) {
	access, ok, err := s.Storage.Get(ctx, credential.AccessTokenKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read credential: %w", err)
	}
	if !ok || access == "" {
		return nil, nil
	}
	refresh, _, err := s.Storage.Get(ctx, credential.RefreshTokenKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read refresh credential: %w", err)
	}
	pair := &credential.Pair{Access: access, Refresh: refresh}
	return pair.Token(), nil
}

// StaticSource always returns the same token
type StaticSource struct {
	Value *oauth2.Token
}

func (s *StaticSource) Token(context.Context) (*oauth2.Token, error) {
	return s.Value, nil
}

type nopSource struct{}

func (nopSource) Token(context.Context) (*oauth2.Token, error) {
	return nil, nil
}
