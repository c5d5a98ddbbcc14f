package session_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/crmsession/api"
	"github.com/viant/crmsession/api/mock"
	"github.com/viant/crmsession/credential"
	"github.com/viant/crmsession/identity"
	"github.com/viant/crmsession/session"
	"github.com/viant/crmsession/storage"
)

func TestStore_EndToEnd(t *testing.T) {
	ctx := context.Background()
	server := mock.NewHTTPTestAuthServer(mock.WithUser("jane@crm.io", "secret123", "Jane Manager", identity.RoleManager))
	defer server.Close()

	store, err := storage.NewBolt(filepath.Join(t.TempDir(), "session.db"))
	require.Nil(t, err)
	defer store.Close()

	client := api.New(server.URL, api.WithStorage(store))
	aStore, err := session.New(ctx, client, store)
	require.Nil(t, err)
	aStore.Start(ctx)
	assert.Equal(t, session.Unauthenticated, aStore.Session().State())

	err = aStore.Login(ctx, "jane@crm.io", "wrong")
	assert.True(t, api.IsUnauthorized(err))
	require.Nil(t, aStore.Login(ctx, "jane@crm.io", "secret123"))
	current := aStore.Session()
	assert.Equal(t, session.Authenticated, current.State())
	assert.Equal(t, identity.RoleManager, current.Role())
	claims, err := credential.ParseClaims(current.Credential)
	require.Nil(t, err)
	assert.Equal(t, "jane@crm.io", claims.Subject)

	// process restart: hydrated credential is verified against the API
	restarted, err := session.New(ctx, client, store)
	require.Nil(t, err)
	assert.Equal(t, session.HydratedUnverified, restarted.Session().State())
	restarted.Start(ctx)
	assert.Equal(t, session.Authenticated, restarted.Session().State())
	assert.Equal(t, current.Identity.ID, restarted.Session().Identity.ID)
	assert.Equal(t, 1, server.Calls(mock.MePath))

	server.Revoke(current.Credential)
	revoked, err := session.New(ctx, client, store)
	require.Nil(t, err)
	revoked.Start(ctx)
	assert.Equal(t, session.Session{}, revoked.Session())
	_, ok, err := store.Get(ctx, credential.AccessTokenKey)
	require.Nil(t, err)
	assert.False(t, ok)

	require.Nil(t, revoked.Register(ctx, "new@crm.io", "password1", "New Viewer"))
	assert.Equal(t, identity.RoleViewer, revoked.Session().Role())
	err = revoked.Register(ctx, "new@crm.io", "password1", "New Viewer")
	assert.True(t, api.IsBadRequest(err))
	assert.True(t, revoked.Session().IsAuthenticated)
}

func TestStore_EndToEnd_SnapshotCredentialVerified(t *testing.T) {
	ctx := context.Background()
	server := mock.NewHTTPTestAuthServer(mock.WithUser("jane@crm.io", "secret123", "Jane Manager", identity.RoleManager))
	defer server.Close()
	valid, err := server.IssueAccessToken("jane@crm.io")
	require.Nil(t, err)

	store := storage.NewMemory(
		storage.WithValue(credential.AccessTokenKey, valid),
		storage.WithValue(credential.SnapshotKey, `{"state":{"token":"bogus","user":null},"version":0}`),
	)
	aStore, err := session.New(ctx, api.New(server.URL, api.WithStorage(store)), store)
	require.Nil(t, err)
	assert.Equal(t, "bogus", aStore.Session().Credential)

	aStore.FetchUser(ctx)
	assert.Equal(t, session.Session{}, aStore.Session())
	assert.Equal(t, 1, server.Calls(mock.MePath))
}
