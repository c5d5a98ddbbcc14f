package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/crmsession/api"
	"github.com/viant/crmsession/api/mock"
	"github.com/viant/crmsession/api/transport"
	"github.com/viant/crmsession/credential"
	"github.com/viant/crmsession/identity"
	"github.com/viant/crmsession/storage"
	"golang.org/x/oauth2"
)

func TestClient_Login(t *testing.T) {
	server := mock.NewHTTPTestAuthServer(mock.WithUser("a@b.com", "password1", "Ann Admin", identity.RoleAdmin))
	defer server.Close()
	client := api.New(server.URL)
	ctx := context.Background()

	var testCases = []struct {
		description  string
		email        string
		password     string
		expectStatus int
	}{
		{description: "valid credentials", email: "a@b.com", password: "password1"},
		{description: "wrong password", email: "a@b.com", password: "nope", expectStatus: http.StatusUnauthorized},
		{description: "unknown user", email: "x@b.com", password: "password1", expectStatus: http.StatusUnauthorized},
	}

	for _, testCase := range testCases {
		response, err := client.Login(ctx, testCase.email, testCase.password)
		if testCase.expectStatus != 0 {
			require.NotNil(t, err, testCase.description)
			apiErr := &api.Error{}
			require.True(t, errors.As(err, &apiErr), testCase.description)
			assert.Equal(t, testCase.expectStatus, apiErr.StatusCode, testCase.description)
			assert.Equal(t, "Incorrect email or password", apiErr.Detail, testCase.description)
			assert.True(t, api.IsUnauthorized(err), testCase.description)
			continue
		}
		require.Nil(t, err, testCase.description)
		assert.NotEmpty(t, response.AccessToken, testCase.description)
		assert.NotEmpty(t, response.RefreshToken, testCase.description)
		user, _ := server.User(testCase.email)
		assert.Equal(t, user.Identity(), response.User, testCase.description)
		assert.Equal(t, &credential.Pair{Access: response.AccessToken, Refresh: response.RefreshToken}, response.Pair())
	}
}

func TestClient_Register(t *testing.T) {
	server := mock.NewHTTPTestAuthServer(mock.WithUser("taken@b.com", "password1", "Taken", identity.RoleViewer))
	defer server.Close()
	client := api.New(server.URL)
	ctx := context.Background()

	response, err := client.Register(ctx, "new@b.com", "password1", "New User")
	require.Nil(t, err)
	assert.Equal(t, "new@b.com", response.User.Email)
	assert.Equal(t, identity.RoleViewer, response.User.Role)

	_, err = client.Register(ctx, "taken@b.com", "password1", "Taken")
	require.NotNil(t, err)
	assert.True(t, api.IsBadRequest(err))
	assert.Contains(t, err.Error(), "Email already registered")

	_, err = client.Register(ctx, "short@b.com", "pw", "Short")
	require.NotNil(t, err)
	assert.True(t, api.IsBadRequest(err))
	assert.Contains(t, err.Error(), "body.password: ensure this value has at least 8 characters")
	assert.Equal(t, 2, server.UserCount())
}

func TestClient_Me(t *testing.T) {
	server := mock.NewHTTPTestAuthServer(mock.WithUser("m@b.com", "password1", "Manager", identity.RoleManager))
	defer server.Close()
	ctx := context.Background()
	store := storage.NewMemory()
	client := api.New(server.URL, api.WithStorage(store), api.WithTimeout(5*time.Second))

	_, err := client.Me(ctx)
	assert.True(t, api.IsUnauthorized(err), "no credential stored")

	require.Nil(t, store.Set(ctx, credential.AccessTokenKey, "garbage"))
	_, err = client.Me(ctx)
	assert.True(t, api.IsUnauthorized(err), "invalid credential")

	token, err := server.IssueAccessToken("m@b.com")
	require.Nil(t, err)
	require.Nil(t, store.Set(ctx, credential.AccessTokenKey, token))
	actual, err := client.Me(ctx)
	require.Nil(t, err)
	assert.Equal(t, "m@b.com", actual.Email)
	assert.Equal(t, identity.RoleManager, actual.Role)

	server.Revoke(token)
	_, err = client.Me(ctx)
	assert.True(t, api.IsUnauthorized(err), "revoked credential")

	held, err := server.IssueAccessToken("m@b.com")
	require.Nil(t, err)
	actual, err = client.Me(transport.WithCredential(ctx, held))
	require.Nil(t, err, "context credential takes precedence over stored one")
	assert.Equal(t, "m@b.com", actual.Email)
	_, err = client.Me(transport.WithCredential(ctx, "bogus"))
	assert.True(t, api.IsUnauthorized(err), "context credential is the one verified")

	other, err := server.IssueAccessToken("m@b.com")
	require.Nil(t, err)
	actual, err = client.MeWithToken(ctx, &oauth2.Token{AccessToken: other, TokenType: "Bearer"})
	require.Nil(t, err)
	assert.Equal(t, "Manager", actual.FullName)
}

func TestClient_TransportFailure(t *testing.T) {
	server := mock.NewHTTPTestAuthServer()
	URL := server.URL
	server.Close()

	_, err := api.New(URL).Login(context.Background(), "a@b.com", "pw")
	require.NotNil(t, err)
	assert.False(t, api.IsUnauthorized(err))
	apiErr := &api.Error{}
	assert.False(t, errors.As(err, &apiErr))
}

func TestClient_ServerError(t *testing.T) {
	server := mock.NewHTTPTestAuthServer()
	defer server.Close()
	server.LoginHandler = func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}
	_, err := api.New(server.URL).Login(context.Background(), "a@b.com", "pw")
	apiErr := &api.Error{}
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "boom", apiErr.Detail)
}

func TestPasswordGrant_Login(t *testing.T) {
	server := mock.NewHTTPTestAuthServer(mock.WithUser("a@b.com", "password1", "Ann", identity.RoleAdmin))
	defer server.Close()
	config := &oauth2.Config{
		ClientID:     server.ClientID,
		ClientSecret: server.ClientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: server.TokenURL(), AuthStyle: oauth2.AuthStyleInHeader},
	}
	grant := api.NewPasswordGrant(config, api.New(server.URL))
	ctx := context.Background()

	response, err := grant.Login(ctx, "a@b.com", "password1")
	require.Nil(t, err)
	assert.NotEmpty(t, response.AccessToken)
	assert.NotEmpty(t, response.RefreshToken)
	assert.Equal(t, "a@b.com", response.User.Email)
	assert.Equal(t, 1, server.Calls(mock.TokenPath))
	assert.Equal(t, 1, server.Calls(mock.MePath))

	_, err = grant.Login(ctx, "a@b.com", "wrong")
	require.NotNil(t, err)
	assert.True(t, api.IsUnauthorized(err))

	registered, err := grant.Register(ctx, "new@b.com", "password1", "New")
	require.Nil(t, err)
	assert.Equal(t, "New", registered.User.FullName)
}
