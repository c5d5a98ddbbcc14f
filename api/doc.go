// Package api implements the CRM authentication API client consumed by the
// session store: login, registration and the "who am I" identity lookup.
//
// Client talks to the REST endpoints mounted under the API base URL
// (/auth/login, /auth/register, /auth/me). PasswordGrant obtains credentials
// through an OAuth2 password grant instead, with the client configuration
// loaded via scy. Both authorize identity lookups with the bearer credential
// attached by the transport sub-package.
package api
