// Package mock provides an in-process fake of the CRM authentication API that
// facilitates testing the session store and API client without a backend.
//
// The fake keeps a registry of users, issues HS256 signed credentials and
// exposes login, registration, identity lookup and a password grant token
// endpoint under /api/auth. Every endpoint handler can be overridden.
package mock
