// Package transport implements an http.RoundTripper attaching the stored bearer
// credential to outgoing CRM API requests.
//
// The credential is read from its own durable slot on every request, so any
// API call picks up a credential adopted by the session store without going
// through the store itself. Requests leave unauthenticated when no credential
// is stored.
package transport
