// Package crmsession provides a client-side session manager for the CRM messaging API.
//
// The session itself lives in the session package; this package is an umbrella that
// wires a session store with its two collaborators from a single options structure:
//  1. durable key/value storage selected by URL (mem://, bolt://, redis://, file path) and
//  2. the authentication API client, optionally logging in through an OAuth2 password grant.
//
// Options can be populated from the environment (see config), CLI flags or configuration files.
//
// Example:
//
//	store, closer, _ := crmsession.Open(ctx, &crmsession.Options{APIURL: "http://localhost:8000/api"})
//	defer closer.Close()
//	store.Start(ctx)
//	_ = store.Login(ctx, "jane@crm.io", "secret")
package crmsession
