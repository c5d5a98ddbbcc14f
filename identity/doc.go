// Package identity defines the cached record describing the authenticated
// principal of a CRM session, together with its closed set of roles.
package identity
