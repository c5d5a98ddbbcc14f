// Package credential defines the bearer credential pair issued by the CRM API
// and the durable key names it is stored under.
//
// Claims are inspected without signature verification; they are informational
// only and never decide whether a session is authenticated.
package credential
