// Package session implements the client-side session store: it owns the
// authentication state of one process (identity, bearer credential and the
// derived authenticated/loading flags), exposes the commands transitioning
// that state and mirrors {credential, identity} to durable storage on every
// change.
//
// A Store is constructed once at process start (New hydrates it from
// storage) and injected into every consumer. Start performs the one-time
// verification of a hydrated credential.
//
// Commands are not serialized. Two Login calls issued concurrently race to
// completion and the last write wins; callers are expected to avoid issuing
// them while Session().IsLoading is true.
package session
