// Package storage defines the durable key/value contract the session store
// reads at startup and writes on every change.
//
// It ships with an in-memory implementation suitable for tests, an afs backed
// store keeping one object per key, a boltdb single-file store and a redis
// store. Open selects an implementation from a storage URL.
package storage
