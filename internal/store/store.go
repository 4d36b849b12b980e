// Package store provides the persistent record store: a durable mapping
// from collection name to a full JSON-serialized sequence of records,
// standing in for the browser key-value storage the portal originally ran
// against. Writes replace the entire collection; there is no partial or
// merge write.
package store

import "context"

// Store is the record store contract shared by all three portal modules.
//
// Load decodes the named collection into out, which must be a pointer to
// a slice. An absent collection or a corrupt stored value is treated
// identically to an empty collection and is never surfaced as an error;
// demo data fails open.
//
// Save serializes records and fully replaces the prior content of the
// collection.
//
// Update runs fn inside a single transaction, so a mutation spanning two
// collections (booking a slot and appending the appointment) is applied
// atomically or not at all.
type Store interface {
	Load(ctx context.Context, collection string, out any) error
	Save(ctx context.Context, collection string, records any) error
	Update(ctx context.Context, fn func(tx Tx) error) error
}

// Tx exposes Load and Save against an open transaction.
type Tx interface {
	Load(collection string, out any) error
	Save(collection string, records any) error
}
