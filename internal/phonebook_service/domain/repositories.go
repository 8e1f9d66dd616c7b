package domain

import "context"

// ContactRepository persists the whole contact collection at once.
type ContactRepository interface {
	// Save replaces the stored collection. Failures are *StoreError.
	Save(ctx context.Context, contacts []Contact) error
	// Load returns the stored collection in saved order. A missing backing
	// file yields an empty collection and no error. Failures are *StoreError.
	Load(ctx context.Context) ([]Contact, error)
	// Location names the backing file, for logs and messages.
	Location() string
}
