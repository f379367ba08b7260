// Package repositories contains the MongoDB data access layer. Repositories
// hold a collection handle injected at boot and expose typed operations;
// business rules live one layer up in services.
package repositories

import "errors"

// ErrNotFound is returned when a document the caller named does not exist.
var ErrNotFound = errors.New("not found")
