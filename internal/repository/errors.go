// Package repository holds the stores owned by each backend service.
// Users, spaces and reservations live in process memory, each behind its
// own lock and id counter; payments can also be kept in MySQL.  The raw
// collections never leave the store: every read returns copies.
package repository

import "errors"

// ErrNotFound is returned when no record matches the requested key.
// Handlers translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when signing up with an email that is
// already registered.
var ErrEmailExists = errors.New("email already exists")
