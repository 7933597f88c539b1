package interfaces

import "context"

// SessionBackend is durable key-value storage for one connection session per scope.
// Fields are flat string pairs; the backend does not interpret them.
//
//go:generate moq -stub -out mock/session_backend.go -pkg mock . SessionBackend
type SessionBackend interface {
	// ReadSession returns all fields stored under scope.
	// Returns:
	// 1) (fields, nil) on success, empty map when nothing is stored;
	// 2) (nil, internal_server_error) when the storage read fails.
	ReadSession(ctx context.Context, scope string) (map[string]string, error)

	// WriteSession replaces every field under scope in one transaction: readers see all new fields or the old ones.
	// Returns:
	// 1) nil on success;
	// 2) internal_server_error when the storage write fails.
	WriteSession(ctx context.Context, scope string, fields map[string]string) error

	// DeleteSession removes every field under scope. Deleting an absent scope is not an error.
	DeleteSession(ctx context.Context, scope string) error
}
