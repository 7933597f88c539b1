// Package boltstore keeps connection sessions in a local bbolt file, one nested bucket per scope.
package boltstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"reeferlink/service"

	"go.etcd.io/bbolt"
)

var sessionsBucketName = []byte("sessions")

// SessionBackend implements interfaces.SessionBackend on bbolt.
type SessionBackend struct {
	db   *bbolt.DB
	path string
}

// Open opens (or creates) the session file at path, creating its directory if needed.
func Open(path string) (*SessionBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{
		Timeout: 5 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionsBucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create sessions bucket: %w", err)
	}

	return &SessionBackend{db: db, path: path}, nil
}

// Close closes the underlying file.
func (b *SessionBackend) Close() error {
	return b.db.Close()
}

func (b *SessionBackend) ReadSession(ctx context.Context, scope string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, service.NewInternalServerError("Bolt read session error", err)
	}
	fields := make(map[string]string)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(sessionsBucketName).Bucket([]byte(scope))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			fields[string(k)] = string(v)
			return nil
		})
	})
	if err != nil {
		return nil, service.NewInternalServerError("Bolt read session error", fmt.Errorf("can't read session (scope='%s'), err: %w", scope, err))
	}
	return fields, nil
}

// WriteSession drops and recreates the scope bucket in a single transaction.
func (b *SessionBackend) WriteSession(ctx context.Context, scope string, fields map[string]string) error {
	if err := ctx.Err(); err != nil {
		return service.NewInternalServerError("Bolt write session error", err)
	}
	err := b.db.Update(func(tx *bbolt.Tx) error {
		sessions := tx.Bucket(sessionsBucketName)
		if err := sessions.DeleteBucket([]byte(scope)); err != nil && !errors.Is(err, bbolt.ErrBucketNotFound) {
			return err
		}
		bucket, err := sessions.CreateBucket([]byte(scope))
		if err != nil {
			return err
		}
		for k, v := range fields {
			if err := bucket.Put([]byte(k), []byte(v)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return service.NewInternalServerError("Bolt write session error", fmt.Errorf("can't write session (scope='%s'), err: %w", scope, err))
	}
	return nil
}

func (b *SessionBackend) DeleteSession(ctx context.Context, scope string) error {
	if err := ctx.Err(); err != nil {
		return service.NewInternalServerError("Bolt delete session error", err)
	}
	err := b.db.Update(func(tx *bbolt.Tx) error {
		err := tx.Bucket(sessionsBucketName).DeleteBucket([]byte(scope))
		if errors.Is(err, bbolt.ErrBucketNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return service.NewInternalServerError("Bolt delete session error", fmt.Errorf("can't delete session (scope='%s'), err: %w", scope, err))
	}
	return nil
}
