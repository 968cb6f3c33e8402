package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/drift-im/drift/internal/core/identity"
)

// userKey is the well-known key the session user record is stored under.
const userKey = "session.user"

// UserStore implements identity.Store over a KVStore, persisting the
// single session user record as a JSON value.
type UserStore struct {
	kv *KVStore
}

// NewUserStore creates a user store backed by the JSON KV file at path.
func NewUserStore(path string) *UserStore {
	return &UserStore{kv: NewKVStore(path)}
}

// Load returns the persisted user. Returns identity.ErrNoSession if no
// record exists.
func (s *UserStore) Load(ctx context.Context) (identity.User, error) {
	entry, err := s.kv.Get(ctx, userKey)
	if errors.Is(err, ErrKeyNotFound) {
		return identity.User{}, identity.ErrNoSession
	}
	if err != nil {
		return identity.User{}, fmt.Errorf("load user record: %w", err)
	}

	var u identity.User
	if err := json.Unmarshal([]byte(entry.Value), &u); err != nil {
		return identity.User{}, fmt.Errorf("parse user record: %w", err)
	}

	return u, nil
}

// Save creates or replaces the persisted user record.
func (s *UserStore) Save(ctx context.Context, u identity.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user record: %w", err)
	}

	if err := s.kv.Set(ctx, userKey, string(data)); err != nil {
		return fmt.Errorf("save user record: %w", err)
	}

	return nil
}

// Clear removes the persisted user record. Clearing an absent record is
// not an error.
func (s *UserStore) Clear(ctx context.Context) error {
	err := s.kv.Delete(ctx, userKey)
	if errors.Is(err, ErrKeyNotFound) {
		return nil
	}
	return err
}
