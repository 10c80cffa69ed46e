// Package handoff stores typed, versioned payloads in client storage so the
// producer and consumer of a key agree on its shape.
package handoff

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"frontend/internal/domain"
	"frontend/internal/storage"
)

// Version is bumped whenever a payload shape changes incompatibly.
const Version = 1

var ErrMissing = errors.New("handoff: no entry")

type Envelope struct {
	Version int             `json:"version"`
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// Put writes value under key, tagged with key as its kind.
func Put[T any](ctx context.Context, store storage.Store, key string, value T) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	raw, err := json.Marshal(Envelope{Version: Version, Kind: key, Payload: payload})
	if err != nil {
		return fmt.Errorf("encode %s envelope: %w", key, err)
	}
	return store.Set(ctx, key, string(raw))
}

// Get reads the payload under key. A missing key yields ErrMissing; a kind or
// version mismatch yields a domain.ValidationError.
func Get[T any](ctx context.Context, store storage.Store, key string) (T, error) {
	var out T
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return out, err
	}
	if !ok || raw == "" {
		return out, ErrMissing
	}

	var env Envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return out, domain.ValidationError{Field: key, Msg: "stored payload is not an envelope", Err: err}
	}
	if env.Kind != key {
		return out, domain.ValidationError{Field: key, Msg: fmt.Sprintf("stored kind %q does not match", env.Kind)}
	}
	if env.Version != Version {
		return out, domain.ValidationError{Field: key, Msg: fmt.Sprintf("unsupported payload version %d", env.Version)}
	}
	if err := json.Unmarshal(env.Payload, &out); err != nil {
		return out, domain.ValidationError{Field: key, Msg: "stored payload has an unexpected shape", Err: err}
	}
	return out, nil
}

// Take reads the payload and removes the key.
func Take[T any](ctx context.Context, store storage.Store, key string) (T, error) {
	out, err := Get[T](ctx, store, key)
	if err != nil {
		return out, err
	}
	return out, store.Remove(ctx, key)
}
