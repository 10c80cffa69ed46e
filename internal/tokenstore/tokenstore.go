package tokenstore

import (
	"context"

	"frontend/internal/storage"
)

// Store keeps the auth token either in durable storage ("remember me") or in
// session storage. It does not track expiry; the backend rejects stale tokens.
type Store struct {
	Durable storage.Store
	Session storage.Store
}

func New(durable, session storage.Store) Store {
	return Store{Durable: durable, Session: session}
}

// GetToken checks durable storage first, then session storage. "" means no token.
func (s Store) GetToken(ctx context.Context) (string, error) {
	for _, st := range []storage.Store{s.Durable, s.Session} {
		if st == nil {
			continue
		}
		v, ok, err := st.Get(ctx, storage.KeyToken)
		if err != nil {
			return "", err
		}
		if ok && v != "" {
			return v, nil
		}
	}
	return "", nil
}

// Token makes Store usable as an apiclient.TokenSource.
func (s Store) Token(ctx context.Context) (string, error) {
	return s.GetToken(ctx)
}

// Holder returns the store that keeps token. A token found in neither (one
// that only arrived as a cookie) belongs to session storage.
func (s Store) Holder(ctx context.Context, token string) storage.Store {
	if s.Durable != nil {
		if v, ok, err := s.Durable.Get(ctx, storage.KeyToken); err == nil && ok && v == token {
			return s.Durable
		}
	}
	if s.Session != nil {
		return s.Session
	}
	return s.Durable
}

func (s Store) SetToken(ctx context.Context, token string, remember bool) error {
	target, other := s.Session, s.Durable
	if remember {
		target, other = s.Durable, s.Session
	}
	if err := target.Set(ctx, storage.KeyToken, token); err != nil {
		return err
	}
	if other != nil {
		return other.Remove(ctx, storage.KeyToken)
	}
	return nil
}

func (s Store) RemoveToken(ctx context.Context) error {
	for _, st := range []storage.Store{s.Durable, s.Session} {
		if st == nil {
			continue
		}
		if err := st.Remove(ctx, storage.KeyToken); err != nil {
			return err
		}
	}
	return nil
}
