package auth

import (
	"context"
	"testing"

	"frontend/internal/domain"
	"frontend/internal/domain/models"
	"frontend/internal/storage"
	"frontend/internal/tokenstore"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("any-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func newTestStore() (*Store, *storage.Observed, tokenstore.Store) {
	obs := storage.NewObserved(storage.NewMemoryBackend(0))
	tokens := tokenstore.New(storage.Scoped(obs, "device"), storage.Scoped(obs, "session"))
	return NewStore(tokens), obs, tokens
}

func TestDecodeIgnoresSignature(t *testing.T) {
	tok := signToken(t, jwt.MapClaims{"user_id": 42, "role": "1", "email": "a@b.test"})
	c, err := Decode("Bearer " + tok)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.UserID != 42 || c.Role != domain.RoleAdmin || c.Email != "a@b.test" {
		t.Fatalf("unexpected claims %+v", c)
	}

	if _, err := Decode("not-a-jwt"); err == nil {
		t.Fatalf("expected decode failure")
	}
}

func TestInitCookieWinsOverStorage(t *testing.T) {
	ctx := context.Background()
	s, _, tokens := newTestStore()

	_ = tokens.SetToken(ctx, signToken(t, jwt.MapClaims{"id": 1, "role": 3}), true)
	st := s.Init(ctx, signToken(t, jwt.MapClaims{"id": 2, "role": 2}))

	if !st.Resolved || !st.IsLoggedIn || st.Role != domain.RoleAgent || st.User.ID != 2 {
		t.Fatalf("cookie token should win, got %+v", st)
	}
}

func TestInitFromStorage(t *testing.T) {
	ctx := context.Background()
	s, _, tokens := newTestStore()
	_ = tokens.SetToken(ctx, signToken(t, jwt.MapClaims{"id": 5, "role": "3"}), false)

	st := s.Init(ctx, "")
	if !st.IsLoggedIn || st.Role != domain.RoleUser {
		t.Fatalf("expected logged-in user, got %+v", st)
	}
	if _, ok, _ := tokens.Session.Get(ctx, storage.KeyAuthState); !ok {
		t.Fatalf("authState should be persisted next to the session token")
	}
	if _, ok, _ := tokens.Durable.Get(ctx, storage.KeyAuthState); ok {
		t.Fatalf("a session login must not leave authState in device storage")
	}
}

func TestResolveSkipsUnchangedAuthState(t *testing.T) {
	ctx := context.Background()
	s, obs, tokens := newTestStore()
	tok := signToken(t, jwt.MapClaims{"id": 5, "role": "3"})
	_ = tokens.SetToken(ctx, tok, true)

	writes := 0
	count := func(ev storage.Event) {
		if ev.Key == storage.KeyAuthState {
			writes++
		}
	}
	defer obs.Subscribe("device", count)()
	defer obs.Subscribe("session", count)()

	for i := 0; i < 3; i++ {
		if st := s.Init(ctx, ""); !st.IsLoggedIn {
			t.Fatalf("expected logged-in state, got %+v", st)
		}
	}
	if writes != 1 {
		t.Fatalf("expected a single authState write for an unchanged state, got %d", writes)
	}

	// a different user is written again
	_ = tokens.SetToken(ctx, signToken(t, jwt.MapClaims{"id": 6, "role": "3"}), true)
	s.Init(ctx, "")
	if writes != 2 {
		t.Fatalf("expected a rewrite after the user changed, got %d writes", writes)
	}
}

func TestAuthStateFollowsTokenStore(t *testing.T) {
	ctx := context.Background()
	s, _, tokens := newTestStore()

	if _, err := s.Login(ctx, signToken(t, jwt.MapClaims{"id": 3, "role": "3"}), nil, true); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, ok, _ := tokens.Durable.Get(ctx, storage.KeyAuthState); !ok {
		t.Fatalf("remembered login should keep authState in device storage")
	}

	if _, err := s.Login(ctx, signToken(t, jwt.MapClaims{"id": 3, "role": "3"}), nil, false); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, ok, _ := tokens.Session.Get(ctx, storage.KeyAuthState); !ok {
		t.Fatalf("session login should keep authState in session storage")
	}
	if _, ok, _ := tokens.Durable.Get(ctx, storage.KeyAuthState); ok {
		t.Fatalf("stale device authState should be dropped")
	}

	// a token that only arrived as a cookie is held by the session
	s2, _, tokens2 := newTestStore()
	s2.Init(ctx, signToken(t, jwt.MapClaims{"id": 9, "role": "2"}))
	if _, ok, _ := tokens2.Durable.Get(ctx, storage.KeyAuthState); ok {
		t.Fatalf("cookie-only token must not write device storage")
	}
	if _, ok, _ := tokens2.Session.Get(ctx, storage.KeyAuthState); !ok {
		t.Fatalf("cookie-only token should persist authState in session storage")
	}
}

func TestInitInvalidTokenClearsCredentials(t *testing.T) {
	ctx := context.Background()
	s, _, tokens := newTestStore()
	_ = tokens.SetToken(ctx, "garbage", true)
	_ = tokens.Durable.Set(ctx, storage.KeyUserData, "{}")

	st := s.Init(ctx, "")
	if !st.Resolved || st.IsLoggedIn {
		t.Fatalf("expected logged-out state, got %+v", st)
	}
	if tok, _ := tokens.GetToken(ctx); tok != "" {
		t.Fatalf("token should be cleared, got %q", tok)
	}
	if _, ok, _ := tokens.Durable.Get(ctx, storage.KeyUserData); ok {
		t.Fatalf("userData should be cleared")
	}
}

func TestNoTokenIsLoggedOut(t *testing.T) {
	s, _, _ := newTestStore()
	st := s.Init(context.Background(), "")
	if !st.Resolved || st.IsLoggedIn || st.Role != domain.RoleUnknown {
		t.Fatalf("unexpected state %+v", st)
	}
}

func TestStorageEventFromAnotherTab(t *testing.T) {
	ctx := context.Background()
	s, obs, tokens := newTestStore()
	s.Init(ctx, "")

	var seen []State
	s.Subscribe(func(st State) { seen = append(seen, st) })
	stop := s.Watch(ctx, obs, "device", "session")
	defer stop()

	// another tab logs in
	other := NewStore(tokens)
	if _, err := other.Login(ctx, signToken(t, jwt.MapClaims{"id": 8, "role": 1}), &models.User{ID: 8, Name: "Admin"}, true); err != nil {
		t.Fatalf("login: %v", err)
	}
	if st := s.State(); !st.IsLoggedIn || st.Role != domain.RoleAdmin {
		t.Fatalf("watcher should pick up login, got %+v", st)
	}

	// another tab logs out
	other.Logout(ctx)
	if st := s.State(); st.IsLoggedIn {
		t.Fatalf("watcher should pick up logout, got %+v", st)
	}
	if len(seen) == 0 {
		t.Fatalf("subscriber was never notified")
	}
}

func TestStorageEventIgnoresOtherKeys(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore()
	s.Init(ctx, "")

	calls := 0
	s.Subscribe(func(State) { calls++ })
	s.HandleStorageEvent(ctx, storage.Event{Key: storage.KeyTicketData})
	if calls != 0 {
		t.Fatalf("unrelated keys must not re-evaluate auth")
	}
}

func TestLoginStoresProfile(t *testing.T) {
	ctx := context.Background()
	s, _, tokens := newTestStore()

	tok := signToken(t, jwt.MapClaims{"user_id": 3, "role": "3"})
	st, err := s.Login(ctx, tok, &models.User{ID: 3, Name: "Meera", Email: "m@x.test"}, false)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if st.User == nil || st.User.Name != "Meera" || st.User.Role != domain.RoleUser {
		t.Fatalf("profile not merged: %+v", st.User)
	}
	if _, ok, _ := tokens.Durable.Get(ctx, storage.KeyToken); ok {
		t.Fatalf("session login must not write durable token")
	}

	if _, err := s.Login(ctx, "bad", nil, false); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for bad token, got %v", err)
	}
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	s, _, tokens := newTestStore()
	_, _ = s.Login(ctx, signToken(t, jwt.MapClaims{"id": 1, "role": 1}), nil, true)

	if route := s.Logout(ctx); route != SignInRoute {
		t.Fatalf("unexpected route %q", route)
	}
	if tok, _ := tokens.GetToken(ctx); tok != "" {
		t.Fatalf("token survived logout")
	}
	if _, ok, _ := tokens.Durable.Get(ctx, storage.KeyAuthState); ok {
		t.Fatalf("authState survived logout")
	}
}
