package auth

import (
	"context"
	"errors"
	"sync"

	"frontend/internal/domain"
	"frontend/internal/domain/models"
	"frontend/internal/handoff"
	"frontend/internal/storage"
	"frontend/internal/tokenstore"
	"frontend/internal/utils"
)

const SignInRoute = "/sign-in"

type State struct {
	Resolved   bool         `json:"resolved"`
	IsLoggedIn bool         `json:"isLoggedIn"`
	Role       domain.Role  `json:"userRole"`
	User       *models.User `json:"user,omitempty"`
}

// Equal reports whether both states describe the same user and role.
func (st State) Equal(o State) bool {
	if st.Resolved != o.Resolved || st.IsLoggedIn != o.IsLoggedIn || st.Role != o.Role {
		return false
	}
	if st.User == nil || o.User == nil {
		return st.User == o.User
	}
	return *st.User == *o.User
}

// Store holds the auth state of one browser client and notifies subscribers
// when it changes.
type Store struct {
	tokens tokenstore.Store

	mu     sync.RWMutex
	state  State
	nextID int
	subs   map[int]func(State)
}

func NewStore(tokens tokenstore.Store) *Store {
	return &Store{tokens: tokens, subs: map[int]func(State){}}
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe calls fn after every state change. The returned func removes it.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Init resolves the state once. A cookie token wins over stored tokens. A
// token that cannot be decoded logs the client out and clears credentials.
func (s *Store) Init(ctx context.Context, cookieToken string) State {
	token := cookieToken
	if token == "" {
		t, err := s.tokens.GetToken(ctx)
		if err != nil {
			utils.LogEvent("", "auth", "init", "token lookup failed: "+err.Error())
		}
		token = t
	}
	return s.resolve(ctx, token)
}

// HandleStorageEvent re-evaluates the state when another tab changes the
// token. Stored tokens are authoritative from then on.
func (s *Store) HandleStorageEvent(ctx context.Context, ev storage.Event) {
	if ev.Key != storage.KeyToken {
		return
	}
	t, err := s.tokens.GetToken(ctx)
	if err != nil {
		utils.LogEvent("", "auth", "storage_event", "token lookup failed: "+err.Error())
	}
	s.resolve(ctx, t)
}

// Watch subscribes the store to storage events of the given scopes.
func (s *Store) Watch(ctx context.Context, obs *storage.Observed, scopes ...string) func() {
	var cancels []func()
	for _, scope := range scopes {
		cancels = append(cancels, obs.Subscribe(scope, func(ev storage.Event) {
			s.HandleStorageEvent(ctx, ev)
		}))
	}
	return func() {
		for _, c := range cancels {
			c()
		}
	}
}

// Login persists a fresh token and profile, then resolves the state from it.
func (s *Store) Login(ctx context.Context, token string, user *models.User, remember bool) (State, error) {
	if _, err := Decode(token); err != nil {
		return s.State(), domain.ValidationError{Field: "token", Msg: "token cannot be decoded", Err: err}
	}
	if err := s.tokens.SetToken(ctx, token, remember); err != nil {
		return s.State(), domain.InternalError{Msg: "store token", Err: err}
	}
	if user != nil {
		target := s.tokens.Session
		if remember {
			target = s.tokens.Durable
		}
		if err := handoff.Put(ctx, target, storage.KeyUserData, *user); err != nil {
			return s.State(), domain.InternalError{Msg: "store user", Err: err}
		}
	}
	return s.resolve(ctx, token), nil
}

// Logout clears every stored credential and returns the sign-in route.
func (s *Store) Logout(ctx context.Context) string {
	s.clearCredentials(ctx)
	s.set(State{Resolved: true})
	return SignInRoute
}

func (s *Store) resolve(ctx context.Context, token string) State {
	if token == "" {
		return s.set(State{Resolved: true})
	}

	claims, err := Decode(token)
	if err != nil {
		utils.LogEvent("", "auth", "decode", "invalid token, clearing credentials")
		s.clearCredentials(ctx)
		return s.set(State{Resolved: true})
	}

	user := s.storedUser(ctx)
	if user == nil || (claims.UserID != 0 && user.ID != claims.UserID) {
		user = &models.User{ID: claims.UserID, Name: claims.Name, Email: claims.Email}
	}
	user.Role = claims.Role

	st := State{Resolved: true, IsLoggedIn: true, Role: claims.Role, User: user}
	s.persist(ctx, token, st)
	return s.set(st)
}

// persist writes authState next to the token and drops a copy left in the
// other store by an earlier login. An unchanged state is not rewritten.
func (s *Store) persist(ctx context.Context, token string, st State) {
	target := s.tokens.Holder(ctx, token)
	if target == nil {
		return
	}
	if prev, err := handoff.Get[State](ctx, target, storage.KeyAuthState); err == nil && prev.Equal(st) {
		return
	}
	if err := handoff.Put(ctx, target, storage.KeyAuthState, st); err != nil {
		utils.LogEvent("", "auth", "persist_state", err.Error())
		return
	}
	for _, other := range []storage.Store{s.tokens.Durable, s.tokens.Session} {
		if other == nil || other == target {
			continue
		}
		if _, ok, err := other.Get(ctx, storage.KeyAuthState); err == nil && ok {
			if err := other.Remove(ctx, storage.KeyAuthState); err != nil {
				utils.LogEvent("", "auth", "persist_state", err.Error())
			}
		}
	}
}

func (s *Store) storedUser(ctx context.Context) *models.User {
	for _, st := range []storage.Store{s.tokens.Durable, s.tokens.Session} {
		if st == nil {
			continue
		}
		u, err := handoff.Get[models.User](ctx, st, storage.KeyUserData)
		if err == nil {
			return &u
		}
		if !errors.Is(err, handoff.ErrMissing) {
			utils.LogEvent("", "auth", "user_data", err.Error())
		}
	}
	return nil
}

func (s *Store) clearCredentials(ctx context.Context) {
	if err := s.tokens.RemoveToken(ctx); err != nil {
		utils.LogEvent("", "auth", "clear", "remove token: "+err.Error())
	}
	for _, st := range []storage.Store{s.tokens.Durable, s.tokens.Session} {
		if st == nil {
			continue
		}
		for _, key := range []string{storage.KeyAuthState, storage.KeyUserData} {
			if err := st.Remove(ctx, key); err != nil {
				utils.LogEvent("", "auth", "clear", "remove "+key+": "+err.Error())
			}
		}
	}
}

func (s *Store) set(st State) State {
	s.mu.Lock()
	s.state = st
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
	return st
}
