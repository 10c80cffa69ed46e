// Package guard decides whether the current auth state may open a path.
// Role checks here are a UI convenience; the backend authorizes every call.
package guard

import (
	"sort"
	"strings"

	"frontend/internal/auth"
	"frontend/internal/domain"
)

type Action int

const (
	Loading Action = iota
	Allow
	Redirect
)

func (a Action) String() string {
	switch a {
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	default:
		return "loading"
	}
}

type Decision struct {
	Action   Action
	Redirect string
}

// Rule restricts every path under Prefix to the Allowed roles.
type Rule struct {
	Prefix  string
	Allowed []domain.Role
}

func (r Rule) allows(role domain.Role) bool {
	for _, a := range r.Allowed {
		if a == role {
			return true
		}
	}
	return false
}

// matches reports whether path is Prefix itself or below it.
func (r Rule) matches(path string) bool {
	p := strings.TrimRight(r.Prefix, "/")
	if p == "" {
		return true
	}
	return path == p || strings.HasPrefix(path, p+"/")
}

// DefaultRules protects the dashboards and the booking flow.
func DefaultRules() []Rule {
	return []Rule{
		{Prefix: "/admin-dashboard", Allowed: []domain.Role{domain.RoleAdmin}},
		{Prefix: "/agent-dashboard", Allowed: []domain.Role{domain.RoleAgent, domain.RoleAdmin}},
		{Prefix: "/user-dashboard", Allowed: []domain.Role{domain.RoleUser}},
		{Prefix: "/booking", Allowed: []domain.Role{domain.RoleUser, domain.RoleAgent, domain.RoleAdmin}},
		{Prefix: "/ticket", Allowed: []domain.Role{domain.RoleUser, domain.RoleAgent, domain.RoleAdmin}},
	}
}

// Guard holds rules ordered by prefix length, longest first, so the most
// specific rule decides regardless of declaration order.
type Guard struct {
	rules []Rule
}

func New(rules []Rule) Guard {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(strings.TrimRight(sorted[i].Prefix, "/")) > len(strings.TrimRight(sorted[j].Prefix, "/"))
	})
	return Guard{rules: sorted}
}

func (g Guard) Match(path string) (Rule, bool) {
	for _, r := range g.rules {
		if r.matches(path) {
			return r, true
		}
	}
	return Rule{}, false
}

// Decide applies, in order: still resolving, not logged in, rule check.
// A path without a rule is allowed.
func (g Guard) Decide(path string, st auth.State) Decision {
	if !st.Resolved {
		return Decision{Action: Loading}
	}
	if !st.IsLoggedIn {
		return Decision{Action: Redirect, Redirect: auth.SignInRoute}
	}
	rule, ok := g.Match(path)
	if !ok || rule.allows(st.Role) {
		return Decision{Action: Allow}
	}
	return Decision{Action: Redirect, Redirect: st.Role.Dashboard()}
}
