package guard

import (
	"testing"

	"frontend/internal/auth"
	"frontend/internal/domain"
)

func loggedIn(role domain.Role) auth.State {
	return auth.State{Resolved: true, IsLoggedIn: true, Role: role}
}

func TestDecide(t *testing.T) {
	g := New(DefaultRules())

	cases := []struct {
		name  string
		path  string
		state auth.State
		want  Decision
	}{
		{"user on admin", "/admin-dashboard/x", loggedIn(domain.RoleUser), Decision{Action: Redirect, Redirect: "/user-dashboard"}},
		{"admin on admin", "/admin-dashboard/x", loggedIn(domain.RoleAdmin), Decision{Action: Allow}},
		{"anonymous", "/admin-dashboard/x", auth.State{Resolved: true}, Decision{Action: Redirect, Redirect: "/sign-in"}},
		{"anonymous unguarded", "/flight-search", auth.State{Resolved: true}, Decision{Action: Redirect, Redirect: "/sign-in"}},
		{"resolving", "/admin-dashboard", auth.State{}, Decision{Action: Loading}},
		{"agent on user", "/user-dashboard", loggedIn(domain.RoleAgent), Decision{Action: Redirect, Redirect: "/agent-dashboard"}},
		{"unknown role", "/booking", loggedIn(domain.RoleUnknown), Decision{Action: Redirect, Redirect: "/sign-in"}},
		{"no rule", "/about", loggedIn(domain.RoleUser), Decision{Action: Allow}},
		{"segment boundary", "/admin-dashboardx", loggedIn(domain.RoleUser), Decision{Action: Allow}},
	}
	for _, tc := range cases {
		if got := g.Decide(tc.path, tc.state); got != tc.want {
			t.Fatalf("%s: got %+v want %+v", tc.name, got, tc.want)
		}
	}
}

func TestLongestPrefixWinsRegardlessOfOrder(t *testing.T) {
	rules := []Rule{
		{Prefix: "/admin-dashboard", Allowed: []domain.Role{domain.RoleAdmin}},
		{Prefix: "/admin-dashboard/reports", Allowed: []domain.Role{domain.RoleAdmin, domain.RoleAgent}},
	}
	for _, order := range [][]Rule{rules, {rules[1], rules[0]}} {
		g := New(order)
		if d := g.Decide("/admin-dashboard/reports/daily", loggedIn(domain.RoleAgent)); d.Action != Allow {
			t.Fatalf("specific rule should allow agent, got %+v", d)
		}
		if d := g.Decide("/admin-dashboard/users", loggedIn(domain.RoleAgent)); d.Action != Redirect {
			t.Fatalf("general rule should redirect agent, got %+v", d)
		}
	}
}
