package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Role is the closed set of account roles. Backend values ("1", 2, "agent", ...)
// are converted once with ParseRole and never compared raw.
type Role int

const (
	RoleUnknown Role = 0
	RoleAdmin   Role = 1
	RoleAgent   Role = 2
	RoleUser    Role = 3
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleAgent:
		return "agent"
	case RoleUser:
		return "user"
	default:
		return "unknown"
	}
}

// Dashboard is the canonical landing route for the role.
func (r Role) Dashboard() string {
	switch r {
	case RoleAdmin:
		return "/admin-dashboard"
	case RoleAgent:
		return "/agent-dashboard"
	case RoleUser:
		return "/user-dashboard"
	default:
		return "/sign-in"
	}
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalJSON accepts both numeric and string role values.
func (r *Role) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = ParseRole(v)
	return nil
}

// ParseRole accepts the shapes seen in tokens and API payloads:
// "1", 1, 1.0, "admin", "agent", "booking-agent", "user".
func ParseRole(v any) Role {
	switch t := v.(type) {
	case Role:
		return t
	case int:
		return roleFromInt(int64(t))
	case int64:
		return roleFromInt(t)
	case float64:
		if t != float64(int64(t)) {
			return RoleUnknown
		}
		return roleFromInt(int64(t))
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return roleFromInt(n)
		}
		switch s {
		case "admin":
			return RoleAdmin
		case "agent", "booking-agent", "booking_agent":
			return RoleAgent
		case "user":
			return RoleUser
		}
	case fmt.Stringer:
		return ParseRole(t.String())
	}
	return RoleUnknown
}

func roleFromInt(n int64) Role {
	switch Role(n) {
	case RoleAdmin, RoleAgent, RoleUser:
		return Role(n)
	default:
		return RoleUnknown
	}
}

// Pagination carries paging params and totals.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total,omitempty"`
}

// Normalize clamps page to >= 1 and page size to 1..100 (default 10).
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = 10
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
	return p
}

// Window returns the [start, end) slice bounds for a list of total items.
func (p Pagination) Window(total int) (int, int) {
	p = p.Normalize()
	start := (p.Page - 1) * p.PageSize
	if start > total {
		start = total
	}
	end := start + p.PageSize
	if end > total {
		end = total
	}
	return start, end
}

// Paginate slices items according to p and records the total.
func Paginate[T any](items []T, p Pagination) ([]T, Pagination) {
	p = p.Normalize()
	start, end := p.Window(len(items))
	p.Total = len(items)
	return items[start:end], p
}
