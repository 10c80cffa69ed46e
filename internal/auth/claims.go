package auth

import (
	"fmt"
	"strconv"
	"strings"

	"frontend/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the fields the front end reads from the backend token.
type Claims struct {
	UserID int64
	Email  string
	Name   string
	Role   domain.Role
}

// Decode reads the JWT payload WITHOUT verifying its signature. The result
// only drives UI decisions; the backend verifies the token on every call.
func Decode(token string) (Claims, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return Claims{}, fmt.Errorf("empty token")
	}

	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return Claims{}, fmt.Errorf("decode token: %w", err)
	}

	c := Claims{
		UserID: int64Claim(mc, "user_id", "userId", "id", "sub"),
		Email:  stringClaim(mc, "email"),
		Name:   stringClaim(mc, "name", "username"),
	}
	for _, key := range []string{"role", "userRole", "role_id"} {
		if v, ok := mc[key]; ok {
			c.Role = domain.ParseRole(v)
			break
		}
	}
	return c, nil
}

func stringClaim(mc jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		if s, ok := mc[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func int64Claim(mc jwt.MapClaims, keys ...string) int64 {
	for _, k := range keys {
		switch v := mc[k].(type) {
		case float64:
			return int64(v)
		case string:
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				return n
			}
		}
	}
	return 0
}
