package middleware

import (
	"net/http"
	"strings"

	"frontend/internal/auth"
	"frontend/internal/guard"

	"github.com/gin-gonic/gin"
)

// Auth resolves the client's auth state once per request. Requires
// ClientStorage.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		cl := GetClient(c)
		if cl == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "client storage is not bound"})
			return
		}
		cl.Auth = auth.NewStore(cl.Tokens)
		cl.Auth.Init(c.Request.Context(), cl.CookieToken)
		c.Next()
	}
}

// Guard applies the route guard to the request path. Browsers are redirected;
// JSON callers get 401/403 with the redirect target.
func Guard(g guard.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		cl := GetClient(c)
		var st auth.State
		if cl != nil && cl.Auth != nil {
			st = cl.Auth.State()
		}

		d := g.Decide(c.Request.URL.Path, st)
		switch d.Action {
		case guard.Allow:
			c.Next()
		case guard.Redirect:
			if WantsJSON(c) {
				status := http.StatusForbidden
				if !st.IsLoggedIn {
					status = http.StatusUnauthorized
				}
				c.AbortWithStatusJSON(status, gin.H{
					"error":      http.StatusText(status),
					"redirect":   d.Redirect,
					"request_id": GetRequestID(c),
				})
				return
			}
			c.Redirect(http.StatusFound, d.Redirect)
			c.Abort()
		default:
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "auth state is not resolved"})
		}
	}
}

// WantsJSON reports whether the caller is an API client rather than a page load.
func WantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		return true
	}
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}
