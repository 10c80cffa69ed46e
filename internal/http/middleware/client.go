package middleware

import (
	"context"
	"net/http"
	"strings"

	"frontend/internal/auth"
	"frontend/internal/storage"
	"frontend/internal/tokenstore"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	DeviceCookie  = "fb_device"
	SessionCookie = "fb_session"
	TokenCookie   = "token"

	clientKey = "client"
)

// Client is the per-request view of one browser: its durable (device) and
// session storage scopes and its auth state.
type Client struct {
	DeviceID    string
	SessionID   string
	CookieToken string

	Durable storage.Store
	Session storage.Store
	Tokens  tokenstore.Store
	Auth    *auth.Store
}

// Token is the bearer token for backend calls: the cookie when present,
// otherwise the stored token.
func (cl *Client) Token(ctx context.Context) (string, error) {
	if cl.CookieToken != "" {
		return cl.CookieToken, nil
	}
	return cl.Tokens.GetToken(ctx)
}

// ClientStorage binds the device and session cookies to storage scopes,
// issuing new ids when missing. Durable keys live in durable, session keys
// in session.
func ClientStorage(durable, session storage.Backend, deviceMaxAge int) gin.HandlerFunc {
	return func(c *gin.Context) {
		device := cookieID(c, DeviceCookie)
		if device == "" {
			device = uuid.NewString()
			setCookie(c, DeviceCookie, device, deviceMaxAge)
		}
		sess := cookieID(c, SessionCookie)
		if sess == "" {
			sess = uuid.NewString()
			// no max-age: the browser drops it when closed
			setCookie(c, SessionCookie, sess, 0)
		}

		cl := &Client{
			DeviceID:  device,
			SessionID: sess,
			Durable:   storage.Scoped(durable, "device:"+device),
			Session:   storage.Scoped(session, "session:"+sess),
		}
		if tok, err := c.Cookie(TokenCookie); err == nil {
			cl.CookieToken = strings.TrimSpace(tok)
		}
		cl.Tokens = tokenstore.New(cl.Durable, cl.Session)
		c.Set(clientKey, cl)
		c.Next()
	}
}

// GetClient returns the client bound by ClientStorage, or nil.
func GetClient(c *gin.Context) *Client {
	if c == nil {
		return nil
	}
	if v, ok := c.Get(clientKey); ok {
		if cl, ok := v.(*Client); ok {
			return cl
		}
	}
	return nil
}

// DurableScope and SessionScope name the storage scopes of a client, as
// published in storage events.
func DurableScope(cl *Client) string { return "device:" + cl.DeviceID }
func SessionScope(cl *Client) string { return "session:" + cl.SessionID }

func cookieID(c *gin.Context, name string) string {
	v, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	v = strings.TrimSpace(v)
	if _, err := uuid.Parse(v); err != nil {
		return ""
	}
	return v
}

func setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", false, true)
}
