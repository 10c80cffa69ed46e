package handlers

import (
	"net/http"
	"strings"
	"time"

	"frontend/internal/apiclient"
	"frontend/internal/auth"
	"frontend/internal/http/middleware"
	"frontend/internal/utils"

	"github.com/gin-gonic/gin"
)

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Remember bool   `json:"remember"`
}

// POST /sign-in
func (h *Handler) SignIn(c *gin.Context) {
	var req signInRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	cl := client(c)
	ctx := c.Request.Context()

	res, err := h.API.Login(ctx, apiclient.LoginRequest{
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	})
	if err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "auth", "sign_in", "login failed: "+apiclient.KindOf(err).String())
		if apiclient.KindOf(err) == apiclient.KindUnauthorized {
			respondError(c, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password.", nil)
			return
		}
		RespondAPIError(c, err)
		return
	}

	user := res.User
	st, err := cl.Auth.Login(ctx, res.Token, &user, req.Remember)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	cl.CookieToken = res.Token
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, res.Token, h.Env.TokenCookieMaxAge, "/", "", false, false)

	utils.LogEvent(middleware.GetRequestID(c), "auth", "sign_in", "role="+st.Role.String())
	c.JSON(http.StatusOK, gin.H{"state": st, "redirect": st.Role.Dashboard()})
}

// POST /logout
func (h *Handler) Logout(c *gin.Context) {
	cl := client(c)
	route := cl.Auth.Logout(c.Request.Context())
	cl.CookieToken = ""

	// expire the cookie with a past date so every browser drops it
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	})

	utils.LogEvent(middleware.GetRequestID(c), "auth", "logout", "device="+cl.DeviceID)
	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"state": cl.Auth.State(), "redirect": route})
		return
	}
	c.Redirect(http.StatusSeeOther, route)
}

// GET /api/auth/state
func (h *Handler) AuthState(c *gin.Context) {
	st := client(c).Auth.State()
	redirect := auth.SignInRoute
	if st.IsLoggedIn {
		redirect = st.Role.Dashboard()
	}
	c.JSON(http.StatusOK, gin.H{"state": st, "home": redirect})
}
