package api

import (
	"log"
	stdhttp "net/http"

	intconfig "frontend/internal/config"
	"frontend/internal/guard"
	h "frontend/internal/http/handlers"
	"frontend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, hd *h.Handler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/storage-check", hd.StorageCheck)
		api.GET("/routes", h.Routes)
	}

	// Everything below knows which browser is calling.
	web := r.Group("/", middleware.ClientStorage(hd.Durable, hd.Session, durableCookieAge(env)), middleware.Auth())
	{
		web.GET("/api/auth/state", hd.AuthState)
		web.POST("/sign-in", middleware.RateLimit(env.SignInRatePerMin), hd.SignIn)
		web.POST("/logout", hd.Logout)
		web.GET("/ws/storage", hd.StorageEvents)

		search := web.Group("/flight-search")
		search.GET("/airports", hd.Airports)
		search.GET("/schedules", hd.Schedules)
		search.GET("/schedules/:id", hd.Schedule)
		search.POST("/select", hd.SelectFlight)

		guarded := web.Group("/", middleware.Guard(guard.New(guard.DefaultRules())))

		booking := guarded.Group("/booking")
		booking.GET("", hd.GetBooking)
		booking.POST("/next", hd.BookingNext)
		booking.POST("/prev", hd.BookingPrev)
		booking.PUT("/travelers", hd.SaveTravelers)
		booking.POST("/pay", hd.Pay)

		ticket := guarded.Group("/ticket")
		ticket.GET("", hd.GetTicket)
		ticket.GET("/pdf", hd.GetTicketPDF)
		ticket.GET("/receipt", hd.GetReceiptPDF)

		admin := guarded.Group("/admin-dashboard")
		mountAdmin(admin, hd)

		agent := guarded.Group("/agent-dashboard")
		agent.GET("", hd.AgentDashboard)
		agent.GET("/bookings/:id", hd.BookingDetail)
		agent.PUT("/bookings/:id/status", hd.UpdateBookingStatus)

		user := guarded.Group("/user-dashboard")
		user.GET("", hd.UserDashboard)
	}

	h.SetRouter(r)
	return r
}

func mountAdmin(g *gin.RouterGroup, hd *h.Handler) {
	g.GET("", hd.AdminDashboard)

	g.GET("/flights", hd.AdminFlights)
	g.POST("/flights", hd.AdminCreateFlight)
	g.PUT("/flights/:id", hd.AdminUpdateFlight)
	g.DELETE("/flights/:id", hd.AdminDeleteFlight)

	g.GET("/schedules", hd.AdminSchedules)
	g.POST("/schedules", hd.AdminCreateSchedule)
	g.PUT("/schedules/:id", hd.AdminUpdateSchedule)
	g.DELETE("/schedules/:id", hd.AdminDeleteSchedule)

	g.GET("/users", hd.AdminUsers)
	g.PUT("/users/:id", hd.AdminUpdateUser)
	g.DELETE("/users/:id", hd.AdminDeleteUser)

	g.GET("/bookings", hd.Bookings)
	g.GET("/bookings/:id", hd.BookingDetail)
	g.PUT("/bookings/:id/status", hd.UpdateBookingStatus)
	g.DELETE("/bookings/:id", hd.DeleteBooking)

	g.GET("/joyride-slots", hd.AdminJoyrideSlots)
	g.POST("/joyride-slots", hd.AdminCreateJoyrideSlot)
	g.DELETE("/joyride-slots/:id", hd.AdminDeleteJoyrideSlot)
}

func durableCookieAge(env intconfig.Env) int {
	return int(env.DurableTTL.Seconds())
}
