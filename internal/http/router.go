package api

import (
	"database/sql"
	"net/http"

	"backend/internal/config"
	"backend/internal/domain"
	"backend/internal/http/handlers"
	"backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NewRouter wires the middleware chain and the full route table.
func NewRouter(cfg config.Config, db *sql.DB, rdb *redis.Client) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(cfg.CORS.AllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		logrus.Warnf("failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "route not found",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})

	h := handlers.New(cfg, db, rdb)

	authn := middleware.RequireAuth([]byte(cfg.JWT.Secret))
	userOnly := middleware.RequireRoles(domain.RoleUser)
	vendorOnly := middleware.RequireRoles(domain.RoleVendor)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/register", h.Register)
		auth.PUT("/profile", authn, h.UpdateProfile)

		tickets := api.Group("/tickets")
		{
			tickets.GET("", h.ListPublic)
			tickets.GET("/advertised", h.Advertised)
			tickets.GET("/vendor/mine", authn, vendorOnly, h.VendorTickets)
			tickets.GET("/admin/all", authn, adminOnly, h.AdminTickets)
			tickets.GET("/:id", h.GetTicket)

			tickets.POST("", authn, vendorOnly, h.CreateTicket)
			tickets.PUT("/:id", authn, vendorOnly, h.UpdateTicket)
			tickets.DELETE("/:id", authn, vendorOnly, h.DeleteTicket)

			tickets.PUT("/:id/status", authn, adminOnly, h.SetTicketStatus)
			tickets.PUT("/:id/advertise", authn, adminOnly, h.AdvertiseTicket)
		}

		bookings := api.Group("/bookings", authn)
		{
			bookings.POST("", userOnly, h.CreateBooking)
			bookings.GET("/mine", userOnly, h.MyBookings)
			bookings.GET("/vendor", vendorOnly, h.VendorBookings)

			bookings.GET("/seats/:ticketId", h.BookedSeats)
			bookings.POST("/seats/:ticketId/hold", userOnly, h.HoldSeats)

			bookings.PUT("/:id/accept", vendorOnly, h.AcceptBooking)
			bookings.PUT("/:id/reject", vendorOnly, h.RejectBooking)

			bookings.GET("/:id/e-ticket", h.ETicket)
		}

		payments := api.Group("/payments", authn)
		{
			payments.POST("/create-payment-intent", userOnly, h.CreatePaymentIntent)
			payments.POST("/confirm-payment", userOnly, h.ConfirmPayment)
			payments.GET("/transactions", adminOnly, h.Transactions)
			payments.GET("/mine", userOnly, h.MyTransactions)
		}

		users := api.Group("/users", authn, adminOnly)
		{
			users.GET("", h.ListUsers)
			users.PUT("/:id/role", h.UpdateUserRole)
			users.PUT("/:id/fraud", h.SetUserFraud)
		}
	}

	return r
}
