package handlers

import (
	"database/sql"

	intconfig "backend/internal/config"
	"backend/internal/http/middleware"
	"backend/internal/repositories"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Handler bundles the shared dependencies behind every route. Services are
// small value structs, assembled per request so each carries the request id
// into its logs.
type Handler struct {
	Cfg   intconfig.Config
	DB    *sql.DB
	Redis *redis.Client
}

func New(cfg intconfig.Config, db *sql.DB, rdb *redis.Client) *Handler {
	return &Handler{Cfg: cfg, DB: db, Redis: rdb}
}

func (h *Handler) users() repositories.UserRepository {
	return repositories.UserRepository{DB: h.DB}
}

func (h *Handler) tickets() repositories.TicketRepository {
	return repositories.TicketRepository{DB: h.DB}
}

func (h *Handler) bookings() repositories.BookingRepository {
	return repositories.BookingRepository{DB: h.DB}
}

func (h *Handler) seats() repositories.BookingSeatRepository {
	return repositories.BookingSeatRepository{DB: h.DB}
}

func (h *Handler) payments() repositories.PaymentRepository {
	return repositories.PaymentRepository{DB: h.DB}
}

func (h *Handler) holds() services.SeatHoldService {
	return services.SeatHoldService{Client: h.Redis, TTL: h.Cfg.Redis.HoldTTL}
}

func (h *Handler) authSvc() services.AuthService {
	return services.AuthService{
		UserRepo: h.users(),
		Secret:   []byte(h.Cfg.JWT.Secret),
		TokenTTL: h.Cfg.JWT.TTL,
	}
}

func (h *Handler) ticketSvc() services.TicketService {
	return services.TicketService{TicketRepo: h.tickets(), UserRepo: h.users()}
}

func (h *Handler) bookingSvc(c *gin.Context) services.BookingService {
	return services.BookingService{
		BookingRepo: h.bookings(),
		SeatRepo:    h.seats(),
		TicketRepo:  h.tickets(),
		UserRepo:    h.users(),
		Holds:       h.holds(),
		DB:          h.DB,
		RequestID:   middleware.GetRequestID(c),
	}
}

func (h *Handler) paymentSvc(c *gin.Context) services.PaymentService {
	return services.PaymentService{
		BookingRepo: h.bookings(),
		PaymentRepo: h.payments(),
		DB:          h.DB,
		StripeKey:   h.Cfg.Stripe.SecretKey,
		RequestID:   middleware.GetRequestID(c),
	}
}

func (h *Handler) docsSvc(c *gin.Context) services.DocsService {
	return services.DocsService{
		BookingSvc:  h.bookingSvc(c),
		PaymentRepo: h.payments(),
		RequestID:   middleware.GetRequestID(c),
	}
}
