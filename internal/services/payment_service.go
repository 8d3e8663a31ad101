package services

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	intdb "backend/internal/db"
	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// PaymentService bridges accepted bookings and Stripe PaymentIntents. The
// paid transition only happens after the processor reports the intent as
// succeeded; the payments table's unique intent key makes confirmation
// idempotent-rejected rather than double-applied.
type PaymentService struct {
	BookingRepo repositories.BookingRepository
	PaymentRepo repositories.PaymentRepository
	DB          *sql.DB
	StripeKey   string
	RequestID   string

	// Overridable for tests, defaulting to the Stripe client.
	CreateIntent   func(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	RetrieveIntent func(id string) (*stripe.PaymentIntent, error)
}

func (s PaymentService) stripeClient() *client.API {
	sc := &client.API{}
	sc.Init(s.StripeKey, nil)
	return sc
}

func (s PaymentService) createIntent(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	if s.CreateIntent != nil {
		return s.CreateIntent(params)
	}
	return s.stripeClient().PaymentIntents.New(params)
}

func (s PaymentService) retrieveIntent(id string) (*stripe.PaymentIntent, error) {
	if s.RetrieveIntent != nil {
		return s.RetrieveIntent(id)
	}
	return s.stripeClient().PaymentIntents.Get(id, nil)
}

// ownedAccepted loads the booking and checks the caller owns it and the
// vendor already accepted; only then is payment allowed.
func (s PaymentService) ownedAccepted(rc domain.RequestContext, bookingID int64) (models.Booking, error) {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if !strings.EqualFold(b.CustomerEmail, rc.Email) {
		return models.Booking{}, domain.ForbiddenError{Msg: "not your booking"}
	}
	switch b.Status {
	case domain.BookingAccepted:
		return b, nil
	case domain.BookingPaid:
		return models.Booking{}, domain.ConflictError{Resource: "booking", Msg: "booking is already paid"}
	default:
		return models.Booking{}, domain.ConflictError{Resource: "booking",
			Msg: fmt.Sprintf("booking must be accepted before payment, current status is %s", b.Status)}
	}
}

// NewIntent creates a Stripe PaymentIntent for the booking's fixed total
// and returns the client secret for browser-side confirmation.
func (s PaymentService) NewIntent(rc domain.RequestContext, bookingID int64) (string, error) {
	b, err := s.ownedAccepted(rc, bookingID)
	if err != nil {
		return "", err
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(b.TotalPrice),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("booking_id", strconv.FormatInt(b.ID, 10))

	pi, err := s.createIntent(params)
	if err != nil {
		return "", domain.InternalError{Msg: "payment processor error", Err: err}
	}
	utils.LogEvent(s.RequestID, "payment", "create_intent",
		fmt.Sprintf("booking_id=%d amount=%d", b.ID, b.TotalPrice))
	return pi.ClientSecret, nil
}

// Confirm verifies the intent with the processor and applies the
// accepted -> paid transition together with the transaction record. The
// server never trusts the client's claim that payment went through.
func (s PaymentService) Confirm(rc domain.RequestContext, bookingID int64, intentID string) (models.Payment, error) {
	if strings.TrimSpace(intentID) == "" {
		return models.Payment{}, domain.ValidationError{Field: "paymentIntentId", Msg: "must not be empty"}
	}
	b, err := s.ownedAccepted(rc, bookingID)
	if err != nil {
		return models.Payment{}, err
	}

	pi, err := s.retrieveIntent(intentID)
	if err != nil {
		return models.Payment{}, domain.InternalError{Msg: "payment processor error", Err: err}
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return models.Payment{}, domain.ConflictError{Resource: "payment",
			Msg: fmt.Sprintf("payment intent is %s, not succeeded", pi.Status)}
	}
	if pi.Amount != b.TotalPrice {
		return models.Payment{}, domain.ConflictError{Resource: "payment", Msg: "paid amount does not match the booking"}
	}
	if got := pi.Metadata["booking_id"]; got != strconv.FormatInt(b.ID, 10) {
		return models.Payment{}, domain.ConflictError{Resource: "payment", Msg: "payment intent belongs to another booking"}
	}

	payment := models.Payment{
		BookingID:       b.ID,
		CustomerEmail:   b.CustomerEmail,
		Amount:          b.TotalPrice,
		PaymentIntentID: pi.ID,
		Reference:       uuid.NewString(),
	}

	err = intdb.WithTx(s.DB, func(tx *sql.Tx) error {
		ok, err := s.BookingRepo.TransitionStatusInTx(tx, b.ID, domain.BookingAccepted, domain.BookingPaid)
		if err != nil {
			return domain.InternalError{Err: err}
		}
		if !ok {
			return domain.ConflictError{Resource: "booking", Msg: "booking already transitioned"}
		}
		id, err := s.PaymentRepo.CreateInTx(tx, payment)
		if err != nil {
			if intdb.IsDuplicate(err) {
				return domain.ConflictError{Resource: "payment", Msg: "payment already confirmed"}
			}
			return domain.InternalError{Err: err}
		}
		payment.ID = id
		return nil
	})
	if err != nil {
		return models.Payment{}, err
	}

	utils.LogEvent(s.RequestID, "payment", "confirm",
		fmt.Sprintf("booking_id=%d intent=%s", b.ID, pi.ID))
	return payment, nil
}

// Transactions lists every recorded payment (admin view).
func (s PaymentService) Transactions() ([]models.Payment, error) {
	out, err := s.PaymentRepo.ListAll()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// MyTransactions lists the caller's payments.
func (s PaymentService) MyTransactions(email string) ([]models.Payment, error) {
	out, err := s.PaymentRepo.ListByCustomer(email)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}
