package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intdb "backend/internal/db"
	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/domain/seatmap"
	"backend/internal/repositories"
	"backend/internal/utils"
)

// BookingService drives the booking lifecycle: customers create pending
// bookings, the owning vendor accepts or rejects, payment confirmation
// moves accepted bookings to paid (see PaymentService).
type BookingService struct {
	BookingRepo repositories.BookingRepository
	SeatRepo    repositories.BookingSeatRepository
	TicketRepo  repositories.TicketRepository
	UserRepo    repositories.UserRepository
	Holds       SeatHoldService
	DB          *sql.DB
	RequestID   string
}

// Create validates the request against the ticket and, for bus tickets with
// a seat selection, re-validates the seats against the authoritative
// occupancy inside the same transaction that reserves quantity. The client
// already filtered known-booked seats; this is the check that actually
// decides.
func (s BookingService) Create(ctx context.Context, rc domain.RequestContext, in models.BookingInput) (models.Booking, error) {
	if rc.Role != domain.RoleUser {
		return models.Booking{}, domain.ForbiddenError{Msg: "only customers can create bookings"}
	}
	if in.TicketID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "ticketId", Msg: "invalid id"}
	}
	if in.Quantity < 1 {
		return models.Booking{}, domain.ValidationError{Field: "quantity", Msg: "must be at least 1"}
	}

	ticket, err := s.TicketRepo.GetByID(in.TicketID)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Booking{}, domain.NotFoundError{Resource: "ticket", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if ticket.Status != domain.VerificationApproved || ticket.VendorFraud {
		return models.Booking{}, domain.ValidationError{Field: "ticketId", Msg: "ticket is not open for booking"}
	}
	if in.Quantity > ticket.Quantity {
		return models.Booking{}, domain.ValidationError{Field: "quantity",
			Msg: fmt.Sprintf("only %d seats left", ticket.Quantity)}
	}

	seats := in.SelectedSeats
	if len(seats) > 0 {
		if ticket.Transport != domain.TransportBus {
			return models.Booking{}, domain.ValidationError{Field: "selectedSeats", Msg: "seat selection is bus-only"}
		}
		if len(seats) != in.Quantity {
			return models.Booking{}, domain.ValidationError{Field: "selectedSeats", Msg: "seat count must match quantity"}
		}
		if !seatmap.Unique(seats) {
			return models.Booking{}, domain.ValidationError{Field: "selectedSeats", Msg: "duplicate seat numbers"}
		}
		for _, n := range seats {
			if !seatmap.ValidSeat(n) {
				return models.Booking{}, domain.ValidationError{Field: "selectedSeats",
					Msg: fmt.Sprintf("seat %d is outside the grid", n)}
			}
		}
		if held := s.Holds.HeldByOthers(ctx, ticket.ID, seats, rc.Email); len(held) > 0 {
			return models.Booking{}, domain.ConflictError{Resource: "seats",
				Msg: fmt.Sprintf("seats %v are held by another customer", held)}
		}
	}

	customer, err := s.UserRepo.GetByID(rc.UserID)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	booking := models.Booking{
		TicketID:      ticket.ID,
		CustomerName:  customer.Name,
		CustomerEmail: rc.Email,
		Quantity:      in.Quantity,
		// Fixed at creation time; later ticket price changes must not
		// leak into existing bookings.
		TotalPrice: ticket.Price * int64(in.Quantity),
	}

	var bookingID int64
	err = intdb.WithTx(s.DB, func(tx *sql.Tx) error {
		ok, err := s.BookingRepo.ReserveTicketQuantityInTx(tx, ticket.ID, in.Quantity)
		if err != nil {
			return domain.InternalError{Err: err}
		}
		if !ok {
			return domain.ConflictError{Resource: "ticket", Msg: "not enough seats left"}
		}

		if len(seats) > 0 {
			booked, err := bookedSeatsInTx(tx, ticket.ID)
			if err != nil {
				return domain.InternalError{Err: err}
			}
			if conflicts := seatmap.Conflicts(seats, booked); len(conflicts) > 0 {
				return domain.ConflictError{Resource: "seats",
					Msg: fmt.Sprintf("seats %v are already booked", conflicts)}
			}
		}

		bookingID, err = s.BookingRepo.CreateInTx(tx, booking)
		if err != nil {
			return domain.InternalError{Err: err}
		}
		if len(seats) > 0 {
			if err := s.SeatRepo.InsertInTx(tx, bookingID, ticket.ID, seats); err != nil {
				if intdb.IsDuplicate(err) {
					return domain.ConflictError{Resource: "seats", Msg: "a selected seat was just booked"}
				}
				return domain.InternalError{Err: err}
			}
		}
		return nil
	})
	if err != nil {
		return models.Booking{}, err
	}

	s.Holds.Release(ctx, ticket.ID, seats, rc.Email)
	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("booking_id=%d ticket_id=%d qty=%d", bookingID, ticket.ID, in.Quantity))

	return s.GetByID(bookingID)
}

// bookedSeatsInTx reads occupancy with the transaction's consistent view.
func bookedSeatsInTx(tx *sql.Tx, ticketID int64) ([]int, error) {
	rows, err := tx.Query(`SELECT seat_number FROM booking_seats WHERE ticket_id=?`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []int{}
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return out, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// GetByID returns the booking with its seats attached.
func (s BookingService) GetByID(id int64) (models.Booking, error) {
	b, err := s.BookingRepo.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}
	seats, err := s.SeatRepo.ForBooking(id)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	b.SelectedSeats = seats
	return b, nil
}

// requireOwningVendor loads a booking and checks the caller is the vendor
// of the booked ticket. Admins observe bookings, they do not act on them.
func (s BookingService) requireOwningVendor(rc domain.RequestContext, id int64) (models.Booking, error) {
	b, err := s.GetByID(id)
	if err != nil {
		return models.Booking{}, err
	}
	if rc.Role != domain.RoleVendor || !strings.EqualFold(b.VendorEmail, rc.Email) {
		return models.Booking{}, domain.ForbiddenError{Msg: "not the vendor of this booking"}
	}
	return b, nil
}

// Accept moves pending -> accepted. The compare-and-swap update refuses
// bookings that already transitioned, so a double accept or an accept after
// reject reports a conflict instead of silently rewriting state.
func (s BookingService) Accept(rc domain.RequestContext, id int64) (models.Booking, error) {
	b, err := s.requireOwningVendor(rc, id)
	if err != nil {
		return models.Booking{}, err
	}
	if b.Status != domain.BookingPending {
		return models.Booking{}, domain.ConflictError{Resource: "booking",
			Msg: fmt.Sprintf("cannot accept a %s booking", b.Status)}
	}
	ok, err := s.BookingRepo.TransitionStatus(id, domain.BookingPending, domain.BookingAccepted)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if !ok {
		return models.Booking{}, domain.ConflictError{Resource: "booking", Msg: "booking already transitioned"}
	}
	utils.LogEvent(s.RequestID, "booking", "accept", fmt.Sprintf("booking_id=%d", id))
	return s.GetByID(id)
}

// Reject moves pending -> rejected and frees the reserved quantity and
// seats in the same transaction.
func (s BookingService) Reject(rc domain.RequestContext, id int64) (models.Booking, error) {
	b, err := s.requireOwningVendor(rc, id)
	if err != nil {
		return models.Booking{}, err
	}
	if b.Status != domain.BookingPending {
		return models.Booking{}, domain.ConflictError{Resource: "booking",
			Msg: fmt.Sprintf("cannot reject a %s booking", b.Status)}
	}

	err = intdb.WithTx(s.DB, func(tx *sql.Tx) error {
		ok, err := s.BookingRepo.TransitionStatusInTx(tx, id, domain.BookingPending, domain.BookingRejected)
		if err != nil {
			return domain.InternalError{Err: err}
		}
		if !ok {
			return domain.ConflictError{Resource: "booking", Msg: "booking already transitioned"}
		}
		if err := s.SeatRepo.DeleteForBookingInTx(tx, id); err != nil {
			return domain.InternalError{Err: err}
		}
		return s.BookingRepo.ReleaseTicketQuantityInTx(tx, b.TicketID, b.Quantity)
	})
	if err != nil {
		return models.Booking{}, err
	}
	utils.LogEvent(s.RequestID, "booking", "reject", fmt.Sprintf("booking_id=%d", id))
	return s.GetByID(id)
}

// BookedSeats returns the authoritative occupied seats for a ticket. Errors
// propagate; an empty result must mean "no seats taken", never "the lookup
// failed".
func (s BookingService) BookedSeats(ticketID int64) ([]int, error) {
	if _, err := s.TicketRepo.GetByID(ticketID); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NotFoundError{Resource: "ticket", Err: err}
		}
		return nil, domain.InternalError{Err: err}
	}
	seats, err := s.SeatRepo.BookedByTicket(ticketID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return seats, nil
}

// HoldSeats places advisory holds for an in-progress bus selection.
func (s BookingService) HoldSeats(ctx context.Context, rc domain.RequestContext, ticketID int64, seats []int) error {
	if len(seats) == 0 {
		return domain.ValidationError{Field: "seats", Msg: "nothing to hold"}
	}
	for _, n := range seats {
		if !seatmap.ValidSeat(n) {
			return domain.ValidationError{Field: "seats", Msg: fmt.Sprintf("seat %d is outside the grid", n)}
		}
	}
	booked, err := s.BookedSeats(ticketID)
	if err != nil {
		return err
	}
	if conflicts := seatmap.Conflicts(seats, booked); len(conflicts) > 0 {
		return domain.ConflictError{Resource: "seats", Msg: fmt.Sprintf("seats %v are already booked", conflicts)}
	}
	taken, err := s.Holds.Hold(ctx, ticketID, seats, rc.Email)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if len(taken) > 0 {
		return domain.ConflictError{Resource: "seats", Msg: fmt.Sprintf("seats %v are held by another customer", taken)}
	}
	return nil
}

func (s BookingService) ListMine(email string) ([]models.Booking, error) {
	out, err := s.BookingRepo.ListByCustomer(email)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (s BookingService) ListForVendor(vendorEmail string) ([]models.Booking, error) {
	out, err := s.BookingRepo.ListByVendor(vendorEmail)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}
