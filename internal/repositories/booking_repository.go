package repositories

import (
	"database/sql"

	"backend/internal/domain"
	"backend/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

const bookingSelect = `
	SELECT b.id, b.ticket_id, b.customer_name, b.customer_email,
	       b.quantity, b.total_price, b.status, b.created_at, b.updated_at,
	       t.title, t.from_location, t.to_location, t.transport,
	       t.departure_date, t.departure_time, t.vendor_email
	FROM bookings b
	JOIN tickets t ON t.id = b.ticket_id`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	var status, transport string
	err := row.Scan(
		&b.ID, &b.TicketID, &b.CustomerName, &b.CustomerEmail,
		&b.Quantity, &b.TotalPrice, &status, &b.CreatedAt, &b.UpdatedAt,
		&b.TicketTitle, &b.FromLocation, &b.ToLocation, &transport,
		&b.DepartureDate, &b.DepartureTime, &b.VendorEmail,
	)
	if err != nil {
		return models.Booking{}, err
	}
	b.Status = domain.BookingStatus(status)
	b.Transport = domain.TransportType(transport)
	return b, nil
}

// CreateInTx inserts the booking row inside the caller's transaction so the
// seat rows and the quantity reservation commit or roll back together.
func (r BookingRepository) CreateInTx(tx *sql.Tx, b models.Booking) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO bookings (ticket_id, customer_name, customer_email, quantity, total_price, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		b.TicketID, b.CustomerName, b.CustomerEmail, b.Quantity, b.TotalPrice, string(domain.BookingPending))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ReserveTicketQuantityInTx decrements the remaining seats, failing when the
// ticket does not have qty seats left. Zero affected rows means the ticket
// is gone or oversubscribed.
func (r BookingRepository) ReserveTicketQuantityInTx(tx *sql.Tx, ticketID int64, qty int) (bool, error) {
	res, err := tx.Exec(`UPDATE tickets SET quantity = quantity - ? WHERE id=? AND quantity >= ?`,
		qty, ticketID, qty)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ReleaseTicketQuantityInTx gives seats back when a booking is rejected.
func (r BookingRepository) ReleaseTicketQuantityInTx(tx *sql.Tx, ticketID int64, qty int) error {
	_, err := tx.Exec(`UPDATE tickets SET quantity = quantity + ? WHERE id=?`, qty, ticketID)
	return err
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	return scanBooking(r.DB.QueryRow(bookingSelect+` WHERE b.id=?`, id))
}

func (r BookingRepository) ListByCustomer(email string) ([]models.Booking, error) {
	rows, err := r.DB.Query(bookingSelect+` WHERE b.customer_email=? ORDER BY b.created_at DESC, b.id DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// ListByVendor returns bookings made against the vendor's tickets.
func (r BookingRepository) ListByVendor(vendorEmail string) ([]models.Booking, error) {
	rows, err := r.DB.Query(bookingSelect+` WHERE t.vendor_email=? ORDER BY b.created_at DESC, b.id DESC`, vendorEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func collectBookings(rows *sql.Rows) ([]models.Booking, error) {
	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// TransitionStatus is a compare-and-swap on the status column: the update
// only lands when the row is still in the expected prior state, so a booking
// that already moved on (or is terminal) is never overwritten.
func (r BookingRepository) TransitionStatus(id int64, from, to domain.BookingStatus) (bool, error) {
	res, err := r.DB.Exec(`UPDATE bookings SET status=? WHERE id=? AND status=?`,
		string(to), id, string(from))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// TransitionStatusInTx is TransitionStatus inside an existing transaction.
func (r BookingRepository) TransitionStatusInTx(tx *sql.Tx, id int64, from, to domain.BookingStatus) (bool, error) {
	res, err := tx.Exec(`UPDATE bookings SET status=? WHERE id=? AND status=?`,
		string(to), id, string(from))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
