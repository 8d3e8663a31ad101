package repositories

import (
	"database/sql"
)

// BookingSeatRepository persists seat occupancy. One row per occupied seat;
// the (ticket_id, seat_number) unique key is the last line of defense
// against concurrent double-booking.
type BookingSeatRepository struct {
	DB *sql.DB
}

// InsertInTx writes the seat rows for a new booking. A unique-key violation
// surfaces as-is so the service can translate it into a conflict.
func (r BookingSeatRepository) InsertInTx(tx *sql.Tx, bookingID, ticketID int64, seats []int) error {
	for _, n := range seats {
		if _, err := tx.Exec(`
			INSERT INTO booking_seats (booking_id, ticket_id, seat_number)
			VALUES (?, ?, ?)`, bookingID, ticketID, n); err != nil {
			return err
		}
	}
	return nil
}

// BookedByTicket returns the authoritative occupied seat numbers for a
// ticket, ascending. Rows only exist for non-rejected bookings.
func (r BookingSeatRepository) BookedByTicket(ticketID int64) ([]int, error) {
	rows, err := r.DB.Query(`SELECT seat_number FROM booking_seats WHERE ticket_id=? ORDER BY seat_number ASC`, ticketID)
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

// ForBooking returns the seats attached to one booking, ascending.
func (r BookingSeatRepository) ForBooking(bookingID int64) ([]int, error) {
	rows, err := r.DB.Query(`SELECT seat_number FROM booking_seats WHERE booking_id=? ORDER BY seat_number ASC`, bookingID)
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

// DeleteForBookingInTx frees a rejected booking's seats.
func (r BookingSeatRepository) DeleteForBookingInTx(tx *sql.Tx, bookingID int64) error {
	_, err := tx.Exec(`DELETE FROM booking_seats WHERE booking_id=?`, bookingID)
	return err
}
