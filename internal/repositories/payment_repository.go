package repositories

import (
	"database/sql"

	"backend/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

const paymentSelect = `
	SELECT id, booking_id, customer_email, amount, payment_intent_id, reference, created_at
	FROM payments`

func scanPayment(row interface{ Scan(...any) error }) (models.Payment, error) {
	var p models.Payment
	err := row.Scan(&p.ID, &p.BookingID, &p.CustomerEmail, &p.Amount,
		&p.PaymentIntentID, &p.Reference, &p.CreatedAt)
	return p, err
}

// CreateInTx records a confirmed transaction alongside the booking's paid
// transition. The unique key on payment_intent_id rejects double confirms.
func (r PaymentRepository) CreateInTx(tx *sql.Tx, p models.Payment) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO payments (booking_id, customer_email, amount, payment_intent_id, reference)
		VALUES (?, ?, ?, ?, ?)`,
		p.BookingID, p.CustomerEmail, p.Amount, p.PaymentIntentID, p.Reference)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PaymentRepository) ListAll() ([]models.Payment, error) {
	rows, err := r.DB.Query(paymentSelect + ` ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

func (r PaymentRepository) ListByCustomer(email string) ([]models.Payment, error) {
	rows, err := r.DB.Query(paymentSelect+` WHERE customer_email=? ORDER BY created_at DESC, id DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

func collectPayments(rows *sql.Rows) ([]models.Payment, error) {
	out := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PaymentRepository) GetByBookingID(bookingID int64) (models.Payment, error) {
	return scanPayment(r.DB.QueryRow(paymentSelect+` WHERE booking_id=? ORDER BY id DESC LIMIT 1`, bookingID))
}
