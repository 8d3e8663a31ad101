package services

import (
	"bytes"
	"regexp"
	"testing"
	"time"

	"backend/internal/domain"
	"backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func newDocsService(t *testing.T) (DocsService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	svc := DocsService{
		BookingSvc: BookingService{
			BookingRepo: repositories.BookingRepository{DB: db},
			SeatRepo:    repositories.BookingSeatRepository{DB: db},
			DB:          db,
		},
		PaymentRepo: repositories.PaymentRepository{DB: db},
	}
	return svc, mock, func() { db.Close() }
}

func TestETicket_OnlyForPaidBookings(t *testing.T) {
	svc, mock, done := newDocsService(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM bookings b`)).
		WithArgs(int64(42)).WillReturnRows(bookingRowWithStatus("accepted"))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE booking_id=?`)).
		WithArgs(int64(42)).WillReturnRows(seatRows(1, 2))

	_, _, err := svc.ETicket(customerCtx(), 42)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict before payment, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestETicket_StrangerIsRefused(t *testing.T) {
	svc, mock, done := newDocsService(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM bookings b`)).
		WithArgs(int64(42)).WillReturnRows(bookingRowWithStatus("paid"))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE booking_id=?`)).
		WithArgs(int64(42)).WillReturnRows(seatRows(1, 2))

	stranger := domain.RequestContext{UserID: 99, Email: "else@example.com", Role: domain.RoleUser}
	if _, _, err := svc.ETicket(stranger, 42); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestETicket_RendersPDFForOwner(t *testing.T) {
	svc, mock, done := newDocsService(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM bookings b`)).
		WithArgs(int64(42)).WillReturnRows(bookingRowWithStatus("paid"))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE booking_id=?`)).
		WithArgs(int64(42)).WillReturnRows(seatRows(1, 2))

	now := time.Now()
	paymentRow := sqlmock.NewRows([]string{
		"id", "booking_id", "customer_email", "amount", "payment_intent_id", "reference", "created_at",
	}).AddRow(int64(5), int64(42), "rahim@example.com", int64(240000), "pi_123", "ref-1", now)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM payments`)).
		WithArgs(int64(42)).WillReturnRows(paymentRow)

	pdf, filename, err := svc.ETicket(customerCtx(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filename != "ETICKET_42.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF, starts with %q", pdf[:min(8, len(pdf))])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
