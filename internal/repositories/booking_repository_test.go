package repositories

import (
	"regexp"
	"testing"

	"backend/internal/domain"
	"backend/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func bookingFixture() models.Booking {
	// Status is deliberately non-pending; the insert must ignore it.
	return models.Booking{
		TicketID:      11,
		CustomerName:  "Rahim",
		CustomerEmail: "rahim@example.com",
		Quantity:      2,
		TotalPrice:    240000,
		Status:        domain.BookingAccepted,
	}
}

func TestTransitionStatus_SwapsOnlyFromExpectedState(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := BookingRepository{DB: db}

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE bookings SET status=? WHERE id=? AND status=?`)).
		WithArgs("accepted", int64(7), "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.TransitionStatus(7, domain.BookingPending, domain.BookingAccepted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected transition to land")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTransitionStatus_LostRaceReportsFalse(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := BookingRepository{DB: db}

	// Another request already moved the booking; zero rows match the guard.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE bookings SET status=? WHERE id=? AND status=?`)).
		WithArgs("paid", int64(7), "accepted").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.TransitionStatus(7, domain.BookingAccepted, domain.BookingPaid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("transition must not report success when no row matched")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveTicketQuantityInTx_GuardsRemainingSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := BookingRepository{DB: db}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE tickets SET quantity = quantity - ? WHERE id=? AND quantity >= ?`)).
		WithArgs(3, int64(11), 3).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	ok, err := repo.ReserveTicketQuantityInTx(tx, 11, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("reservation must fail when fewer than qty seats remain")
	}
	_ = tx.Rollback()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateInTx_AlwaysInsertsPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := BookingRepository{DB: db}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO bookings`)).
		WithArgs(int64(11), "Rahim", "rahim@example.com", 2, int64(240000), "pending").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	id, err := repo.CreateInTx(tx, bookingFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected inserted id 42, got %d", id)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
