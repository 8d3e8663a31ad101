package repositories

import (
	"regexp"
	"testing"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func ticketFixture() models.Ticket {
	return models.Ticket{
		Title:         "Night Coach",
		FromLocation:  "Dhaka",
		ToLocation:    "Sylhet",
		Transport:     domain.TransportBus,
		Price:         90000,
		Quantity:      40,
		DepartureDate: "2026-04-02",
		DepartureTime: "23:00",
		VendorName:    "Green Line",
		VendorEmail:   "green@line.example",
		Perks:         []string{"blanket"},
	}
}

func ticketInputFixture() models.TicketInput {
	return models.TicketInput{
		Title:         "Night Coach",
		FromLocation:  "Dhaka",
		ToLocation:    "Sylhet",
		TransportType: "bus",
		Price:         90000,
		Quantity:      40,
		DepartureDate: "2026-04-02",
		DepartureTime: "23:00",
	}
}

var ticketColumns = []string{
	"id", "title", "from_location", "to_location", "transport",
	"price", "quantity", "departure_date", "departure_time",
	"vendor_name", "vendor_email", "is_fraud",
	"perks", "status", "is_advertised",
	"created_at", "updated_at",
}

func TestGetByID_ScansFraudFlagFromVendorJoin(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := TicketRepository{DB: db}
	now := time.Now()

	rows := sqlmock.NewRows(ticketColumns).AddRow(
		int64(5), "Dhaka Express", "Dhaka", "Chittagong", "bus",
		int64(120000), 38, "2026-04-01", "22:30",
		"Green Line", "green@line.example", true,
		`["wifi","ac"]`, "approved", false,
		now, now,
	)
	mock.ExpectQuery(regexp.QuoteMeta(`LEFT JOIN users u ON u.email = t.vendor_email`)).
		WithArgs(int64(5)).
		WillReturnRows(rows)

	got, err := repo.GetByID(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.VendorFraud {
		t.Fatalf("fraud flag from the vendor join was lost")
	}
	if got.Transport != domain.TransportBus || got.Status != domain.VerificationApproved {
		t.Fatalf("enum columns scanned wrong: %s %s", got.Transport, got.Status)
	}
	if len(got.Perks) != 2 || got.Perks[0] != "wifi" {
		t.Fatalf("perks not decoded: %v", got.Perks)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_NewTicketsStartPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := TicketRepository{DB: db}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO tickets`)).
		WithArgs("Night Coach", "Dhaka", "Sylhet", "bus", int64(90000), 40,
			"2026-04-02", "23:00", "Green Line", "green@line.example", `["blanket"]`, "pending").
		WillReturnResult(sqlmock.NewResult(9, 1))

	id, err := repo.Create(ticketFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 9 {
		t.Fatalf("expected id 9, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdate_MissingRowBecomesNoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := TicketRepository{DB: db}

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE tickets`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(404, ticketInputFixture())
	if err == nil {
		t.Fatalf("expected error for missing ticket")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPerksCodec_EmptyAndRoundTrip(t *testing.T) {
	if got := encodePerks(nil); got != "[]" {
		t.Fatalf("nil perks should encode to empty array, got %q", got)
	}
	if got := decodePerks(""); len(got) != 0 {
		t.Fatalf("empty column should decode to empty slice, got %v", got)
	}
	if got := decodePerks("not-json"); len(got) != 0 {
		t.Fatalf("bad column data should decode to empty slice, got %v", got)
	}
	perks := decodePerks(encodePerks([]string{"wifi", "snacks"}))
	if len(perks) != 2 || perks[1] != "snacks" {
		t.Fatalf("perks did not survive the codec: %v", perks)
	}
}
