package services

import (
	"regexp"
	"testing"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func newTicketService(t *testing.T) (TicketService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	svc := TicketService{
		TicketRepo: repositories.TicketRepository{DB: db},
		UserRepo:   repositories.UserRepository{DB: db},
	}
	return svc, mock, func() { db.Close() }
}

func ticketRowWith(status string, advertised, fraud bool) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(ticketColumns).AddRow(
		int64(5), "Dhaka Express", "Dhaka", "Chittagong", "bus",
		int64(120000), 38, "2026-04-01", "22:30",
		"Green Line", "green@line.example", fraud,
		"[]", status, advertised, now, now,
	)
}

func vendorCtx() domain.RequestContext {
	return domain.RequestContext{UserID: 8, Email: "green@line.example", Role: domain.RoleVendor}
}

func validInput() models.TicketInput {
	return models.TicketInput{
		Title:         "Dhaka Express",
		FromLocation:  "Dhaka",
		ToLocation:    "Chittagong",
		TransportType: "bus",
		Price:         120000,
		Quantity:      40,
		DepartureDate: "2026-04-01",
		DepartureTime: "22:30",
	}
}

func TestCreate_FraudVendorIsLockedOut(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	now := time.Now()
	flagged := sqlmock.NewRows([]string{
		"id", "name", "email", "photo_url", "role", "is_fraud", "created_at", "updated_at",
	}).AddRow(int64(8), "Green Line", "green@line.example", "", "vendor", true, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id=?`)).
		WithArgs(int64(8)).WillReturnRows(flagged)

	_, err := svc.Create(vendorCtx(), validInput())
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden for flagged vendor, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_RejectsBadInputBeforeAnyQuery(t *testing.T) {
	svc, _, done := newTicketService(t)
	defer done()

	cases := map[string]models.TicketInput{}

	in := validInput()
	in.Title = "  "
	cases["blank title"] = in

	in = validInput()
	in.TransportType = "boat"
	cases["unknown transport"] = in

	in = validInput()
	in.Price = 0
	cases["non-positive price"] = in

	in = validInput()
	in.DepartureDate = "01-04-2026"
	cases["bad date"] = in

	for name, input := range cases {
		if _, err := svc.Create(vendorCtx(), input); !domain.IsValidation(err) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}

	if _, err := svc.Create(customerCtx(), validInput()); !domain.IsForbidden(err) {
		t.Fatalf("non-vendor create should be forbidden")
	}
}

func TestUpdate_RejectedListingsAreImmutable(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM tickets t`)).
		WithArgs(int64(5)).WillReturnRows(ticketRowWith("rejected", false, false))

	_, err := svc.Update(vendorCtx(), 5, validInput())
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict for rejected listing, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdate_NormalizesWhitespaceLikeCreate(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM tickets t`)).
		WithArgs(int64(5)).WillReturnRows(ticketRowWith("approved", false, false))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE tickets`)).
		WithArgs("Dhaka Express", "Dhaka", "Chittagong", "bus", int64(120000),
			40, "2026-04-01", "22:30", "[]", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM tickets t`)).
		WithArgs(int64(5)).WillReturnRows(ticketRowWith("approved", false, false))

	in := validInput()
	in.Title = "  Dhaka   Express "
	in.FromLocation = " Dhaka "
	in.ToLocation = "Chittagong  "
	in.DepartureDate = " 2026-04-01 "
	in.DepartureTime = " 22:30 "

	if _, err := svc.Update(vendorCtx(), 5, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDelete_OnlyOwnerMayRemove(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM tickets t`)).
		WithArgs(int64(5)).WillReturnRows(ticketRowWith("approved", false, false))

	other := domain.RequestContext{UserID: 9, Email: "other@vendor.example", Role: domain.RoleVendor}
	if err := svc.Delete(other, 5); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden for non-owner, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSetStatus_RejectClearsAdvertisedFlag(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM tickets t`)).
		WithArgs(int64(5)).WillReturnRows(ticketRowWith("approved", true, false))
	// One statement writes the status and clears the flag; there is no
	// second UPDATE that could fail after the first one committed.
	mock.ExpectExec(regexp.QuoteMeta(`SET status=?, is_advertised=CASE WHEN ?='rejected' THEN FALSE ELSE is_advertised END`)).
		WithArgs("rejected", "rejected", int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM tickets t`)).
		WithArgs(int64(5)).WillReturnRows(ticketRowWith("rejected", false, false))

	got, err := svc.SetStatus(5, domain.VerificationRejected)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.IsAdvertised {
		t.Fatalf("rejected ticket must not stay advertised")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSetStatus_RejectingAnUnadvertisedTicketSucceeds(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM tickets t`)).
		WithArgs(int64(5)).WillReturnRows(ticketRowWith("pending", false, false))
	mock.ExpectExec(regexp.QuoteMeta(`SET status=?, is_advertised=CASE WHEN ?='rejected' THEN FALSE ELSE is_advertised END`)).
		WithArgs("rejected", "rejected", int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM tickets t`)).
		WithArgs(int64(5)).WillReturnRows(ticketRowWith("rejected", false, false))

	if _, err := svc.SetStatus(5, domain.VerificationRejected); err != nil {
		t.Fatalf("rejecting a never-advertised ticket must succeed, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSetStatus_RestatingTheCurrentDecisionSucceeds(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM tickets t`)).
		WithArgs(int64(5)).WillReturnRows(ticketRowWith("approved", false, false))
	// The DSN requests matched-rows counting, so re-approving an approved
	// ticket reports the matched row even though nothing changed.
	mock.ExpectExec(regexp.QuoteMeta(`SET status=?, is_advertised=CASE WHEN ?='rejected' THEN FALSE ELSE is_advertised END`)).
		WithArgs("approved", "approved", int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM tickets t`)).
		WithArgs(int64(5)).WillReturnRows(ticketRowWith("approved", false, false))

	if _, err := svc.SetStatus(5, domain.VerificationApproved); err != nil {
		t.Fatalf("re-approving must succeed, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSetStatus_PendingIsNotADecision(t *testing.T) {
	svc, _, done := newTicketService(t)
	defer done()

	if _, err := svc.SetStatus(5, domain.VerificationPending); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAdvertise_RequiresApprovedListing(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM tickets t`)).
		WithArgs(int64(5)).WillReturnRows(ticketRowWith("pending", false, false))

	if _, err := svc.Advertise(5, true); !domain.IsConflict(err) {
		t.Fatalf("expected conflict for pending listing, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGet_HiddenTicketsLookMissingToThePublic(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	// Fraud-vendor ticket: anonymous caller sees not-found.
	mock.ExpectQuery(regexp.QuoteMeta(`FROM tickets t`)).
		WithArgs(int64(5)).WillReturnRows(ticketRowWith("approved", false, true))
	if _, err := svc.Get(domain.RequestContext{}, 5); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found for hidden ticket, got %v", err)
	}

	// The owner still sees it.
	mock.ExpectQuery(regexp.QuoteMeta(`FROM tickets t`)).
		WithArgs(int64(5)).WillReturnRows(ticketRowWith("approved", false, true))
	if _, err := svc.Get(vendorCtx(), 5); err != nil {
		t.Fatalf("owner should see their own ticket, got %v", err)
	}

	// So does the admin.
	mock.ExpectQuery(regexp.QuoteMeta(`FROM tickets t`)).
		WithArgs(int64(5)).WillReturnRows(ticketRowWith("pending", false, false))
	admin := domain.RequestContext{UserID: 1, Email: "admin@example.com", Role: domain.RoleAdmin}
	if _, err := svc.Get(admin, 5); err != nil {
		t.Fatalf("admin should see any ticket, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
