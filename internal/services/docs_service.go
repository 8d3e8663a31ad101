package services

import (
	"bytes"
	"fmt"
	"strings"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the e-ticket PDF for a paid booking.
type DocsService struct {
	BookingSvc  BookingService
	PaymentRepo repositories.PaymentRepository
	RequestID   string
}

// ETicket builds the PDF. Only the booking's customer (or an admin) may
// download it, and only once the booking is paid.
func (s DocsService) ETicket(rc domain.RequestContext, bookingID int64) ([]byte, string, error) {
	b, err := s.BookingSvc.GetByID(bookingID)
	if err != nil {
		return nil, "", err
	}
	if rc.Role != domain.RoleAdmin && !strings.EqualFold(b.CustomerEmail, rc.Email) {
		return nil, "", domain.ForbiddenError{Msg: "not your booking"}
	}
	if b.Status != domain.BookingPaid {
		return nil, "", domain.ConflictError{Resource: "booking", Msg: "e-ticket is only available after payment"}
	}

	payment, err := s.PaymentRepo.GetByBookingID(bookingID)
	if err != nil {
		return nil, "", domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "docs", "eticket", fmt.Sprintf("booking_id=%d", bookingID))
	return buildETicketPDF(b, payment)
}

func buildETicketPDF(b models.Booking, p models.Payment) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	seats := "-"
	if len(b.SelectedSeats) > 0 {
		parts := make([]string, len(b.SelectedSeats))
		for i, n := range b.SelectedSeats {
			parts[i] = fmt.Sprintf("%d", n)
		}
		seats = strings.Join(parts, ", ")
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Passenger : %s", safe(b.CustomerEmail, "-")),
		fmt.Sprintf("Trip      : %s", safe(b.TicketTitle, "-")),
		fmt.Sprintf("Route     : %s -> %s", safe(b.FromLocation, "-"), safe(b.ToLocation, "-")),
		fmt.Sprintf("Departure : %s %s", safe(b.DepartureDate, "-"), safe(b.DepartureTime, "-")),
		fmt.Sprintf("Transport : %s", safe(string(b.Transport), "-")),
		fmt.Sprintf("Seats     : %s", seats),
		fmt.Sprintf("Quantity  : %d", b.Quantity),
		fmt.Sprintf("Paid      : %s", utils.FormatAmount(p.Amount)),
		fmt.Sprintf("Booking   : #%d", b.ID),
		fmt.Sprintf("Reference : %s", safe(p.Reference, "-")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please present this e-ticket at departure. Seat numbers apply to bus trips only.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%d.pdf", b.ID)
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
