package repositories

import (
	"database/sql"
	"encoding/json"

	"backend/internal/domain"
	"backend/internal/domain/models"
)

type TicketRepository struct {
	DB *sql.DB
}

// ticketSelect joins the vendor's fraud flag so projections can filter on it
// without a second query per ticket.
const ticketSelect = `
	SELECT t.id, t.title, t.from_location, t.to_location, t.transport,
	       t.price, t.quantity, t.departure_date, t.departure_time,
	       t.vendor_name, t.vendor_email, COALESCE(u.is_fraud, 0),
	       COALESCE(t.perks, ''), t.status, t.is_advertised,
	       t.created_at, t.updated_at
	FROM tickets t
	LEFT JOIN users u ON u.email = t.vendor_email`

func scanTicket(row interface{ Scan(...any) error }) (models.Ticket, error) {
	var t models.Ticket
	var transport, status, perks string
	err := row.Scan(
		&t.ID, &t.Title, &t.FromLocation, &t.ToLocation, &transport,
		&t.Price, &t.Quantity, &t.DepartureDate, &t.DepartureTime,
		&t.VendorName, &t.VendorEmail, &t.VendorFraud,
		&perks, &status, &t.IsAdvertised,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return models.Ticket{}, err
	}
	t.Transport = domain.TransportType(transport)
	t.Status = domain.VerificationStatus(status)
	t.Perks = decodePerks(perks)
	return t, nil
}

func decodePerks(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var perks []string
	if err := json.Unmarshal([]byte(raw), &perks); err != nil {
		return []string{}
	}
	return perks
}

func encodePerks(perks []string) string {
	if len(perks) == 0 {
		return "[]"
	}
	b, err := json.Marshal(perks)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func (r TicketRepository) GetByID(id int64) (models.Ticket, error) {
	return scanTicket(r.DB.QueryRow(ticketSelect+` WHERE t.id=?`, id))
}

func (r TicketRepository) Create(t models.Ticket) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO tickets
			(title, from_location, to_location, transport, price, quantity,
			 departure_date, departure_time, vendor_name, vendor_email, perks, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Title, t.FromLocation, t.ToLocation, string(t.Transport), t.Price, t.Quantity,
		t.DepartureDate, t.DepartureTime, t.VendorName, t.VendorEmail,
		encodePerks(t.Perks), string(domain.VerificationPending))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update overwrites the vendor-editable fields. Moderation fields (status,
// is_advertised) have their own methods.
func (r TicketRepository) Update(id int64, in models.TicketInput) error {
	res, err := r.DB.Exec(`
		UPDATE tickets
		SET title=?, from_location=?, to_location=?, transport=?, price=?,
		    quantity=?, departure_date=?, departure_time=?, perks=?
		WHERE id=?`,
		in.Title, in.FromLocation, in.ToLocation, in.TransportType, in.Price,
		in.Quantity, in.DepartureDate, in.DepartureTime, encodePerks(in.Perks), id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r TicketRepository) Delete(id int64) error {
	res, err := r.DB.Exec(`DELETE FROM tickets WHERE id=?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListAll returns every ticket, newest first. Audience trimming happens in
// the inventory projection, not in SQL, so all views share one query shape.
func (r TicketRepository) ListAll() ([]models.Ticket, error) {
	rows, err := r.DB.Query(ticketSelect + ` ORDER BY t.created_at DESC, t.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTickets(rows)
}

func (r TicketRepository) ListByVendor(vendorEmail string) ([]models.Ticket, error) {
	rows, err := r.DB.Query(ticketSelect+` WHERE t.vendor_email=? ORDER BY t.created_at DESC, t.id DESC`, vendorEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTickets(rows)
}

func collectTickets(rows *sql.Rows) ([]models.Ticket, error) {
	out := []models.Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateStatus applies the moderation decision. Rejection clears the
// advertised flag in the same statement, so the two writes can never
// land separately.
func (r TicketRepository) UpdateStatus(id int64, status domain.VerificationStatus) error {
	res, err := r.DB.Exec(`
		UPDATE tickets
		SET status=?, is_advertised=CASE WHEN ?='rejected' THEN FALSE ELSE is_advertised END
		WHERE id=?`,
		string(status), string(status), id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r TicketRepository) SetAdvertised(id int64, advertised bool) error {
	res, err := r.DB.Exec(`UPDATE tickets SET is_advertised=? WHERE id=?`, advertised, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
