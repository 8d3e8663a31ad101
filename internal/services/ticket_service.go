package services

import (
	"database/sql"
	"strings"

	"backend/internal/domain"
	"backend/internal/domain/inventory"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"
)

// TicketService owns the listing lifecycle: vendors create pending tickets,
// admins approve/reject and curate the advertised set, and all read views go
// through the inventory projection.
type TicketService struct {
	TicketRepo repositories.TicketRepository
	UserRepo   repositories.UserRepository
}

func validateTicketInput(in models.TicketInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return domain.ValidationError{Field: "title", Msg: "must not be empty"}
	}
	if strings.TrimSpace(in.FromLocation) == "" || strings.TrimSpace(in.ToLocation) == "" {
		return domain.ValidationError{Field: "route", Msg: "from and to locations are required"}
	}
	if !domain.TransportType(in.TransportType).Valid() {
		return domain.ValidationError{Field: "transportType", Msg: "must be bus, train, launch or plane"}
	}
	if in.Price <= 0 {
		return domain.ValidationError{Field: "price", Msg: "must be positive"}
	}
	if in.Quantity < 0 {
		return domain.ValidationError{Field: "quantity", Msg: "must not be negative"}
	}
	if _, err := utils.ParseDate(in.DepartureDate); err != nil {
		return domain.ValidationError{Field: "departureDate", Msg: "expected YYYY-MM-DD", Err: err}
	}
	return nil
}

// Create registers a new pending listing for the calling vendor. Fraud
// vendors are locked out of creating inventory.
func (s TicketService) Create(rc domain.RequestContext, in models.TicketInput) (models.Ticket, error) {
	if rc.Role != domain.RoleVendor {
		return models.Ticket{}, domain.ForbiddenError{Msg: "only vendors can create tickets"}
	}
	if err := validateTicketInput(in); err != nil {
		return models.Ticket{}, err
	}

	vendor, err := s.UserRepo.GetByID(rc.UserID)
	if err != nil {
		return models.Ticket{}, domain.InternalError{Err: err}
	}
	if vendor.IsFraud {
		return models.Ticket{}, domain.ForbiddenError{Msg: "account is blocked from adding tickets"}
	}

	id, err := s.TicketRepo.Create(models.Ticket{
		Title:         utils.NormalizeSpace(in.Title),
		FromLocation:  utils.NormalizeSpace(in.FromLocation),
		ToLocation:    utils.NormalizeSpace(in.ToLocation),
		Transport:     domain.TransportType(in.TransportType),
		Price:         in.Price,
		Quantity:      in.Quantity,
		DepartureDate: strings.TrimSpace(in.DepartureDate),
		DepartureTime: strings.TrimSpace(in.DepartureTime),
		VendorName:    vendor.Name,
		VendorEmail:   vendor.Email,
		Perks:         in.Perks,
	})
	if err != nil {
		return models.Ticket{}, domain.InternalError{Err: err}
	}
	return s.get(id)
}

func (s TicketService) get(id int64) (models.Ticket, error) {
	t, err := s.TicketRepo.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Ticket{}, domain.NotFoundError{Resource: "ticket", Err: err}
		}
		return models.Ticket{}, domain.InternalError{Err: err}
	}
	return t, nil
}

// ownedEditable loads the ticket and enforces the two write guards: only the
// owning vendor may touch it, and rejected listings are immutable so the
// moderation audit trail survives.
func (s TicketService) ownedEditable(rc domain.RequestContext, id int64) (models.Ticket, error) {
	t, err := s.get(id)
	if err != nil {
		return models.Ticket{}, err
	}
	if rc.Role != domain.RoleVendor || !strings.EqualFold(t.VendorEmail, rc.Email) {
		return models.Ticket{}, domain.ForbiddenError{Msg: "not the owner of this ticket"}
	}
	if t.Status == domain.VerificationRejected {
		return models.Ticket{}, domain.ConflictError{Resource: "ticket", Msg: "rejected listings cannot be modified"}
	}
	return t, nil
}

func (s TicketService) Update(rc domain.RequestContext, id int64, in models.TicketInput) (models.Ticket, error) {
	if _, err := s.ownedEditable(rc, id); err != nil {
		return models.Ticket{}, err
	}
	if err := validateTicketInput(in); err != nil {
		return models.Ticket{}, err
	}
	// Same normalization as Create, so edits cannot reintroduce the
	// whitespace the original listing had scrubbed.
	in.Title = utils.NormalizeSpace(in.Title)
	in.FromLocation = utils.NormalizeSpace(in.FromLocation)
	in.ToLocation = utils.NormalizeSpace(in.ToLocation)
	in.DepartureDate = strings.TrimSpace(in.DepartureDate)
	in.DepartureTime = strings.TrimSpace(in.DepartureTime)
	if err := s.TicketRepo.Update(id, in); err != nil {
		return models.Ticket{}, domain.InternalError{Err: err}
	}
	return s.get(id)
}

func (s TicketService) Delete(rc domain.RequestContext, id int64) error {
	if _, err := s.ownedEditable(rc, id); err != nil {
		return err
	}
	if err := s.TicketRepo.Delete(id); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

// SetStatus is the admin approve/reject decision. Re-evaluation is allowed,
// including restating the current decision; rejecting also clears the
// advertised flag since only approved tickets may be advertised.
func (s TicketService) SetStatus(id int64, status domain.VerificationStatus) (models.Ticket, error) {
	if status != domain.VerificationApproved && status != domain.VerificationRejected {
		return models.Ticket{}, domain.ValidationError{Field: "status", Msg: "must be approved or rejected"}
	}
	if _, err := s.get(id); err != nil {
		return models.Ticket{}, err
	}
	if err := s.TicketRepo.UpdateStatus(id, status); err != nil {
		return models.Ticket{}, domain.InternalError{Err: err}
	}
	return s.get(id)
}

// Advertise toggles the featured flag; valid only while approved.
func (s TicketService) Advertise(id int64, advertised bool) (models.Ticket, error) {
	t, err := s.get(id)
	if err != nil {
		return models.Ticket{}, err
	}
	if t.Status != domain.VerificationApproved {
		return models.Ticket{}, domain.ConflictError{Resource: "ticket", Msg: "only approved tickets can be advertised"}
	}
	if err := s.TicketRepo.SetAdvertised(id, advertised); err != nil {
		return models.Ticket{}, domain.InternalError{Err: err}
	}
	return s.get(id)
}

// ListQuery bundles the browse parameters coming off the query string.
type ListQuery struct {
	Predicate inventory.Predicate
	Order     inventory.Order
	Page      int
	PageSize  int
}

// Public lists approved, non-fraud inventory with filters, sort and paging.
// Returns the page and the pre-paging total for the client's pager.
func (s TicketService) Public(q ListQuery) ([]models.Ticket, int, error) {
	all, err := s.TicketRepo.ListAll()
	if err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	view := inventory.Filter(inventory.Project(all, inventory.AudiencePublic, ""), q.Predicate)
	view = inventory.Sort(view, q.Order)
	total := len(view)
	return inventory.Paginate(view, q.Page, q.PageSize), total, nil
}

// Advertised lists the promoted subset of the public view, newest first.
func (s TicketService) Advertised() ([]models.Ticket, error) {
	all, err := s.TicketRepo.ListAll()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return inventory.Sort(inventory.Project(all, inventory.AudienceAdvertised, ""), inventory.OrderNewest), nil
}

// VendorTickets shows a vendor all of their own listings, any status.
func (s TicketService) VendorTickets(vendorEmail string) ([]models.Ticket, error) {
	tickets, err := s.TicketRepo.ListByVendor(vendorEmail)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return tickets, nil
}

// AdminTickets shows everything; moderation needs full visibility.
func (s TicketService) AdminTickets() ([]models.Ticket, error) {
	tickets, err := s.TicketRepo.ListAll()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return tickets, nil
}

// Get applies public visibility: non-approved or fraud-hidden tickets are
// only visible to their owner and admins.
func (s TicketService) Get(rc domain.RequestContext, id int64) (models.Ticket, error) {
	t, err := s.get(id)
	if err != nil {
		return models.Ticket{}, err
	}
	visible := t.Status == domain.VerificationApproved && !t.VendorFraud
	if !visible && rc.Role != domain.RoleAdmin && !strings.EqualFold(t.VendorEmail, rc.Email) {
		return models.Ticket{}, domain.NotFoundError{Resource: "ticket"}
	}
	return t, nil
}
