// Package inventory derives read-only views over ticket collections.
// Every function copies before filtering or sorting; inputs are never
// mutated.
package inventory

import (
	"sort"
	"strings"

	"backend/internal/domain"
	"backend/internal/domain/models"
)

// Audience selects which tickets a caller is allowed to see.
type Audience string

const (
	// AudiencePublic shows approved tickets from non-fraud vendors.
	AudiencePublic Audience = "public"
	// AudienceAdvertised is the public view narrowed to promoted tickets.
	AudienceAdvertised Audience = "advertised"
	// AudienceVendor shows a vendor their own tickets regardless of status.
	AudienceVendor Audience = "vendor"
	// AudienceAdmin shows everything; moderation needs full visibility.
	AudienceAdmin Audience = "admin"
)

// Project narrows tickets to what the audience may see. vendorEmail is only
// consulted for AudienceVendor.
func Project(tickets []models.Ticket, audience Audience, vendorEmail string) []models.Ticket {
	out := make([]models.Ticket, 0, len(tickets))
	for _, t := range tickets {
		switch audience {
		case AudiencePublic:
			if t.Status == domain.VerificationApproved && !t.VendorFraud {
				out = append(out, t)
			}
		case AudienceAdvertised:
			if t.Status == domain.VerificationApproved && !t.VendorFraud && t.IsAdvertised {
				out = append(out, t)
			}
		case AudienceVendor:
			if strings.EqualFold(t.VendorEmail, vendorEmail) {
				out = append(out, t)
			}
		case AudienceAdmin:
			out = append(out, t)
		}
	}
	return out
}

// Predicate is a conjunction of optional filters; zero values match all.
type Predicate struct {
	Query     string               // case-insensitive substring over title/from/to
	Transport domain.TransportType // exact
	From      string               // exact, for query-string deep links
	To        string               // exact
}

// Matches reports whether the ticket satisfies every set clause.
func (p Predicate) Matches(t models.Ticket) bool {
	if q := strings.ToLower(strings.TrimSpace(p.Query)); q != "" {
		hay := strings.ToLower(t.Title + " " + t.FromLocation + " " + t.ToLocation)
		if !strings.Contains(hay, q) {
			return false
		}
	}
	if p.Transport != "" && t.Transport != p.Transport {
		return false
	}
	if p.From != "" && !strings.EqualFold(t.FromLocation, p.From) {
		return false
	}
	if p.To != "" && !strings.EqualFold(t.ToLocation, p.To) {
		return false
	}
	return true
}

// Filter keeps the tickets matching the predicate.
func Filter(tickets []models.Ticket, p Predicate) []models.Ticket {
	out := make([]models.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if p.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Order is a supported sort order.
type Order string

const (
	OrderNewest    Order = "newest" // default: creation time descending
	OrderPriceAsc  Order = "price_asc"
	OrderPriceDesc Order = "price_desc"
)

// ParseOrder maps a query-string value onto an Order, defaulting to newest.
func ParseOrder(s string) Order {
	switch Order(strings.ToLower(strings.TrimSpace(s))) {
	case OrderPriceAsc:
		return OrderPriceAsc
	case OrderPriceDesc:
		return OrderPriceDesc
	default:
		return OrderNewest
	}
}

// Sort returns a sorted copy; the input slice keeps its order.
func Sort(tickets []models.Ticket, order Order) []models.Ticket {
	out := make([]models.Ticket, len(tickets))
	copy(out, tickets)
	switch order {
	case OrderPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case OrderPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out
}

// Paginate slices out one page (1-based). Out-of-range pages yield an empty
// slice; pageSize <= 0 returns everything.
func Paginate(tickets []models.Ticket, page, pageSize int) []models.Ticket {
	if pageSize <= 0 {
		return tickets
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(tickets) {
		return []models.Ticket{}
	}
	end := start + pageSize
	if end > len(tickets) {
		end = len(tickets)
	}
	return tickets[start:end]
}
