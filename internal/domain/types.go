package domain

// Role is the closed set of account roles. Keep role checks on this type
// instead of comparing raw strings at call sites.
type Role string

const (
	RoleUser   Role = "user"
	RoleVendor Role = "vendor"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

// TransportType enumerates supported transport categories.
type TransportType string

const (
	TransportBus    TransportType = "bus"
	TransportTrain  TransportType = "train"
	TransportLaunch TransportType = "launch"
	TransportPlane  TransportType = "plane"
)

func (t TransportType) Valid() bool {
	switch t {
	case TransportBus, TransportTrain, TransportLaunch, TransportPlane:
		return true
	}
	return false
}

// VerificationStatus is the admin moderation state of a ticket listing.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

func (v VerificationStatus) Valid() bool {
	switch v {
	case VerificationPending, VerificationApproved, VerificationRejected:
		return true
	}
	return false
}

// BookingStatus is the booking lifecycle state.
type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingAccepted BookingStatus = "accepted"
	BookingRejected BookingStatus = "rejected"
	BookingPaid     BookingStatus = "paid"
)

func (b BookingStatus) Valid() bool {
	switch b {
	case BookingPending, BookingAccepted, BookingRejected, BookingPaid:
		return true
	}
	return false
}

// Terminal reports whether no further transition may leave this state.
func (b BookingStatus) Terminal() bool {
	return b == BookingRejected || b == BookingPaid
}

// CanTransitionTo enforces the one-directional lifecycle:
// pending->accepted, pending->rejected, accepted->paid.
func (b BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch b {
	case BookingPending:
		return next == BookingAccepted || next == BookingRejected
	case BookingAccepted:
		return next == BookingPaid
	}
	return false
}

// Pagination carries paging params and totals.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total,omitempty"`
}

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}
