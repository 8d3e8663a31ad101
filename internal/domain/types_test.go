package domain

import "testing"

func TestBookingStatus_Lifecycle(t *testing.T) {
	allowed := map[BookingStatus][]BookingStatus{
		BookingPending:  {BookingAccepted, BookingRejected},
		BookingAccepted: {BookingPaid},
		BookingRejected: nil,
		BookingPaid:     nil,
	}

	all := []BookingStatus{BookingPending, BookingAccepted, BookingRejected, BookingPaid}
	for from, nexts := range allowed {
		ok := make(map[BookingStatus]bool, len(nexts))
		for _, n := range nexts {
			ok[n] = true
		}
		for _, to := range all {
			if got := from.CanTransitionTo(to); got != ok[to] {
				t.Fatalf("%s -> %s: got %v want %v", from, to, got, ok[to])
			}
		}
	}
}

func TestBookingStatus_Terminal(t *testing.T) {
	if BookingPending.Terminal() || BookingAccepted.Terminal() {
		t.Fatalf("pending and accepted are not terminal")
	}
	if !BookingRejected.Terminal() || !BookingPaid.Terminal() {
		t.Fatalf("rejected and paid are terminal")
	}
}

func TestEnums_RejectUnknownValues(t *testing.T) {
	if Role("superadmin").Valid() {
		t.Fatalf("unknown role accepted")
	}
	if TransportType("boat").Valid() {
		t.Fatalf("unknown transport accepted")
	}
	if VerificationStatus("archived").Valid() {
		t.Fatalf("unknown verification status accepted")
	}
	if BookingStatus("cancelled").Valid() {
		t.Fatalf("unknown booking status accepted")
	}
}
