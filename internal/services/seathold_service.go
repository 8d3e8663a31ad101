package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SeatHoldService places short-lived advisory holds on bus seats while a
// customer is still picking. Holds only narrow the race window between
// loading the seat map and confirming; the booking_seats unique key stays
// the authority. With a nil client every method is a no-op.
type SeatHoldService struct {
	Client *redis.Client
	TTL    time.Duration
}

func holdKey(ticketID int64, seat int) string {
	return fmt.Sprintf("hold:%d:%d", ticketID, seat)
}

func (s SeatHoldService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return 5 * time.Minute
}

// Hold tries to claim the seats for owner. Returns the seats already held
// by someone else; when non-empty, none of the requested seats are kept.
func (s SeatHoldService) Hold(ctx context.Context, ticketID int64, seats []int, owner string) ([]int, error) {
	if s.Client == nil || len(seats) == 0 {
		return nil, nil
	}

	taken := []int{}
	claimed := []int{}
	for _, n := range seats {
		ok, err := s.Client.SetNX(ctx, holdKey(ticketID, n), owner, s.ttl()).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			claimed = append(claimed, n)
			continue
		}
		// Refreshing one's own hold is fine.
		cur, err := s.Client.Get(ctx, holdKey(ticketID, n)).Result()
		if err != nil && err != redis.Nil {
			return nil, err
		}
		if cur == owner {
			_ = s.Client.Expire(ctx, holdKey(ticketID, n), s.ttl()).Err()
			continue
		}
		taken = append(taken, n)
	}

	if len(taken) > 0 {
		s.release(ctx, ticketID, claimed, owner)
		return taken, nil
	}
	return nil, nil
}

// HeldByOthers filters seats down to the ones someone else currently holds.
func (s SeatHoldService) HeldByOthers(ctx context.Context, ticketID int64, seats []int, owner string) []int {
	if s.Client == nil {
		return nil
	}
	out := []int{}
	for _, n := range seats {
		cur, err := s.Client.Get(ctx, holdKey(ticketID, n)).Result()
		if err != nil || cur == "" || cur == owner {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Release drops the owner's holds, typically right after the booking
// transaction committed or the selection was abandoned.
func (s SeatHoldService) Release(ctx context.Context, ticketID int64, seats []int, owner string) {
	if s.Client == nil {
		return
	}
	s.release(ctx, ticketID, seats, owner)
}

func (s SeatHoldService) release(ctx context.Context, ticketID int64, seats []int, owner string) {
	for _, n := range seats {
		cur, err := s.Client.Get(ctx, holdKey(ticketID, n)).Result()
		if err != nil || cur != owner {
			continue
		}
		_ = s.Client.Del(ctx, holdKey(ticketID, n)).Err()
	}
}
