package availability

import (
	"context"
	"fmt"
	"sort"
	"time"

	"hotelops/internal/domain"
)

type Service struct {
	rooms        RoomRepository
	reservations ReservationRepository
	policy       domain.OverlapPolicy
}

func NewService(rooms RoomRepository, reservations ReservationRepository, policy domain.OverlapPolicy) *Service {
	return &Service{
		rooms:        rooms,
		reservations: reservations,
		policy:       policy,
	}
}

// FindAvailable returns active, Available rooms (optionally of one type) with
// no Confirmed or CheckedIn reservation colliding with [checkIn, checkOut],
// cheapest first.
func (s *Service) FindAvailable(ctx context.Context, checkIn, checkOut time.Time, roomType *domain.RoomType) ([]domain.Room, error) {
	rng := domain.NewDateRange(checkIn, checkOut)
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	if roomType != nil && !roomType.Valid() {
		return nil, domain.Validationf("unknown room type %q", *roomType)
	}

	candidates, err := s.rooms.FindBookable(ctx, roomType)
	if err != nil {
		return nil, fmt.Errorf("load bookable rooms: %w", err)
	}

	busyIDs, err := s.reservations.FindBusyRoomIDs(ctx, rng, domain.ActiveStatuses, s.policy)
	if err != nil {
		return nil, fmt.Errorf("load busy rooms: %w", err)
	}
	busy := make(map[int64]struct{}, len(busyIDs))
	for _, id := range busyIDs {
		busy[id] = struct{}{}
	}

	out := make([]domain.Room, 0, len(candidates))
	for _, r := range candidates {
		if _, taken := busy[r.ID]; taken {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Price != out[j].Price {
			return out[i].Price < out[j].Price
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// IsRoomAvailable applies the full booking rule to a single room.
func (s *Service) IsRoomAvailable(ctx context.Context, room *domain.Room, rng domain.DateRange, excludeID int64) (bool, error) {
	if !room.Bookable() {
		return false, nil
	}
	collides, err := s.HasCollision(ctx, room.ID, rng, excludeID)
	if err != nil {
		return false, err
	}
	return !collides, nil
}

// HasCollision reports whether another active reservation holds roomID for
// any part of rng.
func (s *Service) HasCollision(ctx context.Context, roomID int64, rng domain.DateRange, excludeID int64) (bool, error) {
	rows, err := s.reservations.FindOverlapping(ctx, roomID, rng, domain.ActiveStatuses, s.policy, excludeID)
	if err != nil {
		return false, fmt.Errorf("find overlapping reservations: %w", err)
	}
	return len(rows) > 0, nil
}
