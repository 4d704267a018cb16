package availability

import (
	"context"

	"hotelops/internal/domain"
)

// RoomRepository is the slice of the room registry the checker reads.
type RoomRepository interface {
	FindBookable(ctx context.Context, roomType *domain.RoomType) ([]domain.Room, error)
}

// ReservationRepository answers overlap queries against stored reservations.
type ReservationRepository interface {
	FindOverlapping(
		ctx context.Context,
		roomID int64,
		rng domain.DateRange,
		statuses []domain.ReservationStatus,
		policy domain.OverlapPolicy,
		excludeID int64,
	) ([]domain.Reservation, error)
	FindBusyRoomIDs(
		ctx context.Context,
		rng domain.DateRange,
		statuses []domain.ReservationStatus,
		policy domain.OverlapPolicy,
	) ([]int64, error)
}
