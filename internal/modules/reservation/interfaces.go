package reservation

import (
	"context"

	"hotelops/internal/domain"
)

type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Save(ctx context.Context, res *domain.Reservation) error
}

type RoomRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Room, error)
}

// AvailabilityChecker is the part of the availability service the state
// machine consults before it commits a room to a guest.
type AvailabilityChecker interface {
	IsRoomAvailable(ctx context.Context, room *domain.Room, rng domain.DateRange, excludeID int64) (bool, error)
	HasCollision(ctx context.Context, roomID int64, rng domain.DateRange, excludeID int64) (bool, error)
}

type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

type RoomSynchronizer interface {
	Apply(ctx context.Context, ev domain.RoomEvent) error
	Broadcast(events ...domain.RoomEvent)
}

// CleaningScheduler queues housekeeping after a guest leaves.
type CleaningScheduler interface {
	ScheduleCleaning(ctx context.Context, roomID, reservationID int64) (*domain.HousekeepingTask, error)
}
