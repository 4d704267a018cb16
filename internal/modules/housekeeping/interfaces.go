package housekeeping

import (
	"context"

	"hotelops/internal/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, task *domain.HousekeepingTask) error
	GetByID(ctx context.Context, id int64) (*domain.HousekeepingTask, error)
	Save(ctx context.Context, task *domain.HousekeepingTask) error
	ListByRoom(ctx context.Context, roomID int64) ([]domain.HousekeepingTask, error)
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
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
