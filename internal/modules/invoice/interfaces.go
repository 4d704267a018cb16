package invoice

import (
	"context"

	"hotelops/internal/domain"
)

type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	GetByReservationID(ctx context.Context, reservationID int64) (*domain.Invoice, error)
	Save(ctx context.Context, inv *domain.Invoice) error
	Count(ctx context.Context) (int64, error)
}

type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
}

type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}
