package repository

import (
	"context"

	"gorm.io/gorm"

	"hotelops/internal/domain"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	return translate(conn(ctx, r.db).Create(inv).Error, domain.ErrInvoiceNotFound)
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	var inv domain.Invoice
	if err := conn(ctx, r.db).First(&inv, id).Error; err != nil {
		return nil, translate(err, domain.ErrInvoiceNotFound)
	}
	return &inv, nil
}

func (r *InvoiceRepository) GetByReservationID(ctx context.Context, reservationID int64) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := conn(ctx, r.db).Where("reservation_id = ?", reservationID).First(&inv).Error
	if err != nil {
		return nil, translate(err, domain.ErrInvoiceNotFound)
	}
	return &inv, nil
}

func (r *InvoiceRepository) Save(ctx context.Context, inv *domain.Invoice) error {
	return translate(conn(ctx, r.db).Save(inv).Error, domain.ErrInvoiceNotFound)
}

func (r *InvoiceRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := conn(ctx, r.db).Model(&domain.Invoice{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
