package invoice

import "hotelops/internal/domain"

type GenerateInvoiceRequest struct {
	ReservationID  int64                  `json:"reservation_id" binding:"required,gt=0"`
	ServiceCharges []domain.ServiceCharge `json:"service_charges"`
	Taxes          *domain.TaxBreakdown   `json:"taxes"`
	Discount       float64                `json:"discount"`
	Notes          string                 `json:"notes" binding:"max=2000"`
}

type UpdatePaymentRequest struct {
	AmountPaid    *float64 `json:"amount_paid" binding:"required"`
	PaymentMethod string   `json:"payment_method" binding:"required"`
}
