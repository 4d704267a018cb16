package domain

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

type PaymentStatus string

const (
	PaymentUnpaid        PaymentStatus = "Unpaid"
	PaymentPartiallyPaid PaymentStatus = "Partially Paid"
	PaymentPaid          PaymentStatus = "Paid"
)

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "Cash"
	PaymentCard         PaymentMethod = "Card"
	PaymentUPI          PaymentMethod = "UPI"
	PaymentBankTransfer PaymentMethod = "Bank Transfer"
	PaymentOther        PaymentMethod = "Other"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentUPI, PaymentBankTransfer, PaymentOther:
		return true
	}
	return false
}

type ServiceCharge struct {
	Name     string  `json:"name" validate:"required"`
	Amount   float64 `json:"amount" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gte=1"`
}

type TaxBreakdown struct {
	GST        float64 `json:"gst" validate:"gte=0"`
	ServiceTax float64 `json:"service_tax" validate:"gte=0"`
	Other      float64 `json:"other" validate:"gte=0"`
}

func (t TaxBreakdown) Total() float64 {
	return RoundMoney(t.GST + t.ServiceTax + t.Other)
}

func ServiceTotal(charges []ServiceCharge) float64 {
	var sum float64
	for _, c := range charges {
		sum += c.Amount * float64(c.Quantity)
	}
	return RoundMoney(sum)
}

// ComputeInvoiceTotal applies the discount as a flat deduction. It is not
// clamped, so a discount larger than the subtotal yields a negative total.
func ComputeInvoiceTotal(roomCharge float64, charges []ServiceCharge, taxes TaxBreakdown, discount float64) float64 {
	return RoundMoney(roomCharge + ServiceTotal(charges) + taxes.Total() - discount)
}

func DerivePaymentStatus(total, paid float64) PaymentStatus {
	switch {
	case paid == 0:
		return PaymentUnpaid
	case paid < total:
		return PaymentPartiallyPaid
	default:
		return PaymentPaid
	}
}

// InvoiceNumber formats INV<year><zero-padded sequence>.
func InvoiceNumber(year int, seq int64) string {
	return fmt.Sprintf("INV%d%04d", year, seq)
}

type Invoice struct {
	ID             int64                              `json:"id" gorm:"primaryKey"`
	InvoiceNumber  string                             `json:"invoice_number" gorm:"size:32;uniqueIndex;not null"`
	ReservationID  int64                              `json:"reservation_id" gorm:"uniqueIndex;not null"`
	GuestID        int64                              `json:"guest_id" gorm:"not null;index"`
	RoomCharge     float64                            `json:"room_charges" gorm:"not null"`
	ServiceCharges datatypes.JSONSlice[ServiceCharge] `json:"service_charges"`
	Taxes          datatypes.JSONType[TaxBreakdown]   `json:"taxes"`
	Discount       float64                            `json:"discount" gorm:"not null;default:0"`
	TotalAmount    float64                            `json:"total_amount" gorm:"not null"`
	AmountPaid     float64                            `json:"amount_paid" gorm:"not null;default:0"`
	BalanceAmount  float64                            `json:"balance_amount" gorm:"not null"`
	PaymentStatus  PaymentStatus                      `json:"payment_status" gorm:"size:16;not null;index"`
	PaymentMethod  PaymentMethod                      `json:"payment_method,omitempty" gorm:"size:16"`
	PaymentDate    *time.Time                         `json:"payment_date,omitempty"`
	Notes          string                             `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt      time.Time                          `json:"created_at"`
	UpdatedAt      time.Time                          `json:"updated_at"`
}

// Recompute derives TotalAmount, BalanceAmount and PaymentStatus from the
// charge and payment inputs. It is the only writer of those fields.
func (inv *Invoice) Recompute() {
	inv.TotalAmount = ComputeInvoiceTotal(inv.RoomCharge, inv.ServiceCharges, inv.Taxes.Data(), inv.Discount)
	inv.BalanceAmount = RoundMoney(inv.TotalAmount - inv.AmountPaid)
	inv.PaymentStatus = DerivePaymentStatus(inv.TotalAmount, inv.AmountPaid)
}
