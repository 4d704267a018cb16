package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestComputeInvoiceTotal(t *testing.T) {
	charges := []ServiceCharge{
		{Name: "Laundry", Amount: 12.5, Quantity: 2},
		{Name: "Minibar", Amount: 8, Quantity: 1},
	}
	taxes := TaxBreakdown{GST: 18, ServiceTax: 5, Other: 1.5}

	assert.Equal(t, 33.0, ServiceTotal(charges))
	assert.Equal(t, 24.5, taxes.Total())
	assert.Equal(t, 247.5, ComputeInvoiceTotal(200, charges, taxes, 10))
}

func TestComputeInvoiceTotal_DiscountNotClamped(t *testing.T) {
	assert.Equal(t, -50.0, ComputeInvoiceTotal(100, nil, TaxBreakdown{}, 150))
}

func TestDerivePaymentStatus(t *testing.T) {
	assert.Equal(t, PaymentUnpaid, DerivePaymentStatus(200, 0))
	assert.Equal(t, PaymentPartiallyPaid, DerivePaymentStatus(200, 0.01))
	assert.Equal(t, PaymentPartiallyPaid, DerivePaymentStatus(200, 199.99))
	assert.Equal(t, PaymentPaid, DerivePaymentStatus(200, 200))
	assert.Equal(t, PaymentPaid, DerivePaymentStatus(200, 250))
	assert.Equal(t, PaymentUnpaid, DerivePaymentStatus(0, 0))
}

func TestInvoice_Recompute(t *testing.T) {
	inv := &Invoice{
		RoomCharge: 200,
		Taxes:      datatypes.NewJSONType(TaxBreakdown{}),
	}
	inv.Recompute()
	assert.Equal(t, 200.0, inv.TotalAmount)
	assert.Equal(t, 200.0, inv.BalanceAmount)
	assert.Equal(t, PaymentUnpaid, inv.PaymentStatus)

	inv.AmountPaid = 100
	inv.Recompute()
	assert.Equal(t, 100.0, inv.BalanceAmount)
	assert.Equal(t, PaymentPartiallyPaid, inv.PaymentStatus)

	inv.AmountPaid = 200
	inv.Recompute()
	assert.Equal(t, 0.0, inv.BalanceAmount)
	assert.Equal(t, PaymentPaid, inv.PaymentStatus)

	inv.AmountPaid = 260
	inv.Recompute()
	assert.Equal(t, -60.0, inv.BalanceAmount)
	assert.Equal(t, PaymentPaid, inv.PaymentStatus)
}

func TestInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV20260001", InvoiceNumber(2026, 1))
	assert.Equal(t, "INV202612345", InvoiceNumber(2026, 12345))
}

func TestRoomEventKind_TargetStatus(t *testing.T) {
	s, ok := EventReservationCheckedIn.TargetStatus()
	assert.True(t, ok)
	assert.Equal(t, RoomOccupied, s)

	s, _ = EventReservationCheckedOut.TargetStatus()
	assert.Equal(t, RoomCleaning, s)

	s, _ = EventCleaningCompleted.TargetStatus()
	assert.Equal(t, RoomAvailable, s)

	_, ok = RoomEventKind("unknown").TargetStatus()
	assert.False(t, ok)
}
