package invoice

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelops/internal/database"
	"hotelops/internal/domain"
	"hotelops/internal/pkg/lock"
	"hotelops/internal/repository"
)

type fixture struct {
	svc          *Service
	invoices     *repository.InvoiceRepository
	reservations *repository.ReservationRepository
	rooms        *repository.RoomRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db, err := database.ConnectMemory()
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, domain.OverlapInclusive))

	invoices := repository.NewInvoiceRepository(db)
	reservations := repository.NewReservationRepository(db)
	svc := NewService(invoices, reservations, repository.NewTxManager(db), lock.NewLocalLocker(2*time.Second), zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC) }

	return fixture{
		svc:          svc,
		invoices:     invoices,
		reservations: reservations,
		rooms:        repository.NewRoomRepository(db),
	}
}

func (f fixture) reservation(t *testing.T, total float64) domain.Reservation {
	t.Helper()
	ctx := context.Background()
	room := domain.Room{Number: fmt.Sprintf("R%d", time.Now().UnixNano()), Type: domain.RoomSingle, Price: 100, Status: domain.RoomAvailable, IsActive: true}
	require.NoError(t, f.rooms.Create(ctx, &room))

	res := domain.Reservation{
		GuestID:     21,
		RoomID:      room.ID,
		CheckIn:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:    time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		Adults:      1,
		TotalAmount: total,
		Status:      domain.ReservationCheckedOut,
	}
	require.NoError(t, f.reservations.Create(ctx, &res))
	return res
}

func TestGenerate_PlainStay(t *testing.T) {
	f := newFixture(t)
	res := f.reservation(t, 200)

	inv, err := f.svc.Generate(context.Background(), GenerateInput{
		ReservationID: res.ID,
		Taxes:         &domain.TaxBreakdown{},
	})
	require.NoError(t, err)

	assert.Equal(t, "INV20260001", inv.InvoiceNumber)
	assert.Equal(t, res.GuestID, inv.GuestID)
	assert.Equal(t, 200.0, inv.RoomCharge)
	assert.Equal(t, 200.0, inv.TotalAmount)
	assert.Equal(t, 200.0, inv.BalanceAmount)
	assert.Equal(t, domain.PaymentUnpaid, inv.PaymentStatus)

	stored, err := f.svc.Get(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, inv.TotalAmount, stored.TotalAmount)
	assert.Equal(t, inv.InvoiceNumber, stored.InvoiceNumber)
}

func TestGenerate_ChargesTaxesAndDiscount(t *testing.T) {
	f := newFixture(t)
	res := f.reservation(t, 200)

	inv, err := f.svc.Generate(context.Background(), GenerateInput{
		ReservationID: res.ID,
		ServiceCharges: []domain.ServiceCharge{
			{Name: "Breakfast", Amount: 12.5, Quantity: 2},
			{Name: "Laundry", Amount: 8, Quantity: 1},
		},
		Taxes:    &domain.TaxBreakdown{GST: 18, ServiceTax: 5, Other: 1.5},
		Discount: 20,
	})
	require.NoError(t, err)
	// 200 + 33 + 24.5 - 20
	assert.Equal(t, 237.5, inv.TotalAmount)

	stored, err := f.svc.GetByReservation(context.Background(), res.ID)
	require.NoError(t, err)
	require.Len(t, stored.ServiceCharges, 2)
	assert.Equal(t, "Breakfast", stored.ServiceCharges[0].Name)
	assert.Equal(t, 18.0, stored.Taxes.Data().GST)
	assert.Equal(t, 237.5, stored.BalanceAmount)
}

func TestGenerate_DiscountIsNotClamped(t *testing.T) {
	f := newFixture(t)
	res := f.reservation(t, 100)

	inv, err := f.svc.Generate(context.Background(), GenerateInput{ReservationID: res.ID, Discount: 150})
	require.NoError(t, err)
	assert.Equal(t, -50.0, inv.TotalAmount)
	assert.Equal(t, -50.0, inv.BalanceAmount)
}

func TestGenerate_Rejections(t *testing.T) {
	f := newFixture(t)
	res := f.reservation(t, 100)
	ctx := context.Background()

	_, err := f.svc.Generate(ctx, GenerateInput{ReservationID: 4040})
	assert.ErrorIs(t, err, domain.ErrReservationNotFound)

	_, err = f.svc.Generate(ctx, GenerateInput{ReservationID: res.ID, Discount: -1})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.Generate(ctx, GenerateInput{ReservationID: res.ID, ServiceCharges: []domain.ServiceCharge{{Name: "Spa", Amount: 10, Quantity: 0}}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.Generate(ctx, GenerateInput{ReservationID: res.ID, Taxes: &domain.TaxBreakdown{GST: -3}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.Generate(ctx, GenerateInput{ReservationID: res.ID})
	require.NoError(t, err)
	_, err = f.svc.Generate(ctx, GenerateInput{ReservationID: res.ID})
	assert.ErrorIs(t, err, domain.ErrConflict)

	n, err := f.invoices.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestGenerate_ConcurrentNumbersAreUnique(t *testing.T) {
	f := newFixture(t)
	const n = 6
	resIDs := make([]int64, n)
	for i := range resIDs {
		resIDs[i] = f.reservation(t, 100).ID
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers = map[string]bool{}
	)
	for _, id := range resIDs {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			inv, err := f.svc.Generate(context.Background(), GenerateInput{ReservationID: id})
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			numbers[inv.InvoiceNumber] = true
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	assert.Len(t, numbers, n)
	for i := 1; i <= n; i++ {
		assert.True(t, numbers[domain.InvoiceNumber(2026, int64(i))])
	}
}

func TestUpdatePayment_DerivesBalanceAndStatus(t *testing.T) {
	f := newFixture(t)
	res := f.reservation(t, 200)
	ctx := context.Background()

	inv, err := f.svc.Generate(ctx, GenerateInput{ReservationID: res.ID})
	require.NoError(t, err)

	inv, err = f.svc.UpdatePayment(ctx, inv.ID, 100, domain.PaymentCard)
	require.NoError(t, err)
	assert.Equal(t, 100.0, inv.BalanceAmount)
	assert.Equal(t, domain.PaymentPartiallyPaid, inv.PaymentStatus)
	assert.Equal(t, domain.PaymentCard, inv.PaymentMethod)
	require.NotNil(t, inv.PaymentDate)

	inv, err = f.svc.UpdatePayment(ctx, inv.ID, 200, domain.PaymentCard)
	require.NoError(t, err)
	assert.Equal(t, 0.0, inv.BalanceAmount)
	assert.Equal(t, domain.PaymentPaid, inv.PaymentStatus)

	inv, err = f.svc.UpdatePayment(ctx, inv.ID, 250, domain.PaymentCash)
	require.NoError(t, err)
	assert.Equal(t, -50.0, inv.BalanceAmount)
	assert.Equal(t, domain.PaymentPaid, inv.PaymentStatus)

	inv, err = f.svc.UpdatePayment(ctx, inv.ID, 0, domain.PaymentCash)
	require.NoError(t, err)
	assert.Equal(t, 200.0, inv.BalanceAmount)
	assert.Equal(t, domain.PaymentUnpaid, inv.PaymentStatus)

	stored, err := f.svc.Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, inv.BalanceAmount, stored.BalanceAmount)
	assert.Equal(t, inv.PaymentStatus, stored.PaymentStatus)
	assert.Equal(t, 200.0, stored.TotalAmount)
}

func TestUpdatePayment_Rejections(t *testing.T) {
	f := newFixture(t)
	res := f.reservation(t, 200)
	ctx := context.Background()

	inv, err := f.svc.Generate(ctx, GenerateInput{ReservationID: res.ID})
	require.NoError(t, err)

	_, err = f.svc.UpdatePayment(ctx, inv.ID, -1, domain.PaymentCash)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.UpdatePayment(ctx, inv.ID, 10, "Barter")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.UpdatePayment(ctx, 999, 10, domain.PaymentCash)
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)

	stored, err := f.svc.Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentUnpaid, stored.PaymentStatus)
}
