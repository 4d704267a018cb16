package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"hotelops/internal/domain"
	"hotelops/internal/pkg/lock"
	"hotelops/internal/pkg/validator"
)

type GenerateInput struct {
	ReservationID  int64
	ServiceCharges []domain.ServiceCharge
	Taxes          *domain.TaxBreakdown
	Discount       float64
	Notes          string
}

type Service struct {
	invoices     InvoiceRepository
	reservations ReservationRepository
	tx           TxManager
	locker       Locker
	log          zerolog.Logger
	now          func() time.Time
}

func NewService(
	invoices InvoiceRepository,
	reservations ReservationRepository,
	tx TxManager,
	locker Locker,
	log zerolog.Logger,
) *Service {
	return &Service{
		invoices:     invoices,
		reservations: reservations,
		tx:           tx,
		locker:       locker,
		log:          log,
		now:          time.Now,
	}
}

// Generate bills a reservation. The room charge is the reservation's total;
// numbering counts existing invoices under the invoice-number lock and inside
// the insert transaction, and the unique index on the number catches any
// writer that bypasses the lock.
func (s *Service) Generate(ctx context.Context, in GenerateInput) (*domain.Invoice, error) {
	if in.Discount < 0 {
		return nil, domain.Validationf("discount must be >= 0")
	}
	for i := range in.ServiceCharges {
		if err := validator.Check(in.ServiceCharges[i]); err != nil {
			return nil, fmt.Errorf("service charge %d: %w", i, err)
		}
	}
	taxes := domain.TaxBreakdown{}
	if in.Taxes != nil {
		if err := validator.Check(*in.Taxes); err != nil {
			return nil, fmt.Errorf("taxes: %w", err)
		}
		taxes = *in.Taxes
	}

	unlock, err := s.locker.Lock(ctx, lock.InvoiceNumberKey)
	if err != nil {
		return nil, fmt.Errorf("lock invoice numbering: %w: %w", domain.ErrConflict, err)
	}
	defer unlock()

	var inv *domain.Invoice
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		res, err := s.reservations.GetByID(ctx, in.ReservationID)
		if err != nil {
			return err
		}

		existing, err := s.invoices.GetByReservationID(ctx, res.ID)
		switch {
		case err == nil:
			return fmt.Errorf("reservation %d already billed as %s: %w", res.ID, existing.InvoiceNumber, domain.ErrInvoiceExists)
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}

		n, err := s.invoices.Count(ctx)
		if err != nil {
			return fmt.Errorf("count invoices: %w", err)
		}

		inv = &domain.Invoice{
			InvoiceNumber:  domain.InvoiceNumber(s.now().Year(), n+1),
			ReservationID:  res.ID,
			GuestID:        res.GuestID,
			RoomCharge:     res.TotalAmount,
			ServiceCharges: datatypes.JSONSlice[domain.ServiceCharge](in.ServiceCharges),
			Taxes:          datatypes.NewJSONType(taxes),
			Discount:       in.Discount,
			Notes:          in.Notes,
		}
		if inv.ServiceCharges == nil {
			inv.ServiceCharges = datatypes.JSONSlice[domain.ServiceCharge]{}
		}
		inv.Recompute()

		if err := s.invoices.Create(ctx, inv); err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("invoice_id", inv.ID).
		Str("invoice_number", inv.InvoiceNumber).
		Int64("reservation_id", inv.ReservationID).
		Float64("total_amount", inv.TotalAmount).
		Msg("invoice generated")
	return inv, nil
}

// UpdatePayment records the cumulative amount paid so far. Paying more than
// the total is accepted: the invoice is Paid and the balance goes negative.
func (s *Service) UpdatePayment(ctx context.Context, id int64, amountPaid float64, method domain.PaymentMethod) (*domain.Invoice, error) {
	if amountPaid < 0 {
		return nil, domain.Validationf("amount_paid must be >= 0")
	}
	if !method.Valid() {
		return nil, domain.Validationf("unknown payment method %q", method)
	}

	var inv *domain.Invoice
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.invoices.GetByID(ctx, id)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		current.AmountPaid = domain.RoundMoney(amountPaid)
		current.PaymentMethod = method
		current.PaymentDate = &now
		current.Recompute()

		if err := s.invoices.Save(ctx, current); err != nil {
			return fmt.Errorf("save invoice: %w", err)
		}
		inv = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	ev := s.log.Info()
	if inv.BalanceAmount < 0 {
		ev = s.log.Warn()
	}
	ev.Int64("invoice_id", inv.ID).
		Float64("amount_paid", inv.AmountPaid).
		Float64("balance_amount", inv.BalanceAmount).
		Str("payment_status", string(inv.PaymentStatus)).
		Msg("invoice payment updated")
	return inv, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Invoice, error) {
	return s.invoices.GetByID(ctx, id)
}

func (s *Service) GetByReservation(ctx context.Context, reservationID int64) (*domain.Invoice, error) {
	return s.invoices.GetByReservationID(ctx, reservationID)
}
