package reservation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"hotelops/internal/domain"
	"hotelops/internal/pkg/lock"
)

type CreateInput struct {
	GuestID  int64
	RoomID   int64
	CheckIn  time.Time
	CheckOut time.Time
	Adults   int
	Children int
	// TotalAmount is taken as given; nil prices the stay at the room rate.
	TotalAmount     *float64
	AdvancePayment  float64
	Status          domain.ReservationStatus
	SpecialRequests string
	CreatedBy       int64
}

// UpdateInput carries the mutable reservation fields; nil leaves a field as is.
type UpdateInput struct {
	RoomID          *int64
	CheckIn         *time.Time
	CheckOut        *time.Time
	Adults          *int
	Children        *int
	AdvancePayment  *float64
	SpecialRequests *string
}

type Service struct {
	reservations ReservationRepository
	rooms        RoomRepository
	availability AvailabilityChecker
	tx           TxManager
	locker       Locker
	sync         RoomSynchronizer
	cleaning     CleaningScheduler
	log          zerolog.Logger
	now          func() time.Time
}

func NewService(
	reservations ReservationRepository,
	rooms RoomRepository,
	availability AvailabilityChecker,
	tx TxManager,
	locker Locker,
	sync RoomSynchronizer,
	cleaning CleaningScheduler,
	log zerolog.Logger,
) *Service {
	return &Service{
		reservations: reservations,
		rooms:        rooms,
		availability: availability,
		tx:           tx,
		locker:       locker,
		sync:         sync,
		cleaning:     cleaning,
		log:          log,
		now:          time.Now,
	}
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.reservations.GetByID(ctx, id)
}

// Create books a room for a guest. The availability check and the insert
// happen under the room lock and in one transaction, so two concurrent
// requests for the same room and dates cannot both succeed.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Reservation, error) {
	if in.Status == "" {
		in.Status = domain.ReservationPending
	}
	if in.Status != domain.ReservationPending && in.Status != domain.ReservationConfirmed {
		return nil, domain.Validationf("new reservations start as Pending or Confirmed, got %q", in.Status)
	}

	res := &domain.Reservation{
		GuestID:         in.GuestID,
		RoomID:          in.RoomID,
		CheckIn:         domain.TruncateDay(in.CheckIn),
		CheckOut:        domain.TruncateDay(in.CheckOut),
		Adults:          in.Adults,
		Children:        in.Children,
		AdvancePayment:  in.AdvancePayment,
		Status:          in.Status,
		SpecialRequests: in.SpecialRequests,
		CreatedBy:       in.CreatedBy,
	}
	if in.TotalAmount != nil {
		res.TotalAmount = *in.TotalAmount
	}
	if in.GuestID <= 0 {
		return nil, domain.Validationf("guest_id is required")
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}

	unlock, err := s.lockRooms(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		room, err := s.rooms.GetByIDForUpdate(ctx, in.RoomID)
		if err != nil {
			return err
		}

		ok, err := s.availability.IsRoomAvailable(ctx, room, res.Range(), 0)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("room %d for %s..%s: %w", room.ID,
				res.CheckIn.Format(domain.DateLayout), res.CheckOut.Format(domain.DateLayout), domain.ErrRoomUnavailable)
		}

		if in.TotalAmount == nil {
			res.TotalAmount = domain.StayCharge(res.Nights(), room.Price)
		}
		if err := s.reservations.Create(ctx, res); err != nil {
			return fmt.Errorf("create reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("reservation_id", res.ID).
		Int64("room_id", res.RoomID).
		Int64("guest_id", res.GuestID).
		Str("status", string(res.Status)).
		Int("nights", res.Nights()).
		Msg("reservation created")
	return res, nil
}

// Confirm moves a Pending reservation to Confirmed, from which point it
// holds the room.
func (s *Service) Confirm(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.transition(ctx, id, domain.ReservationConfirmed, func(ctx context.Context, res *domain.Reservation) ([]domain.RoomEvent, error) {
		collides, err := s.availability.HasCollision(ctx, res.RoomID, res.Range(), res.ID)
		if err != nil {
			return nil, err
		}
		if collides {
			return nil, fmt.Errorf("room %d: %w", res.RoomID, domain.ErrRoomUnavailable)
		}
		return nil, nil
	})
}

func (s *Service) CheckIn(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.transition(ctx, id, domain.ReservationCheckedIn, func(ctx context.Context, res *domain.Reservation) ([]domain.RoomEvent, error) {
		return s.emit(ctx, domain.EventReservationCheckedIn, res)
	})
}

func (s *Service) CheckOut(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.transition(ctx, id, domain.ReservationCheckedOut, func(ctx context.Context, res *domain.Reservation) ([]domain.RoomEvent, error) {
		return s.vacate(ctx, domain.EventReservationCheckedOut, res)
	})
}

// Cancel ends a reservation that has not finished yet. Cancelling a guest
// who is already in the room hands the room to housekeeping.
func (s *Service) Cancel(ctx context.Context, id, actorID int64, reason string) (*domain.Reservation, error) {
	return s.transition(ctx, id, domain.ReservationCancelled, func(ctx context.Context, res *domain.Reservation) ([]domain.RoomEvent, error) {
		now := s.now().UTC()
		res.CancelledAt = &now
		res.CancellationReason = reason
		if actorID > 0 {
			res.CancelledBy = &actorID
		}
		// res.Status is still the pre-transition status here
		if res.Status == domain.ReservationCheckedIn {
			return s.vacate(ctx, domain.EventReservationCancelledStay, res)
		}
		return nil, nil
	})
}

// Update changes dates, room, occupants or notes of a non-terminal
// reservation. New dates or a new room are checked against the room's other
// active reservations.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*domain.Reservation, error) {
	current, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	roomIDs := []int64{current.RoomID}
	if in.RoomID != nil {
		roomIDs = append(roomIDs, *in.RoomID)
	}
	unlock, err := s.lockRooms(ctx, roomIDs...)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var res *domain.Reservation
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		r, err := s.reservations.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if r.RoomID != current.RoomID {
			return fmt.Errorf("reservation %d moved while waiting for lock: %w", id, domain.ErrConflict)
		}
		if r.Status.Terminal() {
			return fmt.Errorf("update %s reservation %d: %w", r.Status, r.ID, domain.ErrInvalidTransition)
		}

		before := r.Range()
		roomChanged := in.RoomID != nil && *in.RoomID != r.RoomID
		if roomChanged && r.Status == domain.ReservationCheckedIn {
			return fmt.Errorf("move checked-in reservation %d: %w", r.ID, domain.ErrInvalidTransition)
		}

		applyUpdate(r, in)
		if err := r.Validate(); err != nil {
			return err
		}

		switch {
		case roomChanged:
			room, err := s.rooms.GetByIDForUpdate(ctx, r.RoomID)
			if err != nil {
				return err
			}
			ok, err := s.availability.IsRoomAvailable(ctx, room, r.Range(), r.ID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("room %d: %w", room.ID, domain.ErrRoomUnavailable)
			}
		case !before.Equal(r.Range()):
			collides, err := s.availability.HasCollision(ctx, r.RoomID, r.Range(), r.ID)
			if err != nil {
				return err
			}
			if collides {
				return fmt.Errorf("room %d: %w", r.RoomID, domain.ErrRoomUnavailable)
			}
		}

		if err := s.reservations.Save(ctx, r); err != nil {
			return fmt.Errorf("save reservation: %w", err)
		}
		res = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("reservation_id", res.ID).Int64("room_id", res.RoomID).Msg("reservation updated")
	return res, nil
}

func applyUpdate(r *domain.Reservation, in UpdateInput) {
	if in.RoomID != nil {
		r.RoomID = *in.RoomID
	}
	if in.CheckIn != nil {
		r.CheckIn = domain.TruncateDay(*in.CheckIn)
	}
	if in.CheckOut != nil {
		r.CheckOut = domain.TruncateDay(*in.CheckOut)
	}
	if in.Adults != nil {
		r.Adults = *in.Adults
	}
	if in.Children != nil {
		r.Children = *in.Children
	}
	if in.AdvancePayment != nil {
		r.AdvancePayment = *in.AdvancePayment
	}
	if in.SpecialRequests != nil {
		r.SpecialRequests = *in.SpecialRequests
	}
}

type transitionHook func(ctx context.Context, res *domain.Reservation) ([]domain.RoomEvent, error)

// transition runs one state machine step: lock the room, re-read the
// reservation inside a transaction, check the edge, run the hook with the
// reservation still in its old status, then persist. Room events returned by
// the hook are broadcast after commit.
func (s *Service) transition(ctx context.Context, id int64, to domain.ReservationStatus, hook transitionHook) (*domain.Reservation, error) {
	current, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(current.Status, to) {
		return nil, fmt.Errorf("reservation %d %s -> %s: %w", id, current.Status, to, domain.ErrInvalidTransition)
	}

	unlock, err := s.lockRooms(ctx, current.RoomID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var (
		res    *domain.Reservation
		events []domain.RoomEvent
		from   domain.ReservationStatus
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		r, err := s.reservations.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if r.RoomID != current.RoomID {
			return fmt.Errorf("reservation %d moved while waiting for lock: %w", id, domain.ErrConflict)
		}
		from = r.Status
		if !domain.CanTransition(from, to) {
			return fmt.Errorf("reservation %d %s -> %s: %w", id, from, to, domain.ErrInvalidTransition)
		}

		if hook != nil {
			events, err = hook(ctx, r)
			if err != nil {
				return err
			}
		}

		r.Status = to
		if err := s.reservations.Save(ctx, r); err != nil {
			return fmt.Errorf("save reservation: %w", err)
		}
		res = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.sync.Broadcast(events...)
	s.log.Info().
		Int64("reservation_id", res.ID).
		Int64("room_id", res.RoomID).
		Str("from", string(from)).
		Str("to", string(to)).
		Msg("reservation transitioned")
	return res, nil
}

func (s *Service) emit(ctx context.Context, kind domain.RoomEventKind, res *domain.Reservation) ([]domain.RoomEvent, error) {
	ev := domain.NewRoomEvent(kind, res.RoomID, s.now())
	ev.ReservationID = res.ID
	if err := s.sync.Apply(ctx, ev); err != nil {
		return nil, err
	}
	return []domain.RoomEvent{ev}, nil
}

// vacate hands a room the guest has left to housekeeping: the room goes to
// Cleaning and a cleaning task is queued in the same transaction.
func (s *Service) vacate(ctx context.Context, kind domain.RoomEventKind, res *domain.Reservation) ([]domain.RoomEvent, error) {
	events, err := s.emit(ctx, kind, res)
	if err != nil {
		return nil, err
	}
	if s.cleaning != nil {
		task, err := s.cleaning.ScheduleCleaning(ctx, res.RoomID, res.ID)
		if err != nil {
			return nil, err
		}
		s.log.Debug().Int64("task_id", task.ID).Int64("room_id", res.RoomID).Msg("cleaning scheduled")
	}
	return events, nil
}

// lockRooms takes the room locks in ascending id order so two updates that
// swap rooms cannot deadlock.
func (s *Service) lockRooms(ctx context.Context, roomIDs ...int64) (func(), error) {
	ids := append([]int64(nil), roomIDs...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var unlocks []func()
	release := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}

	for i, id := range ids {
		if i > 0 && ids[i-1] == id {
			continue
		}
		unlock, err := s.locker.Lock(ctx, lock.RoomKey(id))
		if err != nil {
			release()
			return nil, fmt.Errorf("lock room %d: %w: %w", id, domain.ErrConflict, err)
		}
		unlocks = append(unlocks, unlock)
	}
	return release, nil
}
