package housekeeping

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"hotelops/internal/domain"
	"hotelops/internal/pkg/lock"
)

// CreateInput describes a new task. Priority defaults to Medium.
type CreateInput struct {
	RoomID        int64
	ReservationID *int64
	Type          domain.TaskType
	Priority      domain.TaskPriority
	AssignedTo    *int64
	Notes         string
}

type Service struct {
	tasks  TaskRepository
	rooms  RoomRepository
	tx     TxManager
	locker Locker
	sync   RoomSynchronizer
	log    zerolog.Logger
	now    func() time.Time
}

func NewService(
	tasks TaskRepository,
	rooms RoomRepository,
	tx TxManager,
	locker Locker,
	sync RoomSynchronizer,
	log zerolog.Logger,
) *Service {
	return &Service{
		tasks:  tasks,
		rooms:  rooms,
		tx:     tx,
		locker: locker,
		sync:   sync,
		log:    log,
		now:    time.Now,
	}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.HousekeepingTask, error) {
	if !in.Type.Valid() {
		return nil, domain.Validationf("unknown task type %q", in.Type)
	}
	if in.Priority == "" {
		in.Priority = domain.PriorityMedium
	}
	if !validPriority(in.Priority) {
		return nil, domain.Validationf("unknown task priority %q", in.Priority)
	}
	if _, err := s.rooms.GetByID(ctx, in.RoomID); err != nil {
		return nil, err
	}

	task := &domain.HousekeepingTask{
		RoomID:        in.RoomID,
		ReservationID: in.ReservationID,
		Type:          in.Type,
		Status:        domain.TaskPending,
		Priority:      in.Priority,
		AssignedTo:    in.AssignedTo,
		Notes:         in.Notes,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// ScheduleCleaning queues a Pending cleaning task for a room a guest has just
// left. It joins the caller's transaction when ctx carries one.
func (s *Service) ScheduleCleaning(ctx context.Context, roomID, reservationID int64) (*domain.HousekeepingTask, error) {
	task := &domain.HousekeepingTask{
		RoomID:        roomID,
		ReservationID: &reservationID,
		Type:          domain.TaskCleaning,
		Status:        domain.TaskPending,
		Priority:      domain.PriorityHigh,
		Notes:         "Post check-out cleaning",
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("schedule cleaning: %w", err)
	}
	return task, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.HousekeepingTask, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *Service) ListByRoom(ctx context.Context, roomID int64) ([]domain.HousekeepingTask, error) {
	return s.tasks.ListByRoom(ctx, roomID)
}

// UpdateStatus moves a task along its lifecycle. A Cleaning task reaching
// Completed makes its room Available again in the same transaction.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus, notes string) (*domain.HousekeepingTask, error) {
	if !status.Valid() {
		return nil, domain.Validationf("unknown task status %q", status)
	}

	current, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, lock.RoomKey(current.RoomID))
	if err != nil {
		return nil, fmt.Errorf("lock room %d: %w: %w", current.RoomID, domain.ErrConflict, err)
	}
	defer unlock()

	var (
		task   *domain.HousekeepingTask
		events []domain.RoomEvent
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		t, err := s.tasks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !canMoveTask(t.Status, status) {
			return fmt.Errorf("task %d %s -> %s: %w", t.ID, t.Status, status, domain.ErrInvalidTransition)
		}

		from := t.Status
		now := s.now().UTC()
		t.Status = status
		if notes != "" {
			t.Notes = notes
		}
		if status == domain.TaskCompleted {
			t.CompletedAt = &now
		}
		if err := s.tasks.Save(ctx, t); err != nil {
			return fmt.Errorf("save task: %w", err)
		}

		if status == domain.TaskCompleted && t.Type == domain.TaskCleaning {
			ev := domain.NewRoomEvent(domain.EventCleaningCompleted, t.RoomID, now)
			ev.TaskID = t.ID
			if err := s.sync.Apply(ctx, ev); err != nil {
				return err
			}
			events = append(events, ev)
		}

		s.log.Info().
			Int64("task_id", t.ID).
			Int64("room_id", t.RoomID).
			Str("from", string(from)).
			Str("to", string(status)).
			Msg("housekeeping task updated")
		task = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.sync.Broadcast(events...)
	return task, nil
}

func canMoveTask(from, to domain.TaskStatus) bool {
	if from.Terminal() || from == to {
		return false
	}
	// work that has started is not put back in the queue
	return !(from == domain.TaskInProgress && to == domain.TaskPending)
}

func validPriority(p domain.TaskPriority) bool {
	switch p {
	case domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh, domain.PriorityUrgent:
		return true
	}
	return false
}
