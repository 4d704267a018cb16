package roomstatus

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"hotelops/internal/domain"
)

// RoomStatusWriter persists a room's physical status.
type RoomStatusWriter interface {
	UpdateStatus(ctx context.Context, roomID int64, status domain.RoomStatus) error
}

// Publisher fans committed room events out to live listeners.
type Publisher interface {
	Publish(ev domain.RoomEvent)
}

// Synchronizer keeps a room's status in step with the reservation and
// housekeeping events that affect it. Apply runs inside the caller's
// transaction; Broadcast runs once that transaction has committed.
type Synchronizer struct {
	rooms     RoomStatusWriter
	publisher Publisher
	log       zerolog.Logger
}

func NewSynchronizer(rooms RoomStatusWriter, publisher Publisher, log zerolog.Logger) *Synchronizer {
	return &Synchronizer{
		rooms:     rooms,
		publisher: publisher,
		log:       log,
	}
}

// Apply writes the status implied by ev. The write is unconditional: the
// last applied event wins and replaying an event is a no-op.
func (s *Synchronizer) Apply(ctx context.Context, ev domain.RoomEvent) error {
	status, ok := ev.Kind.TargetStatus()
	if !ok {
		return fmt.Errorf("room event %q: %w", ev.Kind, domain.ErrValidation)
	}

	if err := s.rooms.UpdateStatus(ctx, ev.RoomID, status); err != nil {
		return fmt.Errorf("apply %s to room %d: %w", ev.Kind, ev.RoomID, err)
	}

	s.log.Info().
		Str("event_id", ev.ID.String()).
		Str("kind", string(ev.Kind)).
		Int64("room_id", ev.RoomID).
		Int64("reservation_id", ev.ReservationID).
		Int64("task_id", ev.TaskID).
		Str("status", string(status)).
		Msg("room status synchronized")
	return nil
}

func (s *Synchronizer) Broadcast(events ...domain.RoomEvent) {
	if s.publisher == nil {
		return
	}
	for _, ev := range events {
		s.publisher.Publish(ev)
	}
}
