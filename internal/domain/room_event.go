package domain

import (
	"time"

	"github.com/google/uuid"
)

type RoomEventKind string

const (
	EventReservationCheckedIn     RoomEventKind = "reservation.checked_in"
	EventReservationCheckedOut    RoomEventKind = "reservation.checked_out"
	EventReservationCancelledStay RoomEventKind = "reservation.cancelled_in_house"
	EventCleaningCompleted        RoomEventKind = "housekeeping.cleaning_completed"
)

// TargetStatus is the room status an event kind drives the room to.
func (k RoomEventKind) TargetStatus() (RoomStatus, bool) {
	switch k {
	case EventReservationCheckedIn:
		return RoomOccupied, true
	case EventReservationCheckedOut, EventReservationCancelledStay:
		return RoomCleaning, true
	case EventCleaningCompleted:
		return RoomAvailable, true
	}
	return "", false
}

// RoomEvent is an explicit notification that something happened which affects
// a room's physical status.
type RoomEvent struct {
	ID            uuid.UUID     `json:"id"`
	Kind          RoomEventKind `json:"kind"`
	RoomID        int64         `json:"room_id"`
	Status        RoomStatus    `json:"status"`
	ReservationID int64         `json:"reservation_id,omitempty"`
	TaskID        int64         `json:"task_id,omitempty"`
	At            time.Time     `json:"at"`
}

func NewRoomEvent(kind RoomEventKind, roomID int64, at time.Time) RoomEvent {
	status, _ := kind.TargetStatus()
	return RoomEvent{
		ID:     uuid.New(),
		Kind:   kind,
		RoomID: roomID,
		Status: status,
		At:     at.UTC(),
	}
}
