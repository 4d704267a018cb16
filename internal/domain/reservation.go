package domain

import (
	"math"
	"time"
)

type ReservationStatus string

const (
	ReservationPending    ReservationStatus = "Pending"
	ReservationConfirmed  ReservationStatus = "Confirmed"
	ReservationCheckedIn  ReservationStatus = "CheckedIn"
	ReservationCheckedOut ReservationStatus = "CheckedOut"
	ReservationCancelled  ReservationStatus = "Cancelled"
)

// ActiveStatuses are the statuses that block a room for their date range.
var ActiveStatuses = []ReservationStatus{ReservationConfirmed, ReservationCheckedIn}

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCheckedIn, ReservationCheckedOut, ReservationCancelled:
		return true
	}
	return false
}

func (s ReservationStatus) Terminal() bool {
	return s == ReservationCheckedOut || s == ReservationCancelled
}

func (s ReservationStatus) Active() bool {
	return s == ReservationConfirmed || s == ReservationCheckedIn
}

var transitions = map[ReservationStatus][]ReservationStatus{
	ReservationPending:   {ReservationConfirmed, ReservationCancelled},
	ReservationConfirmed: {ReservationCheckedIn, ReservationCancelled},
	ReservationCheckedIn: {ReservationCheckedOut, ReservationCancelled},
}

func CanTransition(from, to ReservationStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Reservation struct {
	ID             int64             `json:"id" gorm:"primaryKey"`
	GuestID        int64             `json:"guest_id" gorm:"not null;index"`
	RoomID         int64             `json:"room_id" gorm:"not null;index:idx_reservations_room_dates"`
	CheckIn        time.Time         `json:"check_in" gorm:"not null;index:idx_reservations_room_dates"`
	CheckOut       time.Time         `json:"check_out" gorm:"not null;index:idx_reservations_room_dates"`
	Adults         int               `json:"adults" gorm:"not null;default:1"`
	Children       int               `json:"children" gorm:"not null;default:0"`
	TotalAmount    float64           `json:"total_amount" gorm:"not null"`
	AdvancePayment float64           `json:"advance_payment" gorm:"not null;default:0"`
	Status         ReservationStatus `json:"booking_status" gorm:"size:16;not null;index"`

	SpecialRequests string `json:"special_requests,omitempty" gorm:"type:text"`
	CreatedBy       int64  `json:"created_by,omitempty"`

	CancelledBy        *int64     `json:"cancelled_by,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}

func (r *Reservation) Range() DateRange {
	return DateRange{CheckIn: r.CheckIn, CheckOut: r.CheckOut}
}

func (r *Reservation) Nights() int {
	return r.Range().Nights()
}

// Validate checks the invariants that do not need storage access.
func (r *Reservation) Validate() error {
	if err := r.Range().Validate(); err != nil {
		return err
	}
	if r.Adults < 1 {
		return Validationf("adults must be >= 1")
	}
	if r.Children < 0 {
		return Validationf("children must be >= 0")
	}
	if r.TotalAmount < 0 {
		return Validationf("total_amount must be >= 0")
	}
	if r.AdvancePayment < 0 {
		return Validationf("advance_payment must be >= 0")
	}
	if !r.Status.Valid() {
		return Validationf("unknown booking status %q", r.Status)
	}
	return nil
}

// StayCharge prices a stay at a nightly rate.
func StayCharge(nights int, price float64) float64 {
	return RoundMoney(float64(nights) * price)
}

func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
