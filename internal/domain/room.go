package domain

import "time"

type RoomType string

const (
	RoomSingle       RoomType = "Single"
	RoomDouble       RoomType = "Double"
	RoomSuite        RoomType = "Suite"
	RoomDeluxe       RoomType = "Deluxe"
	RoomPresidential RoomType = "Presidential"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomSingle, RoomDouble, RoomSuite, RoomDeluxe, RoomPresidential:
		return true
	}
	return false
}

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "Available"
	RoomOccupied    RoomStatus = "Occupied"
	RoomCleaning    RoomStatus = "Cleaning"
	RoomMaintenance RoomStatus = "Maintenance"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomCleaning, RoomMaintenance:
		return true
	}
	return false
}

type Room struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	Number      string     `json:"room_number" gorm:"size:16;uniqueIndex;not null"`
	Type        RoomType   `json:"room_type" gorm:"size:16;not null;index"`
	Price       float64    `json:"price" gorm:"not null"`
	Status      RoomStatus `json:"status" gorm:"size:16;not null;default:Available;index"`
	Floor       int        `json:"floor,omitempty"`
	Capacity    int        `json:"capacity,omitempty"`
	Description string     `json:"description,omitempty" gorm:"type:text"`
	IsActive    bool       `json:"is_active" gorm:"not null;default:true;index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (r *Room) Validate() error {
	if r.Number == "" {
		return Validationf("room_number is required")
	}
	if !r.Type.Valid() {
		return Validationf("unknown room type %q", r.Type)
	}
	if r.Price < 0 {
		return Validationf("price must be >= 0")
	}
	if !r.Status.Valid() {
		return Validationf("unknown room status %q", r.Status)
	}
	return nil
}

// Bookable reports whether the room itself (ignoring reservations) can take a
// new booking.
func (r *Room) Bookable() bool {
	return r.IsActive && r.Status == RoomAvailable
}
