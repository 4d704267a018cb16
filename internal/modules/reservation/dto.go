package reservation

type CreateReservationRequest struct {
	GuestID         int64    `json:"guest_id" binding:"omitempty,gt=0"`
	RoomID          int64    `json:"room_id" binding:"required,gt=0"`
	CheckIn         string   `json:"check_in" binding:"required"`
	CheckOut        string   `json:"check_out" binding:"required"`
	Adults          int      `json:"adults" binding:"required,gte=1"`
	Children        int      `json:"children" binding:"gte=0"`
	TotalAmount     *float64 `json:"total_amount" binding:"omitempty,gte=0"`
	AdvancePayment  float64  `json:"advance_payment" binding:"gte=0"`
	Status          string   `json:"booking_status" binding:"omitempty,oneof=Pending Confirmed"`
	SpecialRequests string   `json:"special_requests" binding:"max=2000"`
}

type UpdateReservationRequest struct {
	RoomID          *int64   `json:"room_id" binding:"omitempty,gt=0"`
	CheckIn         *string  `json:"check_in"`
	CheckOut        *string  `json:"check_out"`
	Adults          *int     `json:"adults" binding:"omitempty,gte=1"`
	Children        *int     `json:"children" binding:"omitempty,gte=0"`
	AdvancePayment  *float64 `json:"advance_payment" binding:"omitempty,gte=0"`
	SpecialRequests *string  `json:"special_requests" binding:"omitempty,max=2000"`
}

type CancelReservationRequest struct {
	Reason string `json:"reason" binding:"max=1000"`
}
