package housekeeping

type CreateTaskRequest struct {
	RoomID        int64  `json:"room_id" binding:"required,gt=0"`
	ReservationID *int64 `json:"reservation_id" binding:"omitempty,gt=0"`
	TaskType      string `json:"task_type" binding:"required"`
	Priority      string `json:"priority"`
	AssignedTo    *int64 `json:"assigned_to" binding:"omitempty,gt=0"`
	Notes         string `json:"notes" binding:"max=2000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes" binding:"max=2000"`
}
