package domain

import "time"

type TaskType string

const (
	TaskCleaning    TaskType = "Cleaning"
	TaskMaintenance TaskType = "Maintenance"
	TaskInspection  TaskType = "Inspection"
	TaskSetup       TaskType = "Setup"
)

func (t TaskType) Valid() bool {
	switch t {
	case TaskCleaning, TaskMaintenance, TaskInspection, TaskSetup:
		return true
	}
	return false
}

type TaskStatus string

const (
	TaskPending    TaskStatus = "Pending"
	TaskInProgress TaskStatus = "In Progress"
	TaskCompleted  TaskStatus = "Completed"
	TaskCancelled  TaskStatus = "Cancelled"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted, TaskCancelled:
		return true
	}
	return false
}

func (s TaskStatus) Terminal() bool {
	return s == TaskCompleted || s == TaskCancelled
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
	PriorityUrgent TaskPriority = "Urgent"
)

type HousekeepingTask struct {
	ID            int64        `json:"id" gorm:"primaryKey"`
	RoomID        int64        `json:"room_id" gorm:"not null;index"`
	ReservationID *int64       `json:"reservation_id,omitempty" gorm:"index"`
	Type          TaskType     `json:"task_type" gorm:"size:16;not null"`
	Status        TaskStatus   `json:"status" gorm:"size:16;not null;index"`
	Priority      TaskPriority `json:"priority" gorm:"size:16;not null;default:Medium"`
	AssignedTo    *int64       `json:"assigned_to,omitempty"`
	Notes         string       `json:"notes,omitempty" gorm:"type:text"`
	CompletedAt   *time.Time   `json:"completed_at,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (HousekeepingTask) TableName() string { return "housekeeping_tasks" }
