package repository

import (
	"context"

	"gorm.io/gorm"

	"hotelops/internal/domain"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.HousekeepingTask) error {
	return translate(conn(ctx, r.db).Create(task).Error, domain.ErrTaskNotFound)
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.HousekeepingTask, error) {
	var task domain.HousekeepingTask
	if err := conn(ctx, r.db).First(&task, id).Error; err != nil {
		return nil, translate(err, domain.ErrTaskNotFound)
	}
	return &task, nil
}

func (r *TaskRepository) Save(ctx context.Context, task *domain.HousekeepingTask) error {
	return translate(conn(ctx, r.db).Save(task).Error, domain.ErrTaskNotFound)
}

func (r *TaskRepository) ListByRoom(ctx context.Context, roomID int64) ([]domain.HousekeepingTask, error) {
	var tasks []domain.HousekeepingTask
	err := conn(ctx, r.db).
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}
