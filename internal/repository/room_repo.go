package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotelops/internal/domain"
)

type RoomFilters struct {
	Status   domain.RoomStatus
	Type     domain.RoomType
	IsActive *bool
}

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	db := conn(ctx, r.db)
	if err := db.Create(room).Error; err != nil {
		return translate(err, domain.ErrRoomNotFound)
	}
	// is_active defaults to true, so an inactive room needs an explicit write.
	if !room.IsActive {
		return translate(db.Model(room).Update("is_active", false).Error, domain.ErrRoomNotFound)
	}
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	if err := conn(ctx, r.db).First(&room, id).Error; err != nil {
		return nil, translate(err, domain.ErrRoomNotFound)
	}
	return &room, nil
}

// GetByIDForUpdate locks the room row until the surrounding transaction ends.
// SQLite ignores the locking clause.
func (r *RoomRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, id).Error
	if err != nil {
		return nil, translate(err, domain.ErrRoomNotFound)
	}
	return &room, nil
}

// FindBookable returns active rooms whose status is Available, optionally of
// one type.
func (r *RoomRepository) FindBookable(ctx context.Context, roomType *domain.RoomType) ([]domain.Room, error) {
	active := true
	f := RoomFilters{Status: domain.RoomAvailable, IsActive: &active}
	if roomType != nil {
		f.Type = *roomType
	}
	return r.List(ctx, f)
}

func (r *RoomRepository) List(ctx context.Context, f RoomFilters) ([]domain.Room, error) {
	q := conn(ctx, r.db).Model(&domain.Room{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}

	var rooms []domain.Room
	if err := q.Order("price ASC, id ASC").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *RoomRepository) UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error {
	tx := conn(ctx, r.db).
		Model(&domain.Room{}).
		Where("id = ?", id).
		Update("status", status)
	if tx.Error != nil {
		return translate(tx.Error, domain.ErrRoomNotFound)
	}
	if tx.RowsAffected == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}
