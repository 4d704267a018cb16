package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotelops/internal/domain"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	err := conn(ctx, r.db).Omit(clause.Associations).Create(res).Error
	return translate(err, domain.ErrReservationNotFound)
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var res domain.Reservation
	if err := conn(ctx, r.db).First(&res, id).Error; err != nil {
		return nil, translate(err, domain.ErrReservationNotFound)
	}
	return &res, nil
}

func (r *ReservationRepository) Save(ctx context.Context, res *domain.Reservation) error {
	err := conn(ctx, r.db).Omit(clause.Associations).Save(res).Error
	return translate(err, domain.ErrReservationNotFound)
}

// FindOverlapping returns reservations on roomID in one of statuses whose
// range collides with rng under policy. excludeID > 0 leaves that
// reservation out.
func (r *ReservationRepository) FindOverlapping(
	ctx context.Context,
	roomID int64,
	rng domain.DateRange,
	statuses []domain.ReservationStatus,
	policy domain.OverlapPolicy,
	excludeID int64,
) ([]domain.Reservation, error) {
	q := overlapping(conn(ctx, r.db).Model(&domain.Reservation{}), rng, statuses, policy).
		Where("room_id = ?", roomID)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var out []domain.Reservation
	if err := q.Order("check_in ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindBusyRoomIDs returns the distinct rooms that have a colliding
// reservation in one of statuses.
func (r *ReservationRepository) FindBusyRoomIDs(
	ctx context.Context,
	rng domain.DateRange,
	statuses []domain.ReservationStatus,
	policy domain.OverlapPolicy,
) ([]int64, error) {
	var ids []int64
	err := overlapping(conn(ctx, r.db).Model(&domain.Reservation{}), rng, statuses, policy).
		Distinct().
		Pluck("room_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func overlapping(q *gorm.DB, rng domain.DateRange, statuses []domain.ReservationStatus, policy domain.OverlapPolicy) *gorm.DB {
	q = q.Where("status IN ?", statuses)
	if policy == domain.OverlapExclusive {
		return q.Where("check_in < ? AND check_out > ?", rng.CheckOut, rng.CheckIn)
	}
	return q.Where("check_in <= ? AND check_out >= ?", rng.CheckOut, rng.CheckIn)
}
