package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"hotelops/internal/domain"
)

const (
	constraintInclusive = "reservations_no_overlap_incl"
	constraintExclusive = "reservations_no_overlap_excl"
)

// Models lists every table owned by the engine, parents first.
func Models() []any {
	return []any{
		&domain.Room{},
		&domain.Reservation{},
		&domain.Invoice{},
		&domain.HousekeepingTask{},
	}
}

func Migrate(db *gorm.DB, policy domain.OverlapPolicy) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	if db.Dialector.Name() == "postgres" {
		if err := ensureNoOverlapConstraint(db, policy); err != nil {
			return fmt.Errorf("overlap constraint: %w", err)
		}
	}
	return nil
}

// ensureNoOverlapConstraint installs a GiST exclusion constraint so Postgres
// itself rejects two active reservations on one room with colliding dates.
func ensureNoOverlapConstraint(db *gorm.DB, policy domain.OverlapPolicy) error {
	want, drop, bounds := constraintInclusive, constraintExclusive, "[]"
	if policy == domain.OverlapExclusive {
		want, drop, bounds = constraintExclusive, constraintInclusive, "[)"
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return err
	}
	if err := db.Exec(fmt.Sprintf("ALTER TABLE reservations DROP CONSTRAINT IF EXISTS %s", drop)).Error; err != nil {
		return err
	}

	var exists int64
	if err := db.Raw("SELECT COUNT(1) FROM pg_constraint WHERE conname = ?", want).Scan(&exists).Error; err != nil {
		return err
	}
	if exists > 0 {
		return nil
	}

	stmt := fmt.Sprintf(`
ALTER TABLE reservations
  ADD CONSTRAINT %s
  EXCLUDE USING gist (
    room_id WITH =,
    tstzrange(check_in, check_out, '%s') WITH &&
  )
  WHERE (status IN ('%s', '%s'))
`, want, bounds, domain.ReservationConfirmed, domain.ReservationCheckedIn)

	if err := db.Exec(stmt).Error; err != nil {
		return err
	}
	log.Info().Str("constraint", want).Msg("reservation overlap constraint installed")
	return nil
}
