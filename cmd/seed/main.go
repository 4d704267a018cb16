package main

import (
	"flag"
	"fmt"

	"gorm.io/gorm/clause"

	"hotelops/internal/config"
	"hotelops/internal/database"
	"hotelops/internal/domain"
	"hotelops/internal/pkg/logger"
)

type floorPlan struct {
	roomType domain.RoomType
	price    float64
	capacity int
	count    int
}

// One floor per room type, numbered <floor>01, <floor>02, ...
var plan = []floorPlan{
	{domain.RoomSingle, 60, 1, 8},
	{domain.RoomDouble, 95, 2, 10},
	{domain.RoomDeluxe, 150, 3, 6},
	{domain.RoomSuite, 240, 4, 4},
	{domain.RoomPresidential, 900, 6, 1},
}

func main() {
	reset := flag.Bool("reset", false, "delete reservations, invoices, tasks and rooms before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", true)
		boot.Fatal().Err(err).Msg("config")
	}
	log := logger.New(cfg.LogLevel, true)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect")
	}
	if err := database.Migrate(db, cfg.OverlapPolicy()); err != nil {
		log.Fatal().Err(err).Msg("database migrate")
	}

	if *reset {
		log.Warn().Msg("cleaning old data")
		for _, table := range []string{"invoices", "housekeeping_tasks", "reservations", "rooms"} {
			if err := db.Exec("DELETE FROM " + table).Error; err != nil {
				log.Fatal().Err(err).Str("table", table).Msg("cleanup")
			}
		}
	}

	var rooms []domain.Room
	for i, f := range plan {
		floor := i + 1
		for n := 1; n <= f.count; n++ {
			rooms = append(rooms, domain.Room{
				Number:      fmt.Sprintf("%d%02d", floor, n),
				Type:        f.roomType,
				Price:       f.price,
				Status:      domain.RoomAvailable,
				Floor:       floor,
				Capacity:    f.capacity,
				Description: fmt.Sprintf("%s room, floor %d", f.roomType, floor),
				IsActive:    true,
			})
		}
	}

	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "number"}},
		DoNothing: true,
	}).CreateInBatches(&rooms, 50)
	if res.Error != nil {
		log.Fatal().Err(res.Error).Msg("seed rooms")
	}

	log.Info().
		Int("planned", len(rooms)).
		Int64("inserted", res.RowsAffected).
		Msg("room inventory seeded")
}
