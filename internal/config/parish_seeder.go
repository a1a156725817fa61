package config

import (
	"fmt"
	"log"

	"parishcare/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// SeedParishData seeds initial parish data
func SeedParishData(db *gorm.DB, cfg *Config) error {
	if err := seedMassSchedules(db); err != nil {
		return err
	}
	if err := seedMortuaryGrid(db, cfg.Mortuary.DefaultRows, cfg.Mortuary.DefaultCols); err != nil {
		return err
	}
	log.Println("✅ Parish data seeded successfully")
	return nil
}

func seedMassSchedules(db *gorm.DB) error {
	celebrant := "Parish Priest"

	schedules := []models.MassSchedule{
		{DayOfWeek: 0, StartTime: "06:30", Language: "English", Celebrant: celebrant, Location: "Main Church", IsActive: true},
		{DayOfWeek: 0, StartTime: "09:00", Language: "English", Celebrant: celebrant, Location: "Main Church", IsActive: true},
		{DayOfWeek: 0, StartTime: "17:00", Language: "English", Celebrant: celebrant, Location: "Main Church", IsActive: true},
		{DayOfWeek: 3, StartTime: "18:00", Language: "English", Celebrant: celebrant, Location: "Adoration Chapel", IsActive: true},
		{DayOfWeek: 6, StartTime: "18:00", Language: "English", Celebrant: celebrant, Location: "Main Church", IsActive: true},
	}

	for _, ms := range schedules {
		var existing models.MassSchedule
		if err := db.Where("day_of_week = ? AND start_time = ?", ms.DayOfWeek, ms.StartTime).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&ms).Error; err != nil {
					return err
				}
				log.Printf("   Created mass_schedule: day %d %s", ms.DayOfWeek, ms.StartTime)
			}
		}
	}
	return nil
}

// seedMortuaryGrid creates the default columbarium grid when the table is empty.
// Rack IDs follow the row-letter + column-number convention (A1, A2, ... B1, ...).
func seedMortuaryGrid(db *gorm.DB, rows, cols int) error {
	var count int64
	db.Model(&models.MortuaryRack{}).Count(&count)
	if count > 0 {
		return nil // Grid already initialized
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			rack := models.MortuaryRack{
				ID:          fmt.Sprintf("%c%d", 'A'+r, c+1),
				Status:      "available",
				PositionRow: r,
				PositionCol: c,
			}
			if err := db.Create(&rack).Error; err != nil {
				return err
			}
		}
	}

	log.Printf("   Created mortuary grid: %d rows x %d columns", rows, cols)
	return nil
}
