package db

import (
	"tradejournal/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.Account{},
		&models.Trade{},
		&models.Withdrawal{},
		&models.EquitySnapshot{},
		&models.SyncCheckpoint{},
	)
}
