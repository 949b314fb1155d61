package config

import (
	"pubregistry/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the PostgreSQL connection and runs auto-migration. The
// returned handle is constructed once at startup and injected into the
// repositories; nothing else in the process opens connections.
func InitDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Person{},
		&models.Venue{},
		&models.Category{},
		&models.Publication{},
		&models.PublicationAuthor{},
		&models.PublicationCategory{},
		&models.StatusHistory{},
		&models.EditLog{},
	)
}
