package db

import (
	"fmt"

	"github.com/linskybing/programhub/internal/config"
	"github.com/linskybing/programhub/internal/migrations"
	"github.com/linskybing/programhub/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DbHost,
		config.DbPort,
		config.DbUser,
		config.DbPassword,
		config.DbName,
	)
}

func Init() {
	var err error
	DB, err = gorm.Open(postgres.Open(DSN()), &gorm.Config{})
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to connect to DB")
	}

	if err := Migrate(DB); err != nil {
		logger.Log.WithError(err).Fatal("Failed to auto migrate")
	}

	logger.Log.Info("Database connected and migrated")
}

// Migrate creates or updates the application tables.
func Migrate(gormDB *gorm.DB) error {
	return migrations.Run(gormDB)
}
