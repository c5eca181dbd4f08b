// Package postgres implements the relational repositories on gorm. Domain
// types stay free of persistence tags: every repository maps through local
// record structs.
package postgres

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the Postgres connection and migrates the schema.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}

	if err := db.AutoMigrate(
		&userRecord{},
		&profileRecord{},
		&planRecord{},
		&customerRecord{},
		&invoiceRecord{},
		&commissionSettingRecord{},
		&commissionRecord{},
	); err != nil {
		return nil, fmt.Errorf("postgres migrate: %w", err)
	}

	return db, nil
}
