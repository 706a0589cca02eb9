package infra

import (
	"fmt"

	"github.com/Misscott/LocationAPI/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// for the full schema, then applies the idempotent SQL patches GORM cannot
// express (partial indexes over the soft-delete column).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates/updates all tables and applies the partial-index
// patches. Also used by the container-backed e2e tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Endpoint{},
		&model.Permission{},
		&model.RolePermission{},
		&model.Coordinate{},
		&model.Place{},
		&model.ReportType{},
		&model.Report{},
		&model.Favorite{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Username uniqueness holds among visible rows only, so the unique index is
// partial on deleted IS NULL — a retired account frees its username.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uni_users_username_visible
		    ON users (username)
		    WHERE deleted IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uni_coordinates_lat_lng_visible
		    ON coordinates (latitude, longitude)
		    WHERE deleted IS NULL`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
