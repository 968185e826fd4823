package db

import (
	"log"
	"time"

	"github.com/salonbook/salon-scheduler/internal/config"
	"github.com/salonbook/salon-scheduler/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Salon{},
		&models.User{},
		&models.Employee{},
		&models.Service{},
		&models.Addon{},
		&models.ScheduleEntry{},
		&models.Vacation{},
		&models.SalonHoliday{},
		&models.Client{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE salons
        SET timezone = 'Europe/Warsaw'
        WHERE timezone IS NULL OR timezone = ''
    `)

	// The overlap invariant must hold even if two API instances race past
	// the in-transaction check: an exclusion constraint over the booked
	// time range is the backstop. AutoMigrate cannot express it.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        DO $$ BEGIN
            ALTER TABLE appointments
                ADD CONSTRAINT appointments_no_overlap
                EXCLUDE USING gist (
                    employee_id WITH =,
                    tsrange(start_time, end_time) WITH &&
                )
                WHERE (status = 'booked');
        EXCEPTION
            WHEN duplicate_table THEN NULL;
            WHEN duplicate_object THEN NULL;
        END $$;
    `)

	db.Exec(`
        CREATE INDEX IF NOT EXISTS idx_appointments_employee_start
            ON appointments (employee_id, start_time)
            WHERE status = 'booked'
    `)

	return db
}
