package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	_ "github.com/mattn/go-sqlite3"
)

// DB is the persistence gateway. It is opened once at startup, injected
// into the services that need it, and closed at shutdown.
type DB struct {
	db     *sql.DB
	logger *zerolog.Logger
}

func NewDB(path string, logger *zerolog.Logger) (*DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logger.Info().Str("path", path).Msg("database initialized")
	return &DB{db: db, logger: logger}, nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS room_type (
            room_type_id INTEGER PRIMARY KEY AUTOINCREMENT,
            room_type TEXT NOT NULL,
            price REAL NOT NULL,
            max_person INTEGER NOT NULL DEFAULT 1
        )`,
		`CREATE TABLE IF NOT EXISTS room (
            room_id INTEGER PRIMARY KEY AUTOINCREMENT,
            room_no TEXT NOT NULL,
            room_type_id INTEGER NOT NULL REFERENCES room_type(room_type_id),
            status INTEGER,
            check_in_status INTEGER NOT NULL DEFAULT 0,
            check_out_status INTEGER NOT NULL DEFAULT 0,
            delete_status INTEGER NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS customer (
            customer_id INTEGER PRIMARY KEY AUTOINCREMENT,
            customer_name TEXT NOT NULL,
            number_of_persons INTEGER NOT NULL DEFAULT 1,
            contact_no TEXT,
            email TEXT,
            id_card_no TEXT,
            address TEXT,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE TABLE IF NOT EXISTS booking (
            booking_id INTEGER PRIMARY KEY AUTOINCREMENT,
            customer_id INTEGER NOT NULL REFERENCES customer(customer_id),
            room_id INTEGER NOT NULL REFERENCES room(room_id),
            check_in DATETIME NOT NULL,
            check_out DATETIME NOT NULL,
            total_price REAL NOT NULL,
            remaining_price REAL NOT NULL,
            booking_type TEXT NOT NULL DEFAULT 'NORMAL',
            status TEXT NOT NULL DEFAULT 'CONFIRMED',
            payment_status TEXT NOT NULL DEFAULT 'UNPAID',
            payment_method TEXT,
            check_in_status INTEGER NOT NULL DEFAULT 0,
            check_out_status INTEGER NOT NULL DEFAULT 0,
            booking_date DATETIME DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE TABLE IF NOT EXISTS staff_type (
            staff_type_id INTEGER PRIMARY KEY AUTOINCREMENT,
            staff_type TEXT NOT NULL UNIQUE
        )`,
		`CREATE TABLE IF NOT EXISTS shift (
            shift_id INTEGER PRIMARY KEY AUTOINCREMENT,
            shift TEXT NOT NULL UNIQUE,
            shift_timing TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS staff (
            emp_id INTEGER PRIMARY KEY AUTOINCREMENT,
            emp_name TEXT NOT NULL,
            staff_type_id INTEGER NOT NULL REFERENCES staff_type(staff_type_id),
            shift_id INTEGER NOT NULL REFERENCES shift(shift_id),
            id_card_no TEXT,
            address TEXT,
            contact_no TEXT,
            salary REAL NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS emp_history (
            history_id INTEGER PRIMARY KEY AUTOINCREMENT,
            emp_id INTEGER NOT NULL,
            shift_id INTEGER NOT NULL REFERENCES shift(shift_id),
            from_date DATETIME NOT NULL,
            to_date DATETIME
        )`,
		`CREATE TABLE IF NOT EXISTS staff_attendance (
            attendance_id INTEGER PRIMARY KEY AUTOINCREMENT,
            emp_id INTEGER NOT NULL,
            attendance_date DATETIME NOT NULL,
            status TEXT NOT NULL,
            marked_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            UNIQUE(emp_id, attendance_date)
        )`,
		`CREATE TABLE IF NOT EXISTS complaint (
            complaint_id INTEGER PRIMARY KEY AUTOINCREMENT,
            customer_id INTEGER NOT NULL REFERENCES customer(customer_id),
            description TEXT NOT NULL,
            resolve_status INTEGER NOT NULL DEFAULT 0,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP
        )`,

		`CREATE INDEX IF NOT EXISTS idx_booking_room_id ON booking(room_id)`,
		`CREATE INDEX IF NOT EXISTS idx_booking_customer_id ON booking(customer_id)`,
		`CREATE INDEX IF NOT EXISTS idx_booking_status ON booking(status)`,
		`CREATE INDEX IF NOT EXISTS idx_booking_type ON booking(booking_type)`,
		`CREATE INDEX IF NOT EXISTS idx_room_type_id ON room(room_type_id)`,
		`CREATE INDEX IF NOT EXISTS idx_emp_history_emp_id ON emp_history(emp_id)`,
		`CREATE INDEX IF NOT EXISTS idx_attendance_date ON staff_attendance(attendance_date)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}

	return seedLookups(db)
}

// seedLookups populates the dropdown tables the admin UI reads from.
func seedLookups(db *sql.DB) error {
	seeds := []string{
		`INSERT OR IGNORE INTO shift (shift, shift_timing) VALUES
            ('Morning', '06:00 - 14:00'),
            ('Evening', '14:00 - 22:00'),
            ('Night', '22:00 - 06:00')`,
		`INSERT OR IGNORE INTO staff_type (staff_type) VALUES
            ('Manager'), ('Receptionist'), ('Housekeeping'), ('Chef'), ('Security')`,
	}
	for _, query := range seeds {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("error seeding lookup data: %w", err)
		}
	}
	return nil
}

func (db *DB) Ping(ctx context.Context) error {
	return db.db.PingContext(ctx)
}

func (db *DB) Close() error {
	return db.db.Close()
}
