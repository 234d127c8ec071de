// internal/db/db.go
package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

var DB *sql.DB // Shared database handle for the whole process

// InitDB opens the database connection, creates the schema if it does not
// exist, applies idempotent migrations and builds the indexes.
func InitDB() error {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}

	var err error
	DB, err = sql.Open("postgres", dbURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %v", err)
	}

	DB.SetMaxOpenConns(50)
	DB.SetMaxIdleConns(20)
	DB.SetConnMaxLifetime(5 * time.Minute)

	if err := DB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %v", err)
	}
	log.Println("Connected to the database.")

	tx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %v", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			log.Printf("Rolling back schema transaction: %v", err)
			tx.Rollback()
		}
	}()

	createTablesSQL := `
        CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            username VARCHAR(100) UNIQUE NOT NULL,
            email VARCHAR(255) UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'staff',
            telegram_username VARCHAR(100),
            created_at TIMESTAMP DEFAULT NOW(),
            updated_at TIMESTAMP DEFAULT NOW()
        );
        CREATE TABLE IF NOT EXISTS otps (
            id SERIAL PRIMARY KEY,
            mobile_number VARCHAR(20) NOT NULL,
            code VARCHAR(6) NOT NULL,
            expires_at TIMESTAMP NOT NULL,
            is_used BOOLEAN DEFAULT FALSE,
            created_at TIMESTAMP DEFAULT NOW()
        );
        CREATE TABLE IF NOT EXISTS workers (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            phone VARCHAR(20) NOT NULL,
            address TEXT,
            joining_date DATE NOT NULL,
            monthly_salary FLOAT NOT NULL,
            is_active BOOLEAN DEFAULT TRUE,
            notes TEXT,
            running_total_working_days FLOAT DEFAULT 0,
            created_at TIMESTAMP DEFAULT NOW(),
            updated_at TIMESTAMP DEFAULT NOW()
        );
        CREATE TABLE IF NOT EXISTS attendance (
            id SERIAL PRIMARY KEY,
            worker_id INTEGER REFERENCES workers(id) ON DELETE CASCADE NOT NULL,
            attended_on DATE NOT NULL,
            status TEXT NOT NULL,
            check_in TEXT,
            check_out TEXT,
            notes TEXT,
            created_at TIMESTAMP DEFAULT NOW(),
            updated_at TIMESTAMP DEFAULT NOW(),
            UNIQUE (worker_id, attended_on)
        );
        CREATE TABLE IF NOT EXISTS persons (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            phone VARCHAR(20),
            address TEXT,
            notes TEXT,
            created_at TIMESTAMP DEFAULT NOW(),
            updated_at TIMESTAMP DEFAULT NOW()
        );
        CREATE TABLE IF NOT EXISTS cultivations (
            id SERIAL PRIMARY KEY,
            person_id INTEGER REFERENCES persons(id),
            crop_name TEXT NOT NULL,
            area_bigha FLOAT NOT NULL,
            rate_per_bigha FLOAT NOT NULL,
            total_cost FLOAT NOT NULL,
            amount_received FLOAT DEFAULT 0,
            amount_pending FLOAT DEFAULT 0,
            payment_mode TEXT NOT NULL,
            cultivated_on DATE NOT NULL,
            harvested_on DATE,
            notes TEXT,
            created_at TIMESTAMP DEFAULT NOW(),
            updated_at TIMESTAMP DEFAULT NOW()
        );
        CREATE TABLE IF NOT EXISTS payments (
            id SERIAL PRIMARY KEY,
            category TEXT NOT NULL CHECK (category IN ('worker', 'cultivation')),
            worker_id INTEGER REFERENCES workers(id),
            cultivation_id INTEGER REFERENCES cultivations(id),
            amount FLOAT NOT NULL,
            paid_on DATE NOT NULL,
            payment_mode TEXT NOT NULL,
            description TEXT,
            created_at TIMESTAMP DEFAULT NOW(),
            updated_at TIMESTAMP DEFAULT NOW()
        );
        CREATE TABLE IF NOT EXISTS properties (
            id SERIAL PRIMARY KEY,
            property_type TEXT NOT NULL CHECK (property_type IN ('buy', 'sell')),
            area FLOAT NOT NULL,
            area_unit TEXT NOT NULL DEFAULT 'bigha',
            partner_name TEXT,
            counterparty_name TEXT,
            rate_per_unit FLOAT NOT NULL,
            total_cost FLOAT NOT NULL,
            amount_paid FLOAT DEFAULT 0,
            amount_pending FLOAT DEFAULT 0,
            transacted_on DATE NOT NULL,
            created_at TIMESTAMP DEFAULT NOW(),
            updated_at TIMESTAMP DEFAULT NOW()
        );
        CREATE TABLE IF NOT EXISTS meel_entries (
            id SERIAL PRIMARY KEY,
            crop_name TEXT NOT NULL,
            transaction_type TEXT NOT NULL CHECK (transaction_type IN ('buy', 'sell')),
            transaction_mode TEXT NOT NULL CHECK (transaction_mode IN ('individual', 'with-partner')),
            partners JSONB DEFAULT '[]',
            total_cost FLOAT NOT NULL,
            tag TEXT,
            created_by INTEGER REFERENCES users(id),
            created_at TIMESTAMP DEFAULT NOW(),
            updated_at TIMESTAMP DEFAULT NOW()
        );
    `
	_, err = tx.Exec(createTablesSQL)
	if err != nil {
		return fmt.Errorf("failed to create tables: %v", err)
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("failed to commit table creation: %v", err)
	}
	log.Println("Table creation (if not exists) finished.")

	err = migrateDBSchema()
	if err != nil {
		return fmt.Errorf("schema migration failed: %v", err)
	}

	createIndexesSQL := `
        CREATE UNIQUE INDEX IF NOT EXISTS idx_users_telegram_username ON users(telegram_username) WHERE telegram_username IS NOT NULL;
        CREATE INDEX IF NOT EXISTS idx_otps_mobile_number ON otps(mobile_number);
        CREATE INDEX IF NOT EXISTS idx_otps_expires_at ON otps(expires_at);
        CREATE INDEX IF NOT EXISTS idx_workers_is_active ON workers(is_active);
        CREATE INDEX IF NOT EXISTS idx_attendance_worker_date ON attendance(worker_id, attended_on);
        CREATE INDEX IF NOT EXISTS idx_attendance_attended_on ON attendance(attended_on);
        CREATE INDEX IF NOT EXISTS idx_payments_worker_id ON payments(worker_id);
        CREATE INDEX IF NOT EXISTS idx_payments_cultivation_id ON payments(cultivation_id);
        CREATE INDEX IF NOT EXISTS idx_payments_category_paid_on ON payments(category, paid_on);
        CREATE INDEX IF NOT EXISTS idx_cultivations_person_id ON cultivations(person_id);
        CREATE INDEX IF NOT EXISTS idx_cultivations_crop_name ON cultivations(crop_name);
        CREATE INDEX IF NOT EXISTS idx_properties_type ON properties(property_type);
        CREATE INDEX IF NOT EXISTS idx_meel_entries_created_by ON meel_entries(created_by);
    `
	indexStatements := strings.Split(strings.TrimSpace(createIndexesSQL), ";")
	for _, stmt := range indexStatements {
		trimmedStmt := strings.TrimSpace(stmt)
		if trimmedStmt == "" {
			continue
		}
		if _, errIdx := DB.Exec(trimmedStmt); errIdx != nil {
			log.Printf("Warning: failed to create index ('%s'): %v", trimmedStmt, errIdx)
		}
	}
	log.Println("Index creation (if not exists) finished.")

	log.Println("Database initialization finished.")
	return nil
}

// migrateDBSchema applies schema migrations for databases created by earlier
// builds. Every statement is idempotent.
func migrateDBSchema() error {
	migrations := []struct {
		name string
		sql  string
	}{
		{
			name: "workers.running_total_working_days",
			sql:  `ALTER TABLE workers ADD COLUMN IF NOT EXISTS running_total_working_days FLOAT DEFAULT 0;`,
		},
		{
			name: "attendance.check_in_out",
			sql: `ALTER TABLE attendance
                  ADD COLUMN IF NOT EXISTS check_in TEXT,
                  ADD COLUMN IF NOT EXISTS check_out TEXT;`,
		},
		{
			name: "payments.category",
			sql:  `ALTER TABLE payments ADD COLUMN IF NOT EXISTS category TEXT NOT NULL DEFAULT 'worker';`,
		},
		{
			name: "properties.area_unit",
			sql:  `ALTER TABLE properties ADD COLUMN IF NOT EXISTS area_unit TEXT NOT NULL DEFAULT 'bigha';`,
		},
		{
			name: "users.telegram_username",
			sql:  `ALTER TABLE users ADD COLUMN IF NOT EXISTS telegram_username VARCHAR(100);`,
		},
		{
			name: "attendance.unique_worker_date",
			sql: `DO $$
                  BEGIN
                      IF NOT EXISTS (
                          SELECT 1 FROM pg_constraint
                          WHERE conrelid = 'attendance'::regclass
                          AND conname = 'attendance_worker_id_attended_on_key'
                      ) THEN
                          ALTER TABLE attendance ADD CONSTRAINT attendance_worker_id_attended_on_key UNIQUE (worker_id, attended_on);
                      END IF;
                  END$$;`,
		},
	}

	for _, migration := range migrations {
		if _, err := DB.Exec(migration.sql); err != nil {
			if strings.Contains(err.Error(), "already exists") {
				log.Printf("INFO: migration '%s' skipped (object already exists). Details: %v", migration.name, err)
				continue
			}
			return fmt.Errorf("schema migration ('%s') failed: %v", migration.name, err)
		}
	}

	log.Println("Schema migration finished (or was not needed).")
	return nil
}

// CloseDB closes the database connection.
func CloseDB() {
	if DB != nil {
		DB.Close()
		log.Println("Database connection closed.")
	}
}
