package database

import (
	"context"
	"fmt"

	"spicetrade-backend/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	zlog "github.com/rs/zerolog/log"
)

type Database struct {
	Pool *pgxpool.Pool
}

func NewConnection(cfg *config.Config) (*Database, error) {
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	zlog.Info().Str("database", cfg.Database.DBName).Msg("Successfully connected to database")
	return &Database{Pool: pool}, nil
}

func (db *Database) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

func (db *Database) GetDB() *pgxpool.Pool {
	return db.Pool
}

func RunMigrations(db *Database) error {
	ctx := context.Background()

	createCaterersTable := `
	CREATE TABLE IF NOT EXISTS caterers (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		phone VARCHAR(50) NOT NULL DEFAULT '',
		email VARCHAR(255) NOT NULL DEFAULT '',
		address VARCHAR(500) NOT NULL DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`

	createBillsTable := `
	CREATE TABLE IF NOT EXISTS bills (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		bill_number VARCHAR(100) UNIQUE NOT NULL,
		caterer_id INTEGER REFERENCES caterers(id) ON DELETE CASCADE,
		amount NUMERIC(12, 2) NOT NULL CHECK (amount > 0),
		due_date DATE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`

	createRemindersTable := `
	CREATE TABLE IF NOT EXISTS payment_reminders (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		caterer_id INTEGER REFERENCES caterers(id) ON DELETE CASCADE,
		bill_id UUID REFERENCES bills(id) ON DELETE CASCADE,
		bill_number VARCHAR(100) NOT NULL,
		amount NUMERIC(12, 2) NOT NULL CHECK (amount > 0),
		original_due_date DATE NOT NULL,
		reminder_date DATE NOT NULL,
		status VARCHAR(50) NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'overdue', 'due_today', 'upcoming')),
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		is_acknowledged BOOLEAN NOT NULL DEFAULT FALSE,
		acknowledged_at TIMESTAMP WITH TIME ZONE,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		CHECK (NOT is_acknowledged OR acknowledged_at IS NOT NULL)
	);`

	createRemindersDueDateIndex := `
	CREATE INDEX IF NOT EXISTS idx_payment_reminders_due_date
		ON payment_reminders (original_due_date)
		WHERE NOT is_acknowledged;`

	migrations := []string{
		createCaterersTable,
		createBillsTable,
		createRemindersTable,
		createRemindersDueDateIndex,
	}

	for _, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	zlog.Info().Msg("Database migrations completed")
	return nil
}
