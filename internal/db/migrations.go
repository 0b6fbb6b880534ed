package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'contract_type') THEN
			CREATE TYPE contract_type AS ENUM ('hardware', 'label');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'contract_status') THEN
			CREATE TYPE contract_status AS ENUM ('active', 'expired', 'pending');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		contract_type contract_type NOT NULL,
		sq VARCHAR(32) NOT NULL,
		end_user VARCHAR(255) NOT NULL,
		model VARCHAR(255),
		part_number VARCHAR(255),
		serial VARCHAR(255) NOT NULL,
		branch VARCHAR(255),
		technical_specialist VARCHAR(255),
		date_of_contract DATE NOT NULL,
		end_of_contract DATE NOT NULL,
		next_pms_schedule DATE NOT NULL,
		status contract_status NOT NULL DEFAULT 'active',
		frequency VARCHAR(32),
		po_number VARCHAR(128),
		documentation TEXT,
		service_report TEXT,
		history TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_by VARCHAR(255),
		CONSTRAINT chk_contract_period CHECK (end_of_contract > date_of_contract)
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_contracts_type_sq ON contracts (contract_type, sq);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_next_pms ON contracts (next_pms_schedule);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_status ON contracts (status);`,
	`CREATE TABLE IF NOT EXISTS service_history (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		contract_id UUID NOT NULL REFERENCES contracts(id),
		contract_type contract_type NOT NULL,
		service_date DATE NOT NULL,
		service_type VARCHAR(64) NOT NULL DEFAULT 'PMS',
		description TEXT,
		technician VARCHAR(255) NOT NULL,
		sr_number VARCHAR(128),
		sales VARCHAR(255),
		company VARCHAR(255),
		location VARCHAR(255),
		model VARCHAR(255),
		serial VARCHAR(255),
		service_report TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_by VARCHAR(255)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_service_history_contract_id ON service_history (contract_id);`,
	`CREATE INDEX IF NOT EXISTS idx_service_history_service_date ON service_history (service_date);`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		title VARCHAR(255) NOT NULL,
		message TEXT NOT NULL,
		notification_type VARCHAR(64) NOT NULL,
		contract_id UUID REFERENCES contracts(id),
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_contract_id ON notifications (contract_id) WHERE contract_id IS NOT NULL;`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_is_read ON notifications (is_read);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
