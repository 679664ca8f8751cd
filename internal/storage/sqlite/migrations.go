package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Amounts and shares are TEXT so decimals round-trip exactly.
const schema = `
CREATE TABLE IF NOT EXISTS operators (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS associates (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    note TEXT,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS contracts (
    id TEXT PRIMARY KEY,
    associate_id TEXT NOT NULL,
    name TEXT NOT NULL,
    terms_json TEXT,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS clauses (
    contract_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    id TEXT NOT NULL,
    type TEXT NOT NULL,
    description TEXT NOT NULL,
    item_category TEXT NOT NULL,
    company_share TEXT NOT NULL,
    associate_share TEXT NOT NULL,
    PRIMARY KEY (contract_id, position),
    FOREIGN KEY (contract_id) REFERENCES contracts(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS settlements (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    associate_id TEXT NOT NULL,
    contract_id TEXT,
    shared_expense TEXT NOT NULL,
    exchange_rate TEXT NOT NULL,
    gross_sales TEXT NOT NULL,
    principal_net TEXT NOT NULL,
    associate_net TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    created_by TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sale_lines (
    settlement_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    kind TEXT NOT NULL,
    description TEXT NOT NULL,
    item_type TEXT NOT NULL,
    sub_item_type TEXT NOT NULL,
    quantity INTEGER NOT NULL,
    unit_price TEXT NOT NULL,
    currency TEXT NOT NULL,
    associate_id TEXT NOT NULL,
    PRIMARY KEY (settlement_id, position),
    FOREIGN KEY (settlement_id) REFERENCES settlements(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS payouts (
    id TEXT PRIMARY KEY,
    associate_id TEXT NOT NULL,
    amount TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    created_by TEXT NOT NULL,
    note TEXT
);

CREATE TABLE IF NOT EXISTS preferences (
    operator_id TEXT PRIMARY KEY,
    last_associate_id TEXT NOT NULL,
    last_contract_id TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_contracts_associate_id ON contracts(associate_id);
CREATE INDEX IF NOT EXISTS idx_clauses_contract_id ON clauses(contract_id);
CREATE INDEX IF NOT EXISTS idx_settlements_associate_id ON settlements(associate_id);
CREATE INDEX IF NOT EXISTS idx_sale_lines_settlement_id ON sale_lines(settlement_id);
CREATE INDEX IF NOT EXISTS idx_payouts_associate_id ON payouts(associate_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
