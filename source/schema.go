package source

// Schema creates the instruction store. Decimals are kept as TEXT so
// rates and prices round-trip exactly.
const Schema = `
CREATE TABLE IF NOT EXISTS instructions (
	id TEXT PRIMARY KEY,
	entity TEXT NOT NULL,
	direction TEXT NOT NULL,
	agreed_fx TEXT NOT NULL,
	currency TEXT NOT NULL,
	instruction_date TEXT NOT NULL,
	settlement_date TEXT,
	units INTEGER NOT NULL,
	unit_price TEXT NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_instructions_date ON instructions(instruction_date);
`
