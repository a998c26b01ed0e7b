package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS monthly_reports (
    month                TEXT PRIMARY KEY,
    hours                INTEGER NOT NULL,
    days                 INTEGER NOT NULL,
    total_usage          REAL NOT NULL,
    total_cost           REAL NOT NULL,
    total_energy_cost    REAL NOT NULL,
    average_price        REAL NOT NULL,
    daily_base_fee       REAL NOT NULL,
    peak_day             TEXT,
    peak_day_cost        REAL,
    margin_cents         REAL NOT NULL,
    base_price_cents     REAL NOT NULL,
    usage_file           TEXT,
    usage_mtime_ns       INTEGER,
    usage_size           INTEGER,
    generated_at         TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS daily_costs (
    month                TEXT NOT NULL REFERENCES monthly_reports(month) ON DELETE CASCADE,
    day                  TEXT NOT NULL,
    label                TEXT NOT NULL,
    hours                INTEGER NOT NULL,
    usage_kwh            REAL NOT NULL,
    energy_cost          REAL NOT NULL,
    cost                 REAL NOT NULL,
    PRIMARY KEY (month, day)
);

CREATE INDEX IF NOT EXISTS idx_daily_costs_day ON daily_costs(day);
`
