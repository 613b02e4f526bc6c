package store

const schemaVersion = "1"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS meta (
    key                  TEXT PRIMARY KEY,
    value                TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS budget (
    id                   INTEGER PRIMARY KEY CHECK (id = 1),
    income               REAL NOT NULL,
    target_savings       REAL NOT NULL,
    current_cash         REAL NOT NULL,
    expense_allocation   TEXT NOT NULL,
    pay_frequency        TEXT NOT NULL,
    pay_day_of_week      INTEGER NOT NULL DEFAULT 0,
    pay_first_day        INTEGER NOT NULL DEFAULT 0,
    pay_second_day       INTEGER NOT NULL DEFAULT 0,
    next_pay_date        TEXT,
    pay_amount           REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS expenses (
    category             TEXT PRIMARY KEY,
    amount               REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS custom_expenses (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    amount               REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS savings_goal (
    id                   INTEGER PRIMARY KEY CHECK (id = 1),
    amount               REAL NOT NULL,
    timeline_months      INTEGER NOT NULL,
    start_date           TEXT,
    current_amount       REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS goals (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    category             TEXT NOT NULL,
    target_amount        REAL NOT NULL,
    current_amount       REAL NOT NULL,
    target_date          TEXT,
    priority             TEXT NOT NULL,
    auto_save            INTEGER NOT NULL DEFAULT 0,
    monthly_contribution REAL NOT NULL DEFAULT 0,
    created_at           TEXT,
    highest_milestone    REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS goal_alerts (
    id                   TEXT PRIMARY KEY,
    goal_id              TEXT NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
    type                 TEXT NOT NULL,
    message              TEXT NOT NULL,
    threshold            REAL NOT NULL,
    triggered            INTEGER NOT NULL DEFAULT 0,
    created_at           TEXT
);

CREATE TABLE IF NOT EXISTS debts (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    balance              REAL NOT NULL,
    interest_rate        REAL NOT NULL,
    minimum_payment      REAL NOT NULL,
    type                 TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    id                   TEXT PRIMARY KEY,
    amount               REAL NOT NULL,
    category             TEXT NOT NULL,
    date                 TEXT,
    type                 TEXT NOT NULL,
    description          TEXT
);

CREATE INDEX IF NOT EXISTS idx_goal_alerts_goal ON goal_alerts(goal_id);
CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
`
