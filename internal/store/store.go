// Package store persists the user's financial snapshot in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver

	"github.com/mikeintech/budgetterrr/internal/model"
)

// Store provides SQLite-backed snapshot persistence. The snapshot is
// the unit of storage: Save replaces all tables in one transaction, so
// readers never see a half-written state.
type Store struct {
	db *sql.DB
}

// Open opens or creates the snapshot database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("writing schema version: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the snapshot database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the persisted snapshot with the given one.
func (s *Store) Save(data model.UserData) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"budget", "expenses", "custom_expenses", "savings_goal", "goals", "goal_alerts", "debts", "transactions"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	b := data.Budget
	sched := b.PaySchedule
	_, err = tx.Exec(`INSERT INTO budget
		(id, income, target_savings, current_cash, expense_allocation,
		 pay_frequency, pay_day_of_week, pay_first_day, pay_second_day, next_pay_date, pay_amount)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.Income, b.TargetSavings, b.CurrentCash, string(b.ExpenseAllocation),
		string(sched.Frequency), sched.DayOfWeek, sched.FirstPayDay, sched.SecondPayDay,
		formatTime(sched.NextPayDate), sched.Amount,
	)
	if err != nil {
		return err
	}

	for category, amount := range b.Expenses {
		if _, err := tx.Exec(`INSERT INTO expenses (category, amount) VALUES (?, ?)`, category, amount); err != nil {
			return err
		}
	}
	for _, exp := range b.CustomExpenses {
		if _, err := tx.Exec(`INSERT INTO custom_expenses (id, name, amount) VALUES (?, ?, ?)`,
			exp.ID, exp.Name, exp.Amount); err != nil {
			return err
		}
	}

	sg := data.SavingsGoal
	_, err = tx.Exec(`INSERT INTO savings_goal (id, amount, timeline_months, start_date, current_amount)
		VALUES (1, ?, ?, ?, ?)`,
		sg.Amount, sg.TimelineMonths, formatTime(sg.StartDate), sg.CurrentAmount)
	if err != nil {
		return err
	}

	for _, g := range sg.Goals {
		_, err := tx.Exec(`INSERT INTO goals
			(id, name, category, target_amount, current_amount, target_date,
			 priority, auto_save, monthly_contribution, created_at, highest_milestone)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			g.ID, g.Name, string(g.Category), g.TargetAmount, g.CurrentAmount,
			formatTime(g.TargetDate), string(g.Priority), boolToInt(g.AutoSave),
			g.MonthlyContribution, formatTime(g.CreatedAt), g.HighestMilestone)
		if err != nil {
			return err
		}
		for _, a := range g.Alerts {
			_, err := tx.Exec(`INSERT INTO goal_alerts
				(id, goal_id, type, message, threshold, triggered, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				a.ID, g.ID, string(a.Type), a.Message, a.Threshold, boolToInt(a.Triggered), formatTime(a.CreatedAt))
			if err != nil {
				return err
			}
		}
	}

	for _, d := range data.Debts {
		_, err := tx.Exec(`INSERT INTO debts (id, name, balance, interest_rate, minimum_payment, type)
			VALUES (?, ?, ?, ?, ?, ?)`,
			d.ID, d.Name, d.Balance, d.InterestRate, d.MinimumPayment, string(d.Type))
		if err != nil {
			return err
		}
	}

	for _, t := range data.Transactions {
		_, err := tx.Exec(`INSERT INTO transactions (id, amount, category, date, type, description)
			VALUES (?, ?, ?, ?, ?, ?)`,
			t.ID, t.Amount, t.Category, formatTime(t.Date), string(t.Type), t.Description)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Load reads the persisted snapshot. An empty database yields the
// default starter snapshot without writing it back.
func (s *Store) Load() (model.UserData, error) {
	var data model.UserData

	b := &data.Budget
	var allocation, frequency string
	var nextPayDate sql.NullString
	err := s.db.QueryRow(`SELECT income, target_savings, current_cash, expense_allocation,
		pay_frequency, pay_day_of_week, pay_first_day, pay_second_day, next_pay_date, pay_amount
		FROM budget WHERE id = 1`).Scan(
		&b.Income, &b.TargetSavings, &b.CurrentCash, &allocation,
		&frequency, &b.PaySchedule.DayOfWeek, &b.PaySchedule.FirstPayDay,
		&b.PaySchedule.SecondPayDay, &nextPayDate, &b.PaySchedule.Amount,
	)
	if err == sql.ErrNoRows {
		return model.DefaultUserData(time.Now()), nil
	}
	if err != nil {
		return data, fmt.Errorf("loading budget: %w", err)
	}
	b.ExpenseAllocation = model.ExpenseAllocation(allocation)
	b.PaySchedule.Frequency = model.PayFrequency(frequency)
	b.PaySchedule.NextPayDate = parseTime(nextPayDate)

	b.Expenses = make(map[string]float64)
	rows, err := s.db.Query(`SELECT category, amount FROM expenses`)
	if err != nil {
		return data, err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var category string
		var amount float64
		if err := rows.Scan(&category, &amount); err != nil {
			return data, err
		}
		b.Expenses[category] = amount
	}
	if err := rows.Err(); err != nil {
		return data, err
	}

	custRows, err := s.db.Query(`SELECT id, name, amount FROM custom_expenses`)
	if err != nil {
		return data, err
	}
	defer func() { _ = custRows.Close() }()
	for custRows.Next() {
		var exp model.ExpenseCategory
		if err := custRows.Scan(&exp.ID, &exp.Name, &exp.Amount); err != nil {
			return data, err
		}
		b.CustomExpenses = append(b.CustomExpenses, exp)
	}
	if err := custRows.Err(); err != nil {
		return data, err
	}

	sg := &data.SavingsGoal
	var startDate sql.NullString
	err = s.db.QueryRow(`SELECT amount, timeline_months, start_date, current_amount
		FROM savings_goal WHERE id = 1`).Scan(&sg.Amount, &sg.TimelineMonths, &startDate, &sg.CurrentAmount)
	if err != nil && err != sql.ErrNoRows {
		return data, fmt.Errorf("loading savings goal: %w", err)
	}
	sg.StartDate = parseTime(startDate)

	goals, err := s.loadGoals()
	if err != nil {
		return data, err
	}
	sg.Goals = goals

	debtRows, err := s.db.Query(`SELECT id, name, balance, interest_rate, minimum_payment, type FROM debts`)
	if err != nil {
		return data, err
	}
	defer func() { _ = debtRows.Close() }()
	for debtRows.Next() {
		var d model.DebtAccount
		var debtType string
		if err := debtRows.Scan(&d.ID, &d.Name, &d.Balance, &d.InterestRate, &d.MinimumPayment, &debtType); err != nil {
			return data, err
		}
		d.Type = model.DebtType(debtType)
		data.Debts = append(data.Debts, d)
	}
	if err := debtRows.Err(); err != nil {
		return data, err
	}

	txRows, err := s.db.Query(`SELECT id, amount, category, date, type, description FROM transactions ORDER BY date`)
	if err != nil {
		return data, err
	}
	defer func() { _ = txRows.Close() }()
	for txRows.Next() {
		var t model.Transaction
		var date sql.NullString
		var txType string
		var description sql.NullString
		if err := txRows.Scan(&t.ID, &t.Amount, &t.Category, &date, &txType, &description); err != nil {
			return data, err
		}
		t.Date = parseTime(date)
		t.Type = model.TransactionType(txType)
		if description.Valid {
			t.Description = description.String
		}
		data.Transactions = append(data.Transactions, t)
	}
	return data, txRows.Err()
}

func (s *Store) loadGoals() ([]model.Goal, error) {
	rows, err := s.db.Query(`SELECT id, name, category, target_amount, current_amount,
		target_date, priority, auto_save, monthly_contribution, created_at, highest_milestone
		FROM goals`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var goals []model.Goal
	for rows.Next() {
		var g model.Goal
		var category, priority string
		var targetDate, createdAt sql.NullString
		var autoSave int
		err := rows.Scan(&g.ID, &g.Name, &category, &g.TargetAmount, &g.CurrentAmount,
			&targetDate, &priority, &autoSave, &g.MonthlyContribution, &createdAt, &g.HighestMilestone)
		if err != nil {
			return nil, err
		}
		g.Category = model.GoalCategory(category)
		g.Priority = model.GoalPriority(priority)
		g.TargetDate = parseTime(targetDate)
		g.CreatedAt = parseTime(createdAt)
		g.AutoSave = autoSave != 0
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Batch-load alerts and attach by goal id.
	alertRows, err := s.db.Query(`SELECT id, goal_id, type, message, threshold, triggered, created_at
		FROM goal_alerts ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = alertRows.Close() }()

	goalIdx := make(map[string]int)
	for i, g := range goals {
		goalIdx[g.ID] = i
	}

	for alertRows.Next() {
		var a model.GoalAlert
		var goalID, alertType string
		var triggered int
		var createdAt sql.NullString
		if err := alertRows.Scan(&a.ID, &goalID, &alertType, &a.Message, &a.Threshold, &triggered, &createdAt); err != nil {
			return nil, err
		}
		a.Type = model.AlertType(alertType)
		a.Triggered = triggered != 0
		a.CreatedAt = parseTime(createdAt)
		if idx, ok := goalIdx[goalID]; ok {
			goals[idx].Alerts = append(goals[idx].Alerts, a)
		}
	}
	return goals, alertRows.Err()
}

// Empty reports whether no snapshot has been saved yet.
func (s *Store) Empty() (bool, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM budget").Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

// SchemaVersion returns the stored schema version string.
func (s *Store) SchemaVersion() (string, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&v)
	return v, err
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, _ := time.Parse(time.RFC3339, s.String)
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
